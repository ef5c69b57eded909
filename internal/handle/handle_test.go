package handle

import "testing"

func TestNew(t *testing.T) {
	owner, h := New()
	if h.IsDummy() {
		t.Fatal("New() returned a dummy handle")
	}
	if !owner.Retain() {
		t.Error("expected owner to retain a fresh registration")
	}
	if h.IsUnsubscribed() {
		t.Error("fresh handle should not be unsubscribed")
	}
}

func TestDummy(t *testing.T) {
	h := Dummy()
	if !h.IsDummy() {
		t.Fatal("Dummy() is not a dummy")
	}
	if !h.IsUnsubscribed() {
		t.Error("dummy should report unsubscribed")
	}
	// All operations on a dummy are no-ops.
	h.Drop()
	h.Perm()
	h.Unsubscribe()
	if c := h.Clone(); !c.IsDummy() {
		t.Error("cloning a dummy should return a dummy")
	}

	var zero Handle
	if !zero.IsDummy() {
		t.Error("zero-value handle should be a dummy")
	}
}

func TestHandle_Drop(t *testing.T) {
	owner, h := New()
	h.Drop()
	if owner.Retain() {
		t.Error("owner should not retain after the last strong handle dropped")
	}
}

func TestHandle_CloneKeepsAlive(t *testing.T) {
	owner, h := New()
	c := h.Clone()
	h.Drop()
	if !owner.Retain() {
		t.Error("owner should retain while a clone survives")
	}
	c.Drop()
	if owner.Retain() {
		t.Error("owner should not retain after all strong handles dropped")
	}
}

func TestHandle_CloneAfterUnsubscribe(t *testing.T) {
	_, h := New()
	h.Unsubscribe()
	if c := h.Clone(); !c.IsDummy() {
		t.Error("cloning an unsubscribed handle should return a dummy")
	}
}

func TestHandle_Perm(t *testing.T) {
	owner, h := New()
	h.Perm()
	if !h.IsPermanent() {
		t.Error("expected IsPermanent after Perm()")
	}
	if !owner.Retain() {
		t.Error("owner should retain a permanent registration with no strong handles")
	}
}

func TestHandle_UnsubscribeOverridesPerm(t *testing.T) {
	owner, h := New()
	c := h.Clone()
	h.Perm()
	c.Unsubscribe()
	if owner.Retain() {
		t.Error("Unsubscribe should override the permanent flag and live clones")
	}
	if !c.IsUnsubscribed() {
		t.Error("expected IsUnsubscribed after Unsubscribe")
	}
}

func TestOwner_Unsubscribe(t *testing.T) {
	owner, h := New()
	owner.Unsubscribe()
	if owner.Retain() {
		t.Error("owner should not retain after owner-side Unsubscribe")
	}
	if !h.IsUnsubscribed() {
		t.Error("handle should observe the owner-side drop")
	}
}

func TestWeakHandle_Upgrade(t *testing.T) {
	_, h := New()
	w := h.Downgrade()

	if !w.IsAlive() {
		t.Fatal("weak handle should be alive while a strong handle exists")
	}
	up, ok := w.Upgrade()
	if !ok {
		t.Fatal("Upgrade() failed while registration is live")
	}

	h.Drop()
	if !w.IsAlive() {
		t.Error("weak handle should stay alive through the upgraded reference")
	}
	up.Drop()
	if w.IsAlive() {
		t.Error("weak handle should be dead after all strong references dropped")
	}
	if _, ok := w.Upgrade(); ok {
		t.Error("Upgrade() should fail once the registration died")
	}
}

func TestWeakHandle_PermKeepsAlive(t *testing.T) {
	_, h := New()
	w := h.Downgrade()
	h.Perm()
	if !w.IsAlive() {
		t.Error("weak handle should be alive for a permanent registration")
	}
	h.Unsubscribe()
	if w.IsAlive() {
		t.Error("weak handle should be dead after Unsubscribe")
	}
}

func TestHandles_Push(t *testing.T) {
	var hs Handles
	hs.Push(Dummy())
	if hs.Len() != 0 {
		t.Error("dummies should not be stored")
	}
	if !hs.IsDummy() {
		t.Error("empty collection should be dummy")
	}

	_, h := New()
	hs.Push(h)
	if hs.Len() != 1 {
		t.Errorf("expected 1 handle, got %d", hs.Len())
	}
	if hs.IsDummy() {
		t.Error("collection with a live handle should not be dummy")
	}
}

func TestHandles_Clear(t *testing.T) {
	var hs Handles
	owner, h := New()
	hs.Push(h)
	hs.Clear()
	if owner.Retain() {
		t.Error("Clear should drop the collected handles")
	}
	if hs.Len() != 0 {
		t.Error("Clear should empty the collection")
	}
}

func TestHandles_Perm(t *testing.T) {
	var hs Handles
	owner, h := New()
	hs.Push(h)
	hs.Perm()
	if !owner.Retain() {
		t.Error("Perm should keep the registrations alive")
	}
	if hs.Len() != 0 {
		t.Error("Perm should empty the collection")
	}
}
