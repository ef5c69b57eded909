// Package handle provides ownership-counted lifetime handles.
//
// A Handle represents one strong reference to a registration (an event
// subscription, a hook, or an update callback). The registration owner
// keeps the Owner side and probes Retain to decide whether the
// registration is still wanted: it is retained while at least one strong
// handle exists or the handle was marked permanent, and dropped once all
// strong handles are gone or any holder called Unsubscribe.
//
// The zero-value Handle is a dummy: it is already unsubscribed, costs no
// allocation, and every operation on it is a no-op. This makes "optional
// subscription" fields free.
package handle

import "sync/atomic"

// state is shared by all strong handles, weak handles and the owner.
type state struct {
	strong  atomic.Int64
	perm    atomic.Bool
	dropped atomic.Bool
}

// Handle is a strong reference to a registration.
type Handle struct {
	s *state
}

// WeakHandle probes a registration's liveness without extending it.
type WeakHandle struct {
	s *state
}

// Owner is the registration-keeper side of a handle pair.
type Owner struct {
	s *state
}

// New creates a registration handle pair with one strong reference.
func New() (Owner, Handle) {
	s := &state{}
	s.strong.Store(1)
	return Owner{s: s}, Handle{s: s}
}

// Dummy returns a handle to nothing, permanently in the unsubscribed state.
func Dummy() Handle {
	return Handle{}
}

// IsDummy reports whether the handle is not backed by any registration.
func (h Handle) IsDummy() bool {
	return h.s == nil
}

// Clone returns a new strong reference to the same registration.
// Cloning a dummy or already-released handle returns a dummy.
func (h Handle) Clone() Handle {
	if h.s == nil || h.s.dropped.Load() {
		return Handle{}
	}
	h.s.strong.Add(1)
	return h
}

// Drop releases this strong reference. The registration is pruned by its
// owner in the following pass once no strong references remain, unless it
// was marked permanent.
func (h Handle) Drop() {
	if h.s != nil {
		h.s.strong.Add(-1)
	}
}

// Perm marks the registration permanent and releases this strong
// reference. A permanent registration is kept for the duration of the
// app session unless Unsubscribe is called.
func (h Handle) Perm() {
	if h.s != nil {
		h.s.perm.Store(true)
		h.s.strong.Add(-1)
	}
}

// IsPermanent reports whether any holder has called Perm.
func (h Handle) IsPermanent() bool {
	return h.s != nil && h.s.perm.Load()
}

// Unsubscribe forces the registration to drop, overriding any remaining
// strong references and the permanent flag. This is irreversible.
func (h Handle) Unsubscribe() {
	if h.s != nil {
		h.s.dropped.Store(true)
	}
}

// IsUnsubscribed reports whether the registration has been force-dropped.
// Dummy handles report true.
func (h Handle) IsUnsubscribed() bool {
	return h.s == nil || h.s.dropped.Load()
}

// Downgrade returns a weak handle to the same registration.
func (h Handle) Downgrade() WeakHandle {
	return WeakHandle{s: h.s}
}

// Upgrade returns a new strong handle if the registration is still live.
func (w WeakHandle) Upgrade() (Handle, bool) {
	if w.s == nil || w.s.dropped.Load() {
		return Handle{}, false
	}
	// The registration is live for upgrade purposes while its owner
	// still retains it.
	if w.s.strong.Load() <= 0 && !w.s.perm.Load() {
		return Handle{}, false
	}
	w.s.strong.Add(1)
	return Handle{s: w.s}, true
}

// IsAlive reports whether an Upgrade would currently succeed.
func (w WeakHandle) IsAlive() bool {
	if w.s == nil || w.s.dropped.Load() {
		return false
	}
	return w.s.strong.Load() > 0 || w.s.perm.Load()
}

// Retain reports whether the owner must keep the registration: it was not
// force-dropped and either a strong handle survives or it is permanent.
func (o Owner) Retain() bool {
	if o.s == nil || o.s.dropped.Load() {
		return false
	}
	return o.s.strong.Load() > 0 || o.s.perm.Load()
}

// Weak returns a weak handle for liveness probing from the owner side.
func (o Owner) Weak() WeakHandle {
	return WeakHandle{s: o.s}
}

// Unsubscribe force-drops the registration from the owner side.
func (o Owner) Unsubscribe() {
	if o.s != nil {
		o.s.dropped.Store(true)
	}
}
