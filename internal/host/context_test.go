package host

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/pulse/internal/config"
	"github.com/dshills/pulse/internal/delivery"
	"github.com/dshills/pulse/internal/event"
	"github.com/dshills/pulse/internal/id"
	"github.com/dshills/pulse/internal/update"
)

// keyArgs routes to one target widget through the search protocol.
type keyArgs struct {
	event.ArgsBase

	Target id.WidgetID
	Rune   rune
}

func newKeyArgs(target id.WidgetID, r rune) *keyArgs {
	return &keyArgs{ArgsBase: event.NewArgsBase(), Target: target, Rune: r}
}

func (a *keyArgs) DeliveryList(list *delivery.List) {
	list.SearchWidget(a.Target)
}

// chainTree is root -> w1 -> w2 under one window.
type chainTree struct {
	window       id.WindowID
	root, w1, w2 id.WidgetID
}

func newChainTree() *chainTree {
	return &chainTree{
		window: id.NewWindowID(),
		root:   id.NewWidgetID(),
		w1:     id.NewWidgetID(),
		w2:     id.NewWidgetID(),
	}
}

func (t *chainTree) WindowID() id.WindowID { return t.window }

func (t *chainTree) Find(w id.WidgetID) (delivery.WidgetInfo, bool) {
	switch w {
	case t.root, t.w1, t.w2:
		return chainWidget{tree: t, id: w}, true
	}
	return nil, false
}

type chainWidget struct {
	tree *chainTree
	id   id.WidgetID
}

func (w chainWidget) ID() id.WidgetID         { return w.id }
func (w chainWidget) Tree() delivery.InfoTree { return w.tree }

func (w chainWidget) SelfAndAncestors() []delivery.WidgetInfo {
	out := []delivery.WidgetInfo{w}
	switch w.id {
	case w.tree.w2:
		out = append(out,
			chainWidget{tree: w.tree, id: w.tree.w1},
			chainWidget{tree: w.tree, id: w.tree.root})
	case w.tree.w1:
		out = append(out, chainWidget{tree: w.tree, id: w.tree.root})
	}
	return out
}

func TestNew_Defaults(t *testing.T) {
	ctx := New()
	defer ctx.Teardown()

	if ctx.Registry() == nil || ctx.Events() == nil || ctx.Updates() == nil {
		t.Fatal("context should carry registry, events and updates")
	}
	if ctx.IsClosed() {
		t.Error("fresh context should not be closed")
	}
}

func TestContext_Log(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.TraceLevel)
	ctx := New(WithLogger(log))
	defer ctx.Teardown()

	// Level methods chain directly off the accessor.
	ctx.Log().Trace().Str("channel", "key.press").Msg("raise observed")
	if !strings.Contains(buf.String(), "raise observed") {
		t.Error("accessor should write through the session logger")
	}
}

func TestContext_NotifyAndTake(t *testing.T) {
	ctx := New()
	defer ctx.Teardown()
	ev := event.New[*keyArgs](ctx.Registry(), "key.press")

	ev.Notify(ctx, newKeyArgs(0, 'a'))
	cu := ctx.TakeUpdates()
	if len(cu.Events) != 1 || !ev.Has(cu.Events[0]) {
		t.Fatalf("expected one envelope of the raised channel, got %d", len(cu.Events))
	}
	if !cu.HasUpdates() {
		t.Error("pass with an envelope should report updates")
	}

	// Nothing new requested; the next take is empty.
	cu = ctx.TakeUpdates()
	if cu.HasUpdates() {
		t.Error("second take without new requests should be empty")
	}
}

func TestContext_DeliveryThroughTree(t *testing.T) {
	ctx := New()
	defer ctx.Teardown()
	tree := newChainTree()
	ev := event.New[*keyArgs](ctx.Registry(), "key.press")

	// Only the innermost widget subscribes.
	ev.Subscribe(tree.w2).Perm()

	ev.Notify(ctx, newKeyArgs(tree.w2, 'x'))
	cu := ctx.TakeUpdates()
	if len(cu.Events) != 1 {
		t.Fatalf("expected one envelope, got %d", len(cu.Events))
	}
	u := cu.Events[0]
	u.FulfillSearch(tree)

	list := u.DeliveryList()
	if !list.EnterWindow(tree.window) {
		t.Fatal("window should be on the route")
	}
	if list.EnterWidget(tree.root) {
		t.Error("unsubscribed root must not be on the route")
	}
	if list.EnterWidget(tree.w1) {
		t.Error("unsubscribed w1 must not be on the route")
	}
	if !list.EnterWidget(tree.w2) {
		t.Error("subscribed target must be on the route")
	}
}

func TestContext_SendEvent(t *testing.T) {
	ctx := New()
	defer ctx.Teardown()
	ev := event.New[*keyArgs](ctx.Registry(), "key.press")
	tree := newChainTree()
	ev.Subscribe(tree.w2).Perm()

	sender := ev.Sender(ctx)
	done := make(chan bool, 1)
	go func() {
		done <- sender.Send(newKeyArgs(tree.w2, 'q'))
	}()
	if ok := <-done; !ok {
		t.Fatal("Send() should report true while the context is open")
	}

	cu := ctx.TakeUpdates()
	if len(cu.Events) != 1 {
		t.Fatalf("expected one envelope from the cross-thread raise, got %d", len(cu.Events))
	}
	if a, ok := ev.On(cu.Events[0]); !ok || a.Rune != 'q' {
		t.Error("envelope should carry the sent payload")
	}
}

func TestContext_SendUpdate(t *testing.T) {
	ctx := New()
	defer ctx.Teardown()
	tree := newChainTree()

	if !ctx.SendUpdate(tree.w2) {
		t.Fatal("SendUpdate() should report true while open")
	}
	cu := ctx.TakeUpdates()
	if !cu.Update {
		t.Fatal("expected the update flag")
	}
	cu.UpdateWidgets.FulfillSearch(tree)
	visited := false
	cu.UpdateWidgets.WithWidget(tree.w2, func() { visited = true })
	if !visited {
		t.Error("targeted widget should be on the update route")
	}
}

func TestContext_SendUpdateCoalesces(t *testing.T) {
	ctx := New()
	defer ctx.Teardown()

	// Coalescing is on by default; a burst of untargeted requests
	// collapses to one queue entry and one pass.
	for i := 0; i < 5; i++ {
		ctx.SendUpdate()
	}
	cu := ctx.TakeUpdates()
	if !cu.Update {
		t.Fatal("expected the update flag")
	}

	cu = ctx.TakeUpdates()
	if cu.HasUpdates() {
		t.Error("coalesced burst must not leave residual work")
	}
}

func TestContext_SendAfterTeardown(t *testing.T) {
	ctx := New()
	ev := event.New[*keyArgs](ctx.Registry(), "key.press")
	ctx.Teardown()

	if ctx.SendEvent(ev.AsAny(), newKeyArgs(0, 'a')) {
		t.Error("SendEvent() must report false after teardown")
	}
	if ctx.SendUpdate() {
		t.Error("SendUpdate() must report false after teardown")
	}
	if !ctx.IsClosed() {
		t.Error("context should report closed")
	}
}

func TestContext_TeardownClearsState(t *testing.T) {
	ctx := New()
	ev := event.New[*keyArgs](ctx.Registry(), "key.press")
	w := id.NewWidgetID()
	ev.Subscribe(w).Perm()
	ev.Notify(ctx, newKeyArgs(0, 'a'))

	torn := false
	ctx.OnTeardown(func() { torn = true })
	ctx.Teardown()

	if !torn {
		t.Error("teardown callback should run")
	}
	if ev.IsSubscriber(w) {
		t.Error("teardown should clear channel subscriptions")
	}
	if ctx.Events().HasPending() {
		t.Error("teardown should drop pending envelopes")
	}

	// A second teardown is a no-op.
	ctx.Teardown()
}

func TestContext_RunPass(t *testing.T) {
	ctx := New()
	defer ctx.Teardown()

	calls := 0
	ctx.Updates().Run(func(update.Args) { calls++ }).Perm()

	passes := 0
	ctx.RunPass(func(cu update.ContextUpdates) bool {
		passes++
		if !cu.Update {
			t.Error("Run should force the update flag")
		}
		return true
	})

	if passes != 1 {
		t.Errorf("loop body ran %d times, want 1", passes)
	}
	if calls != 1 {
		t.Errorf("one-shot handler ran %d times, want 1", calls)
	}

	// The one-shot is spent; an idle pass skips the body.
	ctx.RunPass(func(update.ContextUpdates) bool {
		t.Error("idle pass must not call the body")
		return true
	})
}

func TestContext_Loop(t *testing.T) {
	cfg := config.Default()
	cfg.Frame.Rate = 240
	ctx := New(WithConfig(cfg))
	defer ctx.Teardown()
	ev := event.New[*keyArgs](ctx.Registry(), "key.press")

	done := make(chan struct{})
	go func() {
		defer close(done)
		ctx.Loop(func(cu update.ContextUpdates) bool {
			// Stop after the first delivered envelope.
			return len(cu.Events) == 0
		})
	}()

	ev.Sender(ctx).Send(newKeyArgs(0, 'z'))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not observe the cross-thread raise")
	}
}

func TestContext_LoopExitsOnTeardown(t *testing.T) {
	ctx := New()

	done := make(chan struct{})
	go func() {
		defer close(done)
		ctx.Loop(func(update.ContextUpdates) bool { return true })
	}()

	ctx.Teardown()
	ctx.Wake()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not exit on teardown")
	}
}
