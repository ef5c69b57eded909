package event

import (
	"github.com/dshills/pulse/internal/delivery"
	"github.com/dshills/pulse/internal/handle"
	"github.com/dshills/pulse/internal/id"
)

// Event is the typed facade over an erased channel Key. It is a
// zero-cost copyable value; two facades are the same channel when they
// share the backing key, regardless of payload type.
type Event[A Args] struct {
	key *Key
}

// Handler is a channel handler callback registered with OnEvent or
// OnPreEvent.
type Handler[A Args] func(args A)

// Notifier schedules a dispatch envelope for the next pass. The Events
// queue and the host context implement it.
type Notifier interface {
	Notify(u *Update)
}

// New returns the typed facade for the named channel in reg, creating
// the channel on first use.
func New[A Args](reg *Registry, name string) Event[A] {
	return Event[A]{key: reg.Key(name)}
}

// AsAny returns the erased channel key.
func (e Event[A]) AsAny() *Key {
	return e.key
}

// Name returns the channel's diagnostic name.
func (e Event[A]) Name() string {
	return e.key.Name()
}

// Is reports whether k is this channel's erased identity.
func (e Event[A]) Is(k *Key) bool {
	return e.key == k
}

// Has reports whether the update is a dispatch of this channel.
func (e Event[A]) Has(u *Update) bool {
	return u != nil && u.key == e.key
}

// On returns the typed payload if the update is a dispatch of this
// channel.
func (e Event[A]) On(u *Update) (A, bool) {
	var zero A
	if !e.Has(u) {
		return zero, false
	}
	a, ok := u.args.(A)
	return a, ok
}

// OnUnhandled returns the typed payload if the update is a dispatch of
// this channel whose propagation was not stopped.
func (e Event[A]) OnUnhandled(u *Update) (A, bool) {
	a, ok := e.On(u)
	if !ok || a.Propagation().IsStopped() {
		var zero A
		return zero, false
	}
	return a, true
}

// Handle calls fn if the update is an unhandled dispatch of this channel
// and then stops propagation. Reports whether fn ran.
func (e Event[A]) Handle(u *Update, fn func(args A)) bool {
	a, ok := e.OnUnhandled(u)
	if !ok {
		return false
	}
	fn(a)
	a.Propagation().Stop()
	return true
}

// Subscribe registers the widget to receive targeted dispatches. The
// registration lives while a strong handle survives or the handle is
// made permanent.
func (e Event[A]) Subscribe(w id.WidgetID) handle.Handle {
	return e.key.Subscribe(w)
}

// IsSubscriber reports whether the widget holds a live subscription.
func (e Event[A]) IsSubscriber(w id.WidgetID) bool {
	return e.key.IsSubscriber(w)
}

// HasSubscribers reports whether any widget holds a live subscription.
func (e Event[A]) HasSubscribers() bool {
	return e.key.HasSubscribers()
}

// NewUpdate creates a dispatch envelope with the delivery list built
// from the payload's routing rule filtered by the channel subscribers.
func (e Event[A]) NewUpdate(args A) *Update {
	return e.key.NewUpdateAny(args)
}

// NewUpdateCustom creates a dispatch envelope routed through a custom
// delivery list.
func (e Event[A]) NewUpdateCustom(args A, list *delivery.List) *Update {
	return e.key.NewUpdateCustomAny(args, list)
}

// Notify schedules a dispatch of this channel.
func (e Event[A]) Notify(n Notifier, args A) {
	n.Notify(e.NewUpdate(args))
}

// OnPreEvent registers a preview-tier handler called once for every
// dispatch of this channel whose propagation is not stopped, before any
// widget sees the event. Handlers run in registration order within the
// tier.
func (e Event[A]) OnPreEvent(fn Handler[A]) handle.Handle {
	return e.onEvent(fn, true)
}

// OnEvent registers a post-tier handler called once for every dispatch
// of this channel whose propagation is not stopped, after the tree walk.
// Handlers run in registration order within the tier.
func (e Event[A]) OnEvent(fn Handler[A]) handle.Handle {
	return e.onEvent(fn, false)
}

func (e Event[A]) onEvent(fn Handler[A], preview bool) handle.Handle {
	owner, h := handle.New()
	weak := h.Downgrade()
	hh := e.key.Hook(func(u *Update) bool {
		if !owner.Retain() {
			return false
		}
		u.pushOnceAction(func(u *Update) {
			if !weak.IsAlive() {
				return
			}
			a, ok := u.args.(A)
			if !ok || a.Propagation().IsStopped() {
				return
			}
			fn(a)
		}, preview)
		return true
	})
	// The hook's own lifetime follows the returned handle.
	hh.Perm()
	return h
}
