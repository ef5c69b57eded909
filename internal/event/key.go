package event

import (
	"github.com/dshills/pulse/internal/delivery"
	"github.com/dshills/pulse/internal/handle"
	"github.com/dshills/pulse/internal/id"
)

// Hook is a callback invoked once per dispatch of a channel, just before
// the envelope begins notifying. Returning false removes the hook; a
// hook is also removed when no strong handle to it survives and it was
// not marked permanent.
type Hook func(u *Update) bool

// Key is the erased identity and state of one event channel: the named
// subscriber store and the ordered hook list. Keys are created lazily by
// a Registry and live for the registry's app session; identity is
// pointer equality.
type Key struct {
	name string
	reg  *Registry

	subs   map[id.WidgetID]subEntry
	hooks  []*hookEntry
	inited bool
}

type subEntry struct {
	owner handle.Owner
	h     handle.Handle
}

type hookEntry struct {
	owner handle.Owner
	fn    Hook
}

func newKey(reg *Registry, name string) *Key {
	return &Key{
		name: name,
		reg:  reg,
		subs: make(map[id.WidgetID]subEntry),
	}
}

// Name returns the channel's diagnostic name.
func (k *Key) Name() string {
	return k.name
}

// initApp registers the channel for teardown the first time it is
// touched, so subscriptions do not leak across app sessions.
func (k *Key) initApp() {
	if k.inited {
		return
	}
	k.inited = true
	k.reg.onTeardown(func() {
		clear(k.subs)
		k.hooks = nil
		k.inited = false
	})
}

// Subscribe registers the widget to receive targeted dispatches of this
// channel. Subscribing an already-subscribed widget returns a new strong
// handle to the existing registration.
func (k *Key) Subscribe(w id.WidgetID) handle.Handle {
	k.initApp()
	if e, ok := k.subs[w]; ok && e.owner.Retain() {
		return e.h.Clone()
	}
	// The stored handle is a non-owning reference for cloning; the
	// caller gets the single strong reference.
	owner, h := handle.New()
	k.subs[w] = subEntry{owner: owner, h: h}
	return h
}

// IsSubscriber reports whether the widget holds a live subscription.
// Dead registrations found on the way are pruned.
func (k *Key) IsSubscriber(w id.WidgetID) bool {
	e, ok := k.subs[w]
	if !ok {
		return false
	}
	if !e.owner.Retain() {
		delete(k.subs, w)
		return false
	}
	return true
}

// HasSubscribers reports whether at least one widget holds a live
// subscription.
func (k *Key) HasSubscribers() bool {
	for w := range k.subs {
		if k.IsSubscriber(w) {
			return true
		}
	}
	return false
}

// Contains implements delivery.Subscribers. It never mutates the
// subscriber store; dead entries are swept once per dispatch instead.
func (k *Key) Contains(w id.WidgetID) bool {
	e, ok := k.subs[w]
	return ok && e.owner.Retain()
}

// ToSet implements delivery.Subscribers.
func (k *Key) ToSet() map[id.WidgetID]struct{} {
	out := make(map[id.WidgetID]struct{}, len(k.subs))
	for w, e := range k.subs {
		if e.owner.Retain() {
			out[w] = struct{}{}
		}
	}
	return out
}

// prune drops registrations whose handles all died, once per dispatch.
func (k *Key) prune() {
	for w, e := range k.subs {
		if !e.owner.Retain() {
			delete(k.subs, w)
		}
	}
}

// Hook registers a callback invoked once per dispatch of this channel,
// after all previously registered hooks.
func (k *Key) Hook(fn Hook) handle.Handle {
	k.initApp()
	owner, h := handle.New()
	k.hooks = append(k.hooks, &hookEntry{owner: owner, fn: fn})
	return h
}

// applyHooks runs the hook list against one envelope, pruning hooks that
// died or asked to be removed. Hooks registered while a hook runs are
// appended after the current list and are not invoked for this envelope.
func (k *Key) applyHooks(u *Update) {
	hooks := k.hooks
	k.hooks = nil
	kept := hooks[:0]
	for _, h := range hooks {
		if h.owner.Retain() && h.fn(u) {
			kept = append(kept, h)
		}
	}
	k.hooks = append(kept, k.hooks...)
}

// NewUpdateAny creates a dispatch envelope for an erased payload, with
// the delivery list built from the payload's routing rule filtered by
// this channel's subscribers.
func (k *Key) NewUpdateAny(args Args) *Update {
	k.prune()
	list := delivery.New(k)
	args.DeliveryList(list)
	return newUpdate(k, args, list)
}

// NewUpdateCustomAny creates a dispatch envelope with a caller-supplied
// delivery list. The payload's routing rule is still applied to it.
func (k *Key) NewUpdateCustomAny(args Args, list *delivery.List) *Update {
	k.prune()
	args.DeliveryList(list)
	return newUpdate(k, args, list)
}
