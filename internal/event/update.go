package event

import (
	"github.com/google/uuid"

	"github.com/dshills/pulse/internal/delivery"
	"github.com/dshills/pulse/internal/id"
)

// Action is a deferred one-shot handler invocation queued on an
// envelope, run exactly once at preview or post time.
type Action func(u *Update)

// Update is one in-flight dispatch envelope: the erased channel
// identity, the payload, its own delivery list, and the two deferred
// action tiers.
type Update struct {
	key  *Key
	uid  string
	args Args
	list *delivery.List

	preActions []Action
	posActions []Action
}

func newUpdate(k *Key, args Args, list *delivery.List) *Update {
	return &Update{
		key:  k,
		uid:  uuid.NewString(),
		args: args,
		list: list,
	}
}

// Key returns the erased channel identity of this dispatch.
func (u *Update) Key() *Key {
	return u.key
}

// ID returns the unique envelope instance id, used for tracing.
func (u *Update) ID() string {
	return u.uid
}

// Name returns the channel's diagnostic name.
func (u *Update) Name() string {
	return u.key.Name()
}

// Args returns the erased payload.
func (u *Update) Args() Args {
	return u.args
}

// DeliveryList returns the envelope's route targets.
func (u *Update) DeliveryList() *delivery.List {
	return u.list
}

// FulfillSearch resolves pending search targets against the supplied
// trees. Must be called before the first window visit.
func (u *Update) FulfillSearch(trees ...delivery.InfoTree) {
	u.list.FulfillSearch(trees...)
}

// WithWindow calls fn if the dispatch targets the window. The window is
// consumed from the delivery list.
func (u *Update) WithWindow(w id.WindowID, fn func()) bool {
	if !u.list.EnterWindow(w) {
		return false
	}
	fn()
	return true
}

// WithWidget calls fn if the dispatch targets the widget and propagation
// is not stopped. When propagation stops, before or during fn, the
// remaining actions and targets of this envelope are discarded; other
// envelopes are unaffected.
func (u *Update) WithWidget(w id.WidgetID, fn func()) bool {
	if !u.list.EnterWidget(w) {
		return false
	}
	stopped := u.args.Propagation().IsStopped()
	if !stopped {
		fn()
	}
	if stopped || u.args.Propagation().IsStopped() {
		u.preActions = nil
		u.posActions = nil
		u.list.Clear()
	}
	return !stopped
}

// PushPreAction queues a one-shot action for the preview tier.
func (u *Update) PushPreAction(a Action) {
	u.preActions = append(u.preActions, a)
}

// PushPostAction queues a one-shot action for the post tier.
func (u *Update) PushPostAction(a Action) {
	u.posActions = append(u.posActions, a)
}

func (u *Update) pushOnceAction(a Action, preview bool) {
	if preview {
		u.preActions = append(u.preActions, a)
	} else {
		u.posActions = append(u.posActions, a)
	}
}

// CallPreActions runs and clears the preview tier. The host calls this
// once per envelope before the tree walk.
func (u *Update) CallPreActions() {
	actions := u.preActions
	u.preActions = nil
	for _, a := range actions {
		a(u)
	}
}

// CallPosActions runs and clears the post tier. The host calls this once
// per envelope after the tree walk.
func (u *Update) CallPosActions() {
	actions := u.posActions
	u.posActions = nil
	for _, a := range actions {
		a(u)
	}
}
