package update

import (
	"github.com/dshills/pulse/internal/delivery"
	"github.com/dshills/pulse/internal/id"
)

// WidgetUpdates carries the widget-targeted update requests of one
// cycle. Unlike an event envelope there is one per cycle, not one per
// notification, and no propagation concept.
type WidgetUpdates struct {
	list *delivery.List
}

// NewWidgetUpdates creates a cycle delivery wrapper over list.
func NewWidgetUpdates(list *delivery.List) *WidgetUpdates {
	if list == nil {
		list = delivery.NewAny()
	}
	return &WidgetUpdates{list: list}
}

// DeliveryList returns the cycle's route targets.
func (w *WidgetUpdates) DeliveryList() *delivery.List {
	return w.list
}

// FulfillSearch resolves pending search targets against the supplied
// trees. Must be called before the first window visit.
func (w *WidgetUpdates) FulfillSearch(trees ...delivery.InfoTree) {
	w.list.FulfillSearch(trees...)
}

// WithWindow calls fn if the cycle targets the window, consuming the
// membership.
func (w *WidgetUpdates) WithWindow(win id.WindowID, fn func()) bool {
	if !w.list.EnterWindow(win) {
		return false
	}
	fn()
	return true
}

// WithWidget calls fn if the cycle targets the widget, consuming the
// membership.
func (w *WidgetUpdates) WithWidget(wgt id.WidgetID, fn func()) bool {
	if !w.list.EnterWidget(wgt) {
		return false
	}
	fn()
	return true
}

// Extend copies all targets from other onto w.
func (w *WidgetUpdates) Extend(other *WidgetUpdates) {
	if other != nil {
		w.list.Extend(other.list)
	}
}
