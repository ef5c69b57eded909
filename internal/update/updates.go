package update

import (
	"github.com/dshills/pulse/internal/delivery"
	"github.com/dshills/pulse/internal/handle"
	"github.com/dshills/pulse/internal/id"
)

// Args is passed to every update handler invocation.
type Args struct {
	// Count is the number of times this handler has been called,
	// starting at 1.
	Count uint64
}

// Handler is an update handler callback.
type Handler func(args Args)

type updateHandler struct {
	owner handle.Owner
	count uint64
	fn    Handler
}

// Updates aggregates the work requested during one scheduling cycle and
// carries the host-facing update handlers. Not safe for concurrent use;
// cross-thread requests go through the host wake queue.
type Updates struct {
	update        bool
	updateWidgets *delivery.List
	layout        bool
	render        RenderAction

	window WindowUpdates

	preHandlers []*updateHandler
	posHandlers []*updateHandler
}

// New creates an idle scheduler.
func New() *Updates {
	return &Updates{updateWidgets: delivery.NewAny()}
}

// Update schedules an update pass. With a target, the widget is added to
// the cycle's delivery list through the usual two-phase search protocol;
// with nil only app extensions must update.
func (u *Updates) Update(target *id.WidgetID) {
	u.update = true
	if target != nil {
		u.updateWidgets.SearchWidget(*target)
	}
}

// UpdateExt schedules an update pass that only affects app extensions.
func (u *Updates) UpdateExt() {
	u.update = true
}

// UpdateRequested reports whether an update pass is scheduled.
func (u *Updates) UpdateRequested() bool {
	return u.update
}

// Info flags a widget tree info rebuild for the parent window.
func (u *Updates) Info() {
	u.window.Info = true
}

// Layout schedules a layout pass for the parent window.
func (u *Updates) Layout() {
	u.layout = true
	u.window.Layout = true
}

// LayoutRequested reports whether a layout pass is scheduled.
func (u *Updates) LayoutRequested() bool {
	return u.layout
}

// Render schedules a full new frame. It dominates any RenderUpdate
// request made in the same cycle, in either order.
func (u *Updates) Render() {
	u.render = u.render.Merge(RenderFull)
	u.window.Render = u.window.Render.Merge(RenderFull)
}

// RenderUpdate schedules a partial frame update. It is superseded by a
// Render request in the same cycle.
func (u *Updates) RenderUpdate() {
	u.render = u.render.Merge(RenderUpdate)
	u.window.Render = u.window.Render.Merge(RenderUpdate)
}

// RenderRequested reports whether frame work is scheduled.
func (u *Updates) RenderRequested() bool {
	return !u.render.IsNone()
}

// LayoutRender schedules layout and a full frame.
func (u *Updates) LayoutRender() {
	u.Layout()
	u.Render()
}

// InfoLayoutRender schedules an info rebuild, layout and a full frame.
func (u *Updates) InfoLayoutRender() {
	u.Info()
	u.Layout()
	u.Render()
}

// OnPreUpdate registers a recurring handler called once per cycle before
// the UI updates.
func (u *Updates) OnPreUpdate(fn Handler) handle.Handle {
	return pushHandler(&u.preHandlers, fn, false)
}

// OnUpdate registers a recurring handler called once per cycle after the
// UI updates.
func (u *Updates) OnUpdate(fn Handler) handle.Handle {
	return pushHandler(&u.posHandlers, fn, false)
}

// Run schedules fn to run once in the next cycle's post tier and forces
// an update so the cycle happens even if nothing else requested one.
func (u *Updates) Run(fn Handler) handle.Handle {
	u.update = true
	return pushHandler(&u.posHandlers, fn, true)
}

func pushHandler(entries *[]*updateHandler, fn Handler, once bool) handle.Handle {
	owner, h := handle.New()
	e := &updateHandler{owner: owner}
	if once {
		e.fn = func(args Args) {
			fn(args)
			e.owner.Unsubscribe()
		}
	} else {
		e.fn = fn
	}
	*entries = append(*entries, e)
	return h
}

// RunPreHandlers invokes the preview-tier handlers for this cycle.
func (u *Updates) RunPreHandlers() {
	u.preHandlers = runHandlers(u.preHandlers, func() *[]*updateHandler { return &u.preHandlers })
}

// RunPostHandlers invokes the post-tier handlers for this cycle.
func (u *Updates) RunPostHandlers() {
	u.posHandlers = runHandlers(u.posHandlers, func() *[]*updateHandler { return &u.posHandlers })
}

// runHandlers processes one tier with the take-and-append pattern:
// handlers registered during a run land in the live slot and are
// appended after the surviving handlers, so they run next cycle, once.
func runHandlers(handlers []*updateHandler, live func() *[]*updateHandler) []*updateHandler {
	*live() = nil
	kept := handlers[:0]
	for _, e := range handlers {
		if !e.owner.Retain() {
			continue
		}
		e.count++
		e.fn(Args{Count: e.count})
		if e.owner.Retain() {
			kept = append(kept, e)
		}
	}
	return append(kept, *live()...)
}

// EnterWindowScope resets the per-window accumulation before a window's
// subtree runs. Returns the previous accumulation.
func (u *Updates) EnterWindowScope() WindowUpdates {
	prev := u.window
	u.window = WindowUpdates{}
	return prev
}

// ExitWindowScope returns the window's accumulated requests and restores
// the outer scope.
func (u *Updates) ExitWindowScope(prev WindowUpdates) WindowUpdates {
	got := u.window
	u.window = prev
	return got
}

// EnterWidgetScope isolates the accumulation while one widget's methods
// run. Returns the previous accumulation, to be passed to
// ExitWidgetScope.
func (u *Updates) EnterWidgetScope() WindowUpdates {
	prev := u.window
	u.window = WindowUpdates{}
	return prev
}

// ExitWidgetScope merges the widget's requests back into the outer
// scope and returns what the widget itself requested.
func (u *Updates) ExitWidgetScope(prev WindowUpdates) WindowUpdates {
	got := u.window
	u.window = prev.Merge(got)
	return got
}

// TakeUpdates atomically drains and returns the cycle aggregate:
// update flag, widget update targets, layout flag and render action.
// A second call in the same cycle returns an empty aggregate.
func (u *Updates) TakeUpdates() (bool, *WidgetUpdates, bool, RenderAction) {
	upd := u.update
	u.update = false
	widgets := &WidgetUpdates{list: u.updateWidgets}
	u.updateWidgets = delivery.NewAny()
	layout := u.layout
	u.layout = false
	render := u.render
	u.render = RenderNone
	return upd, widgets, layout, render
}
