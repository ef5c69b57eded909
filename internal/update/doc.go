// Package update provides the per-cycle work scheduler of the UI
// runtime.
//
// Across one scheduling cycle, property code and extensions accumulate
// what kind of work the next pass needs: a widget-targeted or global
// update, an info tree rebuild, a layout pass, a full frame or a frame
// update. The host drains the aggregate once per pass with TakeUpdates
// and reacts to the returned ContextUpdates.
//
// Render requests join monotonically: a full frame supersedes a frame
// update, which supersedes nothing.
//
// The scheduler also carries the host-facing update handlers. Recurring
// handlers registered with OnPreUpdate/OnUpdate run once per cycle with
// a per-handler call counter; Run schedules a one-shot. Handler lists
// are processed with a take-and-append pattern so a handler that
// registers another handler mid-run neither skips it nor runs it twice.
package update
