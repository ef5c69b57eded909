package update

import "github.com/dshills/pulse/internal/event"

// ContextUpdates is the consolidated result of one pass, produced fresh
// by the host context and consumed exactly once by the host loop.
type ContextUpdates struct {
	// Events are the dispatch envelopes raised this cycle, in raise
	// order, hooks already applied.
	Events []*event.Update

	// Update reports that widgets or app extensions need an update
	// pass.
	Update bool

	// UpdateWidgets are the cycle's widget-targeted update requests.
	UpdateWidgets *WidgetUpdates

	// Layout reports that a layout pass is needed.
	Layout bool

	// Render reports the frame work needed.
	Render RenderAction
}

// HasUpdates reports whether anything at all was requested this pass.
func (c *ContextUpdates) HasUpdates() bool {
	return len(c.Events) > 0 || c.Update || c.Layout || !c.Render.IsNone()
}

// Merge accumulates other into c.
func (c *ContextUpdates) Merge(other ContextUpdates) {
	c.Events = append(c.Events, other.Events...)
	c.Update = c.Update || other.Update
	if c.UpdateWidgets == nil {
		c.UpdateWidgets = other.UpdateWidgets
	} else if other.UpdateWidgets != nil {
		c.UpdateWidgets.Extend(other.UpdateWidgets)
	}
	c.Layout = c.Layout || other.Layout
	c.Render = c.Render.Merge(other.Render)
}
