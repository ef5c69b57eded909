package update

// RenderAction is the tri-state render request of a cycle or window.
type RenderAction int

const (
	// RenderNone means no frame work was requested.
	RenderNone RenderAction = iota

	// RenderUpdate means a partial frame update was requested.
	RenderUpdate

	// RenderFull means a full new frame was requested. It supersedes
	// RenderUpdate.
	RenderFull
)

// String returns the render action name.
func (r RenderAction) String() string {
	switch r {
	case RenderNone:
		return "none"
	case RenderUpdate:
		return "render-update"
	case RenderFull:
		return "render"
	default:
		return "unknown"
	}
}

// Merge joins two requests: full frame beats frame update beats none.
func (r RenderAction) Merge(other RenderAction) RenderAction {
	if other > r {
		return other
	}
	return r
}

// IsNone reports whether no frame work was requested.
func (r RenderAction) IsNone() bool { return r == RenderNone }

// WindowUpdates is the info/layout/render work requested by the content
// of one window, observed by the tree walk through the widget-scope
// helpers so a window only reacts to requests made by its own subtree.
type WindowUpdates struct {
	// Info requests a widget tree info rebuild.
	Info bool

	// Layout requests a layout pass.
	Layout bool

	// Render requests frame work.
	Render RenderAction
}

// Merge accumulates other into w.
func (w WindowUpdates) Merge(other WindowUpdates) WindowUpdates {
	return WindowUpdates{
		Info:   w.Info || other.Info,
		Layout: w.Layout || other.Layout,
		Render: w.Render.Merge(other.Render),
	}
}

// IsNone reports whether no window work was requested.
func (w WindowUpdates) IsNone() bool {
	return !w.Info && !w.Layout && w.Render.IsNone()
}
