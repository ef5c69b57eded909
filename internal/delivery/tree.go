package delivery

import "github.com/dshills/pulse/internal/id"

// InfoTree is the read-only query surface of one window's widget tree.
// The tree module implements it; this package only consumes it during
// FulfillSearch.
type InfoTree interface {
	// WindowID identifies the window this tree belongs to.
	WindowID() id.WindowID

	// Find locates a widget in the tree.
	Find(w id.WidgetID) (WidgetInfo, bool)
}

// WidgetInfo is one widget's position in an InfoTree.
type WidgetInfo interface {
	// ID returns the widget identity.
	ID() id.WidgetID

	// Tree returns the owning tree.
	Tree() InfoTree

	// SelfAndAncestors returns the widget followed by its ancestors up
	// to the root.
	SelfAndAncestors() []WidgetInfo
}

// Path is a resolved widget path, root first, target last.
type Path struct {
	Window  id.WindowID
	Widgets []id.WidgetID
}
