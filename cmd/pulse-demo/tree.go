package main

import (
	"github.com/dshills/pulse/internal/delivery"
	"github.com/dshills/pulse/internal/id"
)

// demoTree is a static single-window widget tree for the demo. It
// implements delivery.InfoTree so dispatch envelopes can resolve
// searched widgets against it.
type demoTree struct {
	window  id.WindowID
	parents map[id.WidgetID]id.WidgetID
	root    id.WidgetID
}

// newDemoTree builds a three-level tree: root, panel, button.
func newDemoTree(window id.WindowID, root, panel, button id.WidgetID) *demoTree {
	return &demoTree{
		window: window,
		root:   root,
		parents: map[id.WidgetID]id.WidgetID{
			panel:  root,
			button: panel,
		},
	}
}

func (t *demoTree) WindowID() id.WindowID {
	return t.window
}

func (t *demoTree) Find(w id.WidgetID) (delivery.WidgetInfo, bool) {
	if w != t.root {
		if _, ok := t.parents[w]; !ok {
			return nil, false
		}
	}
	return &demoWidget{tree: t, id: w}, true
}

type demoWidget struct {
	tree *demoTree
	id   id.WidgetID
}

func (w *demoWidget) ID() id.WidgetID         { return w.id }
func (w *demoWidget) Tree() delivery.InfoTree { return w.tree }

func (w *demoWidget) SelfAndAncestors() []delivery.WidgetInfo {
	out := []delivery.WidgetInfo{w}
	cur := w.id
	for cur != w.tree.root {
		parent, ok := w.tree.parents[cur]
		if !ok {
			break
		}
		out = append(out, &demoWidget{tree: w.tree, id: parent})
		cur = parent
	}
	return out
}
