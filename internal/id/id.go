// Package id provides unique identities for widgets and windows.
//
// Identities are process-wide unique sequence numbers. An identity can
// optionally carry a human-readable name; looking up the same name always
// yields the same identity, so names can be used as stable references
// across sessions of the same process.
package id

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// WidgetID uniquely identifies a widget instance.
type WidgetID uint64

// WindowID uniquely identifies a window.
type WindowID uint64

var (
	widgetSeq atomic.Uint64
	windowSeq atomic.Uint64

	namesMu     sync.Mutex
	widgetNames map[string]WidgetID
	windowNames map[string]WindowID
	widgetLabel map[WidgetID]string
	windowLabel map[WindowID]string
)

// NewWidgetID allocates a new anonymous widget identity.
func NewWidgetID() WidgetID {
	return WidgetID(widgetSeq.Add(1))
}

// NewWindowID allocates a new anonymous window identity.
func NewWindowID() WindowID {
	return WindowID(windowSeq.Add(1))
}

// NamedWidgetID returns the widget identity for name, allocating it on
// first use. The same name always maps to the same identity.
func NamedWidgetID(name string) WidgetID {
	namesMu.Lock()
	defer namesMu.Unlock()
	if widgetNames == nil {
		widgetNames = make(map[string]WidgetID)
		widgetLabel = make(map[WidgetID]string)
	}
	if w, ok := widgetNames[name]; ok {
		return w
	}
	w := WidgetID(widgetSeq.Add(1))
	widgetNames[name] = w
	widgetLabel[w] = name
	return w
}

// NamedWindowID returns the window identity for name, allocating it on
// first use.
func NamedWindowID(name string) WindowID {
	namesMu.Lock()
	defer namesMu.Unlock()
	if windowNames == nil {
		windowNames = make(map[string]WindowID)
		windowLabel = make(map[WindowID]string)
	}
	if w, ok := windowNames[name]; ok {
		return w
	}
	w := WindowID(windowSeq.Add(1))
	windowNames[name] = w
	windowLabel[w] = name
	return w
}

// String returns the widget name if one was assigned, "wgt-<n>" otherwise.
func (w WidgetID) String() string {
	namesMu.Lock()
	name, ok := widgetLabel[w]
	namesMu.Unlock()
	if ok {
		return name
	}
	return fmt.Sprintf("wgt-%d", uint64(w))
}

// String returns the window name if one was assigned, "win-<n>" otherwise.
func (w WindowID) String() string {
	namesMu.Lock()
	name, ok := windowLabel[w]
	namesMu.Unlock()
	if ok {
		return name
	}
	return fmt.Sprintf("win-%d", uint64(w))
}
