package delivery

import "github.com/dshills/pulse/internal/id"

// List is the mutable set of windows and widgets on route to a dispatch
// or update target. It is not safe for concurrent use; all mutation
// happens on the UI goroutine.
type List struct {
	subscribers Subscribers

	windows map[id.WindowID]struct{}
	widgets map[id.WidgetID]struct{}
	search  map[id.WidgetID]struct{}
}

// New creates a list that only admits widgets in subscribers.
func New(subscribers Subscribers) *List {
	return &List{
		subscribers: subscribers,
		windows:     make(map[id.WindowID]struct{}),
		widgets:     make(map[id.WidgetID]struct{}),
		search:      make(map[id.WidgetID]struct{}),
	}
}

// NewNone creates a list that admits no widget.
func NewNone() *List { return New(None()) }

// NewAny creates a list that admits every widget.
func NewAny() *List { return New(Any()) }

// InsertPath adds the subscribed widgets on a resolved path, walking from
// the target up to the root. The window is added when at least one widget
// on the path subscribes; if none does, nothing is inserted.
func (l *List) InsertPath(p Path) {
	any := false
	for i := len(p.Widgets) - 1; i >= 0; i-- {
		if l.subscribers.Contains(p.Widgets[i]) {
			l.widgets[p.Widgets[i]] = struct{}{}
			any = true
		}
	}
	if any {
		l.windows[p.Window] = struct{}{}
	}
}

// InsertWidget adds the subscribed widgets among wgt and its ancestors.
// The window is added when at least one of them subscribes.
func (l *List) InsertWidget(wgt WidgetInfo) {
	any := false
	for _, w := range wgt.SelfAndAncestors() {
		if l.subscribers.Contains(w.ID()) {
			l.widgets[w.ID()] = struct{}{}
			any = true
		}
	}
	if any {
		l.windows[wgt.Tree().WindowID()] = struct{}{}
	}
}

// SearchWidget registers a widget of unknown tree position for later
// resolution. Widgets outside the subscriber set are ignored.
func (l *List) SearchWidget(w id.WidgetID) {
	if l.subscribers.Contains(w) {
		l.search[w] = struct{}{}
	}
}

// SearchAll registers the entire current subscriber set for resolution.
func (l *List) SearchAll() {
	for w := range l.subscribers.ToSet() {
		l.search[w] = struct{}{}
	}
}

// HasPendingSearch reports whether FulfillSearch must run before the
// first window visit.
func (l *List) HasPendingSearch() bool {
	return len(l.search) > 0
}

// FulfillSearch resolves every pending search entry against the supplied
// trees, promoting found widgets and their subscribed ancestors into the
// delivery set. All search entries are cleared, found or not; a widget
// missing from every tree gets no delivery and no error.
func (l *List) FulfillSearch(trees ...InfoTree) {
	for _, tree := range trees {
		for w := range l.search {
			info, ok := tree.Find(w)
			if !ok {
				continue
			}
			l.widgets[w] = struct{}{}
			for _, a := range info.SelfAndAncestors()[1:] {
				if l.subscribers.Contains(a.ID()) {
					l.widgets[a.ID()] = struct{}{}
				}
			}
			l.windows[tree.WindowID()] = struct{}{}
			delete(l.search, w)
		}
	}
	clear(l.search)
}

// EnterWindow reports whether the window is a route target, removing it
// so a second visit in the same pass reports false.
func (l *List) EnterWindow(w id.WindowID) bool {
	if _, ok := l.windows[w]; ok {
		delete(l.windows, w)
		return true
	}
	return false
}

// EnterWidget reports whether the widget is a route target, removing it
// so a second visit in the same pass reports false.
func (l *List) EnterWidget(w id.WidgetID) bool {
	if _, ok := l.widgets[w]; ok {
		delete(l.widgets, w)
		return true
	}
	return false
}

// IsDone reports whether every widget target has been entered. Tree
// walks use this as an early-exit fast path.
func (l *List) IsDone() bool {
	return len(l.widgets) == 0
}

// Extend copies all targets from other, trusting they were admitted by a
// compatible subscriber set.
func (l *List) Extend(other *List) {
	if other == nil {
		return
	}
	for w := range other.windows {
		l.windows[w] = struct{}{}
	}
	for w := range other.widgets {
		l.widgets[w] = struct{}{}
	}
	for w := range other.search {
		l.search[w] = struct{}{}
	}
}

// Clear removes all targets and pending searches.
func (l *List) Clear() {
	clear(l.windows)
	clear(l.widgets)
	clear(l.search)
}

// Windows returns a snapshot of the window targets not yet entered.
func (l *List) Windows() []id.WindowID {
	out := make([]id.WindowID, 0, len(l.windows))
	for w := range l.windows {
		out = append(out, w)
	}
	return out
}

// Widgets returns a snapshot of the widget targets not yet entered.
func (l *List) Widgets() []id.WidgetID {
	out := make([]id.WidgetID, 0, len(l.widgets))
	for w := range l.widgets {
		out = append(out, w)
	}
	return out
}

// SearchWidgets returns a snapshot of the unresolved search entries.
func (l *List) SearchWidgets() []id.WidgetID {
	out := make([]id.WidgetID, 0, len(l.search))
	for w := range l.search {
		out = append(out, w)
	}
	return out
}
