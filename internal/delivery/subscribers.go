package delivery

import "github.com/dshills/pulse/internal/id"

// Subscribers is the membership capability a List filters inserts
// through. An event channel's live subscriber set is the typical
// implementation.
type Subscribers interface {
	// Contains reports whether the widget subscribes to the source.
	Contains(w id.WidgetID) bool

	// ToSet returns all current subscribers.
	ToSet() map[id.WidgetID]struct{}
}

type noneSubscribers struct{}

func (noneSubscribers) Contains(id.WidgetID) bool       { return false }
func (noneSubscribers) ToSet() map[id.WidgetID]struct{} { return nil }

type anySubscribers struct{}

func (anySubscribers) Contains(id.WidgetID) bool       { return true }
func (anySubscribers) ToSet() map[id.WidgetID]struct{} { return nil }

// None returns a capability that admits no widget. A list built on it can
// target nothing.
func None() Subscribers { return noneSubscribers{} }

// Any returns a capability that admits every widget. Used for unfiltered
// dispatches such as update requests, which have no subscription phase.
func Any() Subscribers { return anySubscribers{} }

// Set is a fixed set-backed Subscribers implementation.
type Set map[id.WidgetID]struct{}

// Contains reports set membership.
func (s Set) Contains(w id.WidgetID) bool {
	_, ok := s[w]
	return ok
}

// ToSet returns a copy of the set.
func (s Set) ToSet() map[id.WidgetID]struct{} {
	out := make(map[id.WidgetID]struct{}, len(s))
	for w := range s {
		out[w] = struct{}{}
	}
	return out
}
