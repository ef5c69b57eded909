package event

// Events is the per-app pending dispatch queue. Producers schedule
// envelopes with Notify; the host drains them once per pass with
// ApplyUpdates, in raise order.
type Events struct {
	pending []*Update
}

// NewEvents creates an empty pending queue.
func NewEvents() *Events {
	return &Events{}
}

// Notify schedules an envelope for the next pass.
func (e *Events) Notify(u *Update) {
	if u != nil {
		e.pending = append(e.pending, u)
	}
}

// HasPending reports whether envelopes await the next pass.
func (e *Events) HasPending() bool {
	return len(e.pending) > 0
}

// ApplyUpdates drains the queue, running each envelope's channel hooks
// once, and returns the envelopes ready for delivery. Envelopes
// scheduled by a hook go to the next pass.
func (e *Events) ApplyUpdates() []*Update {
	updates := e.pending
	e.pending = nil
	for _, u := range updates {
		u.key.applyHooks(u)
	}
	return updates
}

// Clear drops all pending envelopes without running hooks.
func (e *Events) Clear() {
	e.pending = nil
}
