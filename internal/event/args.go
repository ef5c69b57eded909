package event

import (
	"sync/atomic"
	"time"

	"github.com/dshills/pulse/internal/delivery"
)

// Args is the capability every event payload implements: it timestamps
// itself, carries the shared propagation flag, and declares its own
// routing rule.
type Args interface {
	// Timestamp is the instant the event happened.
	Timestamp() time.Time

	// Propagation returns the shared propagation flag for this payload.
	Propagation() *Propagation

	// DeliveryList inserts the payload's route targets into list. The
	// list filters through the channel's subscriber set.
	DeliveryList(list *delivery.List)
}

// Propagation is a per-dispatch stop flag shared by all clones of one
// payload. Stopping it truncates the remaining delivery of that dispatch
// only.
type Propagation struct {
	stopped atomic.Bool
}

// Stop requests that the remaining handlers and targets of this dispatch
// be skipped.
func (p *Propagation) Stop() {
	p.stopped.Store(true)
}

// IsStopped reports whether propagation was stopped.
func (p *Propagation) IsStopped() bool {
	return p.stopped.Load()
}

// ArgsBase carries the timestamp and propagation flag; concrete payload
// types embed it and implement DeliveryList themselves.
type ArgsBase struct {
	ts   time.Time
	prop *Propagation
}

// NewArgsBase creates a base stamped with the current time.
func NewArgsBase() ArgsBase {
	return ArgsBase{ts: time.Now(), prop: &Propagation{}}
}

// NewArgsBaseAt creates a base stamped with ts.
func NewArgsBaseAt(ts time.Time) ArgsBase {
	return ArgsBase{ts: ts, prop: &Propagation{}}
}

// Timestamp implements Args.
func (b *ArgsBase) Timestamp() time.Time {
	return b.ts
}

// Propagation implements Args.
func (b *ArgsBase) Propagation() *Propagation {
	if b.prop == nil {
		b.prop = &Propagation{}
	}
	return b.prop
}
