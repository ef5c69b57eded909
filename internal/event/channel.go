package event

import "github.com/dshills/pulse/internal/handle"

// Dispatcher posts a channel raise to the UI goroutine from any
// goroutine. Implementations must never block the caller; after app
// teardown sends become no-ops and report false. The host context is
// the canonical implementation.
type Dispatcher interface {
	SendEvent(k *Key, args Args) bool
}

// Sender raises a channel from outside the UI goroutine. The envelope
// is built on the UI goroutine when the raise is drained, so the
// subscriber set is read safely.
type Sender[A Args] struct {
	key *Key
	d   Dispatcher
}

// Sender creates a cross-thread raise handle for this channel.
func (e Event[A]) Sender(d Dispatcher) Sender[A] {
	return Sender[A]{key: e.key, d: d}
}

// Send hands the payload to the UI goroutine. It never blocks; it
// reports false when the receiving end is gone, a best-effort contract.
func (s Sender[A]) Send(args A) bool {
	if s.d == nil {
		return false
	}
	return s.d.SendEvent(s.key, args)
}

// Receiver listens to a channel's dispatches from another goroutine.
// Payloads are delivered best-effort on C as each dispatch's hooks run;
// if the buffer is full the payload is dropped. Call Stop when done.
type Receiver[A Args] struct {
	// C receives the payload of every dispatch of the channel.
	C <-chan A

	h handle.Handle
}

// Receiver creates a cross-thread listener with the given buffer size.
func (e Event[A]) Receiver(buf int) *Receiver[A] {
	if buf <= 0 {
		buf = 16
	}
	ch := make(chan A, buf)
	h := e.key.Hook(func(u *Update) bool {
		if a, ok := u.args.(A); ok {
			select {
			case ch <- a:
			default:
			}
		}
		return true
	})
	return &Receiver[A]{C: ch, h: h}
}

// Stop unsubscribes the listener. C is not closed; pending values may
// still be read.
func (r *Receiver[A]) Stop() {
	r.h.Unsubscribe()
}
