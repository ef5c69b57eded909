// Package event provides named, typed event channels for the UI runtime.
//
// A channel is one kind of event ("key-press", "window-resize") with its
// own widget subscriber set and hook list. Channels are owned by a
// Registry so independent app sessions in one process never share state;
// the typed facade Event[A] is a zero-cost copyable view over the erased
// channel Key and compares equal to any facade backed by the same key.
//
// # Dispatch
//
// Raising a channel produces an Update envelope: the erased channel
// identity, the payload, a delivery list built from the payload's own
// routing rule filtered through the subscriber set, and two ordered
// queues of one-shot deferred actions. The host applies pending
// envelopes once per pass; each channel's hooks run once per envelope in
// registration order and typically enqueue handler invocations into the
// preview or post tier. The tree walk then consumes the delivery list
// through WithWindow/WithWidget.
//
// Stopping propagation on the payload truncates the remaining actions
// and targets of that envelope only; queued dispatches of other channels
// (or later dispatches of the same channel) are unaffected.
//
// # Threading
//
// Everything here is single-threaded on the UI goroutine except Sender
// and Receiver, the two cross-thread escape hatches. A Sender hands
// payloads to the UI goroutine through the host's wake queue and never
// blocks; a Receiver clones payloads out to a background goroutine
// best-effort.
package event
