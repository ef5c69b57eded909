// Package host provides the per-app-session context that ties the
// engine together: the event channel registry, the pending dispatch
// queue, the update scheduler, and the cross-thread wake queue.
//
// One Context is one UI session. All engine state hangs off it instead
// of process globals, so independent sessions in one process (tests
// especially) never interfere. The UI goroutine owns everything except
// the wake queue, which cross-thread senders push into without ever
// blocking.
//
// The host loop drives passes:
//
//	ctx := host.New()
//	defer ctx.Teardown()
//	ctx.Loop(func(cu update.ContextUpdates) bool {
//		// deliver cu.Events through the tree walk,
//		// run update/layout/render passes per flags
//		return true
//	})
package host
