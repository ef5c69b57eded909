package host

import (
	"time"

	"github.com/dshills/pulse/internal/update"
)

// LoopFunc is the host loop body, called once per pass with the
// consolidated updates. Return false to stop the loop.
type LoopFunc func(cu update.ContextUpdates) bool

// Loop runs the frame-paced host loop on the calling goroutine, which
// becomes the UI goroutine. Each iteration waits for a wake signal or
// the frame deadline; when work was requested it runs one pass:
// preview update handlers, the loop body with the pass aggregate, then
// post update handlers. The loop returns when fn returns false or the
// context is torn down.
func (c *Context) Loop(fn LoopFunc) {
	interval := time.Second / time.Duration(c.cfg.Frame.Rate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.wakeCh:
		case <-ticker.C:
		}
		if c.closed.Load() {
			return
		}

		c.drainWake()
		if !c.hasWork() {
			continue
		}
		if !c.RunPass(fn) {
			return
		}
	}
}

// hasWork reports whether anything was requested since the last pass.
func (c *Context) hasWork() bool {
	return c.events.HasPending() ||
		c.updates.UpdateRequested() ||
		c.updates.LayoutRequested() ||
		c.updates.RenderRequested()
}

// RunPass drives one complete pass: preview update handlers, then fn
// with the pass aggregate, then post update handlers. Headless hosts
// and tests call it directly instead of Loop.
func (c *Context) RunPass(fn LoopFunc) bool {
	c.updates.RunPreHandlers()
	cu := c.TakeUpdates()
	ok := true
	if cu.HasUpdates() {
		ok = fn(cu)
	}
	c.updates.RunPostHandlers()
	return ok
}
