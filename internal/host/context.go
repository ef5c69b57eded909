package host

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/dshills/pulse/internal/config"
	"github.com/dshills/pulse/internal/event"
	"github.com/dshills/pulse/internal/id"
	"github.com/dshills/pulse/internal/update"
)

// wakeItem is one cross-thread request parked on the wake queue until
// the UI goroutine drains it.
type wakeItem struct {
	// key+args is a channel raise; the envelope is built on drain so
	// the subscriber set is read on the UI goroutine.
	key  *event.Key
	args event.Args

	// targets is a widget-targeted update request; nil key
	// distinguishes it from a raise.
	targets []id.WidgetID
	update  bool
}

// Context is one app session of the engine.
type Context struct {
	cfg config.Config
	log zerolog.Logger

	reg     *event.Registry
	events  *event.Events
	updates *update.Updates

	mu     sync.Mutex
	wakeQ  []wakeItem
	wakeCh chan struct{}
	closed atomic.Bool

	teardown []func()
}

// Option configures a Context.
type Option func(*Context)

// WithConfig sets the host tunables.
func WithConfig(cfg config.Config) Option {
	return func(c *Context) {
		cfg.Validate()
		c.cfg = cfg
	}
}

// WithLogger sets the diagnostics logger. Default is a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Context) {
		c.log = log
	}
}

// New creates an app session context.
func New(opts ...Option) *Context {
	c := &Context{
		cfg:     config.Default(),
		log:     zerolog.Nop(),
		reg:     event.NewRegistry(),
		events:  event.NewEvents(),
		updates: update.New(),
		wakeCh:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the session's event channel registry.
func (c *Context) Registry() *event.Registry {
	return c.reg
}

// Events returns the session's pending dispatch queue.
func (c *Context) Events() *event.Events {
	return c.events
}

// Updates returns the session's update scheduler.
func (c *Context) Updates() *update.Updates {
	return c.updates
}

// Log returns the session logger. The pointer keeps the level methods
// chainable on the call site.
func (c *Context) Log() *zerolog.Logger {
	return &c.log
}

// Notify schedules an envelope for the next pass. UI goroutine only;
// implements event.Notifier.
func (c *Context) Notify(u *event.Update) {
	c.events.Notify(u)
}

// SendEvent parks a channel raise on the wake queue from any goroutine.
// It never blocks; after Teardown it is a no-op and reports false.
// Implements event.Dispatcher.
func (c *Context) SendEvent(k *event.Key, args event.Args) bool {
	if c.closed.Load() || k == nil || args == nil {
		return false
	}
	c.mu.Lock()
	c.wakeQ = append(c.wakeQ, wakeItem{key: k, args: args})
	c.mu.Unlock()
	c.signal()
	return true
}

// SendUpdate requests an update pass from any goroutine, optionally
// targeted at widgets. Never blocks; no-op after Teardown. With wake
// coalescing on, a burst of untargeted requests collapses into one
// queue entry.
func (c *Context) SendUpdate(targets ...id.WidgetID) bool {
	if c.closed.Load() {
		return false
	}
	c.mu.Lock()
	if c.cfg.Wake.Coalesce && len(targets) == 0 {
		for _, it := range c.wakeQ {
			if it.update && len(it.targets) == 0 {
				c.mu.Unlock()
				c.signal()
				return true
			}
		}
	}
	c.wakeQ = append(c.wakeQ, wakeItem{update: true, targets: targets})
	c.mu.Unlock()
	c.signal()
	return true
}

// Wake pokes the host loop without scheduling any work.
func (c *Context) Wake() {
	if !c.closed.Load() {
		c.signal()
	}
}

func (c *Context) signal() {
	select {
	case c.wakeCh <- struct{}{}:
	default:
	}
}

// drainWake moves parked cross-thread requests onto the UI-side queues.
func (c *Context) drainWake() {
	c.mu.Lock()
	items := c.wakeQ
	c.wakeQ = nil
	c.mu.Unlock()

	for _, it := range items {
		switch {
		case it.key != nil:
			u := it.key.NewUpdateAny(it.args)
			c.log.Trace().Str("channel", it.key.Name()).Str("envelope", u.ID()).Msg("cross-thread raise")
			c.events.Notify(u)
		case it.update:
			if len(it.targets) == 0 {
				c.updates.UpdateExt()
			}
			for i := range it.targets {
				c.updates.Update(&it.targets[i])
			}
		}
	}
}

// TakeUpdates drains the wake queue, applies pending dispatch envelopes
// and the scheduler aggregate, and returns the consolidated result of
// this pass. Calling it again without new requests returns an empty
// aggregate.
func (c *Context) TakeUpdates() update.ContextUpdates {
	c.drainWake()

	evs := c.events.ApplyUpdates()
	upd, widgets, layout, render := c.updates.TakeUpdates()

	cu := update.ContextUpdates{
		Events:        evs,
		Update:        upd,
		UpdateWidgets: widgets,
		Layout:        layout,
		Render:        render,
	}
	if cu.HasUpdates() {
		c.log.Debug().
			Int("events", len(evs)).
			Bool("update", upd).
			Bool("layout", layout).
			Str("render", render.String()).
			Msg("pass updates")
	}
	return cu
}

// OnTeardown registers a callback invoked by Teardown, after the engine
// state is cleared.
func (c *Context) OnTeardown(fn func()) {
	c.teardown = append(c.teardown, fn)
}

// Teardown ends the app session: channel subscriptions and hooks are
// cleared, pending work is dropped, and cross-thread sends become
// no-ops. The context must not be used for dispatch afterwards.
func (c *Context) Teardown() {
	if c.closed.Swap(true) {
		return
	}
	c.mu.Lock()
	c.wakeQ = nil
	c.mu.Unlock()

	c.reg.Teardown()
	c.events.Clear()
	c.updates.TakeUpdates()

	fns := c.teardown
	c.teardown = nil
	for _, fn := range fns {
		fn()
	}
	c.log.Debug().Msg("app session teardown")
}

// IsClosed reports whether Teardown has run.
func (c *Context) IsClosed() bool {
	return c.closed.Load()
}
