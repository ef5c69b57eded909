package event

import "sync"

// Registry owns the event channels of one app session. Channels are
// created lazily by name and never destroyed; Teardown clears their
// subscriber stores and hook lists so a following session starts clean.
//
// Key creation is guarded by a first-access latch so facades may be
// built before the UI goroutine starts; all other channel state is
// single-threaded.
type Registry struct {
	mu       sync.Mutex
	keys     map[string]*Key
	teardown []func()
}

// NewRegistry creates an empty channel registry.
func NewRegistry() *Registry {
	return &Registry{keys: make(map[string]*Key)}
}

// Key returns the channel with the given name, creating it on first use.
// The same name always returns the same key.
func (r *Registry) Key(name string) *Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	if k, ok := r.keys[name]; ok {
		return k
	}
	k := newKey(r, name)
	r.keys[name] = k
	return k
}

func (r *Registry) onTeardown(fn func()) {
	r.teardown = append(r.teardown, fn)
}

// Teardown clears every touched channel's subscriptions and hooks. Keys
// keep their identity, so facades held across sessions remain valid.
func (r *Registry) Teardown() {
	fns := r.teardown
	r.teardown = nil
	for _, fn := range fns {
		fn()
	}
}
