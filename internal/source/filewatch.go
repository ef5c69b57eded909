// Package source provides external event producers that raise engine
// channels from outside the UI goroutine, demonstrating the
// cross-thread sender contract.
package source

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/pulse/internal/delivery"
	"github.com/dshills/pulse/internal/event"
)

// ErrWatchClosed is returned when Watch is called after Close.
var ErrWatchClosed = errors.New("file watch is closed")

// FileOp is the kind of file change observed.
type FileOp int

const (
	// FileWrite indicates the file was modified.
	FileWrite FileOp = iota

	// FileCreate indicates the file was created.
	FileCreate

	// FileRemove indicates the file was removed or renamed away.
	FileRemove
)

// String returns the operation name.
func (op FileOp) String() string {
	switch op {
	case FileWrite:
		return "write"
	case FileCreate:
		return "create"
	case FileRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// FileChangedArgs is the payload of a file-change dispatch. File changes
// are not widget-targeted; the dispatch broadcasts to every subscriber
// of the channel.
type FileChangedArgs struct {
	event.ArgsBase

	// Path is the absolute path of the changed file.
	Path string

	// Op is the observed operation.
	Op FileOp
}

// NewFileChangedArgs creates a payload stamped with the current time.
func NewFileChangedArgs(path string, op FileOp) *FileChangedArgs {
	return &FileChangedArgs{ArgsBase: event.NewArgsBase(), Path: path, Op: op}
}

// DeliveryList implements event.Args.
func (a *FileChangedArgs) DeliveryList(list *delivery.List) {
	list.SearchAll()
}

// FileWatch raises a channel from a watcher goroutine whenever a
// watched file changes, debouncing rapid write bursts into a single
// dispatch. Sends after app teardown are dropped best-effort.
type FileWatch struct {
	sender  event.Sender[*FileChangedArgs]
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]FileOp
	closed  bool

	debounce time.Duration
	closeCh  chan struct{}
	wg       sync.WaitGroup
}

// Option configures a FileWatch.
type Option func(*FileWatch)

// WithDebounce sets the quiet period that coalesces rapid changes.
// Default is 50ms.
func WithDebounce(d time.Duration) Option {
	return func(w *FileWatch) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// NewFileWatch creates a watcher that raises ev through d for every
// observed change.
func NewFileWatch(ev event.Event[*FileChangedArgs], d event.Dispatcher, opts ...Option) (*FileWatch, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &FileWatch{
		sender:   ev.Sender(d),
		watcher:  fsw,
		pending:  make(map[string]FileOp),
		debounce: 50 * time.Millisecond,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Watch adds a file or directory to the watch set.
func (w *FileWatch) Watch(path string) error {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return ErrWatchClosed
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return w.watcher.Add(abs)
}

// Close stops the watcher goroutine. Pending debounced changes are
// dropped.
func (w *FileWatch) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.closeCh)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *FileWatch) run() {
	defer w.wg.Done()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	arm := func() {
		if timer == nil {
			timer = time.NewTimer(w.debounce)
			fire = timer.C
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(w.debounce)
	}

	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			op, relevant := mapOp(ev.Op)
			if !relevant {
				continue
			}
			w.mu.Lock()
			w.pending[ev.Name] = op
			w.mu.Unlock()
			arm()
		case <-w.watcher.Errors:
			// Watch errors are not deliverable as engine failures;
			// the contract is best-effort.
		case <-fire:
			w.flush()
		}
	}
}

// flush raises one dispatch per debounced path.
func (w *FileWatch) flush() {
	w.mu.Lock()
	pending := w.pending
	w.pending = make(map[string]FileOp)
	w.mu.Unlock()

	for path, op := range pending {
		w.sender.Send(NewFileChangedArgs(path, op))
	}
}

func mapOp(op fsnotify.Op) (FileOp, bool) {
	switch {
	case op.Has(fsnotify.Write):
		return FileWrite, true
	case op.Has(fsnotify.Create):
		return FileCreate, true
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return FileRemove, true
	default:
		return 0, false
	}
}
