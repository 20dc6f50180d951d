// Package fsnotify implements huaci.ConfigWatcher on top of fsnotify.
package fsnotify

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/fwojciec/huaci"
	"github.com/fwojciec/huaci/fs"
)

// DefaultDebounce is the window that coalesces a burst of file events.
const DefaultDebounce = 2 * time.Second

// Ensure Watcher implements huaci.ConfigWatcher at compile time.
var _ huaci.ConfigWatcher = (*Watcher)(nil)

// Watcher reports edits of a single configuration file.
//
// The parent directory is watched so that editors replacing the file by
// rename are still observed. The first event of a batch opens a fixed
// debounce window; when it closes, a change is reported only if the file
// still exists.
type Watcher struct {
	path string

	// Debounce is the coalescing window. Must be set before Start.
	Debounce time.Duration

	mu       sync.Mutex
	watching bool
	closed   bool
	cancel   context.CancelFunc
	done     chan struct{}

	changes chan struct{}
	errs    chan error
}

// NewWatcher creates a new Watcher for the file at path.
func NewWatcher(path string) *Watcher {
	return &Watcher{
		path:     path,
		Debounce: DefaultDebounce,
		changes:  make(chan struct{}, 1),
		errs:     make(chan error, 1),
	}
}

// Changes returns the channel signaled after the file changed.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Errors returns the channel receiving watch failures.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Start begins watching until ctx is canceled or Close is called.
// It returns false without error when the watcher was already started.
func (w *Watcher) Start(ctx context.Context) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watching || w.closed {
		return false, nil
	}

	path, err := filepath.Abs(w.path)
	if err != nil {
		return false, huaci.Errorf(huaci.EIO, "failed to resolve %s: %v", w.path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return false, huaci.Errorf(huaci.EIO, "failed to create watcher: %v", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return false, huaci.Errorf(huaci.EIO, "failed to watch %s: %v", filepath.Dir(path), err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	w.watching = true

	go w.run(ctx, fw, path)
	return true, nil
}

// Close stops the watch goroutine and waits for it to exit. A closed
// watcher cannot be started again.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	return nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, path string) {
	defer close(w.done)
	defer fw.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if fire == nil {
				timer = time.NewTimer(w.Debounce)
				fire = timer.C
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.notifyError(huaci.Errorf(huaci.EIO, "watch error: %v", err))

		case <-fire:
			timer, fire = nil, nil
			exists, err := fs.Exists(path)
			if err != nil {
				w.notifyError(huaci.Errorf(huaci.EIO, "failed to detect if %s exists: %v", path, err))
				continue
			}
			// Deleted files are not reported.
			if exists {
				w.notifyChange()
			}
		}
	}
}

func (w *Watcher) notifyChange() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

func (w *Watcher) notifyError(err error) {
	select {
	case w.errs <- err:
	default:
	}
}
