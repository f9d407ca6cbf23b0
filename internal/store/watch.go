package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"rumo/internal/logging"
)

// Watcher reports changes to a single profile file. It watches the parent
// directory because saves replace the file by rename.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	path        string
	dir         string
	debounceDur time.Duration
	pending     time.Time
	changes     chan struct{}
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	logger      *zap.Logger
}

// NewWatcher creates a watcher for path. Start must be called to begin.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logging.Get(logging.CategoryStore)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{
		watcher:     fw,
		path:        abs,
		dir:         filepath.Dir(abs),
		debounceDur: 150 * time.Millisecond,
		changes:     make(chan struct{}, 1),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
		logger:      logger,
	}, nil
}

// SetDebounce changes the quiet period before a change is reported.
// Call before Start.
func (w *Watcher) SetDebounce(d time.Duration) { w.debounceDur = d }

// Changes delivers one value per settled burst of writes. Bursts that
// arrive while a value is still unread are coalesced.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Start begins watching. It is non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", w.dir, err)
	}
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.logger.Debug("watching profile", zap.String("path", w.path))

	// running is only set once run owns doneCh, so Stop never waits on a
	// goroutine that was not started.
	w.running = true
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit. It is safe
// to call more than once, and after the context passed to Start is done.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Debug("error closing watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := w.debounceDur / 3
	if tick < time.Millisecond {
		tick = time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.pending = time.Now()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		case now := <-ticker.C:
			if w.pending.IsZero() || now.Sub(w.pending) < w.debounceDur {
				continue
			}
			w.pending = time.Time{}
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}
