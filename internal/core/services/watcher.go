package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/kpptag/internal/logger"
)

// DefaultDebounce is how long a file must be quiet before a change fires.
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc is invoked once per debounced change of a watched file.
type ChangeFunc func(ctx context.Context, path string) error

// MechanismWatcher re-runs a callback when mechanism files change.
// Directories are watched rather than files so that editors which
// replace a file on save are still observed.
type MechanismWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	files    map[string]bool
	pending  map[string]time.Time
	debounce time.Duration
	onChange ChangeFunc
}

// NewMechanismWatcher watches paths and calls onChange after each quiet period.
func NewMechanismWatcher(paths []string, debounce time.Duration, onChange ChangeFunc) (*MechanismWatcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	mw := &MechanismWatcher{
		watcher:  w,
		files:    make(map[string]bool, len(paths)),
		pending:  make(map[string]time.Time),
		debounce: debounce,
		onChange: onChange,
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		mw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		logger.Debug("watching directory: %s", dir)
	}

	return mw, nil
}

// Run blocks until ctx is cancelled or the watcher is closed.
func (mw *MechanismWatcher) Run(ctx context.Context) error {
	defer mw.watcher.Close()

	tick := time.NewTicker(mw.debounce / 5)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-mw.watcher.Events:
			if !ok {
				return nil
			}
			mw.handleEvent(event)

		case err, ok := <-mw.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case now := <-tick.C:
			for _, path := range mw.due(now) {
				if err := mw.onChange(ctx, path); err != nil {
					logger.Warnw("reload failed", "path", path, "error", err)
				}
			}
		}
	}
}

func (mw *MechanismWatcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil || !mw.files[abs] {
		return
	}
	logger.Debug("%s event for %s", event.Op, abs)

	mw.mu.Lock()
	mw.pending[abs] = time.Now()
	mw.mu.Unlock()
}

// due removes and returns the paths quiet for at least the debounce period.
func (mw *MechanismWatcher) due(now time.Time) []string {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	var out []string
	for path, last := range mw.pending {
		if now.Sub(last) >= mw.debounce {
			out = append(out, path)
			delete(mw.pending, path)
		}
	}
	return out
}
