package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
)

// WatchFunc receives the value read after a change, or the error the read produced.
type WatchFunc func(v any, err error)

// Watch calls fn with a fresh Read of path every time the file changes, until ctx is done.
// The parent directory is watched so that atomic replacements (rename over the file) are
// seen too. Bursts of events are coalesced.
func (a *Accessor) Watch(ctx context.Context, path string, fn WatchFunc) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := checkExists(path); err != nil {
		return err
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	w := &fileWatcher{
		accessor: a,
		path:     path,
		target:   target,
		watcher:  watcher,
		fn:       fn,
		debounce: a.config.WatchDebounce,
	}

	a.watchers.Add(1)
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		a.logger.Error("watcher failed", "path", path, "error", err)
	}))
	return nil
}

type fileWatcher struct {
	accessor *Accessor
	path     string
	target   string
	watcher  *fsnotify.Watcher
	fn       WatchFunc
	debounce time.Duration
}

func (w *fileWatcher) run(ctx context.Context) (err error) {
	logger := w.accessor.logger
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				logger.Error("watcher panic", "error", err)
			}
		}
	}()
	defer w.accessor.watchers.Add(-1)
	defer w.watcher.Close()

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("event received", "name", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.AfterFunc(w.debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(w.debounce)
			}

		case <-fire:
			v, readErr := w.accessor.Read(w.path)
			w.fn(v, readErr)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("fsnotify error", "error", wErr)
		}
	}
}

// relevant keeps writes and creations of the watched file; removals are skipped because
// an atomic replace is reported as a create once the new file is in place.
func (w *fileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
