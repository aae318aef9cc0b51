package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/oshokin/snake-game/internal/logger"
)

// DefaultDebounce collapses the several events an editor produces per save.
const DefaultDebounce = 250 * time.Millisecond

// Watcher calls OnChange after the file settles.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(ctx context.Context)
	notify   *fsnotify.Watcher
}

// New starts listening for changes of path. The parent directory is watched
// because editors often replace the file instead of writing it in place.
func New(path string, debounce time.Duration, onChange func(ctx context.Context)) (*Watcher, error) {
	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	path = filepath.Clean(path)

	if err = notify.Add(filepath.Dir(path)); err != nil {
		_ = notify.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		path:     path,
		debounce: debounce,
		onChange: onChange,
		notify:   notify,
	}, nil
}

// Run delivers notifications until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "watcher")

	defer func() {
		if err := w.notify.Close(); err != nil {
			logger.WarnKV(ctx, "Failed to close file watcher", "error", err)
		}
	}()

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.notify.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != w.path ||
				!event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}

			logger.DebugKV(ctx, "File event", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-w.notify.Errors:
			if !ok {
				return nil
			}

			logger.WarnKV(ctx, "File watcher error", "error", err)
		case <-timer.C:
			w.onChange(ctx)
		}
	}
}
