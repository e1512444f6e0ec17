package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// BindingsSink receives a freshly loaded table. *container.Bindings
// satisfies it.
type BindingsSink interface {
	Replace(table map[string]map[string]string)
}

// WatchDebounce is how long the watcher waits for writes to settle.
var WatchDebounce = 250 * time.Millisecond

// WatchBindings reloads path into sink whenever the file changes, until ctx
// is done. A file that fails to load is logged and the previous table stays
// in effect.
func WatchBindings(ctx context.Context, path string, sink BindingsSink, logger *zap.Logger) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	// Watch the directory: editors replace files rather than write them.
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	base := filepath.Base(path)

	reload := func() {
		table, err := LoadBindings(path)
		if err != nil {
			logger.Warn("bindings reload failed", zap.String("path", path), zap.Error(err))
			return
		}
		sink.Replace(table)
		logger.Info("bindings reloaded", zap.String("path", path), zap.Int("types", len(table)))
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(WatchDebounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(WatchDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			reload()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("bindings watcher error", zap.Error(err))

		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		}
	}
}
