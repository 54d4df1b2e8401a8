package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/lingua-flow/internal/logger"
)

type implWatcher struct {
	filePath string
	handler  EventHandler
	logger   logger.Logger
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// Start blocks until ctx is done, calling the handler once per burst of
// changes to the watched file
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Config watcher started. Monitoring: %s", w.filePath)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			w.logger.Info(ctx, "Config watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !w.isWatchedFile(event.Name) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.logger.Debug(ctx, "Config event: %s", event)
			timer.Reset(w.debounce)
			pending = true

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false

			w.logger.Info(ctx, "Config changed: %s", w.filePath)
			if err := w.handler(ctx, w.filePath); err != nil {
				w.logger.Error(ctx, "Failed to reload %s: %v", w.filePath, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) isWatchedFile(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == w.filePath
}
