package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/lingua-flow/internal/logger"
)

// New creates a Watcher for a single file. The parent directory is watched
// so that editors replacing the file (rename + create) are seen too.
func New(filePath string, handler EventHandler, log logger.Logger, debounce time.Duration) (Watcher, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &implWatcher{
		filePath: absPath,
		handler:  handler,
		logger:   log,
		watcher:  watcher,
		debounce: debounce,
	}, nil
}
