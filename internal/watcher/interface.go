package watcher

import (
	"context"
	"time"
)

// Watcher defines the interface for config file monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is called with the watched file path after it changes
type EventHandler func(ctx context.Context, filePath string) error

// DefaultDebounce groups the burst of events an editor save produces.
const DefaultDebounce = 500 * time.Millisecond
