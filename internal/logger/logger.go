package logger

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

var levels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

type implLogger struct {
	logger *log.Logger

	mu    sync.RWMutex
	level string
}

// New creates a Logger writing to stdout
func New(level string) Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter creates a Logger writing to w. The terminal UI uses it to
// keep log lines off the screen it draws on.
func NewWithWriter(w io.Writer, level string) Logger {
	return &implLogger{
		logger: log.New(w, "", log.LstdFlags),
		level:  strings.ToLower(level),
	}
}

// SetLevel changes the minimum level at runtime (config reload)
func (l *implLogger) SetLevel(level string) {
	l.mu.Lock()
	l.level = strings.ToLower(level)
	l.mu.Unlock()
}

func (l *implLogger) shouldLog(level string) bool {
	l.mu.RLock()
	configured := l.level
	l.mu.RUnlock()

	currentLevel, ok := levels[configured]
	if !ok {
		currentLevel = 1 // default to info
	}

	targetLevel, ok := levels[level]
	if !ok {
		return true
	}

	return targetLevel >= currentLevel
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("debug") {
		l.logger.Printf("[DEBUG] "+msg, args...)
	}
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("info") {
		l.logger.Printf("[INFO] "+msg, args...)
	}
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("warn") {
		l.logger.Printf("[WARN] "+msg, args...)
	}
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("error") {
		l.logger.Printf("[ERROR] "+msg, args...)
	}
}
