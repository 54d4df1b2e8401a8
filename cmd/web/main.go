package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/lingua-flow/internal/app"
	"github.com/nguyentantai21042004/lingua-flow/internal/config"
	"github.com/nguyentantai21042004/lingua-flow/internal/logger"
	"github.com/nguyentantai21042004/lingua-flow/internal/pipeline"
	"github.com/nguyentantai21042004/lingua-flow/internal/watcher"
	"github.com/nguyentantai21042004/lingua-flow/internal/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()
	path := config.Path()

	// Load configuration
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "lingua-flow web server")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Configuration loaded from %s", path)

	ctrl, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to create pipeline: %v", err)
		os.Exit(1)
	}

	srv, err := web.New(ctrl, web.Options{SessionTTL: cfg.Server.SessionTTL}, log)
	if err != nil {
		log.Error(ctx, "Failed to create web server: %v", err)
		os.Exit(1)
	}

	// Hot-reload backends when the config file changes
	w, err := watcher.New(path, reloadHandler(ctrl, log), log, watcher.DefaultDebounce)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 2)
	go func() {
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errChan <- err
		}
	}()

	sweep := cfg.Server.SessionTTL / 2
	if sweep <= 0 {
		sweep = time.Minute
	}
	go srv.Store().Run(ctx, sweep)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	log.Info(ctx, "Listening on %s", cfg.Server.Addr)
	log.Info(ctx, "Watching: %s", path)
	log.Info(ctx, "Press Ctrl+C to stop")

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "Shutdown: %v", err)
	}

	log.Info(shutdownCtx, "lingua-flow stopped")
}

// reloadHandler re-reads the config file and swaps backends in place. A bad
// file keeps the running configuration.
func reloadHandler(ctrl pipeline.Controller, log logger.Logger) watcher.EventHandler {
	return func(ctx context.Context, filePath string) error {
		cfg, err := config.Load(filePath)
		if err != nil {
			return fmt.Errorf("reload config: %w", err)
		}
		if err := app.Reload(ctx, ctrl, cfg, log); err != nil {
			return fmt.Errorf("reload backends: %w", err)
		}
		log.Info(ctx, "Configuration reloaded from %s", filePath)
		return nil
	}
}
