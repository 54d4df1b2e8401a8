package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/nguyentantai21042004/lingua-flow/internal/app"
	"github.com/nguyentantai21042004/lingua-flow/internal/config"
	"github.com/nguyentantai21042004/lingua-flow/internal/logger"
	"github.com/nguyentantai21042004/lingua-flow/internal/tui"
)

// EnvLogFile names a file for logs; the terminal belongs to the UI.
const EnvLogFile = "LINGUA_LOG_FILE"

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = io.Discard
	if path := os.Getenv(EnvLogFile); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	log := logger.NewWithWriter(out, cfg.Logging.Level)

	ctrl, err := app.New(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create pipeline: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(ctrl, cfg.Pipeline.Timeout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
