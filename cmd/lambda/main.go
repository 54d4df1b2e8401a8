// Package main runs the pipeline as a stateless AWS Lambda function. The
// caller carries the session state between invocations.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/nguyentantai21042004/lingua-flow/internal/app"
	"github.com/nguyentantai21042004/lingua-flow/internal/config"
	"github.com/nguyentantai21042004/lingua-flow/internal/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	ctrl, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to create pipeline: %v", err)
		os.Exit(1)
	}

	h := &handler{ctrl: ctrl, logger: log}
	lambda.Start(h.handleRequest)
}

// loadConfig uses the bundled file when there is one and falls back to
// defaults plus environment credentials.
func loadConfig() (*config.Config, error) {
	path := config.Path()
	if _, err := os.Stat(path); err != nil {
		return config.FromEnv()
	}
	return config.Load(path)
}

func (h *handler) handleRequest(ctx context.Context, event json.RawMessage) (interface{}, error) {
	// Warmup detection (must be first)
	if isWarmupEvent(event) {
		return warmupResponse{Status: "warm"}, nil
	}

	var req Request
	if err := json.Unmarshal(event, &req); err != nil {
		return nil, fmt.Errorf("parse request: %w", err)
	}

	return h.Handle(ctx, req), nil
}
