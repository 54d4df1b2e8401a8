// Package gemini summarizes text with the Gemini API, rotating through API
// keys when one is rate limited.
package gemini

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/lingua-flow/internal/logger"
)

// generateFunc sends one prompt with one key.
type generateFunc func(ctx context.Context, apiKey, model, prompt string) (string, error)

type Client struct {
	apiKeys []string
	model   string
	logger  logger.Logger

	mu         sync.Mutex
	currentKey int

	generate generateFunc
}

// New creates a Gemini summarizer that rotates through the supplied API keys.
func New(apiKeys []string, model string, log logger.Logger) *Client {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Client{
		apiKeys:  apiKeys,
		model:    model,
		logger:   log,
		generate: generateContent,
	}
}
