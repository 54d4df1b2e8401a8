// Package google detects and translates text with the Google Cloud
// Translation v2 REST API.
package google

import (
	"net/http"

	"github.com/nguyentantai21042004/lingua-flow/internal/logger"
	"github.com/nguyentantai21042004/lingua-flow/internal/provider/rest"
)

type Options struct {
	DetectURL    string
	TranslateURL string
	// APIKey is sent as the "key" query parameter.
	APIKey     string
	HTTPClient *http.Client
}

// Client implements provider.Detector and provider.Translator.
type Client struct {
	detectURL    string
	translateURL string
	apiKey       string
	rest         *rest.Client
	logger       logger.Logger
}

// New creates a Translation API client
func New(opts Options, log logger.Logger) *Client {
	return &Client{
		detectURL:    opts.DetectURL,
		translateURL: opts.TranslateURL,
		apiKey:       opts.APIKey,
		rest:         &rest.Client{HTTPClient: opts.HTTPClient},
		logger:       log,
	}
}
