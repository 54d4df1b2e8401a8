// Package rest posts JSON to Google-style REST endpoints and decodes their
// {"error": {"message": ...}} failure envelope.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nguyentantai21042004/lingua-flow/internal/provider"
)

const maxResponseBytes = 4 << 20

// Client sends one request per call. It never retries.
type Client struct {
	HTTPClient *http.Client
	Header     http.Header
}

type errorEnvelope struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// PostJSON marshals in, posts it to url and decodes a 2xx body into out.
// Failures come back as *provider.Error tagged with op.
func (c *Client) PostJSON(ctx context.Context, op, url string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: marshal request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range c.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return provider.TransportError(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return provider.TransportError(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env errorEnvelope
		if json.Unmarshal(data, &env) == nil && env.Error != nil {
			return provider.ServiceError(op, resp.StatusCode, env.Error.Message)
		}
		return provider.ServiceError(op, resp.StatusCode, "")
	}

	if err := json.Unmarshal(data, out); err != nil {
		return provider.BadResponse(op, resp.StatusCode, fmt.Errorf("malformed response: %w", err))
	}

	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}
