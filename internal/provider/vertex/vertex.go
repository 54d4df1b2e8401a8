// Package vertex summarizes text through a Vertex AI text model's :predict
// endpoint.
package vertex

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/nguyentantai21042004/lingua-flow/internal/logger"
	"github.com/nguyentantai21042004/lingua-flow/internal/provider"
	"github.com/nguyentantai21042004/lingua-flow/internal/provider/rest"
)

type Options struct {
	// Endpoint overrides the URL built from Region, ProjectID and Model.
	Endpoint    string
	Region      string
	ProjectID   string
	Model       string
	AccessToken string
	HTTPClient  *http.Client
}

type Client struct {
	endpoint string
	rest     *rest.Client
	logger   logger.Logger
}

type instance struct {
	Content string `json:"content"`
}

type predictRequest struct {
	Instances  []instance             `json:"instances"`
	Parameters provider.SummaryParams `json:"parameters"`
}

type predictResponse struct {
	Predictions []struct {
		Summary string `json:"summary"`
		Content string `json:"content"`
	} `json:"predictions"`
}

// New creates a summarizer authenticated with a bearer access token
func New(opts Options, log logger.Logger) *Client {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+opts.AccessToken)

	return &Client{
		endpoint: Endpoint(opts),
		rest:     &rest.Client{HTTPClient: opts.HTTPClient, Header: header},
		logger:   log,
	}
}

// Endpoint returns the predict URL for opts.
func Endpoint(opts Options) string {
	if opts.Endpoint != "" {
		return opts.Endpoint
	}
	return fmt.Sprintf("https://%s-aiplatform.googleapis.com/v1/projects/%s/locations/%s/publishers/google/models/%s:predict",
		opts.Region, opts.ProjectID, opts.Region, opts.Model)
}

// Summarize returns the first prediction. Older text models answer in
// "content" instead of "summary"; both are accepted.
func (c *Client) Summarize(ctx context.Context, text string, params provider.SummaryParams) (string, error) {
	req := predictRequest{
		Instances:  []instance{{Content: text}},
		Parameters: params,
	}

	var resp predictResponse
	if err := c.rest.PostJSON(ctx, "summarize", c.endpoint, req, &resp); err != nil {
		return "", err
	}

	if len(resp.Predictions) == 0 {
		return "", provider.BadResponse("summarize", http.StatusOK, errors.New("empty prediction response"))
	}

	p := resp.Predictions[0]
	summary := p.Summary
	if summary == "" {
		summary = p.Content
	}
	if strings.TrimSpace(summary) == "" {
		return "", provider.BadResponse("summarize", http.StatusOK, errors.New("empty summary"))
	}

	c.logger.Debug(ctx, "Summarized %d chars into %d chars", len(text), len(summary))
	return summary, nil
}
