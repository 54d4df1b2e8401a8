package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nguyentantai21042004/lingua-flow/internal/provider"
)

type detectRequest struct {
	Q []string `json:"q"`
}

type detectResponse struct {
	Data struct {
		Detections [][]struct {
			Language   string  `json:"language"`
			Confidence float64 `json:"confidence"`
			IsReliable bool    `json:"isReliable"`
		} `json:"detections"`
	} `json:"data"`
}

type translateRequest struct {
	Q      []string `json:"q"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Format string   `json:"format"`
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

// Detect returns the most likely language of text. An empty result means
// the API had no candidate.
func (c *Client) Detect(ctx context.Context, text string) (provider.Detection, error) {
	endpoint, err := c.withKey(c.detectURL)
	if err != nil {
		return provider.Detection{}, err
	}

	var resp detectResponse
	if err := c.rest.PostJSON(ctx, "detect", endpoint, detectRequest{Q: []string{text}}, &resp); err != nil {
		return provider.Detection{}, err
	}

	if len(resp.Data.Detections) == 0 || len(resp.Data.Detections[0]) == 0 {
		c.logger.Debug(ctx, "Detection returned no candidates")
		return provider.Detection{}, nil
	}

	best := resp.Data.Detections[0][0]
	for _, d := range resp.Data.Detections[0][1:] {
		if d.Confidence > best.Confidence {
			best = d
		}
	}

	c.logger.Debug(ctx, "Detection: %s (confidence %.2f, reliable %v)", best.Language, best.Confidence, best.IsReliable)
	return provider.Detection{Language: best.Language, Confidence: best.Confidence}, nil
}

// Translate translates text as plain text (no HTML entity escaping).
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	endpoint, err := c.withKey(c.translateURL)
	if err != nil {
		return "", err
	}

	req := translateRequest{
		Q:      []string{text},
		Source: source,
		Target: target,
		Format: "text",
	}

	var resp translateResponse
	if err := c.rest.PostJSON(ctx, "translate", endpoint, req, &resp); err != nil {
		return "", err
	}

	if len(resp.Data.Translations) == 0 {
		return "", provider.BadResponse("translate", http.StatusOK, errors.New("empty translation response"))
	}

	c.logger.Debug(ctx, "Translated %d chars %s -> %s", len(text), source, target)
	return resp.Data.Translations[0].TranslatedText, nil
}

func (c *Client) withKey(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
