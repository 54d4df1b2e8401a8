package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/lingua-flow/internal/provider"
)

const summaryPrompt = `Summarize the text below in the same language it is written in.

Requirements:
- Between %d and %d words
- Keep names, numbers and technical terms unchanged
- Plain prose, no headings or bullet points
- Answer with the summary only

Text:
---
%s
---`

// Summarize makes one Gemini call. A rate-limited key is rotated out so the
// next call uses the following key; this call still fails.
func (c *Client) Summarize(ctx context.Context, text string, params provider.SummaryParams) (string, error) {
	if len(c.apiKeys) == 0 {
		return "", provider.BadResponse("summarize", http.StatusUnauthorized, errors.New("no Gemini API key configured"))
	}

	prompt := fmt.Sprintf(summaryPrompt, params.MinLength, params.MaxLength, text)
	idx, key := c.key()

	summary, err := c.generate(ctx, key, c.model, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return "", provider.TransportError("summarize", ctx.Err())
		}
		if isRateLimited(err) {
			c.logger.Warn(ctx, "Key %d rate limited, rotating for the next request", idx+1)
			c.rotateKey(idx)
			return "", provider.BadResponse("summarize", http.StatusTooManyRequests, err)
		}
		return "", provider.BadResponse("summarize", http.StatusBadGateway, fmt.Errorf("generate content: %w", err))
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", provider.BadResponse("summarize", http.StatusBadGateway, errors.New("empty response from Gemini"))
	}
	return summary, nil
}

func (c *Client) key() (int, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentKey, c.apiKeys[c.currentKey]
}

// rotateKey moves past idx unless another caller already did.
func (c *Client) rotateKey(idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentKey == idx {
		c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
	}
}

func isRateLimited(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	errMsg := err.Error()
	return strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED")
}

func generateContent(ctx context.Context, apiKey, model, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		return text, nil
	}

	return "", nil
}
