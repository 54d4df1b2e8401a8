// Package lambda translates text by invoking a translation-manager AWS Lambda.
package lambda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awslambda "github.com/aws/aws-sdk-go-v2/service/lambda"

	"github.com/nguyentantai21042004/lingua-flow/internal/logger"
	"github.com/nguyentantai21042004/lingua-flow/internal/provider"
)

// invoker is the subset of the Lambda client used here.
type invoker interface {
	Invoke(ctx context.Context, params *awslambda.InvokeInput, optFns ...func(*awslambda.Options)) (*awslambda.InvokeOutput, error)
}

// Request is the payload the translation manager expects.
type Request struct {
	Texts      []string `json:"texts"`
	SourceLang string   `json:"sourceLang"`
	TargetLang string   `json:"targetLang"`
}

// Response is the translation manager's answer.
type Response struct {
	Translations    []string `json:"translations,omitempty"`
	ChunksProcessed int      `json:"chunksProcessed,omitempty"`
	Error           string   `json:"error,omitempty"`
}

type Translator struct {
	client       invoker
	functionName string
	logger       logger.Logger
}

// New creates a Translator using the default AWS credential chain.
func New(ctx context.Context, functionName, region string, log logger.Logger) (*Translator, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Translator{
		client:       awslambda.NewFromConfig(cfg),
		functionName: functionName,
		logger:       log,
	}, nil
}

// Translate sends each non-empty line as its own text so the manager can
// chunk long inputs, then restores the original line layout.
func (t *Translator) Translate(ctx context.Context, text, source, target string) (string, error) {
	lines := strings.Split(text, "\n")

	var texts []string
	var positions []int
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		texts = append(texts, line)
		positions = append(positions, i)
	}

	if len(texts) == 0 {
		return text, nil
	}

	translations, err := t.invoke(ctx, Request{Texts: texts, SourceLang: source, TargetLang: target})
	if err != nil {
		return "", err
	}

	if len(translations) != len(texts) {
		return "", provider.BadResponse("translate", http.StatusBadGateway,
			fmt.Errorf("expected %d translations, got %d", len(texts), len(translations)))
	}

	for i, pos := range positions {
		lines[pos] = translations[i]
	}

	return strings.Join(lines, "\n"), nil
}

func (t *Translator) invoke(ctx context.Context, req Request) ([]string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	result, err := t.client.Invoke(ctx, &awslambda.InvokeInput{
		FunctionName: aws.String(t.functionName),
		Payload:      payload,
	})
	if err != nil {
		return nil, provider.TransportError("translate", fmt.Errorf("failed to invoke %s: %w", t.functionName, err))
	}

	status := int(result.StatusCode)
	if status == 0 {
		status = http.StatusOK
	}

	if result.FunctionError != nil {
		return nil, provider.BadResponse("translate", http.StatusBadGateway, fmt.Errorf("function error: %s", *result.FunctionError))
	}

	var resp Response
	if err := json.Unmarshal(result.Payload, &resp); err != nil {
		return nil, provider.BadResponse("translate", status, fmt.Errorf("malformed response: %w", err))
	}

	if resp.Error != "" {
		return nil, provider.ServiceError("translate", http.StatusBadGateway, resp.Error)
	}

	t.logger.Debug(ctx, "Lambda %s translated %d texts in %d chunks", t.functionName, len(req.Texts), resp.ChunksProcessed)
	return resp.Translations, nil
}
