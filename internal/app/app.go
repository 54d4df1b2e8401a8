// Package app wires configuration into a ready pipeline controller.
package app

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/lingua-flow/internal/config"
	"github.com/nguyentantai21042004/lingua-flow/internal/logger"
	"github.com/nguyentantai21042004/lingua-flow/internal/pipeline"
	"github.com/nguyentantai21042004/lingua-flow/internal/provider"
	"github.com/nguyentantai21042004/lingua-flow/internal/provider/gemini"
	"github.com/nguyentantai21042004/lingua-flow/internal/provider/google"
	"github.com/nguyentantai21042004/lingua-flow/internal/provider/lambda"
	"github.com/nguyentantai21042004/lingua-flow/internal/provider/vertex"
)

// New builds the controller described by cfg
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (pipeline.Controller, error) {
	providers, err := Providers(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return pipeline.New(providers, Options(cfg), log), nil
}

// Reload rebuilds the backends from cfg and swaps them into ctrl.
func Reload(ctx context.Context, ctrl pipeline.Controller, cfg *config.Config, log logger.Logger) error {
	providers, err := Providers(ctx, cfg, log)
	if err != nil {
		return err
	}
	ctrl.Reconfigure(providers, Options(cfg))
	log.SetLevel(cfg.Logging.Level)
	return nil
}

func Options(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		Timeout:         cfg.Pipeline.Timeout,
		SummaryMinChars: cfg.Pipeline.SummaryMinChars,
	}
}

// Providers constructs one backend per capability.
func Providers(ctx context.Context, cfg *config.Config, log logger.Logger) (provider.Set, error) {
	g := google.New(google.Options{
		DetectURL:    cfg.Detection.Endpoint,
		TranslateURL: cfg.Translation.Endpoint,
		APIKey:       cfg.Credentials.APIKey,
	}, log)

	set := provider.Set{Detector: g}

	switch cfg.Translation.Backend {
	case config.BackendGoogle:
		set.Translator = g
	case config.BackendLambda:
		t, err := lambda.New(ctx, cfg.Translation.LambdaFunction, cfg.Translation.Region, log)
		if err != nil {
			return provider.Set{}, fmt.Errorf("create lambda translator: %w", err)
		}
		set.Translator = t
	default:
		return provider.Set{}, fmt.Errorf("unknown translation backend %q", cfg.Translation.Backend)
	}

	switch cfg.Summarization.Backend {
	case config.BackendVertex:
		set.Summarizer = vertex.New(vertex.Options{
			Endpoint:    cfg.Summarization.Endpoint,
			Region:      cfg.Summarization.Region,
			ProjectID:   cfg.Credentials.ProjectID,
			Model:       cfg.Summarization.Model,
			AccessToken: cfg.Credentials.AccessToken,
		}, log)
	case config.BackendGemini:
		set.Summarizer = gemini.New(cfg.Credentials.GeminiKeys, cfg.Summarization.GeminiModel, log)
	default:
		return provider.Set{}, fmt.Errorf("unknown summarization backend %q", cfg.Summarization.Backend)
	}

	log.Info(ctx, "Backends: detection=%s translation=%s summarization=%s",
		cfg.Detection.Backend, cfg.Translation.Backend, cfg.Summarization.Backend)

	return set, nil
}
