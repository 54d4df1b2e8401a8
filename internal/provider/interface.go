// Package provider declares the remote capabilities the pipeline depends on.
// Concrete backends live in the sub-packages.
package provider

import "context"

// Detection is the result of a language detection call. An empty Language
// means the service answered but recognized nothing.
type Detection struct {
	Language   string
	Confidence float64
}

// SummaryParams are forwarded verbatim to the summarization backend.
type SummaryParams struct {
	LengthPenalty float64 `json:"length_penalty"`
	MinLength     int     `json:"min_length"`
	MaxLength     int     `json:"max_length"`
}

// DefaultSummaryParams are the fixed parameters used by the pipeline.
var DefaultSummaryParams = SummaryParams{
	LengthPenalty: 1.0,
	MinLength:     50,
	MaxLength:     200,
}

// Detector identifies the language of a text sample.
type Detector interface {
	Detect(ctx context.Context, text string) (Detection, error)
}

// Translator converts text from source to target language.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Summarizer shortens text.
type Summarizer interface {
	Summarize(ctx context.Context, text string, params SummaryParams) (string, error)
}

// Set groups one backend per capability.
type Set struct {
	Detector   Detector
	Translator Translator
	Summarizer Summarizer
}
