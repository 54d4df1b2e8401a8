package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/lingua-flow/internal/language"
	"github.com/nguyentantai21042004/lingua-flow/internal/provider"
)

// Controller runs the detect, translate and summarize actions over a State.
type Controller interface {
	SubmitText(ctx context.Context, st State, input string) (State, error)
	Translate(ctx context.Context, st State) (State, error)
	Summarize(ctx context.Context, st State) (State, error)
	SelectTargetLanguage(st State, code string) (State, error)
	Languages() []language.Language

	// Reconfigure swaps the backends and options for subsequent actions.
	Reconfigure(providers provider.Set, opts Options)
}
