package pipeline

import (
	"sync"
	"time"

	"github.com/nguyentantai21042004/lingua-flow/internal/logger"
	"github.com/nguyentantai21042004/lingua-flow/internal/provider"
)

// Options tune the controller.
type Options struct {
	// Timeout bounds each remote call; zero means no timeout.
	Timeout time.Duration
	// SummaryMinChars is the length output must exceed to be summarized.
	SummaryMinChars int
}

// DefaultOptions mirror the config defaults.
var DefaultOptions = Options{
	Timeout:         15 * time.Second,
	SummaryMinChars: 150,
}

type implController struct {
	logger logger.Logger

	mu        sync.RWMutex
	providers provider.Set
	opts      Options
}

// New creates a Controller over the given backends
func New(providers provider.Set, opts Options, log logger.Logger) Controller {
	return &implController{
		logger:    log,
		providers: providers,
		opts:      normalize(opts),
	}
}

func normalize(opts Options) Options {
	if opts.SummaryMinChars <= 0 {
		opts.SummaryMinChars = DefaultOptions.SummaryMinChars
	}
	return opts
}
