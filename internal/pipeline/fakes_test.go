package pipeline

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/nguyentantai21042004/lingua-flow/internal/logger"
	"github.com/nguyentantai21042004/lingua-flow/internal/provider"
)

type fakeDetector struct {
	calls     atomic.Int32
	detection provider.Detection
	err       error
}

func (f *fakeDetector) Detect(ctx context.Context, text string) (provider.Detection, error) {
	f.calls.Add(1)
	return f.detection, f.err
}

type fakeTranslator struct {
	calls  atomic.Int32
	result string
	err    error

	gotText, gotSource, gotTarget string

	// started and release let a test hold a call in flight.
	started chan struct{}
	release chan struct{}
}

func (f *fakeTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	f.calls.Add(1)
	f.gotText, f.gotSource, f.gotTarget = text, source, target
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return "", provider.TransportError("translate", ctx.Err())
		}
	}
	return f.result, f.err
}

type fakeSummarizer struct {
	calls     atomic.Int32
	result    string
	err       error
	gotParams provider.SummaryParams
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string, params provider.SummaryParams) (string, error) {
	f.calls.Add(1)
	f.gotParams = params
	return f.result, f.err
}

type fixture struct {
	detector   *fakeDetector
	translator *fakeTranslator
	summarizer *fakeSummarizer
	ctrl       Controller
}

func newFixture() *fixture {
	f := &fixture{
		detector:   &fakeDetector{},
		translator: &fakeTranslator{},
		summarizer: &fakeSummarizer{},
	}
	f.ctrl = New(provider.Set{
		Detector:   f.detector,
		Translator: f.translator,
		Summarizer: f.summarizer,
	}, DefaultOptions, logger.NewWithWriter(io.Discard, "error"))
	return f
}

func (f *fixture) totalCalls() int32 {
	return f.detector.calls.Load() + f.translator.calls.Load() + f.summarizer.calls.Load()
}
