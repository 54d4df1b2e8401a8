package pipeline

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nguyentantai21042004/lingua-flow/internal/language"
	"github.com/nguyentantai21042004/lingua-flow/internal/provider"
)

// SubmitText stores input as both input and output, then detects its
// language. Exactly one detection call is made for non-empty input.
func (c *implController) SubmitText(ctx context.Context, st State, input string) (State, error) {
	if strings.TrimSpace(input) == "" {
		return fail(st, newError(KindValidation, msgEmptyInput, nil))
	}

	c.logger.Info(ctx, "Submitting text (%d chars)", utf8.RuneCountInString(input))

	next := st
	next.InputText = input
	next.OutputText = input
	next.LastError = ""

	return c.detectLanguage(ctx, next, input)
}

// detectLanguage folds the detection outcome into st. On failure the previous
// code is kept but marked stale since it no longer describes InputText.
func (c *implController) detectLanguage(ctx context.Context, st State, text string) (State, error) {
	p, opts := c.snapshot()

	ctx, cancel := withTimeout(ctx, opts.Timeout)
	defer cancel()

	detection, err := p.Detector.Detect(ctx, text)
	if err != nil {
		perr := fromProvider(err, msgDetectFailed)
		c.logger.Warn(ctx, "Language detection failed: %v", err)
		st.DetectionStale = st.DetectedLanguage != ""
		return fail(st, perr)
	}

	code := strings.TrimSpace(detection.Language)
	if code == "" || code == language.NotDetected {
		code = language.NotDetected
	}

	c.logger.Info(ctx, "Detected language: %s (confidence %.2f)", code, detection.Confidence)

	st.DetectedLanguage = code
	st.DetectionStale = false
	return st, nil
}

// Translate converts InputText from the detected language to the target.
func (c *implController) Translate(ctx context.Context, st State) (State, error) {
	if !st.HasDetection() {
		return fail(st, newError(KindPrecondition, msgMustDetect, nil))
	}
	if !language.IsSupported(st.TargetLanguage) {
		return fail(st, invalidLanguage(st.TargetLanguage))
	}
	if st.DetectedLanguage == st.TargetLanguage {
		return fail(st, newError(KindNoOp, msgSameLanguage, nil))
	}

	p, opts := c.snapshot()

	c.logger.Info(ctx, "Translating %s -> %s", st.DetectedLanguage, st.TargetLanguage)

	callCtx, cancel := withTimeout(ctx, opts.Timeout)
	defer cancel()

	translated, err := p.Translator.Translate(callCtx, st.InputText, st.DetectedLanguage, st.TargetLanguage)
	if err != nil {
		c.logger.Warn(ctx, "Translation failed: %v", err)
		return fail(st, fromProvider(err, msgTranslateFailed))
	}

	st.OutputText = translated
	st.LastError = ""
	return st, nil
}

// Summarize replaces OutputText with its summary once it is long enough.
func (c *implController) Summarize(ctx context.Context, st State) (State, error) {
	p, opts := c.snapshot()

	if utf8.RuneCountInString(st.OutputText) <= opts.SummaryMinChars {
		return fail(st, newError(KindPrecondition, msgTooShort, nil))
	}

	c.logger.Info(ctx, "Summarizing output (%d chars)", utf8.RuneCountInString(st.OutputText))

	callCtx, cancel := withTimeout(ctx, opts.Timeout)
	defer cancel()

	summary, err := p.Summarizer.Summarize(callCtx, st.OutputText, provider.DefaultSummaryParams)
	if err != nil {
		c.logger.Warn(ctx, "Summarization failed: %v", err)
		return fail(st, fromProvider(err, msgSummarizeFailed))
	}

	st.OutputText = summary
	st.LastError = ""
	return st, nil
}

// SelectTargetLanguage is a pure state update.
func (c *implController) SelectTargetLanguage(st State, code string) (State, error) {
	if !language.IsSupported(code) {
		return fail(st, invalidLanguage(code))
	}

	st.TargetLanguage = code
	st.LastError = ""
	return st, nil
}

func (c *implController) Languages() []language.Language {
	return language.All()
}

func (c *implController) Reconfigure(providers provider.Set, opts Options) {
	c.mu.Lock()
	c.providers = providers
	c.opts = normalize(opts)
	c.mu.Unlock()
}

func (c *implController) snapshot() (provider.Set, Options) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.providers, c.opts
}

func fail(st State, err *Error) (State, error) {
	st.LastError = err.Message
	return st, err
}

func invalidLanguage(code string) *Error {
	return newError(KindValidation, "unsupported language: "+code, nil)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
