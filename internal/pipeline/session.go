package pipeline

import (
	"context"
	"sync"
	"time"
)

// Action names a user-triggered operation.
type Action string

const (
	ActionSubmit    Action = "submit"
	ActionTranslate Action = "translate"
	ActionSummarize Action = "summarize"
	ActionLanguage  Action = "language"
)

// Session owns the live State of one UI session. A second call of an action
// that is still in flight is rejected with ErrBusy; different actions run
// one after another.
type Session struct {
	ctrl Controller

	mu       sync.RWMutex
	state    State
	lastUsed time.Time

	running  *semaphore
	inflight map[Action]*semaphore
}

// NewSession starts a session in the initial state.
func NewSession(ctrl Controller) *Session {
	return &Session{
		ctrl:     ctrl,
		state:    NewState(),
		lastUsed: time.Now(),
		running:  newSemaphore(1),
		inflight: map[Action]*semaphore{
			ActionSubmit:    newSemaphore(1),
			ActionTranslate: newSemaphore(1),
			ActionSummarize: newSemaphore(1),
			ActionLanguage:  newSemaphore(1),
		},
	}
}

// State returns the last committed state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// LastUsed is the time of the most recent action or read.
func (s *Session) LastUsed() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUsed
}

// Touch marks the session as used.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastUsed = time.Now()
	s.mu.Unlock()
}

func (s *Session) Submit(ctx context.Context, text string) (State, error) {
	return s.run(ctx, ActionSubmit, func(ctx context.Context, st State) (State, error) {
		return s.ctrl.SubmitText(ctx, st, text)
	})
}

func (s *Session) Translate(ctx context.Context) (State, error) {
	return s.run(ctx, ActionTranslate, s.ctrl.Translate)
}

func (s *Session) Summarize(ctx context.Context) (State, error) {
	return s.run(ctx, ActionSummarize, s.ctrl.Summarize)
}

func (s *Session) SelectTargetLanguage(ctx context.Context, code string) (State, error) {
	return s.run(ctx, ActionLanguage, func(_ context.Context, st State) (State, error) {
		return s.ctrl.SelectTargetLanguage(st, code)
	})
}

// run commits the whole result of step, error included, or nothing when the
// action is rejected before it starts.
func (s *Session) run(ctx context.Context, action Action, step func(context.Context, State) (State, error)) (State, error) {
	guard := s.inflight[action]
	if !guard.tryAcquire() {
		st := s.State()
		st.LastError = MsgBusy
		return st, newError(KindBusy, MsgBusy, nil)
	}
	defer guard.release()

	if err := s.running.acquire(ctx); err != nil {
		st := s.State()
		return st, newError(KindTransport, "request cancelled", err)
	}
	defer s.running.release()

	next, err := step(ctx, s.State())

	s.mu.Lock()
	s.state = next
	s.lastUsed = time.Now()
	s.mu.Unlock()

	return next, err
}
