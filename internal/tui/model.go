// Package tui is a terminal front end over a pipeline session.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nguyentantai21042004/lingua-flow/internal/language"
	"github.com/nguyentantai21042004/lingua-flow/internal/pipeline"
)

// actionDoneMsg carries the committed state back from a session call.
type actionDoneMsg struct {
	action pipeline.Action
	state  pipeline.State
	err    error
}

// Model is the root Bubble Tea model.
type Model struct {
	session *pipeline.Session
	timeout time.Duration

	input   textarea.Model
	spinner spinner.Model

	state    pipeline.State
	pending  pipeline.Action // latest action for the spinner label
	inflight int             // calls started and not yet returned
	width    int
}

// NewModel creates a Model over sess. timeout bounds each call made from the
// UI; the controller applies its own per-call limit as well.
func NewModel(sess *pipeline.Session, timeout time.Duration) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your text here..."
	ta.ShowLineNumbers = false
	ta.SetHeight(5)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		session: sess,
		timeout: timeout,
		input:   ta,
		spinner: sp,
		state:   sess.State(),
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(msg.Width - 4)
		return m, nil

	case actionDoneMsg:
		m.state = msg.state
		if msg.action == pipeline.ActionLanguage {
			return m, nil
		}
		// A busy rejection returns at once while the original call runs on.
		if m.inflight > 0 {
			m.inflight--
		}
		if m.inflight == 0 {
			m.pending = ""
		}
		return m, nil

	case spinner.TickMsg:
		if m.inflight == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "ctrl+s":
		text := m.input.Value()
		return m.start(pipeline.ActionSubmit, func(ctx context.Context) (pipeline.State, error) {
			return m.session.Submit(ctx, text)
		})

	case "ctrl+t":
		return m.start(pipeline.ActionTranslate, m.session.Translate)

	case "ctrl+r":
		return m.start(pipeline.ActionSummarize, m.session.Summarize)

	case "tab":
		// Shown right away; the session commits it once any running call ends.
		code := language.Next(m.state.TargetLanguage)
		m.state.TargetLanguage = code
		return m, m.selectLanguage(code)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// selectLanguage commits code without touching the spinner.
func (m Model) selectLanguage(code string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		st, err := sess.SelectTargetLanguage(context.Background(), code)
		return actionDoneMsg{action: pipeline.ActionLanguage, state: st, err: err}
	}
}

// start runs call in the background. While another call is in flight the
// session itself rejects or queues the new one; the model only tracks the
// most recent action for the spinner.
func (m Model) start(action pipeline.Action, call func(context.Context) (pipeline.State, error)) (tea.Model, tea.Cmd) {
	startSpinner := m.inflight == 0
	m.inflight++
	m.pending = action

	run := func() tea.Msg {
		ctx := context.Background()
		if m.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, m.timeout)
			defer cancel()
		}
		st, err := call(ctx)
		return actionDoneMsg{action: action, state: st, err: err}
	}

	if startSpinner {
		return m, tea.Batch(run, m.spinner.Tick)
	}
	return m, run
}
