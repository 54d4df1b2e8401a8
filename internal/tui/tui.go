package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nguyentantai21042004/lingua-flow/internal/pipeline"
)

// Run starts the terminal UI and blocks until the user quits.
func Run(ctrl pipeline.Controller, timeout time.Duration) error {
	m := NewModel(pipeline.NewSession(ctrl), timeout)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
