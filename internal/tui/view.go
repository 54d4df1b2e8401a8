package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nguyentantai21042004/lingua-flow/internal/language"
	"github.com/nguyentantai21042004/lingua-flow/internal/pipeline"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	outputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#D1D5DB")).
			Padding(0, 1)

	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	targetStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EAB308"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
)

const helpText = "ctrl+s send • ctrl+t translate • ctrl+r summarize • tab language • esc quit"

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("lingua-flow"))
	b.WriteString("\n\n")

	out := m.state.OutputText
	if out == "" {
		out = mutedStyle.Render("Enter text and press ctrl+s...")
	}
	box := outputStyle
	if m.width > 4 {
		box = box.Width(m.width - 4)
	}
	b.WriteString(box.Render(out))
	b.WriteString("\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.state.LastError != "" {
		b.WriteString(errorStyle.Render(m.state.LastError))
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(helpText))
	b.WriteString("\n")

	return b.String()
}

func (m Model) statusLine() string {
	parts := []string{"Target: " + targetStyle.Render(language.Label(m.state.TargetLanguage))}

	switch code := m.state.DetectedLanguage; code {
	case "":
	case language.NotDetected:
		parts = append(parts, "Detected: unknown")
	default:
		detected := "Detected: " + language.Label(code)
		if m.state.DetectionStale {
			detected += " (previous text)"
		}
		parts = append(parts, detected)
	}

	if m.inflight > 0 {
		parts = append(parts, m.spinner.View()+" "+pendingLabel(m.pending))
	}

	return mutedStyle.Render(strings.Join(parts, "  "))
}

func pendingLabel(a pipeline.Action) string {
	switch a {
	case pipeline.ActionSubmit:
		return "detecting..."
	case pipeline.ActionTranslate:
		return "translating..."
	case pipeline.ActionSummarize:
		return "summarizing..."
	default:
		return "working..."
	}
}
