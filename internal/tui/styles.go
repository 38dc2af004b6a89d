package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	StreetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	RedCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	BlackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	FoldedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Strikethrough(true)
)

// StyleEventLine colours an event-log line by what it reports
func StyleEventLine(line string) string {
	switch {
	case strings.HasPrefix(line, "==="):
		return HeaderStyle.Render(line)
	case strings.HasPrefix(line, "---"):
		return StreetStyle.Render(line)
	case containsAny(line, "Winner:", " wins the pot"):
		return SuccessStyle.Render(line)
	case containsAny(line, "No active players"):
		return ErrorStyle.Render(line)
	case containsAny(line, " raises ", " bets ", "all-in"):
		return WarningStyle.Render(line)
	case containsAny(line, " folds."):
		return InfoStyle.Render(line)
	default:
		return line
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
