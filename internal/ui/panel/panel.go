// Package panel renders the floating result panel shown for a reply.
package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/solo-ai/solo/internal/model"
	"github.com/solo-ai/solo/internal/theme"
)

// MaxWidth caps the panel width in columns.
const MaxWidth = 72

// ErrorLabel is shown next to the title for error replies.
const ErrorLabel = "error"

// Render draws a panel titled "Solo AI", with label appended as "· label"
// when non-empty. width is the available terminal width; zero means MaxWidth.
func Render(body, label string, width int) string {
	if width <= 0 || width > MaxWidth {
		width = MaxWidth
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).Render("Solo AI")
	if label != "" {
		title += " " + lipgloss.NewStyle().Foreground(theme.ColorGray).Render("· "+label)
	}

	inner := width - theme.ResultPanelStyle.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}
	content := lipgloss.NewStyle().Width(inner).Render(body)

	return theme.ResultPanelStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", content),
	)
}

// ForReply renders r the way the page would show it: the trimmed output
// labelled with its action, or the error message labelled "error".
func ForReply(r model.Reply, width int) string {
	if r.IsError() {
		return Render(theme.ErrorStyle.Render("ERROR: "+r.Message), ErrorLabel, width)
	}
	return Render(strings.TrimSpace(r.Output), string(r.Action), width)
}
