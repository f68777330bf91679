package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/solo-ai/solo/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// PanelStyle wraps a surface's content area.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ResultPanelStyle mimics the floating on-page result panel.
var ResultPanelStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// Chat transcript styles.
var (
	UserStyle      = lipgloss.NewStyle().Bold(true).Foreground(ColorBlue)
	AssistantStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorGreen)
	ErrorStyle     = lipgloss.NewStyle().Foreground(ColorRed)
	ThinkingStyle  = lipgloss.NewStyle().Foreground(ColorGray).Italic(true)
	ContentStyle   = lipgloss.NewStyle().Foreground(ColorWhite)
)

// ActionStyle returns a color-coded label style for the given action.
func ActionStyle(action model.ActionTag) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch action {
	case model.ActionSummarise:
		return base.Foreground(ColorBlue)
	case model.ActionToneChange:
		return base.Foreground(ColorMagenta)
	case model.ActionKeyPoints:
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorGray)
	}
}
