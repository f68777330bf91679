// Package ui holds the frame shared by the terminal surfaces.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/solo-ai/solo/internal/theme"
)

// Layout splits the terminal into header, content and status bar rows.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the surface between the
// header and status bar. It never goes below one row.
func (l Layout) ContentHeight() int {
	return max(l.Height-l.HeaderHeight-l.StatusBarHeight, 1)
}

// RenderHeader renders the title on the left and status on the right. The
// status is truncated when both do not fit.
func (l Layout) RenderHeader(title string, status string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	room := l.Width - lipgloss.Width(titleRendered) - theme.HeaderStyle.GetHorizontalFrameSize()
	if room < 0 {
		room = 0
	}
	statusRendered := theme.HeaderStyle.Render(ansi.Truncate(status, room, "…"))

	return l.row(theme.HeaderStyle, titleRendered, statusRendered)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	room := max(l.Width-theme.StatusBarStyle.GetHorizontalFrameSize(), 0)
	return l.row(theme.StatusBarStyle, theme.StatusBarStyle.Render(ansi.Truncate(hints, room, "…")), "")
}

// row joins left and right with a filler painted in style's background so
// the bar spans the full width.
func (l Layout) row(style lipgloss.Style, left, right string) string {
	gap := max(l.Width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	filler := lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")
	return lipgloss.JoinHorizontal(lipgloss.Top, left, filler, right)
}

// RenderWithFrame stacks header, content and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}
