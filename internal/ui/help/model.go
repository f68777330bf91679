package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/solo-ai/solo/internal/keys"
	"github.com/solo-ai/solo/internal/menu"
	"github.com/solo-ai/solo/internal/theme"
)

// Model is the help overlay. It lists the key map and the context menu
// entries a browser front-end registers.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	h.ShowAll = true
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the help overlay.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Keyboard Shortcuts"),
		m.help.View(m.keys),
		"",
		titleStyle.Render("Context Menu"),
		renderMenu(),
	)

	return theme.PanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// renderMenu lists the registered menu entries as an indented tree.
func renderMenu() string {
	var b strings.Builder
	for _, item := range menu.Items() {
		if item.ParentID == "" {
			fmt.Fprintf(&b, "%s\n", theme.AssistantStyle.Render(item.Title))
			continue
		}
		fmt.Fprintf(&b, "  %s %s\n",
			item.Title,
			theme.HelpStyle.Render("("+item.ID+")"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
