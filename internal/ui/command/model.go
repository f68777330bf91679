package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/solo-ai/solo/internal/model"
	"github.com/solo-ai/solo/internal/theme"
)

// Built-in palette commands. Any other input is treated as an action tag.
const (
	CmdOptions = "options"
	CmdClear   = "clear"
	CmdHelp    = "help"
	CmdQuit    = "quit"
)

// CommandMsg is emitted when the user executes a built-in command.
type CommandMsg string

// ActionMsg is emitted when the user picks an action to run over the side
// panel input. Tags without a dedicated template run as freeform requests.
type ActionMsg struct {
	Action model.ActionTag
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "summarise, tone_change, key_points, or any action..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(suggestions())
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

func suggestions() []string {
	actions := lo.Map(model.PresetActions, func(a model.ActionTag, _ int) string {
		return string(a)
	})
	return append(actions, CmdOptions, CmdClear, CmdHelp, CmdQuit)
}

// Parse maps palette input to the message it produces, or nil for blank
// input.
func Parse(input string) tea.Msg {
	in := strings.TrimSpace(input)
	switch in {
	case "":
		return nil
	case CmdOptions, CmdClear, CmdHelp, CmdQuit:
		return CommandMsg(in)
	default:
		return ActionMsg{Action: model.ActionTag(in)}
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			out := Parse(m.input.Value())
			m.input.Reset()
			if out != nil {
				return m, func() tea.Msg {
					return out
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Run Action")
	input := m.input.View()
	hint := theme.HelpStyle.Render("tab completes · esc back")

	content := lipgloss.JoinVertical(lipgloss.Left, title, input, "", hint)

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
