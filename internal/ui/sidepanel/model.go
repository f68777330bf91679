package sidepanel

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/solo-ai/solo/internal/keys"
	"github.com/solo-ai/solo/internal/model"
	"github.com/solo-ai/solo/internal/theme"
)

// Dispatcher runs one invocation to its terminal reply.
type Dispatcher interface {
	Call(ctx context.Context, inv model.Invocation) model.Reply
}

// ReplyMsg carries a reply for an invocation sent from the panel, or one
// pushed from another origin such as the context menu.
type ReplyMsg struct {
	Reply model.Reply
}

// OpenOptionsMsg asks the parent to show the options surface.
type OpenOptionsMsg struct{}

// thinkingLabel is shown in place of a reply that has not arrived yet.
const thinkingLabel = "Thinking"

type role int

const (
	roleUser role = iota
	roleAssistant
)

// entry is one rendered line of the transcript. Assistant entries carry the
// invocation id so a reply can find its placeholder.
type entry struct {
	role    role
	id      string
	action  model.ActionTag
	content string
	pending bool
	failed  bool
}

// Model is the side panel chat. Each send appends the user text and a
// placeholder, and several invocations may be in flight at once.
type Model struct {
	dispatcher Dispatcher
	input      textarea.Model
	viewport   viewport.Model
	spinner    spinner.Model
	entries    []entry
	inFlight   int
	keys       *keys.KeyMap
	width      int
	height     int
}

// New creates a side panel that sends invocations through d.
func New(d Dispatcher, k *keys.KeyMap, width, height int) Model {
	ta := textarea.New()
	ta.Placeholder = "Paste or type text..."
	ta.Prompt = "> "
	ta.ShowLineNumbers = false
	ta.SetWidth(width - 4)
	ta.SetHeight(3)
	ta.CharLimit = 0
	ta.Focus()

	vp := viewport.New(width-4, viewportHeight(height))
	vp.Style = lipgloss.NewStyle()

	sp := spinner.New()
	sp.Spinner = spinner.Ellipsis
	sp.Style = theme.ThinkingStyle

	m := Model{
		dispatcher: d,
		input:      ta,
		viewport:   vp,
		spinner:    sp,
		keys:       k,
		width:      width,
		height:     height,
	}
	m.refreshViewport()
	return m
}

func viewportHeight(height int) int {
	h := height - 9 // input area, action hints and borders
	if h < 4 {
		h = 4
	}
	return h
}

// Init returns the initial command for the side panel.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the side panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ReplyMsg:
		m.applyReply(msg.Reply)
		return m, nil

	case spinner.TickMsg:
		if m.inFlight == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshViewport()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	var cmds []tea.Cmd

	var taCmd tea.Cmd
	m.input, taCmd = m.input.Update(msg)
	if taCmd != nil {
		cmds = append(cmds, taCmd)
	}

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	if vpCmd != nil {
		cmds = append(cmds, vpCmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input for the side panel.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Summarise):
		return m.send(model.ActionSummarise)
	case key.Matches(msg, m.keys.ToneChange):
		return m.send(model.ActionToneChange)
	case key.Matches(msg, m.keys.KeyPoints):
		return m.send(model.ActionKeyPoints)
	case key.Matches(msg, m.keys.Send):
		return m.send(model.ActionFreeform)
	case key.Matches(msg, m.keys.ClearChat):
		m.Reset()
		return m, nil
	case key.Matches(msg, m.keys.OpenOptions):
		return m, func() tea.Msg { return OpenOptionsMsg{} }
	case key.Matches(msg, m.keys.Up):
		m.viewport.HalfPageUp()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.viewport.HalfPageDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// SendAction dispatches the current input under action, which may be any
// tag.
func (m Model) SendAction(action model.ActionTag) (Model, tea.Cmd) {
	return m.send(action)
}

// send dispatches the current input under action. The input is left in
// place so several actions can run over the same text.
func (m Model) send(action model.ActionTag) (Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	inv := model.NewInvocation(model.OriginSidePanel, action, text)
	m.entries = append(m.entries,
		entry{role: roleUser, action: action, content: text},
		entry{role: roleAssistant, id: inv.ID, action: action, pending: true},
	)
	m.inFlight++
	m.refreshViewport()

	cmds := []tea.Cmd{m.call(inv)}
	if m.inFlight == 1 {
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

// call returns a command that runs inv to completion.
func (m Model) call(inv model.Invocation) tea.Cmd {
	d := m.dispatcher
	return func() tea.Msg {
		return ReplyMsg{Reply: d.Call(context.Background(), inv)}
	}
}

// applyReply fills the placeholder for r.ID. Replies that match no
// placeholder are appended, preceded by their echoed input when present.
func (m *Model) applyReply(r model.Reply) {
	for i := range m.entries {
		e := &m.entries[i]
		if e.role != roleAssistant || !e.pending || e.id != r.ID {
			continue
		}
		fillEntry(e, r)
		if m.inFlight > 0 {
			m.inFlight--
		}
		m.refreshViewport()
		return
	}

	if r.Input != "" {
		m.entries = append(m.entries, entry{role: roleUser, action: r.Action, content: r.Input})
	}
	e := entry{role: roleAssistant, id: r.ID, action: r.Action}
	fillEntry(&e, r)
	m.entries = append(m.entries, e)
	m.refreshViewport()
}

func fillEntry(e *entry, r model.Reply) {
	e.pending = false
	if r.IsError() {
		e.failed = true
		e.content = "ERROR: " + r.Message
		return
	}
	e.content = strings.TrimSpace(r.Output)
}

// InFlight reports how many invocations are awaiting a reply.
func (m Model) InFlight() int {
	return m.inFlight
}

// Transcript returns the plain transcript text, one entry per line.
func (m Model) Transcript() []string {
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		if e.pending {
			out = append(out, thinkingLabel)
			continue
		}
		out = append(out, e.content)
	}
	return out
}

// refreshViewport re-renders the conversation content and scrolls to bottom.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderConversation())
	m.viewport.GotoBottom()
}

// renderConversation builds the conversation display string.
func (m Model) renderConversation() string {
	if len(m.entries) == 0 {
		return theme.ThinkingStyle.Render(
			"Paste text below, then pick an action. " +
				"Enter runs a freeform request.")
	}

	var sections []string
	for _, e := range m.entries {
		switch e.role {
		case roleUser:
			sections = append(sections,
				theme.UserStyle.Render("You")+theme.ActionStyle(e.action).Render(e.action.Label()))
			sections = append(sections, theme.ContentStyle.Render(e.content))
		case roleAssistant:
			sections = append(sections, theme.AssistantStyle.Render("Solo AI"))
			switch {
			case e.pending:
				sections = append(sections, theme.ThinkingStyle.Render(thinkingLabel+m.spinner.View()))
			case e.failed:
				sections = append(sections, theme.ErrorStyle.Render(e.content))
			default:
				sections = append(sections, theme.ContentStyle.Render(e.content))
			}
		}
		sections = append(sections, "")
	}

	return lipgloss.NewStyle().Width(m.viewport.Width).Render(strings.Join(sections, "\n"))
}

// View renders the side panel.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Solo AI")

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(
		strings.Repeat("─", max(min(m.width-6, 80), 0)),
	)

	hints := theme.HelpStyle.Render(
		"ctrl+s summarise · ctrl+t tone · ctrl+k key points · enter freeform")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.viewport.View(),
		separator,
		m.input.View(),
		hints,
	)

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the side panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.SetWidth(width - 4)
	m.viewport.Width = width - 4
	m.viewport.Height = viewportHeight(height)
	m.refreshViewport()
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// SetInput replaces the input text.
func (m *Model) SetInput(text string) {
	m.input.SetValue(text)
}

// Reset clears the transcript. Replies still in flight are appended when
// they arrive.
func (m *Model) Reset() {
	m.entries = m.entries[:0]
	m.inFlight = 0
	m.refreshViewport()
}
