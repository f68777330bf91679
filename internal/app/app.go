package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/solo-ai/solo/internal/credential"
	"github.com/solo-ai/solo/internal/keys"
	"github.com/solo-ai/solo/internal/model"
	"github.com/solo-ai/solo/internal/ui"
	"github.com/solo-ai/solo/internal/ui/command"
	helpview "github.com/solo-ai/solo/internal/ui/help"
	"github.com/solo-ai/solo/internal/ui/options"
	"github.com/solo-ai/solo/internal/ui/sidepanel"
)

// keyStatusMsg reports whether a credential is configured.
type keyStatusMsg struct {
	configured bool
}

// feedReplyMsg carries a reply pushed from outside the terminal, such as a
// context-menu click relayed over HTTP.
type feedReplyMsg struct {
	reply model.Reply
	ok    bool
}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewSidePanel ViewState = iota
	ViewOptions
	ViewHelp
	ViewCommand
)

// Model is the root Bubble Tea model. It routes between the side panel,
// options and help views and frames them with a header and status bar.
type Model struct {
	currentView   ViewState
	previousView  ViewState
	layout        ui.Layout
	keys          *keys.KeyMap
	credentials   credential.Store
	sidePanel     sidepanel.Model
	optionsView   options.Model
	helpView      helpview.Model
	commandView   command.Model
	feed          <-chan model.Reply
	relayAddr     string
	keyConfigured bool
	ready         bool
}

// Option configures the root model.
type Option func(*Model)

// WithReplyFeed shows replies received on ch in the side panel.
func WithReplyFeed(ch <-chan model.Reply) Option {
	return func(m *Model) {
		m.feed = ch
	}
}

// WithRelayAddr shows the relay address in the header.
func WithRelayAddr(addr string) Option {
	return func(m *Model) {
		m.relayAddr = addr
	}
}

// New creates the root model. d runs invocations sent from the side panel
// and creds backs the options view.
func New(d sidepanel.Dispatcher, creds credential.Store, opts ...Option) Model {
	k := keys.DefaultKeyMap()
	m := Model{
		currentView: ViewSidePanel,
		keys:        k,
		credentials: creds,
		sidePanel:   sidepanel.New(d, k, 80, 24),
		optionsView: options.New(creds, k, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the side panel and checks whether a key is configured.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.sidePanel.Init(),
		m.checkKey(),
		waitForReply(m.feed),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.sidePanel.SetSize(contentWidth, contentHeight)
		m.optionsView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case keyStatusMsg:
		m.keyConfigured = msg.configured
		return m, nil

	case feedReplyMsg:
		if !msg.ok {
			return m, nil
		}
		var cmd tea.Cmd
		m.sidePanel, cmd = m.sidePanel.Update(sidepanel.ReplyMsg{Reply: msg.reply})
		return m, tea.Batch(cmd, waitForReply(m.feed))

	case sidepanel.ReplyMsg, spinner.TickMsg:
		// Replies and the thinking spinner belong to the side panel even
		// while another view is showing.
		var cmd tea.Cmd
		m.sidePanel, cmd = m.sidePanel.Update(msg)
		return m, cmd

	case sidepanel.OpenOptionsMsg:
		return m.openOptions()

	case options.OptionsDoneMsg:
		m.currentView = ViewSidePanel
		return m, m.sidePanel.Focus()

	case options.KeyChangedMsg:
		m.keyConfigured = msg.Configured
		return m, nil

	case command.ActionMsg:
		m.currentView = ViewSidePanel
		var cmd tea.Cmd
		m.sidePanel, cmd = m.sidePanel.SendAction(msg.Action)
		return m, tea.Batch(cmd, m.sidePanel.Focus())

	case command.CommandMsg:
		m.currentView = ViewSidePanel
		return m.executeCommand(string(msg))

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case key.Matches(msg, m.keys.Palette):
			if m.currentView == ViewCommand {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewCommand
			return m, m.commandView.Focus()

		case key.Matches(msg, m.keys.Back):
			if m.currentView == ViewHelp || m.currentView == ViewCommand {
				m.currentView = m.previousView
				return m, nil
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

func (m Model) openOptions() (tea.Model, tea.Cmd) {
	m.previousView = m.currentView
	m.currentView = ViewOptions
	return m, m.optionsView.Init()
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewSidePanel:
		m.sidePanel, cmd = m.sidePanel.Update(msg)
	case ViewOptions:
		m.optionsView, cmd = m.optionsView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Solo AI", m.status())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewSidePanel:
		return m.sidePanel.View()
	case ViewOptions:
		return m.optionsView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// status returns the right-hand header text.
func (m Model) status() string {
	s := "no API key"
	if m.keyConfigured {
		s = "key set"
	}
	if n := m.sidePanel.InFlight(); n > 0 {
		s = fmt.Sprintf("%s | %d running", s, n)
	}
	if m.relayAddr != "" {
		s = fmt.Sprintf("%s | relay %s", s, m.relayAddr)
	}
	return s
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "f1 close help | esc back"
	case ViewOptions:
		return "e set key | c clear | esc back"
	case ViewCommand:
		return "enter run | tab complete | esc back"
	default:
		if !m.keyConfigured {
			return "ctrl+o add your API key | f1 help | ctrl+c quit"
		}
		return "enter send | ctrl+s summarise | ctrl+t tone | ctrl+k key points | f1 help"
	}
}

// executeCommand handles a built-in command from the palette.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	switch cmd {
	case command.CmdOptions:
		return m.openOptions()
	case command.CmdClear:
		m.sidePanel.Reset()
		return m, nil
	case command.CmdHelp:
		m.previousView = ViewSidePanel
		m.currentView = ViewHelp
		return m, nil
	case command.CmdQuit:
		return m, tea.Quit
	default:
		return m, nil
	}
}

// checkKey returns a command that reports whether a key is configured.
func (m Model) checkKey() tea.Cmd {
	s := m.credentials
	return func() tea.Msg {
		_, err := s.Get(context.Background())
		return keyStatusMsg{configured: err == nil}
	}
}

// waitForReply returns a command that waits for the next reply on ch.
func waitForReply(ch <-chan model.Reply) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		return feedReplyMsg{reply: r, ok: ok}
	}
}
