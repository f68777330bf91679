package options

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/solo-ai/solo/internal/credential"
	"github.com/solo-ai/solo/internal/keys"
	"github.com/solo-ai/solo/internal/theme"
)

// Status lines shown after a change.
const (
	StatusSaved   = "API key saved."
	StatusCleared = "Cleared."
)

// statusTTL is how long a status line stays visible.
const statusTTL = 1500 * time.Millisecond

const (
	fieldAPIKey  = "apiKey"
	fieldConfirm = "confirm"
)

// Mode represents the current state of the options view.
type Mode int

const (
	ModeView         Mode = iota // Show the configured key
	ModeEdit                     // Password form
	ModeConfirmClear             // Confirm removal
)

// OptionsDoneMsg signals the options view should close.
type OptionsDoneMsg struct{}

// KeyChangedMsg is emitted after the stored credential was saved or cleared.
type KeyChangedMsg struct {
	Configured bool
}

type keyLoadedMsg struct {
	value string
	err   error
}

type keySavedMsg struct {
	configured bool
	err        error
}

type statusExpiredMsg struct {
	seq int
}

// Model is the options view. It edits the single stored credential.
type Model struct {
	mode    Mode
	store   credential.Store
	current string

	editForm    *huh.Form
	confirmForm *huh.Form

	statusMsg string
	statusSeq int
	errMsg    string

	keys          *keys.KeyMap
	width, height int
}

// New creates a new options view model.
func New(s credential.Store, k *keys.KeyMap, width, height int) Model {
	return Model{
		mode:   ModeView,
		store:  s,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init loads the stored credential.
func (m Model) Init() tea.Cmd {
	return m.loadKey()
}

// Mode returns the current mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Status returns the transient status line, if any.
func (m Model) Status() string {
	return m.statusMsg
}

// Update handles messages and dispatches based on current mode.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case keyLoadedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Error loading key: %v", msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.current = msg.value
		return m, nil

	case keySavedMsg:
		m.mode = ModeView
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Error saving key: %v", msg.err)
			return m, nil
		}
		m.errMsg = ""
		status := StatusCleared
		if msg.configured {
			status = StatusSaved
		}
		cmd := m.setStatus(status)
		return m, tea.Batch(
			cmd,
			m.loadKey(),
			func() tea.Msg { return KeyChangedMsg{Configured: msg.configured} },
		)

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m.updateActiveForm(msg)
}

// handleKeyMsg processes key messages based on the current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case ModeEdit:
		return m.updateEditForm(msg)
	case ModeConfirmClear:
		return m.updateConfirmForm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return OptionsDoneMsg{} }

	case key.Matches(msg, m.keys.Edit):
		m.mode = ModeEdit
		m.editForm = m.buildEditForm()
		return m, m.editForm.Init()

	case key.Matches(msg, m.keys.ClearKey):
		m.mode = ModeConfirmClear
		m.confirmForm = m.buildConfirmForm()
		return m, m.confirmForm.Init()
	}

	return m, nil
}

// updateActiveForm dispatches non-key messages to the currently active form.
func (m Model) updateActiveForm(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case ModeEdit:
		return m.updateEditForm(msg)
	case ModeConfirmClear:
		return m.updateConfirmForm(msg)
	}
	return m, nil
}

// --- Edit form ---

func (m Model) buildEditForm() *huh.Form {
	value := m.current
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key(fieldAPIKey).
				Title("OpenAI API key").
				Description("Stored locally. Leave empty to clear.").
				Placeholder("sk-...").
				EchoMode(huh.EchoModePassword).
				Value(&value),
		),
	).WithWidth(m.formWidth()).WithShowHelp(false)
}

func (m Model) updateEditForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.editForm == nil {
		m.mode = ModeView
		return m, nil
	}

	mdl, cmd := m.editForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.editForm = f
	}

	switch m.editForm.State {
	case huh.StateCompleted:
		value := m.editForm.GetString(fieldAPIKey)
		m.editForm = nil
		return m, m.saveKey(value)
	case huh.StateAborted:
		m.editForm = nil
		m.mode = ModeView
		return m, nil
	}

	return m, cmd
}

// --- Clear confirmation ---

func (m Model) buildConfirmForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key(fieldConfirm).
				Title("Remove the stored API key?").
				Affirmative("Clear").
				Negative("Cancel"),
		),
	).WithWidth(m.formWidth()).WithShowHelp(false)
}

func (m Model) updateConfirmForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		m.mode = ModeView
		return m, nil
	}

	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}

	switch m.confirmForm.State {
	case huh.StateCompleted:
		confirmed := m.confirmForm.GetBool(fieldConfirm)
		m.confirmForm = nil
		if !confirmed {
			m.mode = ModeView
			return m, nil
		}
		return m, m.saveKey("")
	case huh.StateAborted:
		m.confirmForm = nil
		m.mode = ModeView
		return m, nil
	}

	return m, cmd
}

// --- Commands ---

func (m Model) loadKey() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		v, err := s.Get(context.Background())
		if errors.Is(err, credential.ErrNotFound) {
			return keyLoadedMsg{}
		}
		return keyLoadedMsg{value: v, err: err}
	}
}

// saveKey stores value, or clears the store when value is blank.
func (m Model) saveKey(value string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		configured, err := credential.Save(context.Background(), s, value)
		return keySavedMsg{configured: configured, err: err}
	}
}

func (m *Model) setStatus(s string) tea.Cmd {
	m.statusSeq++
	m.statusMsg = s
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

// --- View ---

// View renders the options view.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sections := []string{titleStyle.Render("Solo AI · Options")}

	switch m.mode {
	case ModeEdit:
		if m.editForm != nil {
			sections = append(sections, m.editForm.View())
		}
	case ModeConfirmClear:
		if m.confirmForm != nil {
			sections = append(sections, m.confirmForm.View())
		}
	default:
		sections = append(sections, m.renderKeyStatus())
		sections = append(sections, "",
			theme.HelpStyle.Render("e set key · c clear · esc back"))
	}

	if m.statusMsg != "" {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.ColorGreen).Render(m.statusMsg))
	}
	if m.errMsg != "" {
		sections = append(sections, "", theme.ErrorStyle.Render(m.errMsg))
	}

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderKeyStatus() string {
	label := lipgloss.NewStyle().Foreground(theme.ColorGray).Render("API key: ")
	if m.current == "" {
		return label + theme.ErrorStyle.Render("not configured")
	}
	return label + theme.ContentStyle.Render(credential.Mask(m.current))
}

func (m Model) formWidth() int {
	w := m.width - 8
	if w < 20 {
		w = 20
	}
	return w
}

// SetSize updates the options view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
