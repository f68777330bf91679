package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solo-ai/solo/internal/credential"
	"github.com/solo-ai/solo/internal/model"
	"github.com/solo-ai/solo/internal/ui/command"
	"github.com/solo-ai/solo/internal/ui/options"
	"github.com/solo-ai/solo/internal/ui/sidepanel"
	"github.com/solo-ai/solo/tests/testutil"
)

type stubDispatcher struct{}

func (stubDispatcher) Call(_ context.Context, inv model.Invocation) model.Reply {
	return model.ResultReply(inv, "done")
}

func newApp(t *testing.T, opts ...Option) (Model, credential.Store) {
	t.Helper()
	creds := credential.NewLocalStore(testutil.NewTestStore(t))
	m := New(stubDispatcher{}, creds, opts...)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), creds
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestCheckKey(t *testing.T) {
	m, creds := newApp(t)

	m, _ = update(t, m, m.checkKey()())
	assert.False(t, m.keyConfigured)
	assert.Contains(t, m.View(), "no API key")

	require.NoError(t, creds.Set(context.Background(), "sk-test"))
	m, _ = update(t, m, m.checkKey()())
	assert.True(t, m.keyConfigured)
	assert.Contains(t, m.View(), "key set")
}

func TestOptionsRouting(t *testing.T) {
	m, _ := newApp(t)

	m, _ = update(t, m, sidepanel.OpenOptionsMsg{})
	assert.Equal(t, ViewOptions, m.currentView)

	m, _ = update(t, m, options.KeyChangedMsg{Configured: true})
	assert.True(t, m.keyConfigured)

	m, _ = update(t, m, options.OptionsDoneMsg{})
	assert.Equal(t, ViewSidePanel, m.currentView)
}

func TestHelpToggle(t *testing.T) {
	m, _ := newApp(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	assert.Equal(t, ViewHelp, m.currentView)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewSidePanel, m.currentView)
}

func TestFeedRepliesReachSidePanel(t *testing.T) {
	feed := make(chan model.Reply, 1)
	m, _ := newApp(t, WithReplyFeed(feed))

	inv := model.NewInvocation(model.OriginContextMenu, model.ActionSummarise, "picked text")
	feed <- model.ResultReply(inv, "short summary")

	msg := waitForReply(feed)()
	m, cmd := update(t, m, msg)
	assert.NotNil(t, cmd)
	assert.Equal(t, []string{"picked text", "short summary"}, m.sidePanel.Transcript())

	close(feed)
	m, cmd = update(t, m, waitForReply(feed)())
	assert.Nil(t, cmd)
	assert.Len(t, m.sidePanel.Transcript(), 2)
}

func TestQuit(t *testing.T) {
	m, _ := newApp(t)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestPaletteRunsCustomAction(t *testing.T) {
	m, _ := newApp(t)
	m.sidePanel.SetInput("bonjour")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, ViewCommand, m.currentView)

	m, cmd := update(t, m, command.ActionMsg{Action: "translate_en"})
	assert.Equal(t, ViewSidePanel, m.currentView)
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.sidePanel.InFlight())
	assert.Equal(t, []string{"bonjour", "Thinking"}, m.sidePanel.Transcript())
}

func TestPaletteBuiltins(t *testing.T) {
	m, _ := newApp(t)

	m, _ = update(t, m, command.CommandMsg(command.CmdOptions))
	assert.Equal(t, ViewOptions, m.currentView)

	m, _ = update(t, m, options.OptionsDoneMsg{})
	_, cmd := update(t, m, command.CommandMsg(command.CmdQuit))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
