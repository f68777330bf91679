package options

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solo-ai/solo/internal/credential"
	"github.com/solo-ai/solo/internal/keys"
	"github.com/solo-ai/solo/tests/testutil"
)

func newOptions(t *testing.T) (Model, credential.Store) {
	t.Helper()
	s := credential.NewLocalStore(testutil.NewTestStore(t))
	return New(s, keys.DefaultKeyMap(), 80, 24), s
}

func TestInitLoadsMaskedKey(t *testing.T) {
	m, s := newOptions(t)
	require.NoError(t, s.Set(context.Background(), "sk-abcdefgh123"))

	m, _ = m.Update(m.Init()())

	assert.Contains(t, m.View(), "sk-a…23")
	assert.NotContains(t, m.View(), "sk-abcdefgh123")
}

func TestInitWithoutKey(t *testing.T) {
	m, _ := newOptions(t)

	m, _ = m.Update(m.Init()())

	assert.Contains(t, m.View(), "not configured")
}

func TestSaveTrimsAndReportsSaved(t *testing.T) {
	m, s := newOptions(t)

	m, cmd := m.Update(m.saveKey("  sk-new-key  ")())
	require.NotNil(t, cmd)

	assert.Equal(t, StatusSaved, m.Status())
	assert.Equal(t, ModeView, m.Mode())

	v, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sk-new-key", v)
}

func TestSaveEmptyClears(t *testing.T) {
	m, s := newOptions(t)
	require.NoError(t, s.Set(context.Background(), "sk-old"))

	m, _ = m.Update(m.saveKey("   ")())

	assert.Equal(t, StatusCleared, m.Status())
	_, err := s.Get(context.Background())
	assert.ErrorIs(t, err, credential.ErrNotFound)
}

func TestStatusExpiresOnlyForLatestChange(t *testing.T) {
	m, _ := newOptions(t)

	m, _ = m.Update(m.saveKey("sk-one")())
	first := m.statusSeq
	m, _ = m.Update(m.saveKey("")())

	m, _ = m.Update(statusExpiredMsg{seq: first})
	assert.Equal(t, StatusCleared, m.Status())

	m, _ = m.Update(statusExpiredMsg{seq: m.statusSeq})
	assert.Empty(t, m.Status())
}

func TestBackClosesOptions(t *testing.T) {
	m, _ := newOptions(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, OptionsDoneMsg{}, cmd())
}

func TestModeSwitching(t *testing.T) {
	m, _ := newOptions(t)

	edit, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	assert.Equal(t, ModeEdit, edit.Mode())

	confirm, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	assert.Equal(t, ModeConfirmClear, confirm.Mode())
}
