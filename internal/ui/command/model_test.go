package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solo-ai/solo/internal/model"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  tea.Msg
	}{
		{"", nil},
		{"   ", nil},
		{"options", CommandMsg(CmdOptions)},
		{" quit ", CommandMsg(CmdQuit)},
		{"summarise", ActionMsg{Action: model.ActionSummarise}},
		{"translate_fr", ActionMsg{Action: "translate_fr"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestEnterEmitsAndResets(t *testing.T) {
	m := New(80, 24)
	m.input.SetValue("key_points")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ActionMsg{Action: model.ActionKeyPoints}, cmd())
	assert.Empty(t, m.input.Value())
}
