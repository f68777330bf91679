package panel

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/solo-ai/solo/internal/model"
)

func TestRenderTitleAndLabel(t *testing.T) {
	out := ansi.Strip(Render("body text", "summarise", 40))

	assert.Contains(t, out, "Solo AI · summarise")
	assert.Contains(t, out, "body text")
}

func TestRenderWithoutLabel(t *testing.T) {
	out := ansi.Strip(Render("body", "", 40))

	assert.Contains(t, out, "Solo AI")
	assert.NotContains(t, out, "·")
}

func TestRenderRespectsMaxWidth(t *testing.T) {
	out := Render("word ", "", 500)

	assert.LessOrEqual(t, lipgloss.Width(out), MaxWidth)
}

func TestForReply(t *testing.T) {
	inv := model.NewInvocation(model.OriginCLI, model.ActionKeyPoints, "text")

	ok := ansi.Strip(ForReply(model.ResultReply(inv, "  - point\n"), 60))
	assert.Contains(t, ok, "Solo AI · key_points")
	assert.Contains(t, ok, "- point")

	failed := ansi.Strip(ForReply(model.ErrorReply(inv, "No text output from model."), 60))
	assert.Contains(t, failed, "Solo AI · error")
	assert.Contains(t, failed, "ERROR: No text output from model.")
}
