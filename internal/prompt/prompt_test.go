package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solo-ai/solo/internal/model"
)

func TestBuild_Deterministic(t *testing.T) {
	for _, action := range model.PresetActions {
		t.Run(string(action), func(t *testing.T) {
			a := Build(action, "Long article...")
			b := Build(action, "Long article...")
			assert.Equal(t, a, b)
			assert.True(t, strings.HasPrefix(a, header))
			assert.True(t, strings.HasSuffix(a, "Long article..."))
		})
	}
}

func TestBuild_TemplatesDiffer(t *testing.T) {
	seen := map[string]model.ActionTag{}
	for _, action := range append(model.PresetActions, "unknown") {
		p := Build(action, "same text")
		if prev, dup := seen[p]; dup {
			t.Fatalf("%s and %s produced the same prompt", prev, action)
		}
		seen[p] = action
	}
}

func TestBuild_UnknownActionFallsBack(t *testing.T) {
	tests := []model.ActionTag{"", "freeform", "translate_to_french", model.ActionTag("SUMMARISE")}
	for _, action := range tests {
		t.Run(string(action), func(t *testing.T) {
			p := Build(action, "")
			assert.NotEmpty(t, p)
			assert.Contains(t, p, "Operate intelligently on the provided text")
			assert.False(t, Known(action))
		})
	}
}

func TestBuild_TextIsVerbatim(t *testing.T) {
	text := "<script>alert(1)</script>\n**not bold** {{.X}} " + strings.Repeat("x", 100000)
	p := Build(model.ActionKeyPoints, text)
	assert.True(t, strings.HasSuffix(p, text))
	assert.Contains(t, p, "Extract the key insights")
}

func TestKnown(t *testing.T) {
	for _, action := range model.PresetActions {
		assert.True(t, Known(action), action)
	}
}
