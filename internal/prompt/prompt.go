// Package prompt turns an action and a piece of selected text into the
// instruction string sent to the completion endpoint.
package prompt

import (
	"strings"

	"github.com/solo-ai/solo/internal/model"
)

const header = `You are SOLO, a precise, concise writing assistant embedded in the browser.
Your style: clear, factual, minimal fluff.
Always format outputs in clean Markdown (use bullet points, bold key terms, short sentences).
Prefer readable spacing and visually distinct sections.`

type template struct {
	task      string
	rules     []string
	textLabel string
}

var templates = map[model.ActionTag]template{
	model.ActionSummarise: {
		task: "Summarise the following text clearly and objectively.",
		rules: []string{
			"Capture only the most important points, facts, and numbers.",
			"Group related ideas under brief, bold headings.",
			"Aim for 8-12 concise bullet points (or fewer if the text is short).",
			"Avoid repetition or unnecessary phrasing.",
		},
		textLabel: "Text to Summarise",
	},
	model.ActionToneChange: {
		task: "Rewrite the text in a **professional, confident, and concise** tone.",
		rules: []string{
			"Preserve the original meaning, facts, and structure.",
			"Remove redundancy and filler words.",
			"Maintain a natural, human flow, not robotic.",
			"Format the output in clean Markdown with short paragraphs.",
		},
		textLabel: "Text to Rewrite",
	},
	model.ActionKeyPoints: {
		task: "Extract the key insights and facts as bullet points.",
		rules: []string{
			"Each point should be **1-2 sentences max**.",
			"Use bold to highlight key terms or concepts.",
			"Exclude trivial or repetitive information.",
			"Maintain a neutral and factual tone.",
		},
		textLabel: "Text to Analyse",
	},
}

var freeform = template{
	task:      "Operate intelligently on the provided text based on user intent.",
	textLabel: "Text",
}

// Known reports whether action has a dedicated template.
func Known(action model.ActionTag) bool {
	_, ok := templates[action]
	return ok
}

// Build returns the prompt for action applied to text. Unknown actions use
// the freeform template. text is embedded verbatim.
func Build(action model.ActionTag, text string) string {
	tpl, ok := templates[action]
	if !ok {
		tpl = freeform
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n\n**Task:** ")
	sb.WriteString(tpl.task)
	sb.WriteString("\n")
	for _, r := range tpl.rules {
		sb.WriteString("- ")
		sb.WriteString(r)
		sb.WriteString("\n")
	}
	sb.WriteString("\n**")
	sb.WriteString(tpl.textLabel)
	sb.WriteString(":**\n")
	sb.WriteString(text)

	return sb.String()
}
