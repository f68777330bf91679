package model

// ActionTag selects which prompt template is applied to an invocation's text.
// Any string is a valid tag; tags without a dedicated template fall back to
// the freeform template.
type ActionTag string

const (
	ActionSummarise  ActionTag = "summarise"
	ActionToneChange ActionTag = "tone_change"
	ActionKeyPoints  ActionTag = "key_points"
	ActionFreeform   ActionTag = "freeform"
)

// PresetActions lists the actions that have a dedicated template, in the
// order surfaces present them.
var PresetActions = []ActionTag{
	ActionSummarise,
	ActionToneChange,
	ActionKeyPoints,
}

// Label returns the human-readable name of the action.
func (a ActionTag) Label() string {
	switch a {
	case ActionSummarise:
		return "Summarise"
	case ActionToneChange:
		return "Tone change (professional)"
	case ActionKeyPoints:
		return "Key points"
	case ActionFreeform, "":
		return "Freeform"
	default:
		return string(a)
	}
}

// IsPreset reports whether the action has a dedicated template.
func (a ActionTag) IsPreset() bool {
	for _, p := range PresetActions {
		if a == p {
			return true
		}
	}
	return false
}
