package dispatch

// State is a step in the lifecycle of a single invocation.
type State int

const (
	StateReceived State = iota
	StateCredentialChecked
	StateRejected
	StatePromptBuilt
	StateDispatched
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReceived:
		return "received"
	case StateCredentialChecked:
		return "credential_checked"
	case StateRejected:
		return "rejected"
	case StatePromptBuilt:
		return "prompt_built"
	case StateDispatched:
		return "dispatched"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == StateRejected || s == StateCompleted || s == StateFailed
}
