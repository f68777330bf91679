package model

import "github.com/google/uuid"

// MessageType is the discriminator carried by every relayed message.
type MessageType string

const (
	MsgRunFromPopup     MessageType = "RUN_FROM_POPUP"
	MsgRunFromSidePanel MessageType = "RUN_FROM_SIDEPANEL"
	MsgResult           MessageType = "SOLO_RESULT"
	MsgError            MessageType = "SOLO_ERROR"
)

// Origin identifies the surface an invocation was created by.
type Origin string

const (
	OriginPopup       Origin = "popup"
	OriginSidePanel   Origin = "sidepanel"
	OriginContextMenu Origin = "context_menu"
	OriginCLI         Origin = "cli"
)

// Invocation is a single request to transform a piece of text with an action.
// It is consumed exactly once by the dispatch coordinator.
type Invocation struct {
	// ID correlates the invocation with its reply.
	ID     string
	Origin Origin
	Action ActionTag
	Text   string
}

// NewInvocation creates an invocation with a fresh correlation ID.
func NewInvocation(origin Origin, action ActionTag, text string) Invocation {
	return Invocation{
		ID:     uuid.NewString(),
		Origin: origin,
		Action: action,
		Text:   text,
	}
}

// RunMessage is the wire shape a UI surface sends to request a dispatch.
type RunMessage struct {
	Type   MessageType `json:"type"`
	Action string      `json:"action"`
	Text   string      `json:"text"`
}

// OriginForType maps an inbound message type to its origin. The second
// result is false for types that do not request a dispatch.
func OriginForType(t MessageType) (Origin, bool) {
	switch t {
	case MsgRunFromPopup:
		return OriginPopup, true
	case MsgRunFromSidePanel:
		return OriginSidePanel, true
	default:
		return "", false
	}
}

// Reply is the terminal outcome of an invocation, delivered once to the
// originating surface. Type is either MsgResult or MsgError.
type Reply struct {
	Type    MessageType `json:"type"`
	ID      string      `json:"id"`
	Action  ActionTag   `json:"action,omitempty"`
	Input   string      `json:"input,omitempty"`
	Output  string      `json:"output,omitempty"`
	Message string      `json:"message,omitempty"`
}

// IsError reports whether the reply carries a failure.
func (r Reply) IsError() bool {
	return r.Type == MsgError
}

// ResultReply builds a success reply for inv.
func ResultReply(inv Invocation, output string) Reply {
	r := Reply{
		Type:   MsgResult,
		ID:     inv.ID,
		Action: inv.Action,
		Output: output,
	}
	// Context-menu replies echo the selection so the side panel can show it.
	if inv.Origin == OriginContextMenu {
		r.Input = inv.Text
	}
	return r
}

// ErrorReply builds a failure reply for inv.
func ErrorReply(inv Invocation, message string) Reply {
	return Reply{
		Type:    MsgError,
		ID:      inv.ID,
		Message: message,
	}
}
