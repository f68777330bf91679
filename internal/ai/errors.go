package ai

import (
	"errors"
	"fmt"
)

// User-facing messages for failures that have no upstream text.
const (
	MsgCredentialMissing = "Add your API key in Solo AI → Options."
	MsgEmptyOutput       = "No text output from model."
)

var (
	// ErrCredentialMissing means no credential is configured. The
	// completion endpoint is never called in this case.
	ErrCredentialMissing = errors.New(MsgCredentialMissing)

	// ErrEmptyOutput means the endpoint answered successfully but no text
	// payload could be extracted from the envelope.
	ErrEmptyOutput = errors.New(MsgEmptyOutput)
)

// RemoteError is returned when the endpoint answers with a non-success status.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return "OpenAI error: " + e.Message
}

// TransportError is returned when the endpoint could not be reached or its
// reply could not be read.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Kind classifies a completion failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindCredentialMissing
	KindTransportFailure
	KindRemoteFailure
	KindEmptyOutput
)

func (k Kind) String() string {
	switch k {
	case KindCredentialMissing:
		return "credential_missing"
	case KindTransportFailure:
		return "transport_failure"
	case KindRemoteFailure:
		return "remote_failure"
	case KindEmptyOutput:
		return "empty_output"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// KindOf reports which failure kind err belongs to.
func KindOf(err error) Kind {
	var remote *RemoteError
	var transport *TransportError
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrCredentialMissing):
		return KindCredentialMissing
	case errors.Is(err, ErrEmptyOutput):
		return KindEmptyOutput
	case errors.As(err, &remote):
		return KindRemoteFailure
	case errors.As(err, &transport):
		return KindTransportFailure
	default:
		return KindUnknown
	}
}
