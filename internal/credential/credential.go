package credential

import (
	"context"
	"errors"
	"strings"
)

// KeyName is the fixed key the completion credential is stored under.
const KeyName = "openaiApiKey"

// ErrNotFound is returned by Store.Get when no credential is configured.
var ErrNotFound = errors.New("credential not configured")

// Store persists the single completion credential.
type Store interface {
	// Get returns the stored credential or ErrNotFound.
	Get(ctx context.Context) (string, error)
	// Set stores value, replacing any previous credential.
	Set(ctx context.Context, value string) error
	// Clear removes the credential. Clearing an absent credential is not an error.
	Clear(ctx context.Context) error
}

// Save trims value and stores it, or clears the store when nothing is left.
// It reports whether a credential is configured afterwards.
func Save(ctx context.Context, s Store, value string) (bool, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return false, s.Clear(ctx)
	}
	return true, s.Set(ctx, v)
}

// Sanitize trims surrounding whitespace and then drops every code point
// outside printable ASCII (0x20-0x7E). Pasted keys often carry zero-width
// or non-breaking characters that corrupt the Authorization header.
func Sanitize(v string) string {
	raw := strings.TrimSpace(v)
	var sb strings.Builder
	sb.Grow(len(raw))
	for _, r := range raw {
		if r >= 0x20 && r <= 0x7E {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Mask renders a credential for display without revealing it.
func Mask(v string) string {
	if v == "" {
		return ""
	}
	if len(v) <= 8 {
		return strings.Repeat("•", len(v))
	}
	return v[:4] + "…" + v[len(v)-2:]
}
