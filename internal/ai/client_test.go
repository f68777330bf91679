package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEndpoint serves body with status and records the last request.
type stubEndpoint struct {
	status int
	body   string
	calls  atomic.Int32

	mu   sync.Mutex
	auth string
	req  apiRequest
}

func (s *stubEndpoint) start(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		s.mu.Lock()
		s.auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&s.req)
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.status)
		_, _ = w.Write([]byte(s.body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestComplete_EnvelopeShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"output_text", `{"output_text": "Hello"}`, "Hello"},
		{"content blocks", `{"output": [{"content": [{"text": "Hi"}]}]}`, "Hi"},
		{"choices", `{"choices": [{"message": {"content": "Yo"}}]}`, "Yo"},
		{"output_text wins", `{"output_text": "A", "output": [{"content": [{"text": "B"}]}], "choices": [{"message": {"content": "C"}}]}`, "A"},
		{"blocks before choices", `{"output_text": "", "output": [{"content": [{"text": "B"}]}], "choices": [{"message": {"content": "C"}}]}`, "B"},
		{"skips empty items", `{"output": [{"type": "reasoning", "content": []}, {"type": "message", "content": [{"text": ""}, {"text": "later"}]}]}`, "later"},
		{"trimmed", `{"output_text": "  • point one \n"}`, "• point one"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubEndpoint{status: http.StatusOK, body: tt.body}
			srv := stub.start(t)

			c := New(srv.URL, "test-model")
			got, err := c.Complete(context.Background(), "sk-abc", "prompt")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComplete_RequestShape(t *testing.T) {
	stub := &stubEndpoint{status: http.StatusOK, body: `{"output_text": "ok"}`}
	srv := stub.start(t)

	c := New(srv.URL, "gpt-test")
	_, err := c.Complete(context.Background(), "sk-abc123", "Summarise this")
	require.NoError(t, err)

	assert.Equal(t, int32(1), stub.calls.Load())
	stub.mu.Lock()
	defer stub.mu.Unlock()
	assert.Equal(t, "Bearer sk-abc123", stub.auth)
	assert.Equal(t, "gpt-test", stub.req.Model)
	assert.Equal(t, "Summarise this", stub.req.Input)
}

func TestComplete_EmptyOutput(t *testing.T) {
	for _, body := range []string{
		`{}`,
		`{"output_text": "   "}`,
		`{"output": [{"content": []}], "choices": []}`,
		`{"choices": [{"message": {"content": null}}]}`,
	} {
		stub := &stubEndpoint{status: http.StatusOK, body: body}
		srv := stub.start(t)

		_, err := New(srv.URL, "m").Complete(context.Background(), "k", "p")
		assert.ErrorIs(t, err, ErrEmptyOutput, body)
		assert.Equal(t, KindEmptyOutput, KindOf(err))
		assert.Equal(t, "No text output from model.", err.Error())
	}
}

func TestComplete_RemoteFailure(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message", http.StatusBadRequest, `{"error": {"message": "bad request"}}`, "bad request"},
		{"type only", http.StatusTooManyRequests, `{"error": {"type": "rate_limit_exceeded"}}`, "rate_limit_exceeded"},
		{"string error", http.StatusForbidden, `{"error": "forbidden"}`, "forbidden"},
		{"no envelope", http.StatusBadGateway, `<html>bad gateway</html>`, "HTTP 502"},
		{"empty body", http.StatusUnauthorized, ``, "HTTP 401"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubEndpoint{status: tt.status, body: tt.body}
			srv := stub.start(t)

			_, err := New(srv.URL, "m").Complete(context.Background(), "k", "p")
			var remote *RemoteError
			require.True(t, errors.As(err, &remote))
			assert.Equal(t, tt.want, remote.Message)
			assert.Equal(t, tt.status, remote.Status)
			assert.Equal(t, "OpenAI error: "+tt.want, err.Error())
			assert.Equal(t, KindRemoteFailure, KindOf(err))
		})
	}
}

func TestComplete_TransportFailure(t *testing.T) {
	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := New(url, "m").Complete(context.Background(), "k", "p")
		assert.Equal(t, KindTransportFailure, KindOf(err))
	})

	t.Run("malformed body", func(t *testing.T) {
		stub := &stubEndpoint{status: http.StatusOK, body: `{"output_text": `}
		srv := stub.start(t)

		_, err := New(srv.URL, "m").Complete(context.Background(), "k", "p")
		assert.Equal(t, KindTransportFailure, KindOf(err))
	})
}

func TestComplete_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c := New(srv.URL, "m", WithTimeout(50*time.Millisecond))
	_, err := c.Complete(context.Background(), "k", "p")
	assert.Equal(t, KindTransportFailure, KindOf(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNew_Defaults(t *testing.T) {
	c := New("", "")
	assert.Equal(t, "gpt-4o-mini", c.Model())
	assert.Equal(t, "https://api.openai.com/v1/responses", c.endpoint)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindCredentialMissing, KindOf(ErrCredentialMissing))
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("other")))
	assert.Equal(t, "remote_failure", KindRemoteFailure.String())
}
