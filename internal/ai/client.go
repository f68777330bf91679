package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/solo-ai/solo/internal/model"
)

// Client performs single, unretried calls to a completion endpoint.
type Client struct {
	endpoint string
	model    string
	timeout  time.Duration
	client   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithTimeout bounds each call. Zero waits indefinitely.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a completion client for the given endpoint and model.
func New(endpoint, modelName string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = model.DefaultEndpoint
	}
	if modelName == "" {
		modelName = model.DefaultModel
	}

	c := &Client{
		endpoint: endpoint,
		model:    modelName,
		client:   &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig creates a client from the completion section of the config.
func NewFromConfig(cfg model.CompletionConfig, opts ...Option) *Client {
	opts = append([]Option{WithTimeout(cfg.Timeout)}, opts...)
	return New(cfg.Endpoint, cfg.Model, opts...)
}

// Model returns the model identifier sent with every request.
func (c *Client) Model() string {
	return c.model
}

// Complete sends prompt to the endpoint authenticated with credential and
// returns the first text payload of the reply. Failures are *TransportError,
// *RemoteError, or ErrEmptyOutput.
func (c *Client) Complete(
	ctx context.Context,
	credential string,
	prompt string,
) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	bodyBytes, err := json.Marshal(apiRequest{Model: c.model, Input: prompt})
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("marshaling request: %w", err)}
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes),
	)
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("creating request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &RemoteError{
			Status:  resp.StatusCode,
			Message: errorMessage(respBody, resp.StatusCode),
		}
	}

	var result apiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &TransportError{Err: fmt.Errorf("decoding response: %w", err)}
	}

	text := result.text()
	if text == "" {
		return "", ErrEmptyOutput
	}
	return text, nil
}

// errorMessage extracts a readable message from an error envelope, falling
// back to the status code.
func errorMessage(body []byte, status int) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && len(envelope.Error) > 0 {
		var detail apiErrorDetail
		if json.Unmarshal(envelope.Error, &detail) == nil {
			if detail.Message != "" {
				return detail.Message
			}
			if detail.Type != "" {
				return detail.Type
			}
		}
		var plain string
		if json.Unmarshal(envelope.Error, &plain) == nil && plain != "" {
			return plain
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}

// --- completion API types ---

type apiRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type apiContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiOutputItem struct {
	Type    string            `json:"type"`
	Content []apiContentBlock `json:"content"`
}

type apiChoice struct {
	Message struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"message"`
}

type apiResponse struct {
	OutputText string          `json:"output_text"`
	Output     []apiOutputItem `json:"output"`
	Choices    []apiChoice     `json:"choices"`
}

type apiErrorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// text returns the first non-empty payload in priority order: the flat
// output_text field, then content blocks, then chat-completion choices.
func (r apiResponse) text() string {
	if s := strings.TrimSpace(r.OutputText); s != "" {
		return s
	}
	for _, item := range r.Output {
		for _, block := range item.Content {
			if s := strings.TrimSpace(block.Text); s != "" {
				return s
			}
		}
	}
	if len(r.Choices) > 0 {
		var content string
		if json.Unmarshal(r.Choices[0].Message.Content, &content) == nil {
			return strings.TrimSpace(content)
		}
	}
	return ""
}
