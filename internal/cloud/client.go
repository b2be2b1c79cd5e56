// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Request constants. The model and token cap are fixed for every call.
const (
	// DefaultEndpoint is the chat completions URL.
	DefaultEndpoint = "https://api.openai.com/v1/chat/completions"

	// Model is the completion model sent with every request.
	Model = "gpt-3.5-turbo"

	// MaxTokens caps the length of each reply.
	MaxTokens = 150

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 10 * 1024 * 1024
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrRequestFailed matches every completion failure.
var ErrRequestFailed = errors.New("API request failed")

// RequestFailedError describes a failed completion call. StatusCode is zero
// when no HTTP response was received.
type RequestFailedError struct {
	Status     string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *RequestFailedError) Error() string {
	if e.StatusCode == 0 && e.Err != nil {
		return fmt.Sprintf("%s: %v", ErrRequestFailed.Error(), e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrRequestFailed.Error(), e.Status)
}

// Is reports whether target is ErrRequestFailed.
func (e *RequestFailedError) Is(target error) bool {
	return target == ErrRequestFailed
}

// Unwrap returns the underlying cause, if any.
func (e *RequestFailedError) Unwrap() error {
	return e.Err
}

// statusText returns the reason phrase of an HTTP status line ("Unauthorized"
// from "401 Unauthorized").
func statusText(resp *http.Response) string {
	if _, text, ok := strings.Cut(resp.Status, " "); ok && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// ChatMessage represents a single message in a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`    // "user", "assistant", or "system"
	Content string `json:"content"` // The message content
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) ChatMessage {
	return ChatMessage{Role: "user", Content: content}
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content string) ChatMessage {
	return ChatMessage{Role: "assistant", Content: content}
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) ChatMessage {
	return ChatMessage{Role: "system", Content: content}
}

// ChatRequest represents a request to the chat completions endpoint.
type ChatRequest struct {
	Model     string        `json:"model"`
	Messages  []ChatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

// ChatResponse represents a response from the chat completions endpoint.
type ChatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// GetContent returns the content of the first choice and whether one exists.
func (r *ChatResponse) GetContent() (string, bool) {
	if len(r.Choices) > 0 {
		return r.Choices[0].Message.Content, true
	}
	return "", false
}

// =============================================================================
// CLIENT
// =============================================================================

// Client sends completion requests. It is safe for concurrent use.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the completions URL.
func WithEndpoint(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.endpoint = url
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for apiKey. An empty key is allowed; the
// endpoint then rejects requests and Complete reports the failure.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		endpoint:   DefaultEndpoint,
		httpClient: &http.Client{},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the completions URL in use.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// IsConfigured returns true if the client has an API key configured.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// KeyFingerprint returns the first 8 hex characters of the key's SHA-256,
// or "none" when no key is set.
func (c *Client) KeyFingerprint() string {
	if c.apiKey == "" {
		return "none"
	}
	h := sha256.Sum256([]byte(c.apiKey))
	return hex.EncodeToString(h[:4])
}

// Complete sends turns to the endpoint and returns the first choice's text.
func (c *Client) Complete(ctx context.Context, turns []ChatMessage) (string, error) {
	body, err := json.Marshal(ChatRequest{
		Model:     Model,
		Messages:  turns,
		MaxTokens: MaxTokens,
	})
	if err != nil {
		return "", &RequestFailedError{Err: errors.Wrap(err, "encode request")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &RequestFailedError{Err: errors.Wrap(err, "build request")}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	// Headers and bodies are not logged: they carry the key and user text.
	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("turns", len(turns)).
		Str("key", c.KeyFingerprint()).
		Msg("completion request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &RequestFailedError{Err: errors.Wrap(err, "send request")}
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("completion response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseSize))
		return "", &RequestFailedError{Status: statusText(resp), StatusCode: resp.StatusCode}
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, MaxResponseSize)).Decode(&chatResp); err != nil {
		return "", &RequestFailedError{
			Status:     statusText(resp),
			StatusCode: resp.StatusCode,
			Err:        errors.Wrap(err, "decode response"),
		}
	}

	content, ok := chatResp.GetContent()
	if !ok {
		return "", &RequestFailedError{
			Status:     "no choices in response",
			StatusCode: resp.StatusCode,
		}
	}
	return content, nil
}
