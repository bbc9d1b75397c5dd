package llmclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrRequestFailed = errors.New("llm: request failed")
	ErrStreamError   = errors.New("llm: stream error")
	ErrUnauthorized  = errors.New("llm: unauthorized")
	ErrModelNotFound = errors.New("llm: model not found")
	ErrRateLimited   = errors.New("llm: rate limited")
)

// Streamer streams a completion for a conversation. onChunk receives each
// content delta in order; the full completion is returned at the end.
type Streamer interface {
	Name() string
	Stream(ctx context.Context, messages []Message, onChunk func(chunk string)) (string, error)
}

// PermanentError indicates an error that will not resolve with retries.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}

// APIError is a non-2xx answer from a provider HTTP API. errors.Is matches
// it against the sentinel for its status class.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
	RateLimit  RateLimitHeaders
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Provider, e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrModelNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return ErrRequestFailed
	}
}

// Retryable reports whether a retry could change the outcome.
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}
