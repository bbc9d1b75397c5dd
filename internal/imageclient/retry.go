package imageclient

import (
	"context"
	"errors"
	"time"

	llmclient "screencode/internal/llmClient"
)

// Retry retries Generate up to maxAttempts with exponential backoff
// starting at baseDelay. Permanent and non-retryable API errors stop
// immediately, as does context cancellation. A provider retry-after hint
// replaces the backoff when it is longer.
func Retry(maxAttempts int, baseDelay time.Duration) Middleware {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 300 * time.Millisecond
	}
	return func(next Client) Client {
		return &retrying{next: next, max: maxAttempts, base: baseDelay}
	}
}

type retrying struct {
	next Client
	max  int
	base time.Duration
}

func (r *retrying) Name() string { return r.next.Name() }

func (r *retrying) Generate(ctx context.Context, prompt string) (string, error) {
	var last error
	for i := 0; i < r.max; i++ {
		url, err := r.next.Generate(ctx, prompt)
		if err == nil {
			return url, nil
		}
		last = err
		wait, retry := r.backoff(err, i)
		if !retry || i == r.max-1 {
			break
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return "", last
}

func (r *retrying) backoff(err error, attempt int) (time.Duration, bool) {
	var pErr *llmclient.PermanentError
	if errors.As(err, &pErr) {
		return 0, false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return 0, false
	}
	wait := r.base * time.Duration(1<<attempt)
	var apiErr *llmclient.APIError
	if errors.As(err, &apiErr) {
		if !apiErr.Retryable() {
			return 0, false
		}
		if hint := apiErr.RateLimit.NextWait(); hint > wait {
			wait = hint
		}
	}
	return wait, true
}
