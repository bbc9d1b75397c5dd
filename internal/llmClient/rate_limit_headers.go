package llmclient

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// RateLimitHeaders represents normalized provider rate-limit signals.
type RateLimitHeaders struct {
	RetryAfterSeconds int

	RemainingRequests int
	RemainingTokens   int

	ResetRequests time.Duration
	ResetTokens   time.Duration
}

// ParseRateLimitHeaders reads the OpenAI-style retry-after and
// x-ratelimit-* headers. ok is false when none are present.
func ParseRateLimitHeaders(h http.Header) (RateLimitHeaders, bool) {
	var out RateLimitHeaders
	found := false
	if v, ok := headerInt(h, "retry-after"); ok {
		out.RetryAfterSeconds = v
		found = true
	}
	out.RemainingRequests = -1
	if v, ok := headerInt(h, "x-ratelimit-remaining-requests"); ok {
		out.RemainingRequests = v
		found = true
	}
	out.RemainingTokens = -1
	if v, ok := headerInt(h, "x-ratelimit-remaining-tokens"); ok {
		out.RemainingTokens = v
		found = true
	}
	if d, ok := headerDuration(h, "x-ratelimit-reset-requests"); ok {
		out.ResetRequests = d
		found = true
	}
	if d, ok := headerDuration(h, "x-ratelimit-reset-tokens"); ok {
		out.ResetTokens = d
		found = true
	}
	return out, found
}

// NextWait converts the signals to a wait duration, zero when unknown.
func (r RateLimitHeaders) NextWait() time.Duration {
	if r.RetryAfterSeconds > 0 {
		return time.Duration(r.RetryAfterSeconds) * time.Second
	}
	if r.RemainingTokens == 0 && r.ResetTokens > 0 {
		return r.ResetTokens
	}
	if r.RemainingRequests == 0 && r.ResetRequests > 0 {
		return r.ResetRequests
	}
	return 0
}

func headerInt(h http.Header, key string) (int, bool) {
	raw := strings.TrimSpace(h.Get(key))
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func headerDuration(h http.Header, key string) (time.Duration, bool) {
	raw := strings.TrimSpace(h.Get(key))
	if raw == "" {
		return 0, false
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return d, true
}
