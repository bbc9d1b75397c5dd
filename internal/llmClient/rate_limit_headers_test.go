package llmclient

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRateLimitHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("x-ratelimit-remaining-requests", "0")
	h.Set("x-ratelimit-remaining-tokens", "17997")
	h.Set("x-ratelimit-reset-requests", "2m59.56s")
	h.Set("x-ratelimit-reset-tokens", "7.66s")

	got, ok := ParseRateLimitHeaders(h)
	require.True(t, ok)
	assert.Equal(t, 0, got.RemainingRequests)
	assert.Equal(t, 17997, got.RemainingTokens)
	assert.Equal(t, 2*time.Minute+59*time.Second+560*time.Millisecond, got.ResetRequests)
	assert.Equal(t, 2*time.Minute+59*time.Second+560*time.Millisecond, got.NextWait())
}

func TestRateLimitHeadersRetryAfterWins(t *testing.T) {
	h := http.Header{}
	h.Set("retry-after", "2")
	h.Set("x-ratelimit-remaining-tokens", "0")
	h.Set("x-ratelimit-reset-tokens", "7s")

	got, ok := ParseRateLimitHeaders(h)
	require.True(t, ok)
	assert.Equal(t, 2*time.Second, got.NextWait())
}

func TestParseRateLimitHeadersAbsent(t *testing.T) {
	got, ok := ParseRateLimitHeaders(http.Header{})
	assert.False(t, ok)
	assert.Zero(t, got.NextWait())
}
