package screenshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	llmclient "screencode/internal/llmClient"
)

var (
	ErrMissingURL    = errors.New("screenshot: url is required")
	ErrMissingAPIKey = errors.New("screenshot: api key is required")
	ErrCapture       = errors.New("screenshot: capture failed")
)

const maxScreenshotBytes = 32 << 20

// Service captures web pages through a ScreenshotOne-compatible API.
type Service struct {
	http     *http.Client
	endpoint string
}

func New(endpoint string) *Service {
	return &Service{
		http:     &http.Client{Timeout: 60 * time.Second},
		endpoint: strings.TrimSpace(endpoint),
	}
}

// Capture returns a full-page PNG of target as a data URL.
func (s *Service) Capture(ctx context.Context, target, apiKey string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", ErrMissingURL
	}
	if strings.TrimSpace(apiKey) == "" {
		return "", ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("access_key", apiKey)
	q.Set("url", target)
	q.Set("full_page", "true")
	q.Set("device_scale_factor", "1")
	q.Set("format", "png")
	q.Set("block_ads", "true")
	q.Set("block_cookie_banners", "true")
	q.Set("block_trackers", "true")
	q.Set("cache", "false")
	q.Set("viewport_width", "342")
	q.Set("viewport_height", "684")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCapture, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxScreenshotBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCapture, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrCapture, resp.StatusCode, truncate(string(body), 200))
	}
	return llmclient.DataURL("image/png", body), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
