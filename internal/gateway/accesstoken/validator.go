// Package accesstoken checks platform access codes against the external
// credits service.
package accesstoken

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

var ErrNotConfigured = errors.New("access token validation is not configured")

type Config struct {
	Endpoint  string
	Secret    string
	CacheSize int
	CacheTTL  time.Duration
}

// Validator asks the credits service whether an access code is usable.
// Verdicts are cached briefly so reconnecting clients do not hit the
// service on every request.
type Validator struct {
	http     *http.Client
	endpoint string
	secret   string
	cache    *expirable.LRU[string, bool]
}

func New(cfg Config) (*Validator, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = 1024
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Validator{
		http:     &http.Client{Timeout: 10 * time.Second},
		endpoint: strings.TrimSpace(cfg.Endpoint),
		secret:   cfg.Secret,
		cache:    expirable.NewLRU[string, bool](size, nil, ttl),
	}, nil
}

type validateReq struct {
	AccessCode string `json:"access_code"`
	Secret     string `json:"secret"`
}

type validateResp struct {
	Success bool `json:"success"`
}

// Validate reports whether code is accepted. Transport failures are
// returned as errors and never cached.
func (v *Validator) Validate(ctx context.Context, code string) (bool, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return false, nil
	}
	if v == nil || v.endpoint == "" {
		return false, ErrNotConfigured
	}
	if ok, hit := v.cache.Get(code); hit {
		return ok, nil
	}

	body, _ := json.Marshal(validateReq{AccessCode: code, Secret: v.secret})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := v.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("validate access code: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, fmt.Errorf("validate access code: unexpected status %d: %s", resp.StatusCode, string(raw))
	}
	var out validateResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("decode validation response: %w", err)
	}
	v.cache.Add(code, out.Success)
	return out.Success, nil
}
