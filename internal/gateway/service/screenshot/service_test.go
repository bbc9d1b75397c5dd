package screenshot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nfake")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-1", r.URL.Query().Get("access_key"))
		assert.Equal(t, "https://example.com", r.URL.Query().Get("url"))
		assert.Equal(t, "png", r.URL.Query().Get("format"))
		_, _ = w.Write(png)
	}))
	defer srv.Close()

	got, err := New(srv.URL).Capture(context.Background(), "https://example.com", "key-1")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgpmYWtl", got)
}

func TestCaptureUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Capture(context.Background(), "https://example.com", "nope")
	assert.ErrorIs(t, err, ErrCapture)
}

func TestCaptureValidatesInput(t *testing.T) {
	s := New("http://unused.invalid")
	_, err := s.Capture(context.Background(), " ", "k")
	assert.ErrorIs(t, err, ErrMissingURL)
	_, err = s.Capture(context.Background(), "https://example.com", "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
