package llmclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIClientStream(t *testing.T) {
	var gotReq map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &gotReq))

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"<html>\"}}]}\n\n")
		fmt.Fprint(w, ": keep-alive\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"</html>\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	c := NewOpenAIClient("sk-test", srv.URL+"/", "gpt-test")
	var chunks []string
	full, err := c.Stream(context.Background(), []Message{
		TextMessage(RoleSystem, "be terse"),
		{Role: RoleUser, Parts: []Part{ImagePart("data:image/png;base64,AA=="), TextPart("build it")}},
	}, func(s string) { chunks = append(chunks, s) })

	require.NoError(t, err)
	assert.Equal(t, "<html></html>", full)
	assert.Equal(t, []string{"<html>", "</html>"}, chunks)
	assert.Equal(t, "gpt-test", gotReq["model"])
	assert.Equal(t, true, gotReq["stream"])

	msgs := gotReq["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "be terse", msgs[0].(map[string]any)["content"])
	parts := msgs[1].(map[string]any)["content"].([]any)
	assert.Equal(t, "image_url", parts[0].(map[string]any)["type"])
}

func TestOpenAIClientStatusErrors(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusNotFound, ErrModelNotFound},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusBadGateway, ErrRequestFailed},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("retry-after", "3")
				http.Error(w, `{"error":{"message":"nope"}}`, tc.status)
			}))
			defer srv.Close()

			_, err := NewOpenAIClient("k", srv.URL, "").Stream(context.Background(), nil, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want))

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, 3, apiErr.RateLimit.RetryAfterSeconds)
		})
	}
}

func TestOpenAIClientStreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"<p>\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"error\":{\"message\":\"overloaded\"}}\n\n")
	}))
	defer srv.Close()

	full, err := NewOpenAIClient("k", srv.URL, "").Stream(context.Background(), nil, nil)
	assert.True(t, errors.Is(err, ErrStreamError))
	assert.Equal(t, "<p>", full)
}

func TestMessageJSONRoundTrip(t *testing.T) {
	in := []Message{
		TextMessage(RoleAssistant, "<html></html>"),
		{Role: RoleUser, Parts: []Part{ImagePart("https://x/y.png"), TextPart("hi")}},
	}
	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out []Message
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in, out)
	assert.Equal(t, "hi", out[1].Text())
}

func TestMockClientStreamsCompletion(t *testing.T) {
	m := &MockClient{Completion: "abcdefg", ChunkSize: 3}
	var chunks []string
	full, err := m.Stream(context.Background(), nil, func(s string) { chunks = append(chunks, s) })
	require.NoError(t, err)
	assert.Equal(t, "abcdefg", full)
	assert.Equal(t, []string{"abc", "def", "g"}, chunks)
}

func TestParseDataURL(t *testing.T) {
	mimeType, data, err := ParseDataURL(DataURL("image/png", []byte{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, []byte{1, 2, 3}, data)

	_, _, err = ParseDataURL("https://example.com/a.png")
	assert.True(t, errors.Is(err, ErrInvalidDataURL))
	_, _, err = ParseDataURL("data:image/png,plain")
	assert.True(t, errors.Is(err, ErrInvalidDataURL))
}

func TestEstimateTokens(t *testing.T) {
	assert.Zero(t, EstimateTokens("   "))
	assert.Positive(t, EstimateTokens("<div class=\"p-4\">hello world</div>"))
}
