package codegen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screencode/internal/gateway/repository/runlog"
	"screencode/internal/imagegen"
	llmclient "screencode/internal/llmClient"
)

const shot = "https://shots.example/page.png"

type fakeStreamer struct {
	chunks []string
	err    error
	got    []llmclient.Message
}

func (f *fakeStreamer) Name() string { return "fake" }

func (f *fakeStreamer) Stream(_ context.Context, messages []llmclient.Message, onChunk func(string)) (string, error) {
	f.got = messages
	if f.err != nil {
		return "", f.err
	}
	for _, c := range f.chunks {
		onChunk(c)
	}
	return strings.Join(f.chunks, ""), nil
}

type fakeImages struct {
	mu     sync.Mutex
	labels []string
	err    error
}

func (f *fakeImages) Generate(_ context.Context, label string) (string, error) {
	f.mu.Lock()
	f.labels = append(f.labels, label)
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return "https://img.example/" + label + ".png", nil
}

type fakeAccess struct{ ok bool }

func (f fakeAccess) Validate(context.Context, string) (bool, error) { return f.ok, nil }

type memRuns struct {
	mu      sync.Mutex
	entries []runlog.Entry
}

func (m *memRuns) Save(_ context.Context, e runlog.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *memRuns) Get(_ context.Context, id string) (runlog.Entry, error) {
	return runlog.Entry{}, runlog.ErrNotFound
}

type harness struct {
	svc      *Service
	streamer *fakeStreamer
	images   *fakeImages
	runs     *memRuns
	creds    []Credentials
	events   []Event
}

func newHarness(cfg Config, access AccessValidator, chunks ...string) *harness {
	h := &harness{
		streamer: &fakeStreamer{chunks: chunks},
		images:   &fakeImages{},
		runs:     &memRuns{},
	}
	streamers := func(_ context.Context, c Credentials) (llmclient.Streamer, error) {
		h.creds = append(h.creds, c)
		return h.streamer, nil
	}
	pipelines := func(_ context.Context, _ Credentials) (*imagegen.Pipeline, error) {
		return imagegen.New(h.images, imagegen.Config{RequestTimeout: time.Second}), nil
	}
	h.svc = New(cfg, access, streamers, pipelines, h.runs)
	return h
}

func (h *harness) emit(e Event) error {
	h.events = append(h.events, e)
	return nil
}

func (h *harness) ofType(t string) []string {
	var out []string
	for _, e := range h.events {
		if e.Type == t {
			out = append(out, e.Value)
		}
	}
	return out
}

func TestGenerateCreate(t *testing.T) {
	h := newHarness(Config{EnvAPIKey: "env-key"}, nil,
		`<html><body><img src="https://placehold.co/40x40" alt="logo">`, `</body></html>`)

	err := h.svc.Generate(context.Background(), Params{Image: shot}, h.emit)
	require.NoError(t, err)

	assert.Equal(t, []string{statusGeneratingCode, statusGeneratingImages, statusComplete}, h.ofType(EventStatus))
	assert.Len(t, h.ofType(EventChunk), 2)
	codes := h.ofType(EventSetCode)
	require.Len(t, codes, 1)
	assert.Contains(t, codes[0], `<img src="https://img.example/logo.png" alt="logo" width="40" height="40">`)
	assert.Equal(t, []string{"logo"}, h.images.labels)

	require.Len(t, h.runs.entries, 1)
	assert.Equal(t, "fake", h.runs.entries[0].Model)
	assert.Positive(t, h.runs.entries[0].CompletionTokens)
	assert.Equal(t, "env-key", h.creds[0].APIKey)
}

func TestGenerateImagesDisabled(t *testing.T) {
	h := newHarness(Config{}, nil, `<img src="https://placehold.co/1x1" alt="x">`)
	off := false

	err := h.svc.Generate(context.Background(), Params{Image: shot, IsImageGenerationEnabled: &off}, h.emit)
	require.NoError(t, err)
	assert.Empty(t, h.images.labels)
	assert.Equal(t, []string{`<img src="https://placehold.co/1x1" alt="x">`}, h.ofType(EventSetCode))
}

func TestGenerateReportsUnresolvedImages(t *testing.T) {
	h := newHarness(Config{}, nil, `<p><img src="https://placehold.co/1x1" alt="a"><img src="https://placehold.co/2x2" alt="b"></p>`)
	h.images.err = errors.New("quota")

	require.NoError(t, h.svc.Generate(context.Background(), Params{Image: shot}, h.emit))
	statuses := h.ofType(EventStatus)
	assert.Equal(t, statusComplete+" 2 images could not be generated.", statuses[len(statuses)-1])
}

func TestGenerateUpdateUsesHistoryCache(t *testing.T) {
	prev := `<div><img src="https://cdn.example/logo.png" alt="logo"></div>`
	h := newHarness(Config{}, nil,
		`<div><img src="https://placehold.co/10x10" alt="logo"><img src="https://placehold.co/20x20" alt="hero"></div>`)

	err := h.svc.Generate(context.Background(), Params{
		GenerationType: GenerationUpdate,
		Image:          shot,
		History:        []string{prev, "add a hero image"},
	}, h.emit)
	require.NoError(t, err)

	assert.Equal(t, []string{"hero"}, h.images.labels)
	code := h.ofType(EventSetCode)[0]
	assert.Contains(t, code, `src="https://cdn.example/logo.png"`)
	assert.Contains(t, code, `src="https://img.example/hero.png"`)

	require.Len(t, h.streamer.got, 4)
	assert.Equal(t, llmclient.RoleAssistant, h.streamer.got[2].Role)
	assert.Equal(t, "add a hero image", h.streamer.got[3].Text())
}

func TestGenerateUpdateRequiresHistory(t *testing.T) {
	h := newHarness(Config{}, nil)
	err := h.svc.Generate(context.Background(), Params{GenerationType: GenerationUpdate, Image: shot, History: []string{"x"}}, h.emit)
	assert.ErrorIs(t, err, ErrHistoryRequired)
	assert.Equal(t, []string{msgHistoryRequired}, h.ofType(EventError))
}

func TestGenerateMalformedCodeFallsBackToCompletion(t *testing.T) {
	raw := `<img alt="no src">`
	h := newHarness(Config{}, nil, raw)

	require.NoError(t, h.svc.Generate(context.Background(), Params{Image: shot}, h.emit))
	assert.Equal(t, []string{raw}, h.ofType(EventSetCode))
	statuses := h.ofType(EventStatus)
	assert.Equal(t, statusImagesFailed, statuses[len(statuses)-1])
}

func TestGenerateCredentials(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		access  AccessValidator
		params  Params
		wantKey string
		wantURL string
		wantErr error
	}{
		{
			name:    "access code unlocks platform key",
			cfg:     Config{PlatformAPIKey: "platform", EnvAPIKey: "env"},
			access:  fakeAccess{ok: true},
			params:  Params{AccessCode: "code", OpenAIAPIKey: "client"},
			wantKey: "platform",
		},
		{
			name:    "invalid access code",
			cfg:     Config{PlatformAPIKey: "platform"},
			access:  fakeAccess{ok: false},
			params:  Params{AccessCode: "code"},
			wantErr: ErrInvalidAccessCode,
		},
		{
			name:    "client key wins over env",
			cfg:     Config{EnvAPIKey: "env", EnvBaseURL: "http://env"},
			params:  Params{OpenAIAPIKey: "client", OpenAIBaseURL: "http://client"},
			wantKey: "client",
			wantURL: "http://client",
		},
		{
			name:    "base url ignored in production",
			cfg:     Config{IsProd: true, EnvAPIKey: "env", EnvBaseURL: "http://env"},
			params:  Params{OpenAIBaseURL: "http://client"},
			wantKey: "env",
		},
		{
			name:    "missing key",
			cfg:     Config{RequireAPIKey: true},
			wantErr: ErrMissingAPIKey,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(tc.cfg, tc.access, "<p>ok</p>")
			tc.params.Image = shot
			err := h.svc.Generate(context.Background(), tc.params, h.emit)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Len(t, h.ofType(EventError), 1)
				assert.Empty(t, h.creds)
				return
			}
			require.NoError(t, err)
			require.Len(t, h.creds, 1)
			assert.Equal(t, tc.wantKey, h.creds[0].APIKey)
			assert.Equal(t, tc.wantURL, h.creds[0].BaseURL)
		})
	}
}

func TestGenerateStreamErrorsAreFriendly(t *testing.T) {
	for sentinel, msg := range map[error]string{
		llmclient.ErrUnauthorized:  msgUnauthorized,
		llmclient.ErrModelNotFound: msgModelNotFound,
		llmclient.ErrRateLimited:   msgRateLimited,
	} {
		h := newHarness(Config{}, nil)
		h.streamer.err = fmt.Errorf("openai: %w", sentinel)
		err := h.svc.Generate(context.Background(), Params{Image: shot}, h.emit)
		assert.ErrorIs(t, err, sentinel)
		assert.Equal(t, []string{msg}, h.ofType(EventError))
		assert.Empty(t, h.runs.entries)
	}
}

func TestGenerateRejectsBadPrompt(t *testing.T) {
	h := newHarness(Config{}, nil)
	err := h.svc.Generate(context.Background(), Params{Image: shot, GeneratedCodeConfig: "cobol"}, h.emit)
	require.Error(t, err)
	assert.Len(t, h.ofType(EventError), 1)
}

func TestGenerateStopsWhenClientGone(t *testing.T) {
	h := newHarness(Config{}, nil, "<p>x</p>")
	gone := errors.New("closed")
	err := h.svc.Generate(context.Background(), Params{Image: shot}, func(Event) error { return gone })
	assert.ErrorIs(t, err, gone)
}

func TestGenerateStatusesFollowPipelinePhases(t *testing.T) {
	h := newHarness(Config{}, nil, `<main><img src="https://cdn.example/a.png" alt="done already"></main>`)

	require.NoError(t, h.svc.Generate(context.Background(), Params{Image: shot}, h.emit))
	assert.Equal(t, []string{statusGeneratingCode, statusComplete}, h.ofType(EventStatus))
	assert.Empty(t, h.images.labels)
}

func TestGenerateReportsFailedPhaseBeforeRawCode(t *testing.T) {
	raw := `<img alt="no src">`
	h := newHarness(Config{}, nil, raw)

	require.NoError(t, h.svc.Generate(context.Background(), Params{Image: shot}, h.emit))
	n := len(h.events)
	require.GreaterOrEqual(t, n, 2)
	assert.Equal(t, Event{Type: EventStatus, Value: statusImagesFailed}, h.events[n-2])
	assert.Equal(t, Event{Type: EventSetCode, Value: raw}, h.events[n-1])
}

func TestGeneratePipelineUnavailable(t *testing.T) {
	h := newHarness(Config{}, nil, "<p>x</p>")
	h.svc.pipelines = func(context.Context, Credentials) (*imagegen.Pipeline, error) {
		return nil, errors.New("no image key")
	}

	require.NoError(t, h.svc.Generate(context.Background(), Params{Image: shot}, h.emit))
	assert.Equal(t, []string{statusGeneratingCode, statusImagesFailed}, h.ofType(EventStatus))
	assert.Equal(t, []string{"<p>x</p>"}, h.ofType(EventSetCode))
}
