package codegen

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"screencode/internal/gateway/repository/runlog"
	"screencode/internal/imagegen"
	llmclient "screencode/internal/llmClient"
	"screencode/internal/prompt"
)

var (
	ErrInvalidAccessCode = errors.New("invalid access code")
	ErrMissingAPIKey     = errors.New("openai api key is required")
	ErrHistoryRequired   = errors.New("update requires history")
	ErrUnknownGeneration = errors.New("unknown generation type")
)

// AccessValidator checks paid access codes.
type AccessValidator interface {
	Validate(ctx context.Context, code string) (bool, error)
}

// StreamerFactory builds the completion client for one session.
type StreamerFactory func(ctx context.Context, creds Credentials) (llmclient.Streamer, error)

// PipelineFactory builds the image pipeline for one session.
type PipelineFactory func(ctx context.Context, creds Credentials) (*imagegen.Pipeline, error)

type Config struct {
	IsProd bool
	// RequireAPIKey is false when no component of a session talks to OpenAI.
	RequireAPIKey  bool
	EnvAPIKey      string
	EnvBaseURL     string
	PlatformAPIKey string
}

type Service struct {
	cfg       Config
	access    AccessValidator
	streamers StreamerFactory
	pipelines PipelineFactory
	runs      runlog.Store
	now       func() time.Time
}

// New wires a Service. access and runs may be nil.
func New(cfg Config, access AccessValidator, streamers StreamerFactory, pipelines PipelineFactory, runs runlog.Store) *Service {
	return &Service{
		cfg:       cfg,
		access:    access,
		streamers: streamers,
		pipelines: pipelines,
		runs:      runs,
		now:       time.Now,
	}
}

// Generate runs one code generation session and reports progress through
// emit. Failures the user should see are emitted as error events before
// Generate returns them.
func (s *Service) Generate(ctx context.Context, p Params, emit Emitter) error {
	fail := func(msg string, err error) error {
		if emitErr := emit(Event{Type: EventError, Value: msg}); emitErr != nil {
			return emitErr
		}
		return err
	}

	creds, err := s.resolveCredentials(ctx, p)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAccessCode):
			return fail(msgInvalidAccessCode, err)
		case errors.Is(err, ErrMissingAPIKey):
			return fail(msgMissingAPIKey, err)
		}
		return fail("Error validating access code. Please try again.", err)
	}

	if err := emit(Event{Type: EventStatus, Value: statusGeneratingCode}); err != nil {
		return err
	}

	messages, err := prompt.Assemble(p.Image, p.GeneratedCodeConfig, p.ResultImage)
	if err != nil {
		return fail(fmt.Sprintf("Error assembling prompt: %v", err), err)
	}

	var cache imagegen.Cache
	switch p.generationType() {
	case GenerationCreate:
	case GenerationUpdate:
		if len(p.History) < 2 {
			return fail(msgHistoryRequired, ErrHistoryRequired)
		}
		messages = prompt.AppendHistory(messages, p.History)
	default:
		err := fmt.Errorf("%w: %q", ErrUnknownGeneration, p.GenerationType)
		return fail(err.Error(), err)
	}

	streamer, err := s.streamers(ctx, creds)
	if err != nil {
		return fail(userMessage(err), err)
	}
	completion, err := streamer.Stream(ctx, messages, func(chunk string) {
		if emitErr := emit(Event{Type: EventChunk, Value: chunk}); emitErr != nil {
			log.Printf("codegen chunk dropped: %v", emitErr)
		}
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("codegen stream failed model=%s: %v", streamer.Name(), err)
		return fail(userMessage(err), err)
	}

	s.saveRun(ctx, streamer.Name(), messages, completion)

	if !p.imagesEnabled() {
		if err := emit(Event{Type: EventSetCode, Value: completion}); err != nil {
			return err
		}
		return emit(Event{Type: EventStatus, Value: statusComplete})
	}

	pipeline, err := s.pipelines(ctx, creds)
	if err != nil {
		log.Printf("codegen image pipeline unavailable: %v", err)
		if err := emit(Event{Type: EventStatus, Value: statusImagesFailed}); err != nil {
			return err
		}
		return emit(Event{Type: EventSetCode, Value: completion})
	}
	if p.generationType() == GenerationUpdate {
		cache = previousCache(p.History, pipeline.Prefix())
	}

	progress := phaseReporter{emit: emit}
	out, err := pipeline.Run(ctx, completion, cache, progress.notify)
	if progress.err != nil {
		return progress.err
	}
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("codegen image generation failed: %v", err)
		return emit(Event{Type: EventSetCode, Value: completion})
	}
	if err := emit(Event{Type: EventSetCode, Value: out.Code}); err != nil {
		return err
	}
	return emit(Event{Type: EventStatus, Value: completeStatus(len(out.Unresolved))})
}

// phaseReporter turns pipeline phases into status events. Completion is
// reported by the caller after setCode, since it carries the unresolved
// count.
type phaseReporter struct {
	emit Emitter
	err  error
}

func (r *phaseReporter) notify(ph imagegen.Phase) {
	var msg string
	switch ph {
	case imagegen.PhaseGenerating:
		msg = statusGeneratingImages
	case imagegen.PhaseFailed:
		msg = statusImagesFailed
	default:
		return
	}
	if r.err == nil {
		r.err = r.emit(Event{Type: EventStatus, Value: msg})
	}
}

// resolveCredentials picks the OpenAI key: a valid access code unlocks the
// platform key, then the client key, then the server key.
func (s *Service) resolveCredentials(ctx context.Context, p Params) (Credentials, error) {
	var creds Credentials
	if code := strings.TrimSpace(p.AccessCode); code != "" && s.access != nil {
		ok, err := s.access.Validate(ctx, code)
		if err != nil {
			return creds, err
		}
		if !ok {
			return creds, ErrInvalidAccessCode
		}
		creds.APIKey = s.cfg.PlatformAPIKey
	}
	if creds.APIKey == "" {
		creds.APIKey = firstNonEmpty(p.OpenAIAPIKey, s.cfg.EnvAPIKey)
	}
	if creds.APIKey == "" && s.cfg.RequireAPIKey {
		return creds, ErrMissingAPIKey
	}
	if !s.cfg.IsProd {
		creds.BaseURL = firstNonEmpty(p.OpenAIBaseURL, s.cfg.EnvBaseURL)
	}
	return creds, nil
}

// previousCache recovers generated image URLs from the last assistant turn.
func previousCache(history []string, prefix string) imagegen.Cache {
	if len(history) < 2 {
		return nil
	}
	cache, err := imagegen.BuildCache(history[len(history)-2], prefix)
	if err != nil {
		log.Printf("codegen image cache skipped: %v", err)
		return nil
	}
	return cache
}

func (s *Service) saveRun(ctx context.Context, model string, messages []llmclient.Message, completion string) {
	if s.runs == nil {
		return
	}
	entry := runlog.Entry{
		ID:               uuid.NewString(),
		CreatedAt:        s.now().UTC(),
		Model:            model,
		Prompt:           messages,
		Completion:       completion,
		CompletionTokens: llmclient.EstimateTokens(completion),
	}
	if err := s.runs.Save(context.WithoutCancel(ctx), entry); err != nil {
		log.Printf("codegen run log save failed id=%s: %v", entry.ID, err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
