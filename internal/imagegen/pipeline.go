// Package imagegen replaces placeholder images in generated markup with
// model-generated images.
package imagegen

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Phase is a progress notification emitted by Pipeline.Run.
type Phase string

const (
	PhaseScanning   Phase = "scanning"
	PhaseGenerating Phase = "generating-images"
	PhaseDone       Phase = "done"
	PhaseFailed     Phase = "failed"
)

// Config holds the pipeline policy.
type Config struct {
	PlaceholderPrefix string
	RequestTimeout    time.Duration
	MaxConcurrency    int
}

// Outcome is the result of a pipeline run.
type Outcome struct {
	Code       string
	Requested  []string
	Unresolved []string
}

// Pipeline runs scan, generate, merge and rewrite over one document.
type Pipeline struct {
	prefix string
	batch  *BatchGenerator
}

func New(gen Generator, cfg Config) *Pipeline {
	prefix := strings.TrimSpace(cfg.PlaceholderPrefix)
	if prefix == "" {
		prefix = DefaultPlaceholderPrefix
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Pipeline{
		prefix: prefix,
		batch:  NewBatchGenerator(gen, timeout, cfg.MaxConcurrency),
	}
}

// Prefix returns the placeholder prefix the pipeline recognizes.
func (p *Pipeline) Prefix() string { return p.prefix }

// Run rewrites code. Per-image failures leave the placeholder in place and
// are listed in Outcome.Unresolved; only malformed input or cancellation
// of ctx return an error. notify may be nil.
func (p *Pipeline) Run(ctx context.Context, code string, cache Cache, notify func(Phase)) (*Outcome, error) {
	if notify == nil {
		notify = func(Phase) {}
	}

	notify(PhaseScanning)
	doc, err := ParseDocument(code)
	if err != nil {
		notify(PhaseFailed)
		return nil, err
	}
	placeholders, err := Scan(doc, p.prefix)
	if err != nil {
		notify(PhaseFailed)
		return nil, err
	}

	labels := SelectLabels(placeholders, cache)
	if len(labels) == 0 {
		notify(PhaseDone)
		return &Outcome{Code: code}, nil
	}

	notify(PhaseGenerating)
	results := p.batch.Generate(ctx, labels)
	if err := ctx.Err(); err != nil {
		notify(PhaseFailed)
		return nil, fmt.Errorf("image generation cancelled: %w", err)
	}

	unresolved := Rewrite(placeholders, Merge(results, cache))
	out, err := doc.Render()
	if err != nil {
		notify(PhaseFailed)
		return nil, err
	}
	notify(PhaseDone)
	return &Outcome{Code: out, Requested: labels, Unresolved: unresolved}, nil
}
