package imagegen

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultRequestTimeout bounds a single generation request.
const DefaultRequestTimeout = 60 * time.Second

// Generator produces one image for a label and returns its URL.
// Implementations must be safe for concurrent use.
type Generator interface {
	Generate(ctx context.Context, label string) (string, error)
}

// Result is the outcome of one label's request.
type Result struct {
	URL string
	Err error
}

// SelectLabels returns the unique labels that still need an image, in
// first-seen order. Placeholders without a label or with a usable cache
// entry are skipped.
func SelectLabels(placeholders []Placeholder, cache Cache) []string {
	seen := make(map[string]struct{}, len(placeholders))
	var labels []string
	for _, p := range placeholders {
		if !p.HasAlt {
			continue
		}
		if _, ok := cache.Lookup(p.Alt); ok {
			continue
		}
		if _, dup := seen[p.Alt]; dup {
			continue
		}
		seen[p.Alt] = struct{}{}
		labels = append(labels, p.Alt)
	}
	return labels
}

// BatchGenerator issues one request per label concurrently and waits
// for all of them.
type BatchGenerator struct {
	gen     Generator
	timeout time.Duration
	limit   int
}

// NewBatchGenerator wraps gen. A non-positive timeout disables the
// per-request deadline; a non-positive limit means unbounded fan-out.
func NewBatchGenerator(gen Generator, timeout time.Duration, limit int) *BatchGenerator {
	return &BatchGenerator{gen: gen, timeout: timeout, limit: limit}
}

// Generate never fails as a whole: every label gets a Result, failed
// ones carry a *GenerationError.
func (b *BatchGenerator) Generate(ctx context.Context, labels []string) map[string]Result {
	slots := make([]Result, len(labels))

	var g errgroup.Group
	if b.limit > 0 {
		g.SetLimit(b.limit)
	}
	for i, label := range labels {
		g.Go(func() error {
			url, err := b.generateOne(ctx, label)
			if err != nil {
				log.Printf("image generation failed label=%q: %v", label, err)
				slots[i] = Result{Err: &GenerationError{Label: label, Err: err}}
				return nil
			}
			slots[i] = Result{URL: url}
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]Result, len(labels))
	for i, label := range labels {
		out[label] = slots[i]
	}
	return out
}

func (b *BatchGenerator) generateOne(ctx context.Context, label string) (string, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}
	url, err := b.gen.Generate(ctx, label)
	if err != nil {
		return "", err
	}
	if url == "" {
		return "", errors.New("empty image url")
	}
	return url, nil
}
