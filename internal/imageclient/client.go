// Package imageclient generates images from text prompts and returns
// URLs the browser can load.
package imageclient

import (
	"context"
	"log"
	"time"
)

// Client generates one image for prompt and returns its URL.
type Client interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Middleware decorates a Client with a cross-cutting concern.
type Middleware func(Client) Client

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner Client, mws ...Middleware) Client {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		out = mws[i](out)
	}
	return out
}

// Logging logs the duration and outcome of every request.
func Logging() Middleware {
	return func(next Client) Client {
		return &logged{next: next}
	}
}

type logged struct {
	next Client
}

func (c *logged) Name() string { return c.next.Name() }

func (c *logged) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	url, err := c.next.Generate(ctx, prompt)
	if err != nil {
		log.Printf("image request (%s) failed after %s: %v", c.next.Name(), time.Since(start).Round(time.Millisecond), err)
		return "", err
	}
	log.Printf("image request (%s) done in %s", c.next.Name(), time.Since(start).Round(time.Millisecond))
	return url, nil
}
