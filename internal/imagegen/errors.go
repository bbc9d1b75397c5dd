package imagegen

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is returned when markup cannot be parsed or an image
// element has no src attribute. It aborts the whole run.
var ErrMalformedInput = errors.New("imagegen: malformed input")

// GenerationError records one label's failed generation request.
type GenerationError struct {
	Label string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate image %q: %v", e.Label, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
