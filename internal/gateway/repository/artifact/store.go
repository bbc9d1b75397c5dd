package artifact

import (
	"context"
	"errors"

	llmclient "screencode/internal/llmClient"
)

var ErrNotFound = errors.New("artifact not found")

// ImageStore persists generated image bytes and returns a browser URL.
type ImageStore interface {
	PutImage(ctx context.Context, key string, data []byte, mimeType string) (string, error)
}

// InlineStore keeps nothing and answers with a data URL. It backs image
// generation when no object storage is configured.
type InlineStore struct{}

func (InlineStore) PutImage(_ context.Context, _ string, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("image data is empty")
	}
	if mimeType == "" {
		mimeType = "image/png"
	}
	return llmclient.DataURL(mimeType, data), nil
}
