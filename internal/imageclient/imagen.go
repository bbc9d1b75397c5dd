package imageclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	genai "google.golang.org/genai"

	llmclient "screencode/internal/llmClient"
)

const DefaultImagenModel = "imagen-4.0-generate-001"

// ObjectStore persists generated image bytes and returns a URL for them.
type ObjectStore interface {
	PutImage(ctx context.Context, key string, data []byte, mimeType string) (string, error)
}

// ImagenClient generates images with Imagen through the genai client.
// Imagen answers with bytes, so every image goes through an ObjectStore.
type ImagenClient struct {
	cli   *genai.Client
	model string
	store ObjectStore
}

func NewImagenClient(ctx context.Context, apiKey, model string, store ObjectStore) (*ImagenClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, llmclient.NewPermanentError(fmt.Errorf("%w: gemini api key is required", llmclient.ErrUnauthorized))
	}
	if store == nil {
		return nil, fmt.Errorf("imagen: object store is required")
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultImagenModel
	}
	return &ImagenClient{cli: cli, model: model, store: store}, nil
}

func (c *ImagenClient) Name() string { return "Imagen:" + c.model }

func (c *ImagenClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.cli.Models.GenerateImages(ctx, c.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    "1:1",
	})
	if err != nil {
		return "", err
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return "", ErrEmptyResponse
	}
	img := resp.GeneratedImages[0].Image
	if len(img.ImageBytes) == 0 {
		if img.GCSURI != "" {
			return img.GCSURI, nil
		}
		return "", ErrEmptyResponse
	}
	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return c.store.PutImage(ctx, imageKey(mimeType), img.ImageBytes, mimeType)
}

func imageKey(mimeType string) string {
	ext := ".png"
	switch mimeType {
	case "image/jpeg":
		ext = ".jpg"
	case "image/webp":
		ext = ".webp"
	}
	return "images/" + uuid.NewString() + ext
}
