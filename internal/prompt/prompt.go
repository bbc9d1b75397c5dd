// Package prompt builds the chat messages sent to the vision model.
package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/webp"

	llmclient "screencode/internal/llmClient"
)

var (
	ErrUnknownStack = errors.New("prompt: unknown stack")
	ErrInvalidImage = errors.New("prompt: invalid image")
)

// maxImagePixels rejects screenshots no vision model would accept.
const maxImagePixels = 8192 * 8192

// Assemble returns the system and user messages for a screenshot. When
// resultImage is set, it is attached as the second image so the model can
// compare its previous output against the reference.
func Assemble(imageURL string, stack string, resultImage string) ([]llmclient.Message, error) {
	s, ok := ParseStack(strings.TrimSpace(stack))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStack, stack)
	}
	if err := ValidateImage(imageURL); err != nil {
		return nil, err
	}

	text := userPrompt
	if s == StackSVG {
		text = svgUserPrompt
	}
	parts := []llmclient.Part{llmclient.ImagePart(imageURL)}
	if strings.TrimSpace(resultImage) != "" {
		if err := ValidateImage(resultImage); err != nil {
			return nil, fmt.Errorf("result image: %w", err)
		}
		parts = append(parts, llmclient.ImagePart(resultImage))
	}
	parts = append(parts, llmclient.TextPart(text))

	return []llmclient.Message{
		llmclient.TextMessage(llmclient.RoleSystem, systemPrompts[s]),
		{Role: llmclient.RoleUser, Parts: parts},
	}, nil
}

// ValidateImage accepts http(s) URLs as-is and decodes the header of data
// URLs to make sure they hold a supported image.
func ValidateImage(u string) error {
	u = strings.TrimSpace(u)
	if u == "" {
		return fmt.Errorf("%w: empty", ErrInvalidImage)
	}
	if strings.HasPrefix(u, "https://") || strings.HasPrefix(u, "http://") {
		return nil
	}
	_, data, err := llmclient.ParseDataURL(u)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxImagePixels {
		return fmt.Errorf("%w: %s image is %dx%d", ErrInvalidImage, format, cfg.Width, cfg.Height)
	}
	return nil
}

// AppendHistory adds prior turns, alternating assistant and user, after
// the assembled prompt.
func AppendHistory(messages []llmclient.Message, history []string) []llmclient.Message {
	for i, text := range history {
		role := llmclient.RoleUser
		if i%2 == 0 {
			role = llmclient.RoleAssistant
		}
		messages = append(messages, llmclient.TextMessage(role, text))
	}
	return messages
}
