package llmclient

import (
	"context"
	"fmt"
	"strings"

	genai "google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiClient streams completions through the official genai client.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, NewPermanentError(fmt.Errorf("%w: gemini api key is required", ErrUnauthorized))
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultGeminiModel
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }

func (g *GeminiClient) Stream(ctx context.Context, messages []Message, onChunk func(chunk string)) (string, error) {
	system, contents, err := toGeminiContents(messages)
	if err != nil {
		return "", err
	}
	cfg := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](0),
		SystemInstruction: system,
	}

	var full strings.Builder
	for resp, err := range g.cli.Models.GenerateContentStream(ctx, g.model, contents, cfg) {
		if err != nil {
			return full.String(), fmt.Errorf("%w: %v", ErrStreamError, err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}
		for _, part := range resp.Candidates[0].Content.Parts {
			if part == nil || part.Text == "" || part.Thought {
				continue
			}
			full.WriteString(part.Text)
			if onChunk != nil {
				onChunk(part.Text)
			}
		}
	}
	return full.String(), nil
}

// toGeminiContents maps chat messages onto genai contents. System messages
// become the system instruction; assistant turns use the "model" role.
func toGeminiContents(messages []Message) (*genai.Content, []*genai.Content, error) {
	var system *genai.Content
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		parts := make([]*genai.Part, 0, len(m.Parts))
		for _, p := range m.Parts {
			switch p.Type {
			case "text":
				parts = append(parts, &genai.Part{Text: p.Text})
			case "image_url":
				if p.ImageURL == nil {
					continue
				}
				mimeType, data, err := ParseDataURL(p.ImageURL.URL)
				if err != nil {
					return nil, nil, NewPermanentError(fmt.Errorf("gemini requires inline image data: %w", err))
				}
				parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}})
			}
		}
		switch m.Role {
		case RoleSystem:
			system = &genai.Content{Parts: parts}
		case RoleAssistant:
			contents = append(contents, &genai.Content{Role: "model", Parts: parts})
		default:
			contents = append(contents, &genai.Content{Role: "user", Parts: parts})
		}
	}
	return system, contents, nil
}
