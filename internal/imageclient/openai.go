package imageclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	llmclient "screencode/internal/llmClient"
)

const DefaultOpenAIImageModel = "dall-e-3"

var ErrEmptyResponse = errors.New("image api returned no image")

// OpenAIClient calls the OpenAI images API with a fixed policy: one
// 1024x1024 image, standard quality, natural style.
type OpenAIClient struct {
	http    *http.Client
	apiKey  string
	baseURL string
	model   string
}

// NewOpenAIClient creates a client. An empty baseURL selects the official API.
func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = llmclient.DefaultOpenAIBaseURL
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultOpenAIImageModel
	}
	return &OpenAIClient{
		http:    &http.Client{Timeout: 120 * time.Second},
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
	}
}

func (c *OpenAIClient) Name() string { return "OpenAI:" + c.model }

type openAIImageReq struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
	Style   string `json:"style"`
}

type openAIImageResp struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(openAIImageReq{
		Model:   c.model,
		Prompt:  prompt,
		N:       1,
		Size:    "1024x1024",
		Quality: "standard",
		Style:   "natural",
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		rl, _ := llmclient.ParseRateLimitHeaders(resp.Header)
		return "", &llmclient.APIError{Provider: "openai-images", StatusCode: resp.StatusCode, Body: string(raw), RateLimit: rl}
	}
	var out openAIImageResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Data) == 0 || out.Data[0].URL == "" {
		return "", ErrEmptyResponse
	}
	return out.Data[0].URL, nil
}
