package codegen

import "strings"

const (
	GenerationCreate = "create"
	GenerationUpdate = "update"
)

// Params is the first message a client sends on the generate-code socket.
type Params struct {
	GenerationType           string   `json:"generationType"`
	Image                    string   `json:"image"`
	ResultImage              string   `json:"resultImage,omitempty"`
	History                  []string `json:"history,omitempty"`
	GeneratedCodeConfig      string   `json:"generatedCodeConfig,omitempty"`
	OpenAIAPIKey             string   `json:"openAiApiKey,omitempty"`
	OpenAIBaseURL            string   `json:"openAiBaseURL,omitempty"`
	AccessCode               string   `json:"accessCode,omitempty"`
	IsImageGenerationEnabled *bool    `json:"isImageGenerationEnabled,omitempty"`
}

func (p Params) imagesEnabled() bool {
	return p.IsImageGenerationEnabled == nil || *p.IsImageGenerationEnabled
}

func (p Params) generationType() string {
	t := strings.ToLower(strings.TrimSpace(p.GenerationType))
	if t == "" {
		return GenerationCreate
	}
	return t
}

const (
	EventStatus  = "status"
	EventChunk   = "chunk"
	EventSetCode = "setCode"
	EventError   = "error"
)

// Event is one server message on the generate-code socket.
type Event struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Emitter delivers events to the client. An error means the client is gone.
type Emitter func(Event) error

// Credentials are the resolved OpenAI key and base URL for one session.
type Credentials struct {
	APIKey  string
	BaseURL string
}
