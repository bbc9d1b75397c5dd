package codegen

import (
	"errors"
	"fmt"

	llmclient "screencode/internal/llmClient"
)

const (
	statusGeneratingCode   = "Generating code..."
	statusGeneratingImages = "Generating images..."
	statusComplete         = "Code generation complete."
	statusImagesFailed     = "Image generation failed, but code is complete."

	msgInvalidAccessCode = "Invalid access code or no credits left. Please try again."
	msgMissingAPIKey     = "No OpenAI API key found. Please add your API key in the settings dialog or set OPENAI_API_KEY in the backend .env file."
	msgUnauthorized      = "Incorrect OpenAI key. Please make sure your OpenAI API key is correct, or create a new OpenAI API key on your OpenAI dashboard."
	msgModelNotFound     = "Model not found. Please make sure your OpenAI key has access to a vision-capable model."
	msgRateLimited       = "OpenAI error: you exceeded your current quota, please check your plan and billing details."
	msgHistoryRequired   = "Updating code requires the previous code and an instruction in history."
)

// userMessage maps a completion failure to text shown in the client.
func userMessage(err error) string {
	switch {
	case errors.Is(err, llmclient.ErrUnauthorized):
		return msgUnauthorized
	case errors.Is(err, llmclient.ErrModelNotFound):
		return msgModelNotFound
	case errors.Is(err, llmclient.ErrRateLimited):
		return msgRateLimited
	}
	return fmt.Sprintf("Error generating code: %v", err)
}

func completeStatus(unresolved int) string {
	switch unresolved {
	case 0:
		return statusComplete
	case 1:
		return statusComplete + " 1 image could not be generated."
	}
	return fmt.Sprintf("%s %d images could not be generated.", statusComplete, unresolved)
}
