package llmclient

import (
	"strings"
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

var (
	codec     tokenizer.Codec
	codecOnce sync.Once
	codecErr  error
)

// EstimateTokens returns an approximate cl100k_base token count for text.
// It falls back to a length heuristic when the codec is unavailable.
func EstimateTokens(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	codecOnce.Do(func() {
		codec, codecErr = tokenizer.Get(tokenizer.Cl100kBase)
	})
	if codecErr == nil {
		if ids, _, err := codec.Encode(text); err == nil {
			return len(ids)
		}
	}
	n := len(text) / 4
	if n == 0 {
		n = 1
	}
	return n
}
