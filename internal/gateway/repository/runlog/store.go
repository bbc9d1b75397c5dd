package runlog

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	llmclient "screencode/internal/llmClient"
)

var ErrNotFound = errors.New("run log not found")

// Entry is the prompt and completion of one code generation run.
type Entry struct {
	ID               string              `json:"id"`
	CreatedAt        time.Time           `json:"created_at"`
	Model            string              `json:"model,omitempty"`
	Prompt           []llmclient.Message `json:"prompt"`
	Completion       string              `json:"completion"`
	CompletionTokens int                 `json:"completion_tokens"`
}

type Store interface {
	Save(ctx context.Context, e Entry) error
	Get(ctx context.Context, id string) (Entry, error)
}

// Open returns a Postgres store when dsn is set and reachable, otherwise a
// file store under dir.
func Open(dsn, dir string) Store {
	if dsn = strings.TrimSpace(dsn); dsn != "" {
		s, err := NewPostgresStore(dsn)
		if err == nil {
			return s
		}
		log.Printf("run log postgres unavailable, falling back to files: %v", err)
	}
	return NewFileStore(dir)
}
