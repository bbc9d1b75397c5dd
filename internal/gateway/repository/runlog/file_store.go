package runlog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

var runIDSanitizer = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// FileStore writes one JSON file per run into <dir>/run_logs.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) *FileStore {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		trimmed = "."
	}
	return &FileStore{dir: filepath.Join(trimmed, "run_logs")}
}

func sanitizeID(id string) string {
	id = runIDSanitizer.ReplaceAllString(strings.TrimSpace(id), "_")
	if id == "" {
		return "unknown"
	}
	return id
}

func (s *FileStore) Save(_ context.Context, e Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode run log: %w", err)
	}
	name := fmt.Sprintf("messages_%s_%s.json", e.CreatedAt.Format("20060102_150405"), sanitizeID(e.ID))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create run log dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		return fmt.Errorf("write run log: %w", err)
	}
	return nil
}

func (s *FileStore) Get(_ context.Context, id string) (Entry, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "messages_*_"+sanitizeID(id)+".json"))
	if err != nil {
		return Entry{}, err
	}
	if len(matches) == 0 {
		return Entry{}, ErrNotFound
	}
	raw, err := os.ReadFile(matches[len(matches)-1])
	if err != nil {
		return Entry{}, fmt.Errorf("read run log: %w", err)
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, fmt.Errorf("decode run log: %w", err)
	}
	return e, nil
}
