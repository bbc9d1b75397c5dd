package runlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStore struct {
	db         *sql.DB
	schemaOnce sync.Once
	schemaErr  error
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS run_logs (
  id TEXT PRIMARY KEY,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  model TEXT NOT NULL DEFAULT '',
  prompt JSONB NOT NULL,
  completion TEXT NOT NULL DEFAULT '',
  completion_tokens INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_run_logs_created_at ON run_logs (created_at);
`)
	})
	return s.schemaErr
}

func (s *PostgresStore) Save(ctx context.Context, e Entry) error {
	if err := s.ensureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	prompt, err := json.Marshal(e.Prompt)
	if err != nil {
		return fmt.Errorf("encode prompt: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO run_logs (id, created_at, model, prompt, completion, completion_tokens)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
  model = EXCLUDED.model,
  prompt = EXCLUDED.prompt,
  completion = EXCLUDED.completion,
  completion_tokens = EXCLUDED.completion_tokens`,
		e.ID, e.CreatedAt, e.Model, string(prompt), e.Completion, e.CompletionTokens)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Entry, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return Entry{}, fmt.Errorf("ensure schema: %w", err)
	}
	var (
		e      Entry
		prompt []byte
	)
	row := s.db.QueryRowContext(ctx, `SELECT id, created_at, model, prompt, completion, completion_tokens
FROM run_logs WHERE id = $1`, strings.TrimSpace(id))
	if err := row.Scan(&e.ID, &e.CreatedAt, &e.Model, &prompt, &e.Completion, &e.CompletionTokens); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	if err := json.Unmarshal(prompt, &e.Prompt); err != nil {
		return Entry{}, fmt.Errorf("decode prompt: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
