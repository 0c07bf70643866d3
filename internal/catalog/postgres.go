package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"tripcheck/pkg/platform/sentinel"
)

const catalogTableDDL = `
CREATE TABLE IF NOT EXISTS catalog_documents (
	id         BIGSERIAL PRIMARY KEY,
	version    TEXT NOT NULL,
	body       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresSource is a DocumentSource that reads the most recently published
// catalog document from the catalog_documents table.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource wraps an open database handle (lib/pq driver).
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Name() string { return "postgres" }

func (s *PostgresSource) Fetch(ctx context.Context) ([]byte, Format, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM catalog_documents ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", fmt.Errorf("no published catalog: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, "", fmt.Errorf("query catalog: %w", err)
	}
	return body, FormatJSON, nil
}

// EnsureSchema creates the catalog_documents table if needed.
func (s *PostgresSource) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, catalogTableDDL); err != nil {
		return fmt.Errorf("create catalog table: %w", err)
	}
	return nil
}

// Publish validates doc and stores it as the newest catalog version. Invalid
// documents are never written.
func (s *PostgresSource) Publish(ctx context.Context, data []byte, format Format) (*Catalog, error) {
	cat, err := Load(data, format)
	if err != nil {
		return nil, err
	}
	body, err := toJSON(data, format)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, &ValidationError{Problems: []string{"body is not valid JSON"}}
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO catalog_documents (version, body) VALUES ($1, $2)`,
		cat.Version(), string(body),
	); err != nil {
		return nil, fmt.Errorf("insert catalog: %w", err)
	}
	return cat, nil
}
