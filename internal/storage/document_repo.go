package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// DocumentStore defines the interface for document storage operations.
type DocumentStore interface {
	// GetDocument returns the body stored under key.
	// Returns nil and ErrNotFound if the key was never written.
	GetDocument(ctx context.Context, key string) ([]byte, error)
	// PutDocument replaces the body stored under key.
	PutDocument(ctx context.Context, key string, body []byte) error
	// ListDocuments returns every stored document ordered by key.
	ListDocuments(ctx context.Context) ([]Document, error)
}

// DocumentRepo provides methods for document operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// GetDocument returns the body stored under key.
// Returns nil and ErrNotFound if not found.
func (r *DocumentRepo) GetDocument(ctx context.Context, key string) ([]byte, error) {
	var body string
	err := r.db.QueryRowContext(ctx,
		"SELECT body FROM documents WHERE key = ?",
		key,
	).Scan(&body)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	return []byte(body), nil
}

// PutDocument inserts or replaces the document stored under key.
func (r *DocumentRepo) PutDocument(ctx context.Context, key string, body []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (key, body, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE SET
		 body = excluded.body, updated_at = CURRENT_TIMESTAMP`,
		key, string(body),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

// ListDocuments returns every stored document ordered by key.
func (r *DocumentRepo) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT key, body, updated_at FROM documents ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []Document
	for rows.Next() {
		var doc Document
		var body string
		if err := rows.Scan(&doc.Key, &body, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc.Body = []byte(body)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return docs, nil
}
