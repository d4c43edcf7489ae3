package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// MetadataCacheRepo stores resolved link previews keyed by URL.
type MetadataCacheRepo struct {
	db *sql.DB
}

// NewMetadataCacheRepo creates a new MetadataCacheRepo.
func NewMetadataCacheRepo(db *sql.DB) *MetadataCacheRepo {
	return &MetadataCacheRepo{db: db}
}

// Get returns the cached entry for url if it was fetched no earlier than
// notBefore. Returns nil and ErrNotFound for missing or stale entries.
func (r *MetadataCacheRepo) Get(ctx context.Context, url string, notBefore time.Time) (*CachedMetadata, error) {
	var m CachedMetadata
	var fetchedAt int64

	err := r.db.QueryRowContext(ctx,
		`SELECT url, title, description, thumbnail_url, source, fetched_at
		 FROM metadata_cache WHERE url = ? AND fetched_at >= ?`,
		url, notBefore.Unix(),
	).Scan(&m.URL, &m.Title, &m.Description, &m.ThumbnailURL, &m.Source, &fetchedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query metadata cache: %w", err)
	}

	m.FetchedAt = time.Unix(fetchedAt, 0)
	return &m, nil
}

// Put inserts or replaces the entry for m.URL.
func (r *MetadataCacheRepo) Put(ctx context.Context, m *CachedMetadata) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO metadata_cache (url, title, description, thumbnail_url, source, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (url) DO UPDATE SET
		 title = excluded.title, description = excluded.description,
		 thumbnail_url = excluded.thumbnail_url, source = excluded.source,
		 fetched_at = excluded.fetched_at`,
		m.URL, m.Title, m.Description, m.ThumbnailURL, m.Source, m.FetchedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert metadata cache: %w", err)
	}
	return nil
}

// Prune deletes entries fetched before cutoff and returns how many were
// removed.
func (r *MetadataCacheRepo) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM metadata_cache WHERE fetched_at < ?", cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune metadata cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned rows: %w", err)
	}
	return n, nil
}
