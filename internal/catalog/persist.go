package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"linkloom/internal/model"
	"linkloom/internal/storage"
)

// load reads the three documents, falling back to seed data for each one
// that was never written.
func (s *Store) load(ctx context.Context) error {
	now := s.now()

	items, found, err := readDocument[[]model.ContentItem](ctx, s.docs, ItemsKey)
	if err != nil {
		return err
	}
	if !found {
		items = s.seed.items(now)
	}
	for i := range items {
		items[i] = normalizeItem(items[i])
	}
	s.items = items

	platforms, found, err := readDocument[[]string](ctx, s.docs, PlatformsKey)
	if err != nil {
		return err
	}
	if !found {
		platforms = append([]string(nil), s.seed.Platforms...)
	}
	s.platforms = platforms

	folders, found, err := readDocument[[]string](ctx, s.docs, FoldersKey)
	if err != nil {
		return err
	}
	if !found {
		folders = s.seed.folders(items)
	}
	s.folders = normalizeFolders(folders, items)

	return nil
}

func readDocument[T any](ctx context.Context, docs DocumentStore, key string) (T, bool, error) {
	var out T
	body, err := docs.GetDocument(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return out, false, nil
	}
	if err != nil {
		return out, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return out, true, nil
}

// persist writes the named documents. Failures are logged and kept for
// LastError; in-memory state is never rolled back.
func (s *Store) persist(ctx context.Context, keys ...string) {
	var failed error
	for _, key := range keys {
		var doc any
		switch key {
		case ItemsKey:
			if s.items == nil {
				s.items = []model.ContentItem{}
			}
			doc = s.items
		case PlatformsKey:
			doc = nonNil(s.platforms)
		case FoldersKey:
			doc = nonNil(s.folders)
		default:
			continue
		}

		body, err := json.Marshal(doc)
		if err == nil {
			err = s.docs.PutDocument(ctx, key, body)
		}
		if err != nil {
			failed = fmt.Errorf("failed to persist %s: %w", key, err)
			s.logger.ErrorContext(ctx, "persist failed", "key", key, "error", err)
		}
	}
	s.lastErr = failed
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
