// Package catalog holds the content items, folders and platform tabs, and
// keeps them consistent across mutations.
package catalog

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks linkloom/internal/catalog DocumentStore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"linkloom/internal/model"
	"linkloom/internal/view"
)

// Document keys. They match the keys the web client used in local storage.
const (
	ItemsKey     = "linkloom_items_v2"
	PlatformsKey = "linkloom_platforms_v1"
	FoldersKey   = "linkloom_folders_v1"
)

// ErrURLRequired is returned by AddItem when the draft has no URL.
var ErrURLRequired = errors.New("url is required")

// DocumentStore persists whole JSON documents by key.
// GetDocument returns storage.ErrNotFound when the key has never been written.
type DocumentStore interface {
	GetDocument(ctx context.Context, key string) ([]byte, error)
	PutDocument(ctx context.Context, key string, body []byte) error
}

// Notifier receives user-visible confirmations.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string) {}

// Store is the content store. All methods are safe for concurrent use; every
// mutation runs to completion under a single lock and is flushed to the
// document store before the lock is released.
type Store struct {
	mu sync.Mutex

	docs     DocumentStore
	notifier Notifier
	logger   *slog.Logger
	newID    func() string
	now      func() time.Time
	seed     *Seed
	primary  view.Dimension
	// protectFallback keeps model.DefaultFolder from being deleted.
	protectFallback bool

	items     []model.ContentItem
	platforms []string
	folders   []string
	view      view.State
	lastErr   error
}

// Option configures a Store.
type Option func(*Store)

// WithNotifier sets the notification sink.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithPrimary sets which dimension the primary tabs filter on.
func WithPrimary(d view.Dimension) Option {
	return func(s *Store) { s.primary = d }
}

// WithProtectedFallback makes model.DefaultFolder non-deletable.
func WithProtectedFallback(protect bool) Option {
	return func(s *Store) { s.protectFallback = protect }
}

// WithSeed replaces the embedded seed data.
func WithSeed(seed Seed) Option {
	return func(s *Store) { s.seed = &seed }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the item id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// Open loads the store from docs. Missing documents fall back to seed data;
// unreadable documents are an error.
func Open(ctx context.Context, docs DocumentStore, opts ...Option) (*Store, error) {
	s := &Store{
		docs:     docs,
		notifier: nopNotifier{},
		logger:   slog.Default(),
		newID:    func() string { return uuid.New().String() },
		now:      time.Now,
		primary:  view.Platform,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.view = view.NewState(s.primary)

	if s.seed == nil {
		seed, err := DefaultSeed()
		if err != nil {
			return nil, err
		}
		s.seed = &seed
	}

	if err := s.load(ctx); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "catalog loaded",
		"items", len(s.items),
		"platforms", len(s.platforms),
		"folders", len(s.folders),
	)
	return s, nil
}

// Snapshot returns a copy of the persisted collections.
func (s *Store) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() model.Snapshot {
	items := make([]model.ContentItem, len(s.items))
	for i, item := range s.items {
		items[i] = item.Clone()
	}
	return model.Snapshot{
		Items:     items,
		Platforms: append([]string(nil), s.platforms...),
		Folders:   append([]string(nil), s.folders...),
	}
}

// Restore replaces all collections with snap and persists them. Folders
// referenced by items are added so no item is left without its folder.
func (s *Store) Restore(ctx context.Context, snap model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]model.ContentItem, 0, len(snap.Items))
	for _, item := range snap.Items {
		s.items = append(s.items, normalizeItem(item.Clone()))
	}
	s.platforms = append([]string(nil), snap.Platforms...)
	s.folders = normalizeFolders(snap.Folders, s.items)
	s.view = view.NewState(s.primary)

	s.persist(ctx, ItemsKey, PlatformsKey, FoldersKey)
}

// Items returns a copy of all items, most recent first.
func (s *Store) Items() []model.ContentItem {
	return s.Snapshot().Items
}

// Item returns the item with id.
func (s *Store) Item(id string) (model.ContentItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i].Clone(), true
	}
	return model.ContentItem{}, false
}

// Folders returns the folder set in sorted order.
func (s *Store) Folders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.folders...)
}

// Platforms returns the platform tabs in display order.
func (s *Store) Platforms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.platforms...)
}

// LastError returns the most recent persistence failure, if any. It is
// cleared by the next successful write.
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) notify(ctx context.Context, format string, args ...any) {
	s.notifier.Notify(ctx, fmt.Sprintf(format, args...))
}

// normalizeItem fills fields that must never be empty.
func normalizeItem(item model.ContentItem) model.ContentItem {
	if item.Tags == nil {
		item.Tags = []string{}
	}
	if item.Folder == "" {
		item.Folder = model.DefaultFolder
	}
	if item.Platform == "" {
		item.Platform = model.OtherPlatform
	}
	return item
}
