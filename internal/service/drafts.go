package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_resolver.go -package=mocks linkloom/internal/service Resolver
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_enricher.go -package=mocks linkloom/internal/service Enricher
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_item_saver.go -package=mocks linkloom/internal/service ItemSaver
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_draft_service.go -package=mocks -mock_names=DraftService=MockDraftService linkloom/internal/service DraftService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"linkloom/internal/catalog"
	"linkloom/internal/contextutil"
	"linkloom/internal/enrich"
	"linkloom/internal/model"
	"linkloom/internal/platform"
	"linkloom/internal/resolver"
)

// Resolver looks up link previews.
// This interface is defined from the service layer's perspective (consumer-first).
type Resolver interface {
	Resolve(ctx context.Context, rawURL string) resolver.Metadata
}

// Enricher produces AI suggestions for a link. It never fails.
type Enricher interface {
	Analyze(ctx context.Context, req enrich.Request) enrich.Suggestion
}

// ItemSaver persists a finished draft.
type ItemSaver interface {
	AddItem(ctx context.Context, draft model.Draft) (model.ContentItem, error)
}

// DraftState is an item being composed. Fetching and Analyzing report
// background work in progress.
type DraftState struct {
	ID    string `json:"id"`
	Input string `json:"input"`
	model.Draft
	Fetching  bool `json:"fetching"`
	Analyzing bool `json:"analyzing"`
}

// DraftUpdate changes draft fields. Nil fields are left untouched. Setting
// Input runs smart paste and schedules metadata resolution.
type DraftUpdate struct {
	Input        *string   `json:"input,omitempty"`
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Summary      *string   `json:"summary,omitempty"`
	ThumbnailURL *string   `json:"thumbnailUrl,omitempty"`
	Platform     *string   `json:"platform,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
	Folder       *string   `json:"folder,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	NoteImages   *[]string `json:"noteImages,omitempty"`
}

// DraftService composes new items before they are saved.
type DraftService interface {
	// Create starts a draft, optionally with pasted input.
	Create(ctx context.Context, input string) (DraftState, error)
	Get(ctx context.Context, id string) (DraftState, error)
	Update(ctx context.Context, id string, upd DraftUpdate) (DraftState, error)
	// Analyze asks the AI service for tags, summary, title and folder.
	Analyze(ctx context.Context, id string) (DraftState, error)
	// Save submits the draft to the catalog and discards it.
	Save(ctx context.Context, id string) (model.ContentItem, error)
	Discard(ctx context.Context, id string) error
}

type draft struct {
	state DraftState
	// token identifies the latest scheduled resolution.
	token  uint64
	timer  *time.Timer
	cancel context.CancelFunc
}

// Drafts implements DraftService. Resolutions run in the background after a
// quiet period; only the result of the latest input is applied.
type Drafts struct {
	resolver Resolver
	enricher Enricher
	saver    ItemSaver
	debounce time.Duration
	logger   *slog.Logger
	newID    func() string

	mu     sync.Mutex
	drafts map[string]*draft
	closed bool
	wg     sync.WaitGroup

	base context.Context
	stop context.CancelFunc
}

// NewDrafts creates a draft service. debounce is the quiet period between
// the last input change and resolution.
func NewDrafts(res Resolver, enricher Enricher, saver ItemSaver, debounce time.Duration, logger *slog.Logger) *Drafts {
	if logger == nil {
		logger = slog.Default()
	}
	base, stop := context.WithCancel(context.Background())
	return &Drafts{
		resolver: res,
		enricher: enricher,
		saver:    saver,
		debounce: debounce,
		logger:   logger,
		newID:    uuid.NewString,
		drafts:   make(map[string]*draft),
		base:     base,
		stop:     stop,
	}
}

// Create starts a draft with platform Other and folder General.
func (s *Drafts) Create(ctx context.Context, input string) (DraftState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return DraftState{}, ErrClosed
	}

	d := &draft{state: DraftState{
		ID: s.newID(),
		Draft: model.Draft{
			Platform: model.OtherPlatform,
			Folder:   model.DefaultFolder,
			Tags:     []string{},
		},
	}}
	s.drafts[d.state.ID] = d
	if input != "" {
		s.setInputLocked(ctx, d, input)
	}

	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "draft created", "draft_id", d.state.ID)
	return cloneState(d.state), nil
}

// Get returns the current state of a draft.
func (s *Drafts) Get(_ context.Context, id string) (DraftState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[id]
	if !ok {
		return DraftState{}, ErrNotFound
	}
	return cloneState(d.state), nil
}

// Update applies upd. Input is applied first so explicit field values in the
// same update win over smart paste.
func (s *Drafts) Update(ctx context.Context, id string, upd DraftUpdate) (DraftState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[id]
	if !ok {
		return DraftState{}, ErrNotFound
	}

	if upd.Input != nil {
		s.setInputLocked(ctx, d, *upd.Input)
	}
	st := &d.state
	if upd.Title != nil {
		st.Title = *upd.Title
	}
	if upd.Description != nil {
		st.Description = *upd.Description
	}
	if upd.Summary != nil {
		st.Summary = *upd.Summary
	}
	if upd.ThumbnailURL != nil {
		st.ThumbnailURL = *upd.ThumbnailURL
	}
	if upd.Platform != nil {
		st.Platform = *upd.Platform
	}
	if upd.Tags != nil {
		st.Tags = append([]string{}, (*upd.Tags)...)
	}
	if upd.Folder != nil {
		st.Folder = *upd.Folder
	}
	if upd.Notes != nil {
		st.Notes = *upd.Notes
	}
	if upd.NoteImages != nil {
		st.NoteImages = append([]string(nil), (*upd.NoteImages)...)
	}
	return cloneState(d.state), nil
}

// setInputLocked runs smart paste over text and reschedules resolution.
func (s *Drafts) setInputLocked(ctx context.Context, d *draft, text string) {
	share := platform.ParseShare(text)
	url := strings.TrimSpace(share.URL)

	st := &d.state
	st.Input = text
	st.URL = url
	if share.Title != "" && st.Title == "" {
		st.Title = share.Title
	}
	st.Platform = platform.ClassifyOr(url, st.Platform)

	s.scheduleLocked(ctx, d, url)
}

// scheduleLocked supersedes any pending or running resolution for d and,
// when url looks like a link, starts a new one after the debounce period.
func (s *Drafts) scheduleLocked(ctx context.Context, d *draft, url string) {
	d.token++
	s.haltLocked(d)
	d.state.Fetching = false

	if !strings.HasPrefix(url, "http") {
		return
	}

	id, token := d.state.ID, d.token
	logger := contextutil.LoggerFromContext(ctx)
	s.wg.Add(1)
	d.timer = time.AfterFunc(s.debounce, func() {
		defer s.wg.Done()
		s.resolve(logger, id, token, url)
	})
}

// haltLocked stops d's pending timer and cancels its in-flight request.
func (s *Drafts) haltLocked(d *draft) {
	if d.timer != nil {
		if d.timer.Stop() {
			s.wg.Done()
		}
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (s *Drafts) resolve(logger *slog.Logger, id string, token uint64, url string) {
	s.mu.Lock()
	d, ok := s.drafts[id]
	if !ok || d.token != token || s.closed {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(s.base)
	d.timer = nil
	d.cancel = cancel
	d.state.Fetching = true
	s.mu.Unlock()
	defer cancel()

	md := s.resolver.Resolve(ctx, url)

	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok = s.drafts[id]
	if !ok || d.token != token {
		logger.Debug("stale resolution dropped", "draft_id", id, "url", url)
		return
	}
	d.cancel = nil
	d.state.Fetching = false
	applyMetadata(&d.state, md)

	logger.Debug("draft resolved", "draft_id", id, "source", md.Source)
}

// applyMetadata merges a resolved preview into st. A resolved title only
// replaces an empty title or one that still equals the URL.
func applyMetadata(st *DraftState, md resolver.Metadata) {
	if md.Title != "" && (st.Title == "" || st.Title == st.URL) {
		st.Title = md.Title
	}
	if md.ThumbnailURL != "" {
		st.ThumbnailURL = resolver.NormalizeImageURL(md.ThumbnailURL)
	}
	if md.Description != "" && st.Description == "" {
		st.Description = md.Description
	}
}

// Analyze runs AI enrichment on the draft and applies the suggestion.
func (s *Drafts) Analyze(ctx context.Context, id string) (DraftState, error) {
	s.mu.Lock()
	d, ok := s.drafts[id]
	if !ok {
		s.mu.Unlock()
		return DraftState{}, ErrNotFound
	}
	if d.state.URL == "" {
		s.mu.Unlock()
		return DraftState{}, RequiredError("url")
	}
	title := d.state.Title
	if title == "" {
		title = d.state.URL
	}
	req := enrich.Request{Title: title, Description: d.state.Description, URL: d.state.URL}
	d.state.Analyzing = true
	s.mu.Unlock()

	suggestion := s.enricher.Analyze(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok = s.drafts[id]
	if !ok {
		return DraftState{}, ErrNotFound
	}
	d.state.Analyzing = false
	d.state.Tags = append([]string{}, suggestion.Tags...)
	d.state.Summary = suggestion.Summary
	if suggestion.SuggestedTitle != "" {
		d.state.Title = suggestion.SuggestedTitle
	}
	if suggestion.SuggestedFolder != "" {
		d.state.Folder = suggestion.SuggestedFolder
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "draft analyzed",
		"draft_id", id,
		"tags", len(suggestion.Tags),
		"fallback", suggestion.Fallback,
	)
	return cloneState(d.state), nil
}

// Save submits the draft with the title defaulting to the URL.
func (s *Drafts) Save(ctx context.Context, id string) (model.ContentItem, error) {
	s.mu.Lock()
	d, ok := s.drafts[id]
	if !ok {
		s.mu.Unlock()
		return model.ContentItem{}, ErrNotFound
	}
	submitted := cloneState(d.state).Draft
	s.mu.Unlock()

	if submitted.Title == "" {
		submitted.Title = submitted.URL
	}

	item, err := s.saver.AddItem(ctx, submitted)
	if err != nil {
		if errors.Is(err, catalog.ErrURLRequired) {
			return model.ContentItem{}, RequiredError("url")
		}
		return model.ContentItem{}, fmt.Errorf("failed to save draft: %w", err)
	}

	s.mu.Lock()
	if d, ok := s.drafts[id]; ok {
		s.haltLocked(d)
		delete(s.drafts, id)
	}
	s.mu.Unlock()

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "draft saved", "draft_id", id, "item_id", item.ID)
	return item, nil
}

// Discard drops a draft and cancels its background work.
func (s *Drafts) Discard(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[id]
	if !ok {
		return ErrNotFound
	}
	s.haltLocked(d)
	delete(s.drafts, id)
	return nil
}

// Close cancels all background work and waits for it to finish.
func (s *Drafts) Close() {
	s.mu.Lock()
	s.closed = true
	for _, d := range s.drafts {
		s.haltLocked(d)
	}
	s.stop()
	s.mu.Unlock()

	s.wg.Wait()
}

func cloneState(st DraftState) DraftState {
	out := st
	out.Tags = append([]string{}, st.Tags...)
	if st.NoteImages != nil {
		out.NoteImages = append([]string(nil), st.NoteImages...)
	}
	return out
}
