// Package resolver fetches best-effort link previews (title, thumbnail,
// description) through a chain of public services.
package resolver

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_cache.go -package=mocks linkloom/internal/resolver Cache

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"linkloom/internal/platform"
	"linkloom/internal/storage"
)

// Cache stores resolved previews. Get returns storage.ErrNotFound for
// missing or expired entries.
type Cache interface {
	Get(ctx context.Context, url string, notBefore time.Time) (*storage.CachedMetadata, error)
	Put(ctx context.Context, m *storage.CachedMetadata) error
}

// Options configures the stage chain.
type Options struct {
	// Timeout bounds each stage.
	Timeout time.Duration
	// OEmbedURL is the oEmbed lookup endpoint used for YouTube titles.
	OEmbedURL string
	// MicrolinkURL is the rendering JSON service tried first for other sites.
	MicrolinkURL string
	// ProxyURLs are fetch proxy templates containing URLPlaceholder.
	ProxyURLs []string
	// RenderControlURL is a Chrome DevTools endpoint. Empty disables the
	// headless render stage.
	RenderControlURL string
	// CacheTTL is how long cached previews stay valid. Zero disables the
	// cache.
	CacheTTL time.Duration
}

// Resolver resolves link previews. It never returns an error: every failure
// degrades to a partial or empty Metadata.
type Resolver struct {
	opts     Options
	client   *http.Client
	cache    Cache
	render   *renderer
	logger   *slog.Logger
	now      func() time.Time
	inflight singleflight.Group
}

// New creates a Resolver. cache may be nil.
func New(opts Options, cache Cache, logger *slog.Logger) *Resolver {
	if opts.Timeout <= 0 {
		opts.Timeout = 8 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
		cache:  cache,
		render: newRenderer(opts.RenderControlURL),
		logger: logger,
		now:    time.Now,
	}
}

// Close releases the headless browser connection, if any.
func (r *Resolver) Close() error {
	if r.render == nil {
		return nil
	}
	return r.render.close()
}

// Resolve returns what could be found about rawURL. Concurrent calls for the
// same URL share one resolution.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) Metadata {
	target := strings.TrimSpace(rawURL)
	if !isHTTP(target) {
		return Metadata{}
	}

	if md, ok := r.cached(ctx, target); ok {
		return md
	}

	ch := r.inflight.DoChan(target, func() (any, error) {
		// Shared by every waiter, so no single caller may cancel it.
		ctx := context.WithoutCancel(ctx)
		md := r.resolve(ctx, target)
		r.store(ctx, target, md)
		return md, nil
	})

	select {
	case res := <-ch:
		return res.Val.(Metadata)
	case <-ctx.Done():
		return Metadata{}
	}
}

func (r *Resolver) resolve(ctx context.Context, target string) Metadata {
	logger := r.logger.With("url", target)

	var md Metadata
	if label, _ := platform.Classify(target); label == platform.YouTube {
		if id := VideoID(target); id != "" {
			md = md.merge(Metadata{ThumbnailURL: ThumbnailURL(id)}, "video-id")
		}
		md = r.stage(ctx, logger, md, "oembed", r.fetchOEmbed, target)
		if md.Title != "" {
			return md
		}
		return r.stage(ctx, logger, md, "proxy", r.fetchViaProxies, target)
	}

	md = r.stage(ctx, logger, md, "microlink", r.fetchMicrolink, target)
	if !md.Complete() {
		md = r.stage(ctx, logger, md, "proxy", r.fetchViaProxies, target)
	}
	if !md.Complete() && r.render != nil {
		md = r.stage(ctx, logger, md, "render", r.render.fetch, target)
	}

	logger.DebugContext(ctx, "metadata resolved",
		"source", md.Source,
		"title", md.Title != "",
		"thumbnail", md.ThumbnailURL != "",
	)
	return md
}

type stageFunc func(ctx context.Context, target string) (Metadata, error)

// stage runs fn under the per-stage timeout and merges its result.
func (r *Resolver) stage(ctx context.Context, logger *slog.Logger, md Metadata, name string, fn stageFunc, target string) Metadata {
	stageCtx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	got, err := fn(stageCtx, target)
	if err != nil {
		logger.DebugContext(ctx, "resolver stage failed", "stage", name, "error", err)
		return md
	}
	return md.merge(got, name)
}

func (r *Resolver) cached(ctx context.Context, target string) (Metadata, bool) {
	if r.cache == nil || r.opts.CacheTTL <= 0 {
		return Metadata{}, false
	}
	entry, err := r.cache.Get(ctx, target, r.now().Add(-r.opts.CacheTTL))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.logger.WarnContext(ctx, "metadata cache read failed", "error", err)
		}
		return Metadata{}, false
	}
	return Metadata{
		Title:        entry.Title,
		Description:  entry.Description,
		ThumbnailURL: entry.ThumbnailURL,
		Source:       "cache",
	}, true
}

// store caches non-empty results only, so a transient outage is retried.
func (r *Resolver) store(ctx context.Context, target string, md Metadata) {
	if r.cache == nil || r.opts.CacheTTL <= 0 || md.Empty() {
		return
	}
	err := r.cache.Put(ctx, &storage.CachedMetadata{
		URL:          target,
		Title:        md.Title,
		Description:  md.Description,
		ThumbnailURL: md.ThumbnailURL,
		Source:       md.Source,
		FetchedAt:    r.now(),
	})
	if err != nil {
		r.logger.WarnContext(ctx, "metadata cache write failed", "error", err)
	}
}

func isHTTP(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
