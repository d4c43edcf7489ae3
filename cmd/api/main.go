package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linkloom/internal/catalog"
	"linkloom/internal/config"
	"linkloom/internal/enrich"
	"linkloom/internal/http"
	"linkloom/internal/notify"
	"linkloom/internal/resolver"
	"linkloom/internal/service"
	"linkloom/internal/storage"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	documentRepo := storage.NewDocumentRepo(db)
	metadataRepo := storage.NewMetadataCacheRepo(db)

	seed, err := loadSeed(cfg.SeedPath)
	if err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}

	hub := notify.NewHub(50)
	store, err := catalog.Open(ctx, documentRepo,
		catalog.WithNotifier(hub),
		catalog.WithLogger(logger),
		catalog.WithPrimary(cfg.PrimaryDimension),
		catalog.WithProtectedFallback(cfg.ProtectFallbackFolder),
		catalog.WithSeed(seed),
	)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}

	res := resolver.New(resolver.Options{
		Timeout:          cfg.ResolverTimeout,
		OEmbedURL:        cfg.OEmbedURL,
		MicrolinkURL:     cfg.MicrolinkURL,
		ProxyURLs:        cfg.ProxyURLs,
		RenderControlURL: cfg.RenderControlURL,
		CacheTTL:         cfg.ResolverCacheTTL,
	}, metadataRepo, logger)
	defer func() {
		_ = res.Close()
	}()

	enricher, err := enrich.New(ctx, enrich.Options{
		Provider:     cfg.AIProvider,
		GeminiAPIKey: cfg.GeminiAPIKey,
		GeminiModel:  cfg.GeminiModel,
		LLMBaseURL:   cfg.LLMBaseURL,
		LLMAPIKey:    cfg.LLMAPIKey,
		LLMModel:     cfg.LLMModelName,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to configure AI provider: %v", err)
	}
	slog.Info("AI enrichment configured", "provider", enricher.Provider())

	drafts := service.NewDrafts(res, enricher, store, cfg.ResolverDebounce, logger)
	defer drafts.Close()

	// Create router with dependencies
	router := http.NewRouter(&http.Deps{
		Store:         store,
		Drafts:        drafts,
		Resolver:      res,
		Notifications: hub,
		DB:            db,
		AIProvider:    enricher.Provider(),
	})

	if cfg.ResolverCacheTTL > 0 {
		go pruneMetadataCache(ctx, metadataRepo, cfg.ResolverCacheTTL)
	}

	// Start API server
	addr := ":" + cfg.APIPort
	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", addr, "primary_dimension", cfg.PrimaryDimension)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
}

func loadSeed(path string) (catalog.Seed, error) {
	if path == "" {
		return catalog.DefaultSeed()
	}
	slog.Info("Loading seed data", "path", path)
	return catalog.LoadSeed(path)
}

// pruneMetadataCache drops expired previews once an hour.
func pruneMetadataCache(ctx context.Context, repo *storage.MetadataCacheRepo, ttl time.Duration) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.Prune(ctx, time.Now().Add(-ttl))
			if err != nil {
				slog.Warn("Metadata cache prune failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Debug("Metadata cache pruned", "removed", n)
			}
		}
	}
}
