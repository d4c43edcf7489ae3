package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"linkloom/internal/enrich"
	"linkloom/internal/resolver"
	"linkloom/internal/view"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	DBPath    string
	LogLevel  slog.Level
	LogFormat string

	PrimaryDimension      view.Dimension
	ProtectFallbackFolder bool
	SeedPath              string

	AIProvider   string
	GeminiAPIKey string
	GeminiModel  string
	LLMBaseURL   string
	LLMAPIKey    string
	LLMModelName string

	ResolverTimeout  time.Duration
	ResolverDebounce time.Duration
	ResolverCacheTTL time.Duration
	OEmbedURL        string
	MicrolinkURL     string
	ProxyURLs        []string
	RenderControlURL string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:          getEnv("API_PORT", "9000"),
		DBPath:           getEnv("DB_PATH", "./data/linkloom.db"),
		LogFormat:        strings.ToLower(getEnv("LOG_FORMAT", "text")),
		SeedPath:         getEnv("SEED_PATH", ""),
		AIProvider:       strings.ToLower(getEnv("AI_PROVIDER", enrich.ProviderAuto)),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		LLMBaseURL:       getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMAPIKey:        getEnv("LLM_API_KEY", ""),
		LLMModelName:     getEnv("LLM_MODEL", "Llama-3.1-8B-Instruct"),
		OEmbedURL:        getEnv("OEMBED_URL", "https://noembed.com/embed"),
		MicrolinkURL:     getEnv("MICROLINK_URL", "https://api.microlink.io/"),
		ProxyURLs:        getList("PROXY_URLS", resolver.DefaultProxyURLs),
		RenderControlURL: getEnv("RENDER_CONTROL_URL", ""),
	}

	if cfg.LogLevel, err = parseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if cfg.PrimaryDimension, err = view.ParseDimension(strings.ToLower(getEnv("PRIMARY_DIMENSION", string(view.Platform)))); err != nil {
		return nil, fmt.Errorf("PRIMARY_DIMENSION: %w", err)
	}
	if cfg.ProtectFallbackFolder, err = getBool("PROTECT_FALLBACK_FOLDER", false); err != nil {
		return nil, err
	}

	switch cfg.AIProvider {
	case enrich.ProviderAuto, enrich.ProviderGemini, enrich.ProviderOpenAI, enrich.ProviderNone:
	default:
		return nil, fmt.Errorf("AI_PROVIDER must be auto, gemini, openai or none, got %q", cfg.AIProvider)
	}

	if cfg.ResolverTimeout, err = getDuration("RESOLVER_TIMEOUT", 8*time.Second); err != nil {
		return nil, err
	}
	if cfg.ResolverTimeout <= 0 {
		return nil, fmt.Errorf("RESOLVER_TIMEOUT must be greater than 0")
	}
	if cfg.ResolverDebounce, err = getDuration("RESOLVER_DEBOUNCE", time.Second); err != nil {
		return nil, err
	}
	if cfg.ResolverCacheTTL, err = getDuration("RESOLVER_CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	for _, tmpl := range cfg.ProxyURLs {
		if !strings.Contains(tmpl, resolver.URLPlaceholder) {
			return nil, fmt.Errorf("PROXY_URLS entry %q has no %s placeholder", tmpl, resolver.URLPlaceholder)
		}
	}

	// Create ./data directory if it doesn't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}

// getList splits a comma-separated variable, dropping blanks.
func getList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return append([]string(nil), defaultValue...)
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	return level, nil
}
