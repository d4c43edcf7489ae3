package config

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"linkloom/internal/resolver"
	"linkloom/internal/view"
)

var envVars = []string{
	"API_PORT", "DB_PATH", "LOG_LEVEL", "LOG_FORMAT",
	"PRIMARY_DIMENSION", "PROTECT_FALLBACK_FOLDER", "SEED_PATH",
	"AI_PROVIDER", "GEMINI_API_KEY", "GEMINI_MODEL",
	"LLM_BASE_URL", "LLM_API_KEY", "LLM_MODEL",
	"RESOLVER_TIMEOUT", "RESOLVER_DEBOUNCE", "RESOLVER_CACHE_TTL",
	"OEMBED_URL", "MICROLINK_URL", "PROXY_URLS", "RENDER_CONTROL_URL",
}

// clearEnv blanks every variable Load reads; t.Setenv restores them.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "data", "linkloom.db"))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.APIPort != "9000" {
		t.Errorf("APIPort = %v, want 9000", cfg.APIPort)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %v, want text", cfg.LogFormat)
	}
	if cfg.PrimaryDimension != view.Platform {
		t.Errorf("PrimaryDimension = %v, want platform", cfg.PrimaryDimension)
	}
	if cfg.ProtectFallbackFolder {
		t.Error("ProtectFallbackFolder should default to false")
	}
	if cfg.AIProvider != "auto" {
		t.Errorf("AIProvider = %v, want auto", cfg.AIProvider)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("GeminiModel = %v, want gemini-2.5-flash", cfg.GeminiModel)
	}
	if cfg.ResolverTimeout != 8*time.Second || cfg.ResolverDebounce != time.Second || cfg.ResolverCacheTTL != 24*time.Hour {
		t.Errorf("resolver durations = %v/%v/%v", cfg.ResolverTimeout, cfg.ResolverDebounce, cfg.ResolverCacheTTL)
	}
	if cfg.OEmbedURL != "https://noembed.com/embed" {
		t.Errorf("OEmbedURL = %v", cfg.OEmbedURL)
	}
	if len(cfg.ProxyURLs) != len(resolver.DefaultProxyURLs) {
		t.Errorf("ProxyURLs = %v, want defaults", cfg.ProxyURLs)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name: "custom values",
			env: map[string]string{
				"API_PORT":                "8088",
				"LOG_LEVEL":               "debug",
				"LOG_FORMAT":              "JSON",
				"PRIMARY_DIMENSION":       "folder",
				"PROTECT_FALLBACK_FOLDER": "true",
				"AI_PROVIDER":             "openai",
				"RESOLVER_DEBOUNCE":       "250ms",
				"RESOLVER_CACHE_TTL":      "0",
				"PROXY_URLS":              "https://a.example/?u={url}, ,https://b.example/{url}",
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.APIPort == "8088" &&
					cfg.LogLevel == slog.LevelDebug &&
					cfg.LogFormat == "json" &&
					cfg.PrimaryDimension == view.Folder &&
					cfg.ProtectFallbackFolder &&
					cfg.AIProvider == "openai" &&
					cfg.ResolverDebounce == 250*time.Millisecond &&
					cfg.ResolverCacheTTL == 0 &&
					len(cfg.ProxyURLs) == 2
			},
		},
		{
			name:    "invalid log level",
			env:     map[string]string{"LOG_LEVEL": "loud"},
			wantErr: true,
		},
		{
			name:    "invalid log format",
			env:     map[string]string{"LOG_FORMAT": "xml"},
			wantErr: true,
		},
		{
			name:    "invalid dimension",
			env:     map[string]string{"PRIMARY_DIMENSION": "tag"},
			wantErr: true,
		},
		{
			name:    "invalid provider",
			env:     map[string]string{"AI_PROVIDER": "other"},
			wantErr: true,
		},
		{
			name:    "invalid duration",
			env:     map[string]string{"RESOLVER_TIMEOUT": "soon"},
			wantErr: true,
		},
		{
			name:    "zero timeout",
			env:     map[string]string{"RESOLVER_TIMEOUT": "0s"},
			wantErr: true,
		},
		{
			name:    "invalid bool",
			env:     map[string]string{"PROTECT_FALLBACK_FOLDER": "maybe"},
			wantErr: true,
		},
		{
			name:    "proxy without placeholder",
			env:     map[string]string{"PROXY_URLS": "https://a.example/"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config check failed: %+v", cfg)
			}
		})
	}
}
