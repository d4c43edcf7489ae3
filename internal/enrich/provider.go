package enrich

import (
	"context"
	"fmt"
	"log/slog"

	"linkloom/internal/llm"
)

// Provider names.
const (
	ProviderAuto   = "auto"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// Options selects and configures the provider.
type Options struct {
	Provider     string
	GeminiAPIKey string
	GeminiModel  string
	LLMBaseURL   string
	LLMAPIKey    string
	LLMModel     string
}

// New builds a Service for opts. Selecting gemini without a key yields a
// Service that always returns the missing-key fallback.
func New(ctx context.Context, opts Options, logger *slog.Logger) (*Service, error) {
	provider := opts.Provider
	if provider == "" || provider == ProviderAuto {
		switch {
		case opts.GeminiAPIKey != "":
			provider = ProviderGemini
		case opts.LLMAPIKey != "":
			provider = ProviderOpenAI
		default:
			provider = ProviderNone
		}
	}

	switch provider {
	case ProviderGemini:
		if opts.GeminiAPIKey == "" {
			return NewService(nil, logger), nil
		}
		g, err := NewGemini(ctx, opts.GeminiAPIKey, opts.GeminiModel)
		if err != nil {
			return nil, err
		}
		return NewService(g, logger), nil
	case ProviderOpenAI:
		return NewService(NewChat(llm.NewClient(opts.LLMBaseURL, opts.LLMAPIKey, opts.LLMModel)), logger), nil
	case ProviderNone:
		return NewService(nil, logger), nil
	}
	return nil, fmt.Errorf("unknown AI provider %q", provider)
}
