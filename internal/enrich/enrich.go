// Package enrich asks a generative model for tags, a summary, a cleaned
// title and a folder suggestion for a piece of content.
package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"linkloom/internal/model"
)

// Fallback texts returned in place of a model answer.
const (
	MissingKeySummary = "AI analysis unavailable (Missing API Key)."
	FailureSummary    = "Could not generate summary."
)

// Request describes the content to analyze.
type Request struct {
	Title       string
	Description string
	URL         string
}

// Suggestion is the model's answer.
type Suggestion struct {
	Tags            []string `json:"tags"`
	Summary         string   `json:"summary"`
	SuggestedTitle  string   `json:"suggestedTitle,omitempty"`
	SuggestedFolder string   `json:"suggestedFolder"`
	// Fallback is set when the suggestion did not come from a model.
	Fallback bool `json:"fallback,omitempty"`
}

// Analyzer is a model provider.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (Suggestion, error)
	Name() string
}

// Service wraps an Analyzer and never fails: a missing provider or a failed
// call yields a fallback suggestion.
type Service struct {
	analyzer Analyzer
	logger   *slog.Logger
}

// NewService creates a Service. A nil analyzer means no credentials are
// configured.
func NewService(analyzer Analyzer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{analyzer: analyzer, logger: logger}
}

// Provider returns the analyzer name, or "none".
func (s *Service) Provider() string {
	if s.analyzer == nil {
		return "none"
	}
	return s.analyzer.Name()
}

// Analyze returns a suggestion for req.
func (s *Service) Analyze(ctx context.Context, req Request) Suggestion {
	if s.analyzer == nil {
		s.logger.WarnContext(ctx, "AI provider not configured, returning fallback")
		return fallback(req, MissingKeySummary)
	}

	suggestion, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		s.logger.WarnContext(ctx, "content analysis failed",
			"provider", s.analyzer.Name(),
			"url", req.URL,
			"error", err,
		)
		return fallback(req, FailureSummary)
	}
	return suggestion
}

func fallback(req Request, summary string) Suggestion {
	return Suggestion{
		Tags:            []string{model.UncategorizedFolder},
		Summary:         summary,
		SuggestedTitle:  req.Title,
		SuggestedFolder: model.DefaultFolder,
		Fallback:        true,
	}
}

// Prompt builds the instruction shared by every provider.
func Prompt(req Request) string {
	return fmt.Sprintf(`I have a piece of content I want to save.
URL: %s
Title: %s
Description/Notes: %s

Please analyze this information and provide:
1. A list of 3-5 relevant short tags (max 10 chars each).
2. A one-sentence summary (max 20 words).
3. A clean, short title.
4. A generic "Folder" category name (e.g., "Inspiration", "Education", "Entertainment", "News", "Shopping").`,
		req.URL, req.Title, req.Description)
}

var errEmptyReply = errors.New("empty reply")

// parseSuggestion decodes a JSON reply, tolerating a markdown code fence.
func parseSuggestion(text string) (Suggestion, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	if text == "" {
		return Suggestion{}, errEmptyReply
	}

	var s Suggestion
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return Suggestion{}, fmt.Errorf("failed to decode suggestion: %w", err)
	}

	tags := make([]string, 0, len(s.Tags))
	for _, tag := range s.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	s.Tags = tags
	s.Summary = strings.TrimSpace(s.Summary)
	s.SuggestedTitle = strings.TrimSpace(s.SuggestedTitle)
	s.SuggestedFolder = strings.TrimSpace(s.SuggestedFolder)
	s.Fallback = false

	if s.Summary == "" && len(s.Tags) == 0 && s.SuggestedFolder == "" {
		return Suggestion{}, errEmptyReply
	}
	return s, nil
}
