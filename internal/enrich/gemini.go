package enrich

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// ContentGenerator is the part of *genai.Models used here.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini analyzes content with structured JSON output.
type Gemini struct {
	models ContentGenerator
	model  string
}

// NewGemini creates a Gemini analyzer for the Gemini API backend.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return NewGeminiWithGenerator(client.Models, model), nil
}

// NewGeminiWithGenerator creates a Gemini analyzer over an existing generator.
func NewGeminiWithGenerator(models ContentGenerator, model string) *Gemini {
	return &Gemini{models: models, model: model}
}

// Name implements Analyzer.
func (g *Gemini) Name() string {
	return "gemini"
}

// Analyze implements Analyzer.
func (g *Gemini) Analyze(ctx context.Context, req Request) (Suggestion, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(Prompt(req)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   suggestionSchema,
	})
	if err != nil {
		return Suggestion{}, fmt.Errorf("generate content: %w", err)
	}
	return parseSuggestion(resp.Text())
}

var suggestionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"tags": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "List of relevant tags",
		},
		"summary": {
			Type:        genai.TypeString,
			Description: "A concise summary of the content",
		},
		"suggestedTitle": {
			Type:        genai.TypeString,
			Description: "A cleaned up title",
		},
		"suggestedFolder": {
			Type:        genai.TypeString,
			Description: "A broad category folder name",
		},
	},
	Required: []string{"tags", "summary", "suggestedFolder"},
}
