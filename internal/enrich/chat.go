package enrich

import (
	"context"
	"fmt"

	"linkloom/internal/llm"
)

// Completer is the part of *llm.Client used here.
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

const chatSystemPrompt = `You are a content curator. Reply with a single JSON object with the keys
"tags" (array of strings), "summary" (string), "suggestedTitle" (string) and
"suggestedFolder" (string). Do not add any other text.`

// Chat analyzes content through an OpenAI-compatible chat endpoint.
type Chat struct {
	client Completer
}

// NewChat creates a Chat analyzer.
func NewChat(client Completer) *Chat {
	return &Chat{client: client}
}

// Name implements Analyzer.
func (c *Chat) Name() string {
	return "openai"
}

// Analyze implements Analyzer.
func (c *Chat) Analyze(ctx context.Context, req Request) (Suggestion, error) {
	reply, err := c.client.Complete(ctx, []llm.Message{
		{Role: "system", Content: chatSystemPrompt},
		{Role: "user", Content: Prompt(req)},
	}, llm.ChatParams{JSON: true, Temperature: 0.2})
	if err != nil {
		return Suggestion{}, fmt.Errorf("chat completion: %w", err)
	}
	return parseSuggestion(reply)
}
