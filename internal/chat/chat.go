// Package chat wraps the remote chat-completion APIs behind a single
// Completer interface. Two backends are supported: OpenAI through the
// official client, and Anthropic through a small hand-rolled JSON client.
package chat

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Roles used in the conversation message list.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged turn of the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer requests one reply for a message list.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Config selects and tunes a backend. Zero is a valid Temperature; a
// negative value selects the default.
type Config struct {
	Provider    string // "openai" or "claude"
	Model       string
	MaxTokens   int
	Temperature float64
}

const (
	defaultMaxTokens   = 1500
	defaultTemperature = 0.7
)

// New creates a Completer from config. The API key must be non-empty; a
// chat assistant without its model is not worth starting.
func New(cfg Config, apiKey string) (Completer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("chat API key not configured")
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Temperature < 0 {
		cfg.Temperature = defaultTemperature
	}

	switch cfg.Provider {
	case "openai", "":
		model := cfg.Model
		if model == "" {
			model = "gpt-4-turbo"
		}
		return newOpenAI(apiKey, model, cfg.MaxTokens, cfg.Temperature), nil
	case "claude":
		model := cfg.Model
		if model == "" {
			model = "claude-haiku-4-5-20251001"
		}
		return &claudeCompleter{
			apiKey:    apiKey,
			model:     model,
			maxTokens: cfg.MaxTokens,
			client:    &http.Client{Timeout: 30 * time.Second},
		}, nil
	default:
		return nil, fmt.Errorf("unknown chat provider: %q (valid: openai, claude)", cfg.Provider)
	}
}
