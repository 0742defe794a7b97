// Package lexicon supplies baseline Mandarin terms for a chain text.
package lexicon

import (
	"context"
	"fmt"
	"strings"

	"github.com/kkennyy/call-what-ah/internal/model"
)

// Query identifies one baseline lookup
type Query struct {
	Text    string
	Sex     model.Sex
	Reverse bool
}

// Provider returns baseline Mandarin terms for a query
type Provider interface {
	// Name returns the provider name
	Name() string

	// Terms returns candidate terms, most common first
	Terms(ctx context.Context, q Query) ([]string, error)
}

// NewProvider returns the static table, or the model-backed provider when
// one is configured
func NewProvider(cfg model.LLMConfig, lex *model.Lexicon) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "":
		return NewStaticProvider(lex), nil
	case "openai":
		return NewOpenAIProvider(cfg)
	case "anthropic", "claude":
		return NewAnthropicProvider(cfg)
	case "ollama":
		return NewOllamaProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown lexicon provider: %s (supported: openai, anthropic, ollama)", cfg.Provider)
	}
}
