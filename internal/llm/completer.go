// Package llm talks to external text-completion backends and turns their
// answers into structured resolver suggestions.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/park-tracker/internal/domain"
)

// Supported providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Completer sends one system instruction plus one user prompt and returns
// the raw model text.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Options selects and configures a backend.
type Options struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// NewCompleter returns the backend named by opts.Provider. A missing API key
// yields an error wrapping domain.ErrModelUnavailable.
func NewCompleter(ctx context.Context, opts Options) (Completer, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("llm.NewCompleter: %w: no API key configured", domain.ErrModelUnavailable)
	}
	switch opts.Provider {
	case ProviderOpenAI, "":
		return NewOpenAIClient(opts), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, opts)
	default:
		return nil, fmt.Errorf("llm.NewCompleter: %w: unknown provider %q", domain.ErrModelUnavailable, opts.Provider)
	}
}
