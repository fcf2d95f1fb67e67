package ai

import (
	"context"

	"mood-relay/internal/config"
)

// Provider is a text-generation backend. Implementations return the
// generated text for a fully assembled prompt.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DefaultProvider returns the configured backend. Only Ollama is wired
// today; the interface keeps the pipeline ignorant of that.
func DefaultProvider(cfg *config.Config) Provider {
	return NewOllamaProvider(cfg)
}
