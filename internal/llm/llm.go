// Package llm provides the text-generation gateway used by the agent
// and the classifier fallback. Backends implement Generator so the
// model provider can be swapped without touching the core.
package llm

import (
	"context"
	"errors"
)

// ErrNoBackend is returned when no generation backend is configured.
var ErrNoBackend = errors.New("llm: no generation backend configured")

// ErrEmptyCompletion is returned when the backend answered with no
// usable text.
var ErrEmptyCompletion = errors.New("llm: empty completion")

// Generator produces text from a system instruction and a user
// instruction. Implementations must honor ctx cancellation and return
// an error rather than a partial or empty result.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return f(ctx, systemPrompt, userPrompt)
}
