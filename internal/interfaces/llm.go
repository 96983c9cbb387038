package interfaces

import "context"

// Generator is a text-completion provider. Implementations wrap one model
// backend (Gemini, Claude, OpenAI, Ollama) behind a single prompt-in,
// text-out call.
type Generator interface {
	// Name identifies the provider for logs and reports.
	Name() string

	// Generate returns the model's completion for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}
