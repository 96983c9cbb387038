package ollama

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stock-advisor/internal/api"
	"stock-advisor/internal/logger"
)

// Provider generates text against a local Ollama server. No API key, just
// a model that has been pulled beforehand.
type Provider struct {
	api     *api.Client
	baseURL string
	model   string
}

func New(baseURL, model string) *Provider {
	return &Provider{
		// Local models answer slowly on CPU-only hosts
		api:     api.NewClient(api.WithTimeout(120 * time.Second)),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
	}
}

func (p *Provider) Name() string { return "ollama" }

func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := logger.StartSpan(ctx, "ollama-generate")
	defer span.End()

	body := map[string]any{
		"model":  p.model,
		"prompt": prompt,
		"stream": false,
	}

	resp, err := p.api.POST(ctx, p.baseURL+"/api/generate", body)
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}

	var parsed struct {
		Response string `json:"response"`
	}
	if err := resp.ParseJSON(&parsed); err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}

	out := strings.TrimSpace(parsed.Response)
	if out == "" {
		return "", fmt.Errorf("ollama generate: empty response from model %s", p.model)
	}
	return out, nil
}
