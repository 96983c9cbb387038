package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stock-advisor/internal/api"
	"stock-advisor/internal/logger"
)

const defaultEndpoint = "https://api.openai.com/v1/chat/completions"

// Provider generates text with the OpenAI chat completions API.
type Provider struct {
	api         *api.Client
	endpoint    string
	model       string
	maxTokens   int
	temperature float32
}

// Option customizes the provider
type Option func(*Provider)

// WithEndpoint overrides the completions endpoint, used by tests and
// OpenAI-compatible proxies
func WithEndpoint(endpoint string) Option {
	return func(p *Provider) {
		p.endpoint = endpoint
	}
}

func New(apiKey, model string, maxTokens int, temperature float32, opts ...Option) *Provider {
	p := &Provider{
		api: api.NewClient(
			api.WithTimeout(60*time.Second),
			api.WithHeader("Authorization", "Bearer "+apiKey),
		),
		endpoint:    defaultEndpoint,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Name() string { return "openai" }

func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := logger.StartSpan(ctx, "openai-generate")
	defer span.End()

	body := map[string]any{
		"model":       p.model,
		"messages":    []map[string]string{{"role": "user", "content": prompt}},
		"max_tokens":  p.maxTokens,
		"temperature": p.temperature,
	}

	resp, err := p.api.POST(ctx, p.endpoint, body)
	if err != nil {
		return "", fmt.Errorf("openai generate: %w", err)
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := resp.ParseJSON(&parsed); err != nil {
		return "", fmt.Errorf("openai generate: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("openai generate: no choices in response")
	}

	out := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("openai generate: empty response from model %s", p.model)
	}
	return out, nil
}
