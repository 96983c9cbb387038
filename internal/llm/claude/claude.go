package claude

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"stock-advisor/internal/logger"
)

// Provider generates text with the Anthropic Messages API.
type Provider struct {
	client      anthropic.Client
	model       string
	maxTokens   int
	temperature float32
}

func New(apiKey, model string, maxTokens int, temperature float32) *Provider {
	return &Provider{
		client:      anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

func (p *Provider) Name() string { return "claude" }

func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := logger.StartSpan(ctx, "claude-generate")
	defer span.End()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(p.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if p.temperature > 0 {
		params.Temperature = anthropic.Float(float64(p.temperature))
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("claude generate: %w", err)
	}

	var out strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("claude generate: empty response from model %s", p.model)
	}
	return out.String(), nil
}
