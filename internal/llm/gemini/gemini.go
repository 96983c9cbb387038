package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"stock-advisor/internal/logger"
)

// Provider generates text with the Gemini API.
type Provider struct {
	client      *genai.Client
	model       string
	temperature float32
}

// New initializes a Gemini client against the public Gemini API backend.
func New(ctx context.Context, apiKey, model string, temperature float32) (*Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}

	return &Provider{
		client:      client,
		model:       model,
		temperature: temperature,
	}, nil
}

func (p *Provider) Name() string { return "gemini" }

func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := logger.StartSpan(ctx, "gemini-generate")
	defer span.End()

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(p.temperature),
	}
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	// Walk candidates until one yields text
	var out strings.Builder
	if resp != nil {
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					out.WriteString(part.Text)
				}
			}
			if out.Len() > 0 {
				break
			}
		}
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("gemini generate: empty response from model %s", p.model)
	}
	return out.String(), nil
}
