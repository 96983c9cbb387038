package noop

import (
	"context"

	"stock-advisor/internal/logger"
)

// Provider is the fallback generator used when no model is configured. It
// returns empty output, which callers treat the same as a model that had
// nothing to say: neutral sentiment, stock summary text.
type Provider struct{}

func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string { return "noop" }

func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	logger.Debug(ctx, "Noop generator called - returning empty output")
	return "", nil
}
