package llm

import (
	"context"
	"fmt"
	"os"

	"stock-advisor/internal/config"
	"stock-advisor/internal/interfaces"
	"stock-advisor/internal/llm/claude"
	"stock-advisor/internal/llm/gemini"
	"stock-advisor/internal/llm/llmobs"
	"stock-advisor/internal/llm/noop"
	"stock-advisor/internal/llm/ollama"
	"stock-advisor/internal/llm/openai"
	"stock-advisor/internal/logger"
)

// New builds the text generator named by llm.provider in the config. A
// provider whose API key is not set degrades to the noop generator rather
// than failing, so the advisory pipeline keeps running on neutral defaults.
func New(ctx context.Context, cfg *config.Config) (interfaces.Generator, error) {
	return build(ctx, cfg, cfg.LLM.Provider)
}

// ForRole builds the generator for one pipeline role. Roles without an
// override in llm.roles share the default provider.
func ForRole(ctx context.Context, cfg *config.Config, roleProvider string) (interfaces.Generator, error) {
	if roleProvider == "" {
		roleProvider = cfg.LLM.Provider
	}
	return build(ctx, cfg, roleProvider)
}

func build(ctx context.Context, cfg *config.Config, provider string) (interfaces.Generator, error) {
	gen, err := newProvider(ctx, cfg, provider)
	if err != nil {
		return nil, err
	}
	return llmobs.Wrap(gen), nil
}

func newProvider(ctx context.Context, cfg *config.Config, provider string) (interfaces.Generator, error) {
	model := modelFor(cfg, provider)

	switch provider {
	case "GEMINI":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			logger.Warn(ctx, "GEMINI_API_KEY not set, falling back to noop generator")
			return noop.New(), nil
		}
		return gemini.New(ctx, apiKey, model, cfg.LLM.Temperature)

	case "CLAUDE":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			logger.Warn(ctx, "ANTHROPIC_API_KEY not set, falling back to noop generator")
			return noop.New(), nil
		}
		return claude.New(apiKey, model, cfg.LLM.MaxTokens, cfg.LLM.Temperature), nil

	case "OPENAI":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			logger.Warn(ctx, "OPENAI_API_KEY not set, falling back to noop generator")
			return noop.New(), nil
		}
		return openai.New(apiKey, model, cfg.LLM.MaxTokens, cfg.LLM.Temperature), nil

	case "OLLAMA":
		return ollama.New(cfg.LLM.OllamaURL, model), nil

	case "NOOP":
		return noop.New(), nil
	}

	return nil, fmt.Errorf("unknown llm provider %q", provider)
}

// modelFor returns the configured model when the provider matches the main
// one, and the provider's stock default otherwise. A role routed to a
// different provider cannot reuse the main model name.
func modelFor(cfg *config.Config, provider string) string {
	if provider == cfg.LLM.Provider && cfg.LLM.Model != "" {
		return cfg.LLM.Model
	}
	switch provider {
	case "GEMINI":
		return "gemini-flash-lite-latest"
	case "CLAUDE":
		return "claude-3-5-haiku-latest"
	case "OPENAI":
		return "gpt-4o-mini"
	case "OLLAMA":
		return "phi3"
	}
	return cfg.LLM.Model
}
