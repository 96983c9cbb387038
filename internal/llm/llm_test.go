package llm

import (
	"context"
	"testing"

	"stock-advisor/internal/config"
)

func TestNoopProvider(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Provider = "NOOP"

	gen, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gen.Name() != "noop" {
		t.Errorf("Expected noop generator, got %s", gen.Name())
	}

	out, err := gen.Generate(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Expected no error from noop, got %v", err)
	}
	if out != "" {
		t.Errorf("Expected empty output from noop, got %q", out)
	}
}

func TestMissingKeyFallsBackToNoop(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg := config.Default()
	cfg.LLM.Provider = "GEMINI"

	gen, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Expected graceful fallback, got %v", err)
	}
	if gen.Name() != "noop" {
		t.Errorf("Expected noop fallback without API key, got %s", gen.Name())
	}
}

func TestUnknownProvider(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Provider = "ORACLE"

	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("Expected error for unknown provider")
	}
}

func TestForRoleDefaultsToMainProvider(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Provider = "NOOP"

	gen, err := ForRole(context.Background(), cfg, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gen.Name() != "noop" {
		t.Errorf("Expected role to inherit main provider, got %s", gen.Name())
	}
}

func TestModelForRoleOverride(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Provider = "GEMINI"
	cfg.LLM.Model = "gemini-flash-lite-latest"

	// Same provider keeps the configured model
	if model := modelFor(cfg, "GEMINI"); model != "gemini-flash-lite-latest" {
		t.Errorf("Expected configured model, got %s", model)
	}

	// A role routed elsewhere gets that provider's default
	if model := modelFor(cfg, "OLLAMA"); model != "phi3" {
		t.Errorf("Expected ollama default model, got %s", model)
	}
}
