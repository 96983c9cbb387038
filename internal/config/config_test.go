package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "news:\n  enabled: true\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "90d", cfg.Market.HistoryPeriod)
	assert.Equal(t, "6mo", cfg.Market.RiskPeriod)
	assert.Equal(t, 60, cfg.Forecast.LookbackBars)
	assert.Equal(t, 5, cfg.News.PageSize)
	assert.Equal(t, "GEMINI", cfg.LLM.Provider)
	assert.Equal(t, "three-signal", cfg.Scoring.Mode)
	assert.True(t, cfg.News.Enabled)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
scoring:
  mode: two-signal
llm:
  provider: OLLAMA
  model: phi3
  roles:
    sentiment: GEMINI
news:
  page_size: 10
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "two-signal", cfg.Scoring.Mode)
	assert.Equal(t, "OLLAMA", cfg.LLM.Provider)
	assert.Equal(t, "phi3", cfg.LLM.Model)
	assert.Equal(t, "GEMINI", cfg.LLM.Roles.Sentiment)
	assert.Equal(t, 10, cfg.News.PageSize)
}

func TestLoadConfigRejectsBadMode(t *testing.T) {
	path := writeConfig(t, "scoring:\n  mode: four-signal\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scoring.mode")
}

func TestLoadConfigRejectsBadProvider(t *testing.T) {
	path := writeConfig(t, "llm:\n  provider: BARD\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm.provider")
}

func TestLoadConfigRejectsBadRoleProvider(t *testing.T) {
	path := writeConfig(t, "llm:\n  roles:\n    summary: BARD\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm.roles")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 120, cfg.Server.WriteTimeoutSeconds)
}

func TestDefaultNewsEnabled(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.News.Enabled)
	assert.True(t, cfg.News.ScraperFallback)
}

func TestLoadConfigNewsOnWhenOmitted(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.News.Enabled)
	assert.True(t, cfg.News.ScraperFallback)
}

func TestLoadConfigNewsExplicitlyOff(t *testing.T) {
	path := writeConfig(t, "news:\n  enabled: false\n  scraper_fallback: false\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.False(t, cfg.News.Enabled)
	assert.False(t, cfg.News.ScraperFallback)
}
