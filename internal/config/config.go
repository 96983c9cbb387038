package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port                int  `yaml:"port"`
		ReadTimeoutSeconds  int  `yaml:"read_timeout_seconds"`
		WriteTimeoutSeconds int  `yaml:"write_timeout_seconds"`
		CORSEnabled         bool `yaml:"cors_enabled"`
	} `yaml:"server"`
	Market struct {
		HistoryPeriod     string `yaml:"history_period"`
		RiskPeriod        string `yaml:"risk_period"`
		QuoteCacheSeconds int    `yaml:"quote_cache_seconds"`
	} `yaml:"market"`
	Forecast struct {
		LookbackBars int     `yaml:"lookback_bars"`
		MaxDriftPct  float64 `yaml:"max_drift_pct"`
	} `yaml:"forecast"`
	News struct {
		Enabled         bool     `yaml:"enabled"`
		PageSize        int      `yaml:"page_size"`
		CacheMinutes    int      `yaml:"cache_minutes"`
		ScraperFallback bool     `yaml:"scraper_fallback"`
		Domains         []string `yaml:"domains"`
	} `yaml:"news"`
	LLM struct {
		Provider    string  `yaml:"provider"` // GEMINI, CLAUDE, OPENAI, OLLAMA, NOOP
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
		OllamaURL   string  `yaml:"ollama_url"`
		Roles       struct {
			Sentiment   string `yaml:"sentiment"`
			Summary     string `yaml:"summary"`
			Explanation string `yaml:"explanation"`
		} `yaml:"roles"`
	} `yaml:"llm"`
	Scoring struct {
		Mode string `yaml:"mode"` // two-signal or three-signal
	} `yaml:"scoring"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1-65535, got %d", c.Server.Port)
	}
	if c.Scoring.Mode != "two-signal" && c.Scoring.Mode != "three-signal" {
		return fmt.Errorf("scoring.mode must be 'two-signal' or 'three-signal', got '%s'", c.Scoring.Mode)
	}
	if !validProvider(c.LLM.Provider) {
		return fmt.Errorf("llm.provider must be one of GEMINI, CLAUDE, OPENAI, OLLAMA, NOOP, got '%s'", c.LLM.Provider)
	}
	for _, role := range []string{c.LLM.Roles.Sentiment, c.LLM.Roles.Summary, c.LLM.Roles.Explanation} {
		if role != "" && !validProvider(role) {
			return fmt.Errorf("llm.roles entries must name a valid provider, got '%s'", role)
		}
	}
	if c.Forecast.LookbackBars < 2 {
		return fmt.Errorf("forecast.lookback_bars must be at least 2, got %d", c.Forecast.LookbackBars)
	}
	if c.News.PageSize <= 0 || c.News.PageSize > 100 {
		return fmt.Errorf("news.page_size must be between 1-100, got %d", c.News.PageSize)
	}
	return nil
}

func validProvider(p string) bool {
	switch p {
	case "GEMINI", "CLAUDE", "OPENAI", "OLLAMA", "NOOP":
		return true
	}
	return false
}

// Default returns a config with every field at its default value, the same
// values LoadConfig fills for fields the file omits.
func Default() *Config {
	var c Config
	// The news pipeline is on unless the file turns it off. These cannot
	// live in applyDefaults: a bool's zero value is indistinguishable from
	// an explicit false there.
	c.News.Enabled = true
	c.News.ScraperFallback = true
	c.applyDefaults()
	return &c
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 15
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		// Analysis requests wait on model calls, so the write window is long.
		c.Server.WriteTimeoutSeconds = 120
	}
	if c.Market.HistoryPeriod == "" {
		c.Market.HistoryPeriod = "90d"
	}
	if c.Market.RiskPeriod == "" {
		c.Market.RiskPeriod = "6mo"
	}
	if c.Market.QuoteCacheSeconds == 0 {
		c.Market.QuoteCacheSeconds = 60
	}
	if c.Forecast.LookbackBars == 0 {
		c.Forecast.LookbackBars = 60
	}
	if c.Forecast.MaxDriftPct == 0 {
		c.Forecast.MaxDriftPct = 10
	}
	if c.News.PageSize == 0 {
		c.News.PageSize = 5
	}
	if c.News.CacheMinutes == 0 {
		c.News.CacheMinutes = 60
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "GEMINI"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-flash-lite-latest"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 512
	}
	if c.LLM.OllamaURL == "" {
		c.LLM.OllamaURL = "http://localhost:11434"
	}
	if c.Scoring.Mode == "" {
		c.Scoring.Mode = "three-signal"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "INFO"
	}
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// Decode over the defaults: keys the file omits keep their default
	// value, so news.enabled stays on unless the file says otherwise.
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return c, nil
}
