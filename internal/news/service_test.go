package news

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stock-advisor/internal/config"
	"stock-advisor/internal/scoring"
	"stock-advisor/internal/types"
)

// fakeGen is a canned Generator for tests
type fakeGen struct {
	name string
	out  string
	err  error
}

func (f *fakeGen) Name() string { return f.name }

func (f *fakeGen) Generate(ctx context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

func TestDigestCache(t *testing.T) {
	cache := newDigestCache(1 * time.Second)

	symbol := "AAPL"
	sentiment := 78.0
	digest := types.NewsDigest{
		Sentiment: &sentiment,
		Summary:   "Strong quarter.",
	}

	// Test set and get
	cache.set(symbol, digest)

	retrieved, found := cache.get(symbol)
	if !found {
		t.Fatal("Expected to find cached digest")
	}

	if retrieved.Summary != "Strong quarter." {
		t.Errorf("Expected summary to round-trip, got %s", retrieved.Summary)
	}

	if retrieved.Sentiment == nil || *retrieved.Sentiment != 78.0 {
		t.Error("Expected sentiment 78 from cache")
	}

	// Test expiration
	time.Sleep(2 * time.Second)
	_, found = cache.get(symbol)
	if found {
		t.Error("Expected cache entry to be expired")
	}
}

func TestServiceConfig(t *testing.T) {
	cfg := DefaultServiceConfig()

	if cfg.MaxArticles != 5 {
		t.Errorf("Expected MaxArticles to be 5, got %d", cfg.MaxArticles)
	}

	if cfg.CacheDuration != 1*time.Hour {
		t.Errorf("Expected CacheDuration to be 1 hour, got %v", cfg.CacheDuration)
	}

	if !cfg.Enabled {
		t.Error("Expected Enabled to be true")
	}
}

func TestServiceConfigFrom(t *testing.T) {
	appCfg := config.Default()
	appCfg.News.Enabled = true
	appCfg.News.PageSize = 8
	appCfg.News.CacheMinutes = 30
	appCfg.News.ScraperFallback = false

	cfg := ServiceConfigFrom(appCfg)

	if cfg.MaxArticles != 8 {
		t.Errorf("Expected MaxArticles 8, got %d", cfg.MaxArticles)
	}
	if cfg.CacheDuration != 30*time.Minute {
		t.Errorf("Expected 30 minute cache, got %v", cfg.CacheDuration)
	}
	if cfg.ScraperFallback {
		t.Error("Expected scraper fallback disabled")
	}
}

func TestNewService(t *testing.T) {
	analyzer := NewAnalyzer(&fakeGen{name: "fake"}, &fakeGen{name: "fake"})
	svc := NewService(nil, analyzer, DefaultServiceConfig())

	if svc == nil {
		t.Fatal("Expected service to be created")
	}

	if svc.scraper == nil {
		t.Error("Expected scraper to be initialized")
	}

	if svc.analyzer == nil {
		t.Error("Expected analyzer to be initialized")
	}

	if svc.cache == nil {
		t.Error("Expected cache to be initialized")
	}
}

func TestServiceDisabled(t *testing.T) {
	analyzer := NewAnalyzer(&fakeGen{name: "fake"}, &fakeGen{name: "fake"})
	svc := NewService(nil, analyzer, &ServiceConfig{Enabled: false})

	digest, err := svc.Digest(context.Background(), "AAPL", "Apple Inc")
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	if digest.Sentiment == nil || *digest.Sentiment != scoring.NeutralScore {
		t.Error("Expected neutral sentiment when disabled")
	}

	if digest.Summary != "News analysis disabled" {
		t.Errorf("Expected disabled message, got %s", digest.Summary)
	}
}

func TestDigestWithoutSources(t *testing.T) {
	// No NewsAPI client and no scraper fallback: zero articles, neutral
	// sentiment by definition.
	analyzer := NewAnalyzer(&fakeGen{name: "fake", out: "90"}, &fakeGen{name: "fake", out: "ignored"})
	cfg := DefaultServiceConfig()
	cfg.ScraperFallback = false
	svc := NewService(nil, analyzer, cfg)

	digest, err := svc.Digest(context.Background(), "AAPL", "Apple Inc")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if digest.Sentiment == nil || *digest.Sentiment != scoring.NeutralScore {
		t.Error("Expected neutral sentiment with no articles")
	}

	if digest.Summary != "No significant news found." {
		t.Errorf("Expected no-news summary, got %s", digest.Summary)
	}

	// Resolved digest should be cached
	if _, found := svc.cache.get("AAPL"); !found {
		t.Error("Expected digest to be cached")
	}
}

func TestDigestDegradedNotCached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": "ok",
			"articles": [{
				"source": {"name": "Wire"},
				"title": "Apple ships record quarter",
				"description": "Revenue beat expectations across segments.",
				"url": "https://example.com/a",
				"publishedAt": "2025-08-20T12:00:00Z"
			}]
		}`))
	}))
	defer srv.Close()

	client := NewAPIClient("key", 5, WithAPIBaseURL(srv.URL))
	analyzer := NewAnalyzer(&fakeGen{name: "fake", err: errors.New("model down")}, &fakeGen{name: "fake", out: "summary"})
	cfg := DefaultServiceConfig()
	cfg.ScraperFallback = false
	svc := NewService(client, analyzer, cfg)

	digest, err := svc.Digest(context.Background(), "AAPL", "Apple Inc")
	if err != nil {
		t.Fatalf("Expected degraded digest, not error, got %v", err)
	}

	if digest.Sentiment != nil {
		t.Error("Expected nil sentiment when the model is down")
	}
	if len(digest.Articles) != 1 {
		t.Errorf("Expected articles to survive model failure, got %d", len(digest.Articles))
	}

	// Degraded digests must not be pinned in the cache
	if _, found := svc.cache.get("AAPL"); found {
		t.Error("Expected degraded digest to stay uncached")
	}
}

func TestCacheCleanup(t *testing.T) {
	cache := newDigestCache(100 * time.Millisecond)

	// Add some entries
	for _, symbol := range []string{"AAPL", "MSFT", "GOOG", "AMZN", "META"} {
		sentiment := 60.0
		cache.set(symbol, types.NewsDigest{Sentiment: &sentiment})
	}

	// Wait for expiration
	time.Sleep(200 * time.Millisecond)

	// Trigger cleanup
	cache.cleanup()

	// Check that all entries are removed
	cache.mu.RLock()
	count := len(cache.data)
	cache.mu.RUnlock()

	if count != 0 {
		t.Errorf("Expected 0 cache entries after cleanup, got %d", count)
	}
}

func TestCachedSymbols(t *testing.T) {
	analyzer := NewAnalyzer(&fakeGen{name: "fake"}, &fakeGen{name: "fake"})
	svc := NewService(nil, analyzer, DefaultServiceConfig())

	// Add some cached entries
	symbols := []string{"AAPL", "MSFT", "GOOG"}
	for _, sym := range symbols {
		sentiment := 55.0
		svc.cache.set(sym, types.NewsDigest{Sentiment: &sentiment})
	}

	cached := svc.CachedSymbols()

	if len(cached) != 3 {
		t.Errorf("Expected 3 cached symbols, got %d", len(cached))
	}
}

func TestClearCache(t *testing.T) {
	analyzer := NewAnalyzer(&fakeGen{name: "fake"}, &fakeGen{name: "fake"})
	svc := NewService(nil, analyzer, DefaultServiceConfig())

	// Add cached entry
	sentiment := 70.0
	svc.cache.set("AAPL", types.NewsDigest{Sentiment: &sentiment})

	// Verify it's cached
	if len(svc.CachedSymbols()) != 1 {
		t.Fatal("Expected 1 cached symbol")
	}

	// Clear cache
	svc.ClearCache()

	// Verify it's cleared
	if len(svc.CachedSymbols()) != 0 {
		t.Errorf("Expected 0 cached symbols after clear, got %d", len(svc.CachedSymbols()))
	}
}
