package news

import (
	"context"
	"strings"
	"sync"
	"time"

	"stock-advisor/internal/config"
	"stock-advisor/internal/logger"
	"stock-advisor/internal/scoring"
	"stock-advisor/internal/types"
)

// Service produces the news digest for a symbol: articles, a model-scored
// sentiment and a summary, with caching so repeated analyses of the same
// stock do not burn API quota.
type Service struct {
	client   *APIClient
	scraper  *Scraper
	analyzer *Analyzer
	cache    *digestCache
	cfg      *ServiceConfig
}

// ServiceConfig configures the news service
type ServiceConfig struct {
	MaxArticles     int           // Maximum articles to analyze per symbol
	CacheDuration   time.Duration // How long to cache digests
	ScraperTimeout  time.Duration // Timeout for scraping operations
	ScraperFallback bool          // Whether to scrape when NewsAPI yields nothing
	Enabled         bool          // Whether news analysis is enabled
}

// DefaultServiceConfig returns default configuration
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		MaxArticles:     5,
		CacheDuration:   1 * time.Hour,
		ScraperTimeout:  30 * time.Second,
		ScraperFallback: true,
		Enabled:         true,
	}
}

// ServiceConfigFrom maps the application config onto a service config
func ServiceConfigFrom(cfg *config.Config) *ServiceConfig {
	sc := DefaultServiceConfig()
	sc.Enabled = cfg.News.Enabled
	sc.ScraperFallback = cfg.News.ScraperFallback
	if cfg.News.PageSize > 0 {
		sc.MaxArticles = cfg.News.PageSize
	}
	if cfg.News.CacheMinutes > 0 {
		sc.CacheDuration = time.Duration(cfg.News.CacheMinutes) * time.Minute
	}
	return sc
}

// digestCache stores news digests temporarily
type digestCache struct {
	mu   sync.RWMutex
	data map[string]*cacheEntry
	ttl  time.Duration
}

type cacheEntry struct {
	digest    types.NewsDigest
	timestamp time.Time
}

// newDigestCache creates a new cache
func newDigestCache(ttl time.Duration) *digestCache {
	cache := &digestCache{
		data: make(map[string]*cacheEntry),
		ttl:  ttl,
	}

	// Start cleanup goroutine
	go cache.cleanupLoop()

	return cache
}

// get retrieves a cached digest if valid
func (c *digestCache) get(symbol string) (types.NewsDigest, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.data[symbol]
	if !exists {
		return types.NewsDigest{}, false
	}

	// Check if expired
	if time.Since(entry.timestamp) > c.ttl {
		return types.NewsDigest{}, false
	}

	return entry.digest, true
}

// set stores a digest in cache
func (c *digestCache) set(symbol string, digest types.NewsDigest) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[symbol] = &cacheEntry{
		digest:    digest,
		timestamp: time.Now(),
	}
}

// cleanupLoop periodically removes expired entries
func (c *digestCache) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

// cleanup removes expired entries
func (c *digestCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for symbol, entry := range c.data {
		if now.Sub(entry.timestamp) > c.ttl {
			delete(c.data, symbol)
		}
	}
}

// NewService creates a news service. client may be nil when no NewsAPI key
// is configured; the scraper then carries the whole load.
func NewService(client *APIClient, analyzer *Analyzer, serviceCfg *ServiceConfig) *Service {
	if serviceCfg == nil {
		serviceCfg = DefaultServiceConfig()
	}

	return &Service{
		client:   client,
		scraper:  NewScraper(serviceCfg.ScraperTimeout),
		analyzer: analyzer,
		cache:    newDigestCache(serviceCfg.CacheDuration),
		cfg:      serviceCfg,
	}
}

// Digest returns the news picture for a symbol (cached or fresh). company
// is the display name used for searching; it falls back to the symbol.
// A model failure degrades to a digest without a sentiment score rather
// than an error, so the caller's analysis keeps going.
func (s *Service) Digest(ctx context.Context, symbol, company string) (types.NewsDigest, error) {
	if !s.cfg.Enabled {
		neutral := scoring.NeutralScore
		return types.NewsDigest{
			Sentiment: &neutral,
			Summary:   "News analysis disabled",
		}, nil
	}

	// Check cache first
	if cached, ok := s.cache.get(symbol); ok {
		logger.Info(ctx, "Using cached news digest", "symbol", symbol)
		return cached, nil
	}

	logger.Info(ctx, "Building fresh news digest", "symbol", symbol)
	op := logger.StartOperation(ctx, "news.digest", "symbol", symbol)
	digest := s.buildDigest(op.GetContext(), symbol, company)
	op.End("articles", len(digest.Articles), "scored", digest.Sentiment != nil)

	// Cache only fully resolved digests; a degraded one would pin the
	// neutral fallback for the whole TTL.
	if digest.Sentiment != nil {
		s.cache.set(symbol, digest)
	}

	return digest, nil
}

// buildDigest fetches articles and runs the sentiment and summary models
func (s *Service) buildDigest(ctx context.Context, symbol, company string) types.NewsDigest {
	articles := s.fetchArticles(ctx, symbol, company)

	digest := types.NewsDigest{Articles: articles}

	// Sentiment over the combined headline text
	sentiment, err := s.analyzer.ScoreSentiment(ctx, sentimentText(articles))
	if err != nil {
		logger.Degraded(ctx, symbol, "sentiment", err)
	} else {
		digest.Sentiment = &sentiment
	}

	summary, err := s.analyzer.Summarize(ctx, symbol, articles)
	if err != nil {
		logger.Degraded(ctx, symbol, "news summary", err)
		summary = "News summary could not be generated due to an AI model error."
	}
	digest.Summary = summary

	return digest
}

// fetchArticles tries NewsAPI first, then the scraper, then Google News
func (s *Service) fetchArticles(ctx context.Context, symbol, company string) []types.NewsArticle {
	query := company
	if query == "" {
		query = symbol
	}

	var articles []types.NewsArticle
	if s.client != nil {
		fetched, err := s.client.Everything(ctx, query)
		if err != nil {
			logger.ErrorWithErr(ctx, "NewsAPI fetch failed", err, "symbol", symbol)
		} else {
			articles = fetched
		}
	}

	if len(articles) == 0 && s.cfg.ScraperFallback {
		logger.Info(ctx, "No articles from NewsAPI, scraping finance sites", "symbol", symbol)
		scraped, err := s.scraper.ScrapeNews(ctx, symbol, s.cfg.MaxArticles)
		if err != nil {
			logger.ErrorWithErr(ctx, "Scraper fallback failed", err, "symbol", symbol)
		} else {
			articles = scraped
		}

		if len(articles) == 0 {
			scraped, err = s.scraper.ScrapeGoogleNews(ctx, query, s.cfg.MaxArticles)
			if err != nil {
				logger.ErrorWithErr(ctx, "Google News fallback failed", err, "symbol", symbol)
			} else {
				articles = scraped
			}
		}
	}

	if len(articles) > s.cfg.MaxArticles {
		articles = articles[:s.cfg.MaxArticles]
	}
	return articles
}

// sentimentText flattens articles into the text block the model scores
func sentimentText(articles []types.NewsArticle) string {
	parts := make([]string, 0, len(articles))
	for _, a := range articles {
		if a.Description == "" {
			continue
		}
		parts = append(parts, a.Title+" "+a.Description)
	}
	return strings.Join(parts, " ")
}

// ClearCache removes all cached digests
func (s *Service) ClearCache() {
	s.cache.mu.Lock()
	defer s.cache.mu.Unlock()
	s.cache.data = make(map[string]*cacheEntry)
}

// CachedSymbols returns the symbols with a cached digest
func (s *Service) CachedSymbols() []string {
	s.cache.mu.RLock()
	defer s.cache.mu.RUnlock()

	symbols := make([]string, 0, len(s.cache.data))
	for symbol := range s.cache.data {
		symbols = append(symbols, symbol)
	}
	return symbols
}
