package market

import (
	"context"
	"sync"
	"time"

	"stock-advisor/internal/interfaces"
	"stock-advisor/internal/types"
)

// Cached wraps a market data source with an in-memory TTL cache. Quotes
// expire at the configured TTL; history and fundamentals move on a daily
// cadence and are held ten times longer.
type Cached struct {
	src interfaces.MarketData

	quoteTTL time.Duration
	slowTTL  time.Duration

	mu        sync.RWMutex
	quotes    map[string]quoteEntry
	histories map[string]historyEntry
	funds     map[string]fundsEntry
}

type quoteEntry struct {
	quote     types.Quote
	timestamp time.Time
}

type historyEntry struct {
	candles   []types.Candle
	timestamp time.Time
}

type fundsEntry struct {
	funds     types.Fundamentals
	timestamp time.Time
}

// NewCached creates a caching layer over src. A zero or negative quoteTTL
// falls back to one minute.
func NewCached(src interfaces.MarketData, quoteTTL time.Duration) *Cached {
	if quoteTTL <= 0 {
		quoteTTL = time.Minute
	}

	c := &Cached{
		src:       src,
		quoteTTL:  quoteTTL,
		slowTTL:   10 * quoteTTL,
		quotes:    make(map[string]quoteEntry),
		histories: make(map[string]historyEntry),
		funds:     make(map[string]fundsEntry),
	}

	// Start cleanup goroutine
	go c.cleanupLoop()

	return c
}

func (c *Cached) Quote(ctx context.Context, symbol string) (types.Quote, error) {
	c.mu.RLock()
	entry, ok := c.quotes[symbol]
	c.mu.RUnlock()
	if ok && time.Since(entry.timestamp) <= c.quoteTTL {
		return entry.quote, nil
	}

	quote, err := c.src.Quote(ctx, symbol)
	if err != nil {
		return types.Quote{}, err
	}

	c.mu.Lock()
	c.quotes[symbol] = quoteEntry{quote: quote, timestamp: time.Now()}
	c.mu.Unlock()
	return quote, nil
}

func (c *Cached) History(ctx context.Context, symbol, period string) ([]types.Candle, error) {
	key := symbol + "|" + period

	c.mu.RLock()
	entry, ok := c.histories[key]
	c.mu.RUnlock()
	if ok && time.Since(entry.timestamp) <= c.slowTTL {
		return entry.candles, nil
	}

	candles, err := c.src.History(ctx, symbol, period)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.histories[key] = historyEntry{candles: candles, timestamp: time.Now()}
	c.mu.Unlock()
	return candles, nil
}

func (c *Cached) Fundamentals(ctx context.Context, symbol string) (types.Fundamentals, error) {
	c.mu.RLock()
	entry, ok := c.funds[symbol]
	c.mu.RUnlock()
	if ok && time.Since(entry.timestamp) <= c.slowTTL {
		return entry.funds, nil
	}

	funds, err := c.src.Fundamentals(ctx, symbol)
	if err != nil {
		return types.Fundamentals{}, err
	}

	c.mu.Lock()
	c.funds[symbol] = fundsEntry{funds: funds, timestamp: time.Now()}
	c.mu.Unlock()
	return funds, nil
}

// cleanupLoop periodically removes expired entries
func (c *Cached) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

// cleanup removes expired entries
func (c *Cached) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for symbol, entry := range c.quotes {
		if now.Sub(entry.timestamp) > c.quoteTTL {
			delete(c.quotes, symbol)
		}
	}
	for key, entry := range c.histories {
		if now.Sub(entry.timestamp) > c.slowTTL {
			delete(c.histories, key)
		}
	}
	for symbol, entry := range c.funds {
		if now.Sub(entry.timestamp) > c.slowTTL {
			delete(c.funds, symbol)
		}
	}
}
