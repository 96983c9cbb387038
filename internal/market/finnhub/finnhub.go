package finnhub

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stock-advisor/internal/api"
	"stock-advisor/internal/ratelimit"
	"stock-advisor/internal/types"
)

const defaultBaseURL = "https://finnhub.io/api/v1"

// ErrNoProfile marks a symbol Finnhub has no company profile for. The free
// tier answers with an empty object for most non-US listings.
var ErrNoProfile = errors.New("no company profile for symbol")

// Client talks to the Finnhub REST API for symbol search, company profiles
// and fundamental metrics. The free tier allows 60 calls a minute, so every
// request goes through a token bucket sized for that budget.
type Client struct {
	api     *api.Client
	limiter *ratelimit.Limiter
	baseURL string
	retry   *api.RetryConfig
}

// Option customizes the client
type Option func(*Client)

// WithBaseURL overrides the API endpoint, used by tests
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// New creates a Finnhub client authenticated with apiKey
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		api: api.NewClient(
			api.WithTimeout(15*time.Second),
			api.WithHeaders(api.FinnhubHeaders(apiKey)),
		),
		limiter: ratelimit.New(30, time.Second),
		baseURL: defaultBaseURL,
		retry:   api.DefaultRetryConfig(),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues a rate-limited GET. The token bucket keeps us inside the
// free-tier budget, and the retry absorbs the 429s Finnhub still sends
// when other callers share the key.
func (c *Client) get(ctx context.Context, endpoint string) (*api.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req := api.NewRequest(http.MethodGet, endpoint).WithContext(ctx)
	return c.api.DoWithRetry(req, c.retry)
}

// Ping makes a cheap call to validate the API key works
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.get(ctx, c.baseURL+"/country"); err != nil {
		return fmt.Errorf("finnhub ping: %w", err)
	}
	return nil
}

type searchResponse struct {
	Count  int `json:"count"`
	Result []struct {
		Description   string `json:"description"`
		DisplaySymbol string `json:"displaySymbol"`
		Symbol        string `json:"symbol"`
		Type          string `json:"type"`
	} `json:"result"`
}

// Search looks up symbols matching the query. Results are narrowed to
// common stock on primary listings: anything with a dot in the symbol is a
// secondary or foreign listing the rest of the pipeline cannot price
// reliably.
func (c *Client) Search(ctx context.Context, query string) ([]types.SymbolMatch, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s", c.baseURL, url.QueryEscape(query))
	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("finnhub search %q: %w", query, err)
	}

	var parsed searchResponse
	if err := resp.ParseJSON(&parsed); err != nil {
		return nil, fmt.Errorf("finnhub search %q: %w", query, err)
	}

	seen := make(map[string]bool)
	matches := make([]types.SymbolMatch, 0, len(parsed.Result))
	for _, item := range parsed.Result {
		if item.Symbol == "" || seen[item.Symbol] {
			continue
		}
		if item.Type != "Common Stock" {
			continue
		}
		if strings.Contains(item.Symbol, ".") {
			continue
		}
		seen[item.Symbol] = true
		matches = append(matches, types.SymbolMatch{
			Symbol: item.Symbol,
			Name:   item.Description,
		})
	}
	return matches, nil
}

type profileResponse struct {
	Name     string `json:"name"`
	Logo     string `json:"logo"`
	Exchange string `json:"exchange"`
	Industry string `json:"finnhubIndustry"`
	Ticker   string `json:"ticker"`
}

// Profile fetches the company profile for a symbol. Finnhub returns an
// empty object rather than an error for unknown symbols; that surfaces
// here as ErrNoProfile.
func (c *Client) Profile(ctx context.Context, symbol string) (types.CompanyProfile, error) {
	endpoint := fmt.Sprintf("%s/stock/profile2?symbol=%s", c.baseURL, url.QueryEscape(symbol))
	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return types.CompanyProfile{}, fmt.Errorf("finnhub profile %s: %w", symbol, err)
	}

	var parsed profileResponse
	if err := resp.ParseJSON(&parsed); err != nil {
		return types.CompanyProfile{}, fmt.Errorf("finnhub profile %s: %w", symbol, err)
	}
	if parsed.Name == "" {
		return types.CompanyProfile{}, fmt.Errorf("finnhub profile %s: %w", symbol, ErrNoProfile)
	}

	return types.CompanyProfile{
		Symbol:   symbol,
		Name:     parsed.Name,
		Logo:     parsed.Logo,
		Exchange: parsed.Exchange,
		Industry: parsed.Industry,
	}, nil
}

// Fundamentals pulls per-share figures from the basic financials endpoint.
// It backs up Yahoo when that source has no ratios for a symbol.
func (c *Client) Fundamentals(ctx context.Context, symbol string) (types.Fundamentals, error) {
	endpoint := fmt.Sprintf("%s/stock/metric?symbol=%s&metric=all", c.baseURL, url.QueryEscape(symbol))
	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return types.Fundamentals{}, fmt.Errorf("finnhub metrics %s: %w", symbol, err)
	}

	var parsed struct {
		Metric map[string]interface{} `json:"metric"`
	}
	if err := resp.ParseJSON(&parsed); err != nil {
		return types.Fundamentals{}, fmt.Errorf("finnhub metrics %s: %w", symbol, err)
	}

	return types.Fundamentals{
		EPS:       pickMetric(parsed.Metric, "epsTTM", "epsAnnual"),
		BookValue: pickMetric(parsed.Metric, "bookValuePerShareQuarterly", "bookValuePerShareAnnual"),
		PERatio:   pickMetric(parsed.Metric, "peTTM", "peAnnual"),
		PBRatio:   pickMetric(parsed.Metric, "pbQuarterly", "pbAnnual"),
	}, nil
}

// pickMetric returns the first key present as a number. The metric map
// mixes numbers with date strings, so each value needs a type check.
func pickMetric(metric map[string]interface{}, keys ...string) *float64 {
	for _, key := range keys {
		if val, ok := metric[key]; ok {
			if num, ok := val.(float64); ok && num != 0 {
				return &num
			}
		}
	}
	return nil
}
