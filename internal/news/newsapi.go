package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stock-advisor/internal/api"
	"stock-advisor/internal/types"
)

const defaultAPIBaseURL = "https://newsapi.org/v2"

// APIClient fetches articles from NewsAPI, the primary headline source.
type APIClient struct {
	api      *api.Client
	baseURL  string
	pageSize int
	domains  string
	retry    *api.RetryConfig
}

// APIOption customizes the client
type APIOption func(*APIClient)

// WithAPIBaseURL overrides the NewsAPI endpoint, used by tests
func WithAPIBaseURL(baseURL string) APIOption {
	return func(c *APIClient) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithDomains restricts results to the given publisher domains.
func WithDomains(domains []string) APIOption {
	return func(c *APIClient) {
		c.domains = strings.Join(domains, ",")
	}
}

// NewAPIClient creates a NewsAPI client. pageSize caps how many usable
// articles Everything returns.
func NewAPIClient(apiKey string, pageSize int, opts ...APIOption) *APIClient {
	if pageSize <= 0 {
		pageSize = 5
	}

	c := &APIClient{
		api: api.NewClient(
			api.WithTimeout(15*time.Second),
			api.WithHeaders(api.NewsAPIHeaders(apiKey)),
		),
		baseURL:  defaultAPIBaseURL,
		pageSize: pageSize,
		retry:    api.DefaultRetryConfig(),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

type everythingResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// Everything returns the freshest articles matching the query. The query is
// quoted so multi-word company names match as a phrase, and articles
// without both a title and a description are dropped since there is
// nothing for the sentiment model to read.
func (c *APIClient) Everything(ctx context.Context, query string) ([]types.NewsArticle, error) {
	params := url.Values{}
	params.Set("q", `"`+query+`"`)
	params.Set("sortBy", "publishedAt")
	params.Set("language", "en")
	if c.domains != "" {
		params.Set("domains", c.domains)
	}

	// Retried: the free tier rate-limits aggressively and a 429 here
	// would otherwise degrade the whole sentiment signal.
	req := api.NewRequest(http.MethodGet, c.baseURL+"/everything?"+params.Encode()).WithContext(ctx)
	resp, err := c.api.DoWithRetry(req, c.retry)
	if err != nil {
		return nil, fmt.Errorf("newsapi everything %q: %w", query, err)
	}

	var parsed everythingResponse
	if err := resp.ParseJSON(&parsed); err != nil {
		return nil, fmt.Errorf("newsapi everything %q: %w", query, err)
	}
	if parsed.Status != "ok" {
		return nil, fmt.Errorf("newsapi everything %q: %s", query, parsed.Message)
	}

	articles := make([]types.NewsArticle, 0, c.pageSize)
	for _, a := range parsed.Articles {
		if len(articles) >= c.pageSize {
			break
		}
		if a.Title == "" || a.Description == "" {
			continue
		}

		published, _ := time.Parse(time.RFC3339, a.PublishedAt)
		articles = append(articles, types.NewsArticle{
			Title:       a.Title,
			Description: a.Description,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: published,
		})
	}
	return articles, nil
}
