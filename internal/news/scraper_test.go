package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const quotePage = `<html><body>
<div id="headlines">
<div class="row"><a class="headline" href="/story/1">Shares rally on earnings</a><p>Quarterly revenue topped forecasts by a wide margin.</p></div>
<div class="row"><a class="headline" href="https://example.com/story/2">Analyst upgrade</a><p>Price target raised after the report.</p></div>
<div class="row"><a class="headline" href="/story/3">Headline only</a></div>
</div>
</body></html>`

func testSource(baseURL string) NewsSource {
	return NewsSource{
		Name:       "TestWire",
		BaseURL:    baseURL,
		SearchPath: "/quote/{symbol}",
		Selectors: ArticleSelectors{
			ArticleContainer: "div.row",
			Title:            "a.headline",
			URL:              "a.headline",
			Description:      "",
		},
	}
}

func TestScrapeSource(t *testing.T) {
	var gotPath, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(quotePage))
	}))
	defer srv.Close()

	s := NewScraper(5 * time.Second)
	articles, err := s.scrapeSource(context.Background(), testSource(srv.URL), "aapl", 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gotPath != "/quote/AAPL" {
		t.Errorf("Expected symbol uppercased in search path, got %s", gotPath)
	}
	if !strings.Contains(gotAgent, "Mozilla/5.0") {
		t.Errorf("Expected browser user agent, got %q", gotAgent)
	}
	if len(articles) != 3 {
		t.Fatalf("Expected 3 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.Title != "Shares rally on earnings" {
		t.Errorf("Expected title from selector, got %q", first.Title)
	}
	if first.URL != srv.URL+"/story/1" {
		t.Errorf("Expected relative link made absolute, got %s", first.URL)
	}
	if first.Description != "Quarterly revenue topped forecasts by a wide margin." {
		t.Errorf("Expected lead paragraph as description, got %q", first.Description)
	}
	if first.Source != "TestWire" {
		t.Errorf("Expected source name, got %s", first.Source)
	}

	if articles[1].URL != "https://example.com/story/2" {
		t.Errorf("Expected absolute link kept, got %s", articles[1].URL)
	}

	// A row with no paragraph falls back to the headline text.
	if articles[2].Description != articles[2].Title {
		t.Errorf("Expected title fallback description, got %q", articles[2].Description)
	}
}

func TestScrapeSourceRespectsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(quotePage))
	}))
	defer srv.Close()

	s := NewScraper(5 * time.Second)
	articles, err := s.scrapeSource(context.Background(), testSource(srv.URL), "AAPL", 1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(articles) != 1 {
		t.Errorf("Expected 1 article, got %d", len(articles))
	}
}

func TestDefaultSources(t *testing.T) {
	sources := getDefaultSources()
	if len(sources) == 0 {
		t.Fatal("Expected default sources")
	}
	for _, src := range sources {
		if src.Name == "" || src.BaseURL == "" || src.SearchPath == "" {
			t.Errorf("Incomplete source config: %+v", src)
		}
		if src.Selectors.ArticleContainer == "" || src.Selectors.Title == "" {
			t.Errorf("Source %s missing selectors", src.Name)
		}
		if getDomain(src.BaseURL) == "" {
			t.Errorf("Source %s has an unparseable base URL", src.Name)
		}
	}
}

func TestGetDomain(t *testing.T) {
	if got := getDomain("https://finviz.com"); got != "finviz.com" {
		t.Errorf("Expected finviz.com, got %s", got)
	}
	if got := getDomain("https://www.marketwatch.com/path"); got != "www.marketwatch.com" {
		t.Errorf("Expected www.marketwatch.com, got %s", got)
	}
	if got := getDomain("://bad"); got != "" {
		t.Errorf("Expected empty domain for invalid URL, got %s", got)
	}
}
