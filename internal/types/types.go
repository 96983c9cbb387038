package types

import "time"

type Candle struct {
	Date                   time.Time
	Open, High, Low, Close float64
	Volume                 int64
}

type Quote struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	PrevClose float64 `json:"prev_close"`
}

// Fundamentals carries per-share figures from the fundamentals provider.
// Nil means the provider had no value, which is a legitimate state for
// loss-making or thinly covered companies.
type Fundamentals struct {
	EPS       *float64 `json:"eps,omitempty"`
	BookValue *float64 `json:"book_value,omitempty"`
	PERatio   *float64 `json:"pe_ratio,omitempty"`
	PBRatio   *float64 `json:"pb_ratio,omitempty"`
}

type SymbolMatch struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Logo   string `json:"logo,omitempty"`
}

type CompanyProfile struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Logo     string `json:"logo,omitempty"`
	Exchange string `json:"exchange,omitempty"`
	Industry string `json:"industry,omitempty"`
}

type NewsArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Source      string    `json:"source,omitempty"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// NewsDigest is the condensed news picture for one company: the articles
// considered, the model's sentiment score and a headline summary. Sentiment
// is nil when the scorer could not run at all, as opposed to a neutral 50
// for "no news to score".
type NewsDigest struct {
	Articles  []NewsArticle `json:"articles"`
	Sentiment *float64      `json:"sentiment,omitempty"`
	Summary   string        `json:"summary"`
}

type HistorySeries struct {
	Symbol string    `json:"symbol"`
	Dates  []string  `json:"dates"`
	Prices []float64 `json:"prices"`
}

type DailyData struct {
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Volume int64   `json:"volume"`
}

// StockMetrics is the advanced-metrics block of an analysis: valuation
// ratios, annualized volatility over the risk window, the Graham fair-value
// estimate and the latest session's data. All optional.
type StockMetrics struct {
	PERatio      *float64   `json:"pe_ratio"`
	PBRatio      *float64   `json:"pb_ratio"`
	Volatility   *float64   `json:"volatility"`
	GrahamNumber *float64   `json:"graham_number"`
	Daily        *DailyData `json:"daily_data,omitempty"`
}

// AnalysisReport is the full result of one advisory run. Pointer fields are
// absent when the signal behind them could not be resolved; the analysis
// still completes with neutral defaults.
type AnalysisReport struct {
	Symbol         string        `json:"symbol"`
	LastClose      float64       `json:"last_close"`
	PredictedClose *float64      `json:"predicted_close,omitempty"`
	TrendScore     *float64      `json:"trend_score,omitempty"`
	SentimentScore float64       `json:"sentiment_score"`
	ValuationScore *float64      `json:"valuation_score,omitempty"`
	FinalScore     float64       `json:"final_score"`
	Recommendation string        `json:"recommendation"`
	NewsSummary    string        `json:"latest_news_summary"`
	Explanation    string        `json:"explanation"`
	Articles       []NewsArticle `json:"articles,omitempty"`
	Metrics        *StockMetrics `json:"metrics,omitempty"`
	GeneratedAt    time.Time     `json:"generated_at"`
}
