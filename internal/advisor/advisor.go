package advisor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"stock-advisor/internal/interfaces"
	"stock-advisor/internal/logger"
	"stock-advisor/internal/scoring"
	"stock-advisor/internal/ta"
	"stock-advisor/internal/types"
)

// ErrEmptySymbol rejects analysis requests with no symbol.
var ErrEmptySymbol = errors.New("symbol is required")

// advisor orchestrates one analysis run: it fetches collaborator data,
// resolves the three signals, runs the combiner and assembles the report.
// Collaborator failures degrade to unavailable signals; only a dead price
// history upstream fails the request.
type advisor struct {
	market     interfaces.MarketData
	forecaster interfaces.Forecaster
	news       interfaces.NewsAnalyst
	searcher   interfaces.SymbolSearcher
	explainer  interfaces.Explainer

	profile       scoring.Profile
	historyPeriod string
	riskPeriod    string
}

// Option adjusts an advisor built by newAdvisor.
type Option func(*advisor)

// WithProfile selects the combination profile. Default is three-signal.
func WithProfile(p scoring.Profile) Option {
	return func(a *advisor) { a.profile = p }
}

// WithSearcher supplies the symbol searcher used to resolve a company name
// for the news query. Optional, the symbol is used directly without it.
func WithSearcher(s interfaces.SymbolSearcher) Option {
	return func(a *advisor) { a.searcher = s }
}

// WithExplainer supplies the explanation generator. Optional.
func WithExplainer(e interfaces.Explainer) Option {
	return func(a *advisor) { a.explainer = e }
}

// WithHistoryPeriod sets the daily-history window fed to the forecaster.
func WithHistoryPeriod(period string) Option {
	return func(a *advisor) {
		if period != "" {
			a.historyPeriod = period
		}
	}
}

// WithRiskPeriod sets the history window for the volatility metric.
func WithRiskPeriod(period string) Option {
	return func(a *advisor) {
		if period != "" {
			a.riskPeriod = period
		}
	}
}

func newAdvisor(market interfaces.MarketData, forecaster interfaces.Forecaster, news interfaces.NewsAnalyst, opts ...Option) *advisor {
	a := &advisor{
		market:        market,
		forecaster:    forecaster,
		news:          news,
		profile:       scoring.ThreeSignalProfile,
		historyPeriod: "90d",
		riskPeriod:    "6mo",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *advisor) Analyze(ctx context.Context, symbol string) (*types.AnalysisReport, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrEmptySymbol
	}

	logger.Debug(ctx, "Starting analysis", "symbol", symbol, "profile", a.profile.Name)

	// Price history is the one structurally required input.
	candles, err := a.market.History(ctx, symbol, a.historyPeriod)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch price history", err, "symbol", symbol, "period", a.historyPeriod)
		return nil, fmt.Errorf("price history for %s: %w", symbol, errors.Join(scoring.ErrUpstreamUnavailable, err))
	}
	if len(candles) == 0 {
		logger.Error(ctx, "Empty price history", "symbol", symbol, "period", a.historyPeriod)
		return nil, fmt.Errorf("price history for %s: %w", symbol, errors.Join(scoring.ErrUpstreamUnavailable, errors.New("no daily bars returned")))
	}

	latest := candles[len(candles)-1]
	lastClose := latest.Close
	if lastClose <= 0 {
		logger.Error(ctx, "Corrupt price history", "symbol", symbol, "last_close", lastClose)
		return nil, &scoring.InvalidInputError{Field: "last_close", Value: lastClose, Reason: "non-positive close in history"}
	}
	logger.Debug(ctx, "Price history fetched", "symbol", symbol, "bars", len(candles), "last_close", lastClose)

	trend, predictedClose := a.trendSignal(ctx, symbol, lastClose, candles)
	sentiment, digest := a.sentimentSignal(ctx, symbol)

	fundamentals, fundsErr := a.market.Fundamentals(ctx, symbol)
	if fundsErr != nil {
		logger.Degraded(ctx, symbol, "fundamentals", fundsErr)
	}
	graham := grahamFrom(fundamentals)

	valuation := a.valuationSignal(ctx, symbol, lastClose, graham, fundsErr)

	finalScore, recommendation := a.profile.Evaluate(trend, sentiment, valuation)

	report := &types.AnalysisReport{
		Symbol:         symbol,
		LastClose:      lastClose,
		PredictedClose: predictedClose,
		SentimentScore: sentiment.ValueOr(scoring.NeutralScore),
		FinalScore:     finalScore,
		Recommendation: string(recommendation),
		NewsSummary:    digest.Summary,
		Articles:       digest.Articles,
		Metrics:        a.buildMetrics(ctx, symbol, fundamentals, graham, latest),
		GeneratedAt:    time.Now().UTC(),
	}
	if trend.Resolved() {
		v := trend.Value()
		report.TrendScore = &v
	}
	if valuation.Resolved() {
		v := valuation.Value()
		report.ValuationScore = &v
	}

	report.Explanation = a.explain(ctx, symbol, report)

	logger.Debug(ctx, "Analysis completed", "symbol", symbol,
		"final_score", finalScore, "recommendation", report.Recommendation)
	return report, nil
}

// trendSignal predicts the next close and scores the implied move. A failed
// forecast degrades the signal instead of failing the analysis.
func (a *advisor) trendSignal(ctx context.Context, symbol string, lastClose float64, candles []types.Candle) (scoring.Signal, *float64) {
	predicted, err := a.forecaster.PredictNextClose(ctx, candles)
	if err != nil {
		logger.Degraded(ctx, symbol, "forecast", err)
		return scoring.UnavailableSignal(), nil
	}

	score, err := scoring.TrendScore(lastClose, predicted)
	if err != nil {
		logger.Degraded(ctx, symbol, "trend score", err)
		return scoring.UnavailableSignal(), &predicted
	}

	logger.SignalResolved(ctx, symbol, "trend", score,
		"last_close", lastClose, "predicted_close", predicted)
	return scoring.ResolvedSignal(score), &predicted
}

// sentimentSignal pulls the news digest and lifts its sentiment into a
// signal. A digest without a sentiment score means the model could not run.
func (a *advisor) sentimentSignal(ctx context.Context, symbol string) (scoring.Signal, types.NewsDigest) {
	digest, err := a.news.Digest(ctx, symbol, a.companyName(ctx, symbol))
	if err != nil {
		logger.Degraded(ctx, symbol, "news", err)
		return scoring.UnavailableSignal(), types.NewsDigest{Summary: "No significant news found."}
	}
	if digest.Sentiment == nil {
		logger.Degraded(ctx, symbol, "sentiment", errors.New("no sentiment score in digest"))
		return scoring.UnavailableSignal(), digest
	}

	logger.SignalResolved(ctx, symbol, "sentiment", *digest.Sentiment,
		"articles", len(digest.Articles))
	return scoring.ResolvedSignal(*digest.Sentiment), digest
}

// valuationSignal scores price against the Graham number. It stays
// unavailable in two-signal mode and when the fundamentals fetch failed;
// an unknown Graham number with healthy fundamentals resolves to neutral.
func (a *advisor) valuationSignal(ctx context.Context, symbol string, price float64, graham scoring.GrahamResult, fundsErr error) scoring.Signal {
	if a.profile.Weights.Valuation == 0 {
		return scoring.UnavailableSignal()
	}
	if fundsErr != nil {
		return scoring.UnavailableSignal()
	}

	if q, err := a.market.Quote(ctx, symbol); err != nil {
		logger.Warn(ctx, "Quote fetch failed, valuing against last close", "symbol", symbol, "error", err.Error())
	} else if q.Price > 0 {
		price = q.Price
	}

	score := scoring.ValuationScore(price, graham)
	logger.SignalResolved(ctx, symbol, "valuation", score,
		"price", price, "graham_known", graham.Known)
	return scoring.ResolvedSignal(score)
}

// companyName resolves the display name for news searches, falling back to
// the raw symbol.
func (a *advisor) companyName(ctx context.Context, symbol string) string {
	if a.searcher == nil {
		return symbol
	}
	profile, err := a.searcher.Profile(ctx, symbol)
	if err != nil {
		logger.Warn(ctx, "Company profile lookup failed", "symbol", symbol, "error", err.Error())
		return symbol
	}
	if profile.Name == "" {
		return symbol
	}
	return profile.Name
}

// buildMetrics assembles the advanced-metrics block. Every field is best
// effort; a gap stays nil rather than blocking the analysis.
func (a *advisor) buildMetrics(ctx context.Context, symbol string, fundamentals types.Fundamentals, graham scoring.GrahamResult, latest types.Candle) *types.StockMetrics {
	metrics := &types.StockMetrics{}

	if fundamentals.PERatio != nil {
		v := round2(*fundamentals.PERatio)
		metrics.PERatio = &v
	}
	if fundamentals.PBRatio != nil {
		v := round2(*fundamentals.PBRatio)
		metrics.PBRatio = &v
	}
	if graham.Known {
		v := graham.Value
		metrics.GrahamNumber = &v
	}

	if vol, ok := a.volatility(ctx, symbol); ok {
		v := round4(vol)
		metrics.Volatility = &v
	}

	metrics.Daily = &types.DailyData{
		Open:   round2(latest.Open),
		High:   round2(latest.High),
		Low:    round2(latest.Low),
		Volume: latest.Volume,
	}

	return metrics
}

// volatility computes annualized volatility over the risk window.
func (a *advisor) volatility(ctx context.Context, symbol string) (float64, bool) {
	candles, err := a.market.History(ctx, symbol, a.riskPeriod)
	if err != nil {
		logger.Warn(ctx, "Risk history fetch failed", "symbol", symbol, "period", a.riskPeriod, "error", err.Error())
		return 0, false
	}

	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	vol := ta.AnnualizedVolatility(closes)
	if math.IsNaN(vol) {
		return 0, false
	}
	return vol, true
}

// explain asks the explainer for prose over the finished numbers. Absent or
// failing explainers produce the placeholder the dashboard expects.
func (a *advisor) explain(ctx context.Context, symbol string, report *types.AnalysisReport) string {
	if a.explainer == nil {
		return "Explanation not available."
	}

	explanation, err := a.explainer.Explain(ctx, *report)
	if err != nil {
		logger.Degraded(ctx, symbol, "explanation", err)
		return "Explanation not available due to an AI model error."
	}
	return explanation
}

func grahamFrom(f types.Fundamentals) scoring.GrahamResult {
	if f.EPS == nil || f.BookValue == nil {
		return scoring.GrahamResult{}
	}
	return scoring.GrahamNumber(*f.EPS, *f.BookValue)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
