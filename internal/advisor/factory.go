package advisor

import (
	"stock-advisor/internal/advisor/advisorobs"
	"stock-advisor/internal/config"
	"stock-advisor/internal/interfaces"
	"stock-advisor/internal/scoring"
)

// New builds the advisor for a config and wraps it with observability.
// searcher and explainer may be nil; the advisor degrades without them.
func New(cfg *config.Config, market interfaces.MarketData, forecaster interfaces.Forecaster, news interfaces.NewsAnalyst, searcher interfaces.SymbolSearcher, explainer interfaces.Explainer) interfaces.Advisor {
	opts := []Option{
		WithProfile(scoring.ProfileByName(cfg.Scoring.Mode)),
		WithHistoryPeriod(cfg.Market.HistoryPeriod),
		WithRiskPeriod(cfg.Market.RiskPeriod),
	}
	if searcher != nil {
		opts = append(opts, WithSearcher(searcher))
	}
	if explainer != nil {
		opts = append(opts, WithExplainer(explainer))
	}

	return advisorobs.Wrap(newAdvisor(market, forecaster, news, opts...))
}
