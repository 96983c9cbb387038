package advisorobs

import (
	"context"
	"time"

	"stock-advisor/internal/interfaces"
	"stock-advisor/internal/logger"
	"stock-advisor/internal/trace"
	"stock-advisor/internal/types"
)

// observableAdvisor wraps an Advisor with observability (logging & tracing)
type observableAdvisor struct {
	advisor interfaces.Advisor
}

// Compile-time interface check
var _ interfaces.Advisor = (*observableAdvisor)(nil)

// Wrap wraps an advisor with observability middleware
func Wrap(adv interfaces.Advisor) interfaces.Advisor {
	return &observableAdvisor{
		advisor: adv,
	}
}

func (oa *observableAdvisor) Analyze(ctx context.Context, symbol string) (*types.AnalysisReport, error) {
	ctx, span := trace.StartSpan(ctx, "advisor.Analyze")
	defer span.End()

	start := time.Now()

	logger.Info(ctx, "Starting analysis run",
		"symbol", symbol,
	)

	report, err := oa.advisor.Analyze(ctx, symbol)
	if err != nil {
		logger.ErrorWithErr(ctx, "Analysis run failed", err,
			"symbol", symbol,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.Recommendation(ctx, report.Symbol, report.Recommendation, report.FinalScore,
		"sentiment_score", report.SentimentScore,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return report, nil
}
