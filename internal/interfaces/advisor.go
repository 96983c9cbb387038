package interfaces

import (
	"context"

	"stock-advisor/internal/types"
)

// Advisor runs one complete analysis for a symbol: signals, combination,
// recommendation, explanation.
type Advisor interface {
	Analyze(ctx context.Context, symbol string) (*types.AnalysisReport, error)
}

// Explainer turns a finished report into a short natural-language
// justification. It must not alter the numeric state it is given.
type Explainer interface {
	Explain(ctx context.Context, report types.AnalysisReport) (string, error)
}
