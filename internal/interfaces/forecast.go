package interfaces

import (
	"context"

	"stock-advisor/internal/types"
)

// Forecaster predicts the next session's closing price from daily history.
type Forecaster interface {
	PredictNextClose(ctx context.Context, candles []types.Candle) (float64, error)
}
