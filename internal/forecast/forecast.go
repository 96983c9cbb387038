package forecast

import (
	"context"

	"gonum.org/v1/gonum/stat"

	"stock-advisor/internal/scoring"
	"stock-advisor/internal/types"
)

// LinearForecaster projects the next session's close by fitting an
// ordinary least squares line through recent closes and extending it one
// step. The projection is capped at MaxDriftPct from the last close, since
// a straight-line fit through a gappy series can extrapolate moves no
// stock makes in a day.
type LinearForecaster struct {
	// LookbackBars is how many of the most recent closes feed the fit.
	LookbackBars int

	// MaxDriftPct bounds the projected move, in percent of the last close.
	MaxDriftPct float64
}

func NewLinearForecaster(lookbackBars int, maxDriftPct float64) *LinearForecaster {
	if lookbackBars < 2 {
		lookbackBars = 60
	}
	if maxDriftPct <= 0 {
		maxDriftPct = 10
	}
	return &LinearForecaster{LookbackBars: lookbackBars, MaxDriftPct: maxDriftPct}
}

// PredictNextClose returns the projected close for the bar after the last
// candle given.
func (f *LinearForecaster) PredictNextClose(ctx context.Context, candles []types.Candle) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(candles) < 2 {
		return 0, &scoring.InvalidInputError{
			Field:  "candles",
			Value:  float64(len(candles)),
			Reason: "need at least two closes to fit a trend",
		}
	}

	window := candles
	if len(window) > f.LookbackBars {
		window = window[len(window)-f.LookbackBars:]
	}

	xs := make([]float64, len(window))
	ys := make([]float64, len(window))
	for i, c := range window {
		xs[i] = float64(i)
		ys[i] = c.Close
	}

	lastClose := ys[len(ys)-1]
	if lastClose <= 0 {
		return 0, &scoring.InvalidInputError{
			Field:  "close",
			Value:  lastClose,
			Reason: "last close must be positive",
		}
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	predicted := alpha + beta*float64(len(ys))

	maxDrift := lastClose * f.MaxDriftPct / 100
	if predicted > lastClose+maxDrift {
		predicted = lastClose + maxDrift
	}
	if predicted < lastClose-maxDrift {
		predicted = lastClose - maxDrift
	}
	return predicted, nil
}
