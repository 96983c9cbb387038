package ta

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// tradingDays is the annualization factor for daily return volatility.
const tradingDays = 252

// Returns computes simple daily returns. Days following a zero close are
// skipped, the series would otherwise blow up on bad data.
func Returns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}
	return returns
}

// AnnualizedVolatility is the sample standard deviation of daily returns
// scaled to a trading year.
func AnnualizedVolatility(closes []float64) float64 {
	returns := Returns(closes)
	if len(returns) < 2 {
		return math.NaN()
	}
	return stat.StdDev(returns, nil) * math.Sqrt(tradingDays)
}
