package scoring

import "math"

// GrahamResult is a fair-value estimate that may legitimately not exist,
// e.g. for negative-earnings companies. Known=false is "cannot value", not
// an error.
type GrahamResult struct {
	Value float64
	Known bool
}

// GrahamNumber computes sqrt(22.5 * eps * bookValue) rounded to two
// decimals. Both inputs must be strictly positive for the estimate to be
// defined.
func GrahamNumber(eps, bookValuePerShare float64) GrahamResult {
	if eps <= 0 || bookValuePerShare <= 0 {
		return GrahamResult{}
	}
	v := math.Sqrt(22.5 * eps * bookValuePerShare)
	return GrahamResult{Value: math.Round(v*100) / 100, Known: true}
}

// ValuationScore maps price-vs-fair-value to a 0-100 score. Bands on the
// ratio currentPrice / graham:
//
//	< 0.75       -> 90  significantly undervalued
//	[0.75, 1.0)  -> 75  undervalued
//	[1.0, 1.25)  -> 50  fairly valued
//	[1.25, 1.5)  -> 30  overvalued
//	>= 1.5       -> 10  significantly overvalued
//
// Valuation is advisory only: an unknown fair value or a non-positive price
// returns the neutral score instead of biasing the recommendation.
func ValuationScore(currentPrice float64, graham GrahamResult) float64 {
	if !graham.Known || graham.Value <= 0 || currentPrice <= 0 {
		return NeutralScore
	}

	ratio := currentPrice / graham.Value

	switch {
	case ratio < 0.75:
		return 90
	case ratio < 1.0:
		return 75
	case ratio < 1.25:
		return 50
	case ratio < 1.5:
		return 30
	default:
		return 10
	}
}
