package scoring

import "math"

// Recommendation is the advisory label produced for a symbol.
type Recommendation string

const (
	StrongBuy Recommendation = "Strong Buy"
	Buy       Recommendation = "Buy"
	Hold      Recommendation = "Hold"
	Sell      Recommendation = "Sell"
)

// Mapper thresholds, fixed constants of the design.
const (
	overrideSignalMin = 85.0
	overrideFinalMin  = 60.0
	buyThreshold      = 70.0
	holdThreshold     = 40.0
)

// Weights holds the linear combination weights for one profile. They are
// expected to sum to 1 with no negative entries; FinalScore clamps its
// output so the [0, 100] range survives even if a profile is ever extended
// carelessly.
type Weights struct {
	Trend     float64
	Sentiment float64
	Valuation float64
}

// Profile is one named configuration of the combination engine: the signal
// weights plus the strongest label its override rule can promote to.
type Profile struct {
	Name     string
	Weights  Weights
	TopLabel Recommendation
}

// TwoSignalProfile combines sentiment and trend only, for callers without
// fundamentals. Its override promotes to plain Buy.
var TwoSignalProfile = Profile{
	Name:     "two-signal",
	Weights:  Weights{Trend: 0.4, Sentiment: 0.6},
	TopLabel: Buy,
}

// ThreeSignalProfile combines trend, sentiment and valuation. Its override
// promotes to Strong Buy.
var ThreeSignalProfile = Profile{
	Name:     "three-signal",
	Weights:  Weights{Trend: 0.3, Sentiment: 0.4, Valuation: 0.3},
	TopLabel: StrongBuy,
}

// ProfileByName returns the named profile, defaulting to three-signal for
// unrecognized names.
func ProfileByName(name string) Profile {
	if name == TwoSignalProfile.Name {
		return TwoSignalProfile
	}
	return ThreeSignalProfile
}

// FinalScore combines the signals into one score. Unavailable signals count
// as neutral, so a degraded analysis still produces a usable score.
func (p Profile) FinalScore(trend, sentiment, valuation Signal) float64 {
	combined := p.Weights.Trend*trend.ValueOr(NeutralScore) +
		p.Weights.Sentiment*sentiment.ValueOr(NeutralScore) +
		p.Weights.Valuation*valuation.ValueOr(NeutralScore)

	return math.Min(100, math.Max(0, combined))
}

// Recommend maps a final score to a label. Ordered rules, first match wins:
// a single very strong signal (>= 85) promotes a decent final score (>= 60)
// to the profile's top label; then the plain thresholds apply. Unavailable
// signals skip their override check.
func (p Profile) Recommend(finalScore float64, trend, sentiment Signal) Recommendation {
	strongSignal := (sentiment.Resolved() && sentiment.Value() >= overrideSignalMin) ||
		(trend.Resolved() && trend.Value() >= overrideSignalMin)
	if strongSignal && finalScore >= overrideFinalMin {
		return p.TopLabel
	}

	switch {
	case finalScore >= buyThreshold:
		return Buy
	case finalScore >= holdThreshold:
		return Hold
	default:
		return Sell
	}
}

// Evaluate runs the combiner and the mapper in one step.
func (p Profile) Evaluate(trend, sentiment, valuation Signal) (float64, Recommendation) {
	final := p.FinalScore(trend, sentiment, valuation)
	return final, p.Recommend(final, trend, sentiment)
}
