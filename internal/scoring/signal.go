package scoring

// NeutralScore is the midpoint of the 0-100 signal scale, used whenever a
// signal is absent and the design calls for a neutral default.
const NeutralScore = 50.0

// Signal is a resolved-or-unavailable score in [0, 100]. Collaborator
// failures and expected data gaps both surface as an unavailable Signal so
// the combiner's neutral defaulting is an explicit branch, never a caught
// error.
type Signal struct {
	value    float64
	resolved bool
}

// ResolvedSignal wraps a concrete score value.
func ResolvedSignal(value float64) Signal {
	return Signal{value: value, resolved: true}
}

// UnavailableSignal marks a signal whose upstream could not produce a value.
func UnavailableSignal() Signal {
	return Signal{}
}

// Resolved reports whether the signal carries a real value.
func (s Signal) Resolved() bool {
	return s.resolved
}

// Value returns the score, or 0 for an unavailable signal. Callers that
// need defaulting should use ValueOr.
func (s Signal) Value() float64 {
	return s.value
}

// ValueOr returns the score, or def when the signal is unavailable.
func (s Signal) ValueOr(def float64) float64 {
	if !s.resolved {
		return def
	}
	return s.value
}
