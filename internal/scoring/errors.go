package scoring

import (
	"errors"
	"fmt"
)

// ErrUpstreamUnavailable marks a collaborator failure (market data, news,
// model). Orchestration maps it to unavailable signals for optional inputs
// and fails the request only when the input is structurally required.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// InvalidInputError reports a structurally invalid scorer input, such as a
// zero last close. It indicates corrupt upstream data, so scorers return it
// instead of substituting a default.
type InvalidInputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s=%g: %s", e.Field, e.Value, e.Reason)
}

// IsInvalidInput reports whether err is an InvalidInputError.
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}
