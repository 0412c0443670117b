// Package indicator provides pure numeric transforms of a daily price series.
//
// Every transform returns a slice aligned index-for-index with its input.
// Positions that lack enough trailing history carry the undefined marker
// instead of a value; downstream consumers must check IsDefined before using
// an output. Series shorter than the minimum window produce all-undefined
// output rather than an error.
package indicator

import (
	"math"

	"github.com/rxtech-lab/chart-patterns/pkg/errors"
)

// Undefined returns the marker used for positions without enough history.
func Undefined() float64 {
	return math.NaN()
}

// IsDefined reports whether an indicator output position holds a value.
func IsDefined(v float64) bool {
	return !math.IsNaN(v)
}

// undefinedSeries allocates an all-undefined output slice of length n.
func undefinedSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

// validatePeriod rejects non-positive windows before any calculation runs.
func validatePeriod(name string, period int) error {
	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "%s period must be a positive integer, got %d", name, period)
	}

	return nil
}
