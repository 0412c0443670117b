package types

import (
	"time"

	"github.com/rxtech-lab/chart-patterns/pkg/errors"
)

// Bar is a single trading day's price record. A series of bars is owned by
// the caller and read-only to every component in this package tree.
type Bar struct {
	Time   time.Time `csv:"time"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume float64   `csv:"volume"`
}

// Closes extracts the close price series from a bar slice.
func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
	}

	return closes
}

// Highs extracts the high price series from a bar slice.
func Highs(bars []Bar) []float64 {
	highs := make([]float64, len(bars))
	for i, bar := range bars {
		highs[i] = bar.High
	}

	return highs
}

// Lows extracts the low price series from a bar slice.
func Lows(bars []Bar) []float64 {
	lows := make([]float64, len(bars))
	for i, bar := range bars {
		lows[i] = bar.Low
	}

	return lows
}

// ValidateSeries checks that bar times are strictly increasing. Gaps for
// non-trading days are permitted; duplicates and out-of-order bars are not.
func ValidateSeries(bars []Bar) error {
	for i := 1; i < len(bars); i++ {
		if !bars[i].Time.After(bars[i-1].Time) {
			return errors.Newf(errors.ErrCodeInvalidSeries,
				"bar times must be strictly increasing: bar %d (%s) is not after bar %d (%s)",
				i, bars[i].Time.Format(time.DateOnly), i-1, bars[i-1].Time.Format(time.DateOnly))
		}
	}

	return nil
}
