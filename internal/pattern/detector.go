// Package pattern recognizes discrete trading signals in a daily bar series.
//
// Each pattern family is a pure detector function evaluated independently
// over the full series; the recognizer unions their output. Detection never
// mutates the input bars and carries no state between calls.
package pattern

import (
	"math"

	"github.com/rxtech-lab/chart-patterns/internal/types"
)

// detector is one pattern family's pure evaluation function. Detectors skip
// positions whose indicator inputs are undefined; the recognizer orders the
// combined output.
type detector func(bars []types.Bar, cfg Config) []types.Signal

// family pairs a detector with the catalogue tags it can emit.
type family struct {
	name   string
	detect detector
}

// families lists every pattern family in catalogue order. The order is the
// tie-break for same-date signals and must match the catalogue in types.
var families = []family{
	{name: "ma_crossover", detect: detectMACrossover},
	{name: "rsi_divergence", detect: detectRSIDivergence},
	{name: "breakout", detect: detectBreakout},
	{name: "candlestick", detect: detectCandlestick},
}

// clampConfidence bounds a confidence score to [lo, hi] within [0, 1].
func clampConfidence(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// localTroughs returns indices that are strict local minima of the series
// within order positions on both sides.
func localTroughs(series []float64, order int) []int {
	return localExtrema(series, order, func(a, b float64) bool { return a < b })
}

// localPeaks returns indices that are strict local maxima of the series
// within order positions on both sides.
func localPeaks(series []float64, order int) []int {
	return localExtrema(series, order, func(a, b float64) bool { return a > b })
}

func localExtrema(series []float64, order int, better func(a, b float64) bool) []int {
	var out []int

	for i := order; i < len(series)-order; i++ {
		isExtremum := true

		for j := i - order; j <= i+order && isExtremum; j++ {
			if j == i {
				continue
			}

			if !better(series[i], series[j]) {
				isExtremum = false
			}
		}

		if isExtremum {
			out = append(out, i)
		}
	}

	return out
}
