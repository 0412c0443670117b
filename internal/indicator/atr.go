package indicator

import "math"

// DefaultATRPeriod is the conventional average true range window.
const DefaultATRPeriod = 14

// ATR calculates the average true range as a rolling mean of the true range.
// The first bar's true range is its high-low span since no prior close
// exists. The first window-1 positions are undefined.
func ATR(high, low, close []float64, window int) ([]float64, error) {
	if err := validatePeriod("ATR", window); err != nil {
		return nil, err
	}

	n := len(close)
	out := undefinedSeries(n)

	if len(high) != n || len(low) != n {
		return out, nil
	}

	trueRange := make([]float64, n)
	for i := 0; i < n; i++ {
		tr := high[i] - low[i]
		if i > 0 {
			tr = math.Max(tr, math.Abs(high[i]-close[i-1]))
			tr = math.Max(tr, math.Abs(low[i]-close[i-1]))
		}

		trueRange[i] = tr
	}

	return SMA(trueRange, window)
}
