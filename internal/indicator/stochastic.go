package indicator

// Default stochastic oscillator parameters.
const (
	DefaultStochasticPeriod  = 14
	DefaultStochasticSmoothK = 3
	DefaultStochasticSmoothD = 3
)

// StochasticResult holds the smoothed %K and %D series.
type StochasticResult struct {
	K []float64
	D []float64
}

// Stochastic calculates the stochastic oscillator: raw %K over the window,
// smoothed by an SMA of smoothK, with %D an SMA of the smoothed %K. Positions
// where the window's high-low range is zero are undefined.
func Stochastic(high, low, close []float64, window, smoothK, smoothD int) (StochasticResult, error) {
	for name, period := range map[string]int{
		"stochastic":          window,
		"stochastic smooth K": smoothK,
		"stochastic smooth D": smoothD,
	} {
		if err := validatePeriod(name, period); err != nil {
			return StochasticResult{}, err
		}
	}

	n := len(close)
	rawK := undefinedSeries(n)

	if len(high) == n && len(low) == n {
		for i := window - 1; i < n; i++ {
			lowest := low[i]
			highest := high[i]

			for j := i - window + 1; j <= i; j++ {
				if low[j] < lowest {
					lowest = low[j]
				}

				if high[j] > highest {
					highest = high[j]
				}
			}

			if highest > lowest {
				rawK[i] = 100 * (close[i] - lowest) / (highest - lowest)
			}
		}
	}

	k := smoothDefined(rawK, smoothK)
	d := smoothDefined(k, smoothD)

	return StochasticResult{K: k, D: d}, nil
}

// smoothDefined applies a trailing SMA over the defined tail of the series,
// preserving the undefined head.
func smoothDefined(series []float64, window int) []float64 {
	out := undefinedSeries(len(series))

	firstDefined := -1
	for i, v := range series {
		if IsDefined(v) {
			firstDefined = i
			break
		}
	}

	if firstDefined < 0 {
		return out
	}

	smoothed, err := SMA(series[firstDefined:], window)
	if err != nil {
		return out
	}

	copy(out[firstDefined:], smoothed)

	return out
}
