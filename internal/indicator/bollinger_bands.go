package indicator

import "math"

// Default Bollinger Bands parameters.
const (
	DefaultBollingerPeriod = 20
	DefaultBollingerStdDev = 2.0
)

// BandsResult holds the three aligned Bollinger Bands output series.
type BandsResult struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// BollingerBands calculates the rolling mean plus/minus stdDev population
// standard deviations over the window. The first window-1 positions of every
// band are undefined.
func BollingerBands(series []float64, window int, stdDev float64) (BandsResult, error) {
	if err := validatePeriod("Bollinger Bands", window); err != nil {
		return BandsResult{}, err
	}

	middle, err := SMA(series, window)
	if err != nil {
		return BandsResult{}, err
	}

	upper := undefinedSeries(len(series))
	lower := undefinedSeries(len(series))

	for i := window - 1; i < len(series); i++ {
		var squaredDiffSum float64
		for j := i - window + 1; j <= i; j++ {
			diff := series[j] - middle[i]
			squaredDiffSum += diff * diff
		}

		sigma := math.Sqrt(squaredDiffSum / float64(window))
		upper[i] = middle[i] + stdDev*sigma
		lower[i] = middle[i] - stdDev*sigma
	}

	return BandsResult{
		Upper:  upper,
		Middle: middle,
		Lower:  lower,
	}, nil
}
