package indicator

// DefaultRSIPeriod is the conventional Wilder RSI window.
const DefaultRSIPeriod = 14

// RSI calculates the Wilder-smoothed relative strength index, bounded to
// [0, 100]. A position is undefined until window+1 points are available, so
// the first window positions carry the undefined marker.
func RSI(series []float64, window int) ([]float64, error) {
	if err := validatePeriod("RSI", window); err != nil {
		return nil, err
	}

	out := undefinedSeries(len(series))
	if len(series) < window+1 {
		return out, nil
	}

	// Price changes split into gains and losses
	gains := make([]float64, len(series))
	losses := make([]float64, len(series))

	for i := 1; i < len(series); i++ {
		change := series[i] - series[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	// First average over the initial window of changes
	var avgGain, avgLoss float64
	for i := 1; i <= window; i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}

	avgGain /= float64(window)
	avgLoss /= float64(window)
	out[window] = rsiFromAverages(avgGain, avgLoss)

	// Subsequent averages use Wilder's smoothing method
	for i := window + 1; i < len(series); i++ {
		avgGain = (avgGain*float64(window-1) + gains[i]) / float64(window)
		avgLoss = (avgLoss*float64(window-1) + losses[i]) / float64(window)
		out[i] = rsiFromAverages(avgGain, avgLoss)
	}

	return out, nil
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100 // Perfect uptrend
	}

	rs := avgGain / avgLoss

	return 100 - (100 / (1 + rs))
}
