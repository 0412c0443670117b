package indicator

// EMA calculates the exponential moving average of the series, seeded with
// the simple average of the first window points. The first window-1 positions
// are undefined.
func EMA(series []float64, window int) ([]float64, error) {
	if err := validatePeriod("EMA", window); err != nil {
		return nil, err
	}

	out := undefinedSeries(len(series))
	if len(series) < window {
		return out, nil
	}

	// SMA seed for the first defined position
	var seed float64
	for i := 0; i < window; i++ {
		seed += series[i]
	}

	seed /= float64(window)
	out[window-1] = seed

	multiplier := 2.0 / (float64(window) + 1.0)
	prev := seed

	for i := window; i < len(series); i++ {
		prev = (series[i]-prev)*multiplier + prev
		out[i] = prev
	}

	return out, nil
}
