package indicator

// SMA calculates the trailing simple moving average of the series. The first
// window-1 positions are undefined.
func SMA(series []float64, window int) ([]float64, error) {
	if err := validatePeriod("SMA", window); err != nil {
		return nil, err
	}

	out := undefinedSeries(len(series))
	if len(series) < window {
		return out, nil
	}

	var sum float64
	for i, v := range series {
		sum += v
		if i >= window {
			sum -= series[i-window]
		}

		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}

	return out, nil
}
