package indicator

// Default MACD periods.
const (
	DefaultMACDFastPeriod   = 12
	DefaultMACDSlowPeriod   = 26
	DefaultMACDSignalPeriod = 9
)

// MACDResult holds the three aligned MACD output series.
type MACDResult struct {
	// Line is the fast EMA minus the slow EMA.
	Line []float64
	// Signal is an EMA of the MACD line.
	Signal []float64
	// Histogram is the line minus the signal.
	Histogram []float64
}

// MACD calculates the moving average convergence/divergence series. The line
// is undefined until the slow EMA is defined; the signal additionally needs
// signalPeriod defined line values.
func MACD(series []float64, fastPeriod, slowPeriod, signalPeriod int) (MACDResult, error) {
	for name, period := range map[string]int{
		"MACD fast":   fastPeriod,
		"MACD slow":   slowPeriod,
		"MACD signal": signalPeriod,
	} {
		if err := validatePeriod(name, period); err != nil {
			return MACDResult{}, err
		}
	}

	fastEMA, err := EMA(series, fastPeriod)
	if err != nil {
		return MACDResult{}, err
	}

	slowEMA, err := EMA(series, slowPeriod)
	if err != nil {
		return MACDResult{}, err
	}

	line := undefinedSeries(len(series))
	for i := range series {
		if IsDefined(fastEMA[i]) && IsDefined(slowEMA[i]) {
			line[i] = fastEMA[i] - slowEMA[i]
		}
	}

	// The signal is an EMA over the defined portion of the line.
	signal := undefinedSeries(len(series))

	firstDefined := slowPeriod - 1
	if firstDefined < len(series) {
		signalTail, err := EMA(line[firstDefined:], signalPeriod)
		if err != nil {
			return MACDResult{}, err
		}

		copy(signal[firstDefined:], signalTail)
	}

	histogram := undefinedSeries(len(series))
	for i := range series {
		if IsDefined(line[i]) && IsDefined(signal[i]) {
			histogram[i] = line[i] - signal[i]
		}
	}

	return MACDResult{
		Line:      line,
		Signal:    signal,
		Histogram: histogram,
	}, nil
}
