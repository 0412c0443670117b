package pattern

import (
	"fmt"

	"github.com/rxtech-lab/chart-patterns/internal/indicator"
	"github.com/rxtech-lab/chart-patterns/internal/types"
)

// detectRSIDivergence emits a bullish signal when price sets a lower low
// across two consecutive local troughs while the RSI sets a higher low, and
// the bearish mirror across local peaks. Troughs and peaks are strict local
// extrema of the close series within ExtremaOrder bars on both sides.
func detectRSIDivergence(bars []types.Bar, cfg Config) []types.Signal {
	closes := types.Closes(bars)

	rsi, err := indicator.RSI(closes, cfg.RSIPeriod)
	if err != nil {
		return nil
	}

	var signals []types.Signal

	troughs := localTroughs(closes, cfg.ExtremaOrder)
	for i := 1; i < len(troughs); i++ {
		prev, cur := troughs[i-1], troughs[i]
		if !indicator.IsDefined(rsi[prev]) || !indicator.IsDefined(rsi[cur]) {
			continue
		}

		priceLowerLow := bars[cur].Low < bars[prev].Low
		rsiHigherLow := rsi[cur] > rsi[prev]

		if priceLowerLow && rsiHigherLow {
			signals = append(signals, types.Signal{
				Time:       bars[cur].Time,
				Pattern:    types.PatternRSIBullishDivergence,
				Price:      bars[cur].Close,
				Confidence: divergenceConfidence(rsi[cur]-rsi[prev], 100-rsi[cur]),
				Reason:     fmt.Sprintf("price lower low with RSI higher low (%.1f -> %.1f)", rsi[prev], rsi[cur]),
			})
		}
	}

	peaks := localPeaks(closes, cfg.ExtremaOrder)
	for i := 1; i < len(peaks); i++ {
		prev, cur := peaks[i-1], peaks[i]
		if !indicator.IsDefined(rsi[prev]) || !indicator.IsDefined(rsi[cur]) {
			continue
		}

		priceHigherHigh := bars[cur].High > bars[prev].High
		rsiLowerHigh := rsi[cur] < rsi[prev]

		if priceHigherHigh && rsiLowerHigh {
			signals = append(signals, types.Signal{
				Time:       bars[cur].Time,
				Pattern:    types.PatternRSIBearishDivergence,
				Price:      bars[cur].Close,
				Confidence: divergenceConfidence(rsi[prev]-rsi[cur], rsi[cur]),
				Reason:     fmt.Sprintf("price higher high with RSI lower high (%.1f -> %.1f)", rsi[prev], rsi[cur]),
			})
		}
	}

	return signals
}

// divergenceConfidence scales with the RSI gap between the two extrema and
// with how far the oscillator sits toward its bound (near 0 for bullish,
// near 100 for bearish, both passed here as distance-to-opposite-bound).
func divergenceConfidence(magnitude, extremity float64) float64 {
	return clampConfidence(0.5+magnitude/100+extremity/500, 0.5, 0.95)
}
