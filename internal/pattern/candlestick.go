package pattern

import (
	"math"

	"github.com/rxtech-lab/chart-patterns/internal/types"
)

// detectCandlestick evaluates single- and two-bar reversal shapes from the
// open/high/low/close geometry of the current and immediately preceding bar:
// hammer, shooting star, and bullish/bearish engulfing. Zero-range bars are
// skipped.
func detectCandlestick(bars []types.Bar, cfg Config) []types.Signal {
	var signals []types.Signal

	for i := 1; i < len(bars); i++ {
		cur := bars[i]
		prev := bars[i-1]

		body := math.Abs(cur.Close - cur.Open)
		fullRange := cur.High - cur.Low

		if fullRange == 0 {
			continue
		}

		lowerShadow := math.Min(cur.Open, cur.Close) - cur.Low
		upperShadow := cur.High - math.Max(cur.Open, cur.Close)

		// Hammer: bullish body, long lower shadow, small upper shadow.
		if cur.Close > cur.Open && lowerShadow > 2*body && upperShadow < 0.1*body {
			signals = append(signals, types.Signal{
				Time:       cur.Time,
				Pattern:    types.PatternHammerBullish,
				Price:      cur.Close,
				Confidence: shadowConfidence(lowerShadow, body),
				Reason:     "bullish hammer",
			})
		}

		// Shooting star: bearish body, long upper shadow, small lower shadow.
		if cur.Close < cur.Open && upperShadow > 2*body && lowerShadow < 0.1*body {
			signals = append(signals, types.Signal{
				Time:       cur.Time,
				Pattern:    types.PatternShootingStarBearish,
				Price:      cur.Close,
				Confidence: shadowConfidence(upperShadow, body),
				Reason:     "bearish shooting star",
			})
		}

		prevBody := math.Abs(prev.Close - prev.Open)

		// Bullish engulfing: bearish prior bar fully engulfed by a bullish body.
		if prev.Close < prev.Open && cur.Close > cur.Open &&
			cur.Open < prev.Close && cur.Close > prev.Open {
			signals = append(signals, types.Signal{
				Time:       cur.Time,
				Pattern:    types.PatternBullishEngulfing,
				Price:      cur.Close,
				Confidence: engulfingConfidence(body, prevBody),
				Reason:     "bullish engulfing",
			})
		}

		// Bearish engulfing: bullish prior bar fully engulfed by a bearish body.
		if prev.Close > prev.Open && cur.Close < cur.Open &&
			cur.Open > prev.Close && cur.Close < prev.Open {
			signals = append(signals, types.Signal{
				Time:       cur.Time,
				Pattern:    types.PatternBearishEngulfing,
				Price:      cur.Close,
				Confidence: engulfingConfidence(body, prevBody),
				Reason:     "bearish engulfing",
			})
		}
	}

	return signals
}

// shadowConfidence grows with how far the dominant shadow exceeds the 2x
// body threshold.
func shadowConfidence(shadow, body float64) float64 {
	if body == 0 {
		return 0.6
	}

	return clampConfidence(0.6+0.05*(shadow/body-2), 0.6, 0.9)
}

// engulfingConfidence grows with how much of the prior body the current body
// exceeds.
func engulfingConfidence(body, prevBody float64) float64 {
	if prevBody == 0 {
		return 0.65
	}

	return clampConfidence(0.6+0.1*(body/prevBody-1), 0.6, 0.9)
}
