package pattern

import (
	"fmt"
	"math"

	"github.com/rxtech-lab/chart-patterns/internal/indicator"
	"github.com/rxtech-lab/chart-patterns/internal/types"
)

// detectMACrossover emits a buy signal when the fast SMA transitions from at
// or below the slow SMA to above it between two consecutive bars, and a sell
// signal on the reverse transition. Positions with undefined averages on
// either bar are skipped.
func detectMACrossover(bars []types.Bar, cfg Config) []types.Signal {
	closes := types.Closes(bars)

	fast, err := indicator.SMA(closes, cfg.FastPeriod)
	if err != nil {
		return nil
	}

	slow, err := indicator.SMA(closes, cfg.SlowPeriod)
	if err != nil {
		return nil
	}

	var signals []types.Signal

	for i := 1; i < len(bars); i++ {
		if !indicator.IsDefined(fast[i-1]) || !indicator.IsDefined(slow[i-1]) ||
			!indicator.IsDefined(fast[i]) || !indicator.IsDefined(slow[i]) {
			continue
		}

		crossedAbove := fast[i-1] <= slow[i-1] && fast[i] > slow[i]
		crossedBelow := fast[i-1] >= slow[i-1] && fast[i] < slow[i]

		if !crossedAbove && !crossedBelow {
			continue
		}

		separation := math.Abs(fast[i]-slow[i]) / slow[i]
		confidence := clampConfidence(0.6+separation*25, 0.6, 0.95)

		if crossedAbove {
			signals = append(signals, types.Signal{
				Time:       bars[i].Time,
				Pattern:    types.PatternMACrossoverBuy,
				Price:      bars[i].Close,
				Confidence: confidence,
				Reason:     fmt.Sprintf("MA%d crossed above MA%d", cfg.FastPeriod, cfg.SlowPeriod),
			})
		} else {
			signals = append(signals, types.Signal{
				Time:       bars[i].Time,
				Pattern:    types.PatternMACrossoverSell,
				Price:      bars[i].Close,
				Confidence: confidence,
				Reason:     fmt.Sprintf("MA%d crossed below MA%d", cfg.FastPeriod, cfg.SlowPeriod),
			})
		}
	}

	return signals
}
