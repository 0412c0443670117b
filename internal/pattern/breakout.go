package pattern

import (
	"fmt"

	"github.com/rxtech-lab/chart-patterns/internal/types"
)

// detectBreakout emits a breakout signal when the close clears the local
// high of the preceding lookback window by at least the configured margin
// with confirming volume, and the symmetric breakdown against the local low.
// The current bar is excluded from its own level window.
func detectBreakout(bars []types.Bar, cfg Config) []types.Signal {
	var signals []types.Signal

	for i := cfg.BreakoutLookback; i < len(bars); i++ {
		resistance := bars[i-cfg.BreakoutLookback].High
		support := bars[i-cfg.BreakoutLookback].Low

		var volumeSum float64

		for j := i - cfg.BreakoutLookback; j < i; j++ {
			if bars[j].High > resistance {
				resistance = bars[j].High
			}

			if bars[j].Low < support {
				support = bars[j].Low
			}

			volumeSum += bars[j].Volume
		}

		avgVolume := volumeSum / float64(cfg.BreakoutLookback)
		volumeConfirmed := avgVolume == 0 || bars[i].Volume >= cfg.VolumeFactor*avgVolume

		if !volumeConfirmed {
			continue
		}

		if resistance > 0 && bars[i].Close > resistance*(1+cfg.BreakoutThreshold) {
			margin := bars[i].Close/resistance - 1 - cfg.BreakoutThreshold
			signals = append(signals, types.Signal{
				Time:       bars[i].Time,
				Pattern:    types.PatternResistanceBreakout,
				Price:      bars[i].Close,
				Confidence: clampConfidence(0.6+margin*10, 0.6, 0.95),
				Reason:     fmt.Sprintf("close broke above resistance at %.2f", resistance),
			})
		} else if support > 0 && bars[i].Close < support*(1-cfg.BreakoutThreshold) {
			margin := 1 - cfg.BreakoutThreshold - bars[i].Close/support
			signals = append(signals, types.Signal{
				Time:       bars[i].Time,
				Pattern:    types.PatternSupportBreakdown,
				Price:      bars[i].Close,
				Confidence: clampConfidence(0.6+margin*10, 0.6, 0.95),
				Reason:     fmt.Sprintf("close broke below support at %.2f", support),
			})
		}
	}

	return signals
}
