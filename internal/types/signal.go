package types

import "time"

// PatternType identifies a pattern family recognized by the pattern engine.
type PatternType string

const (
	// PatternMACrossoverBuy fires when the fast SMA crosses above the slow SMA
	PatternMACrossoverBuy PatternType = "MA_CROSSOVER_BUY"
	// PatternMACrossoverSell fires when the fast SMA crosses below the slow SMA
	PatternMACrossoverSell PatternType = "MA_CROSSOVER_SELL"
	// PatternRSIBullishDivergence fires when price sets a lower low while RSI sets a higher low
	PatternRSIBullishDivergence PatternType = "RSI_BULLISH_DIVERGENCE"
	// PatternRSIBearishDivergence fires when price sets a higher high while RSI sets a lower high
	PatternRSIBearishDivergence PatternType = "RSI_BEARISH_DIVERGENCE"
	// PatternResistanceBreakout fires when the close clears the local high with confirming volume
	PatternResistanceBreakout PatternType = "RESISTANCE_BREAKOUT"
	// PatternSupportBreakdown fires when the close falls through the local low with confirming volume
	PatternSupportBreakdown PatternType = "SUPPORT_BREAKDOWN"
	// PatternHammerBullish is a bullish candle with a long lower shadow and small upper shadow
	PatternHammerBullish PatternType = "HAMMER_BULLISH"
	// PatternShootingStarBearish is a bearish candle with a long upper shadow and small lower shadow
	PatternShootingStarBearish PatternType = "SHOOTING_STAR_BEARISH"
	// PatternBullishEngulfing is a bullish body engulfing the prior bearish body
	PatternBullishEngulfing PatternType = "BULLISH_ENGULFING"
	// PatternBearishEngulfing is a bearish body engulfing the prior bullish body
	PatternBearishEngulfing PatternType = "BEARISH_ENGULFING"
)

// patternCatalog is the fixed pattern catalogue in evaluation order. The
// order doubles as the tie-break for same-date signals, so it must be stable.
var patternCatalog = []PatternType{
	PatternMACrossoverBuy,
	PatternMACrossoverSell,
	PatternRSIBullishDivergence,
	PatternRSIBearishDivergence,
	PatternResistanceBreakout,
	PatternSupportBreakdown,
	PatternHammerBullish,
	PatternShootingStarBearish,
	PatternBullishEngulfing,
	PatternBearishEngulfing,
}

// PatternCatalog returns a copy of the fixed pattern catalogue.
func PatternCatalog() []PatternType {
	catalog := make([]PatternType, len(patternCatalog))
	copy(catalog, patternCatalog)

	return catalog
}

// PatternIndex returns the position of a pattern in the catalogue, or -1 if
// the tag is not a catalogue member.
func PatternIndex(pattern PatternType) int {
	for i, p := range patternCatalog {
		if p == pattern {
			return i
		}
	}

	return -1
}

// IsValidPattern reports whether the tag is a catalogue member.
func IsValidPattern(pattern PatternType) bool {
	return PatternIndex(pattern) >= 0
}

// SignalClass partitions pattern tags into entry and exit classes.
type SignalClass string

const (
	// SignalClassBuy opens long positions (or closes shorts)
	SignalClassBuy SignalClass = "buy"
	// SignalClassSell closes long positions (or opens shorts)
	SignalClassSell SignalClass = "sell"
)

// Class returns the signal class of a pattern tag. Bullish families are
// buy-class, bearish families are sell-class.
func (p PatternType) Class() SignalClass {
	switch p {
	case PatternMACrossoverBuy, PatternRSIBullishDivergence, PatternResistanceBreakout,
		PatternHammerBullish, PatternBullishEngulfing:
		return SignalClassBuy
	default:
		return SignalClassSell
	}
}

// Signal is a discrete trading signal emitted by the pattern recognizer.
// Signals are derived values and immutable once produced.
type Signal struct {
	// Time is the bar time the signal fired on
	Time time.Time
	// Pattern is the pattern family that produced the signal
	Pattern PatternType
	// Price is the trigger price, the close of the signal bar
	Price float64
	// Confidence is in [0,1] and reflects how cleanly the pattern matched
	Confidence float64
	// Reason is a free-form description of the trigger
	Reason string
}
