package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeDirection is the side of a simulated position.
type TradeDirection string

const (
	TradeDirectionLong  TradeDirection = "long"
	TradeDirectionShort TradeDirection = "short"
)

// Trade is a single simulated round trip. It is created at entry, finalized
// at exit (or at the forced close on the final bar) and immutable afterwards.
type Trade struct {
	EntryTime  time.Time      `csv:"entry_time" yaml:"entry_time"`
	ExitTime   time.Time      `csv:"exit_time" yaml:"exit_time"`
	EntryPrice float64        `csv:"entry_price" yaml:"entry_price"`
	ExitPrice  float64        `csv:"exit_price" yaml:"exit_price"`
	Direction  TradeDirection `csv:"direction" yaml:"direction"`
	// Quantity is the number of units held, derived from the position size
	// fraction at entry time.
	Quantity float64 `csv:"quantity" yaml:"quantity"`
	// Pattern is the pattern family that triggered the entry.
	Pattern PatternType `csv:"pattern" yaml:"pattern"`
	// Fee is the total commission paid on entry and exit fills.
	Fee float64 `csv:"fee" yaml:"fee"`
	// PnL is the realized profit and loss, net of fees.
	PnL float64 `csv:"pnl" yaml:"pnl"`
}

// ComputePnL calculates the realized pnl for the trade using decimal
// arithmetic. For a long, pnl = (exit - entry) * quantity - fee; a short is
// the mirror.
func (t *Trade) ComputePnL() float64 {
	entry := decimal.NewFromFloat(t.EntryPrice).Mul(decimal.NewFromFloat(t.Quantity))
	exit := decimal.NewFromFloat(t.ExitPrice).Mul(decimal.NewFromFloat(t.Quantity))

	var gross decimal.Decimal
	if t.Direction == TradeDirectionShort {
		// the way we calculate short pnl is the opposite of long pnl
		// for example, if the exit price is higher than the entry price, the pnl is negative
		gross = entry.Sub(exit)
	} else {
		gross = exit.Sub(entry)
	}

	result, _ := gross.Sub(decimal.NewFromFloat(t.Fee)).Float64()

	return result
}
