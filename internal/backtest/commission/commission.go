// Package commission models per-fill commission schedules for the strategy
// runner. The rate schedule charges a flat fraction of notional value; the
// zero schedule keeps simulations frictionless by default.
package commission

// Fee calculates the commission for a single fill.
type Fee interface {
	// Calculate returns the fee in account currency for a fill of the given
	// quantity at the given price.
	Calculate(quantity, price float64) float64
}

// Schedule names a built-in commission schedule.
type Schedule string

const (
	ScheduleZero Schedule = "zero"
	ScheduleRate Schedule = "rate"
)

// GetFeeHandler returns the fee implementation for a schedule. Unknown
// schedules fall back to zero commission.
func GetFeeHandler(schedule Schedule) Fee {
	switch schedule {
	case ScheduleRate:
		return NewRateFee(DefaultRate)
	case ScheduleZero:
		return NewZeroFee()
	default:
		return NewZeroFee()
	}
}
