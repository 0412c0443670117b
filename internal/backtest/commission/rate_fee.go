package commission

// DefaultRate is the flat commission rate for the rate schedule (0.1%).
const DefaultRate = 0.001

// RateFee charges a flat fraction of a fill's notional value.
type RateFee struct {
	rate float64
}

// NewRateFee creates a rate-based commission fee.
func NewRateFee(rate float64) Fee {
	return &RateFee{rate: rate}
}

// Calculate returns rate * quantity * price.
func (c *RateFee) Calculate(quantity, price float64) float64 {
	return c.rate * quantity * price
}
