package pattern

import (
	"github.com/go-playground/validator/v10"

	"github.com/rxtech-lab/chart-patterns/pkg/errors"
)

// Config holds the tunable windows and thresholds shared by every pattern
// family. The zero value is not usable; start from DefaultConfig.
type Config struct {
	// FastPeriod is the fast SMA window for the crossover family.
	FastPeriod int `yaml:"fast_period" json:"fast_period" jsonschema:"description=Fast SMA window for MA crossovers,default=20" validate:"gt=0"`
	// SlowPeriod is the slow SMA window for the crossover family.
	SlowPeriod int `yaml:"slow_period" json:"slow_period" jsonschema:"description=Slow SMA window for MA crossovers,default=50" validate:"gt=0,gtfield=FastPeriod"`
	// RSIPeriod is the oscillator window for the divergence family.
	RSIPeriod int `yaml:"rsi_period" json:"rsi_period" jsonschema:"description=RSI window for divergence detection,default=14" validate:"gt=0"`
	// ExtremaOrder is the one-sided neighborhood size for local peak and
	// trough detection in the divergence family.
	ExtremaOrder int `yaml:"extrema_order" json:"extrema_order" jsonschema:"description=One-sided window for local extrema,default=5" validate:"gt=0"`
	// BreakoutLookback is the window defining local resistance and support.
	BreakoutLookback int `yaml:"breakout_lookback" json:"breakout_lookback" jsonschema:"description=Lookback window for breakout levels,default=50" validate:"gt=0"`
	// BreakoutThreshold is the minimum relative margin a close must clear a
	// level by before a breakout or breakdown fires.
	BreakoutThreshold float64 `yaml:"breakout_threshold" json:"breakout_threshold" jsonschema:"description=Minimum breakout margin,default=0.02" validate:"gte=0,lt=1"`
	// VolumeFactor is the multiple of average volume required to confirm a
	// breakout or breakdown.
	VolumeFactor float64 `yaml:"volume_factor" json:"volume_factor" jsonschema:"description=Volume confirmation multiple,default=1.2" validate:"gte=1"`
}

// DefaultConfig returns the standard recognizer defaults.
func DefaultConfig() Config {
	return Config{
		FastPeriod:        20,
		SlowPeriod:        50,
		RSIPeriod:         14,
		ExtremaOrder:      5,
		BreakoutLookback:  50,
		BreakoutThreshold: 0.02,
		VolumeFactor:      1.2,
	}
}

// Validate checks the config before any detection runs.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid pattern config", err)
	}

	return nil
}
