package backtest

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/chart-patterns/internal/backtest/commission"
	"github.com/rxtech-lab/chart-patterns/internal/types"
	"github.com/rxtech-lab/chart-patterns/pkg/errors"
)

// DefaultInitialCapital is the starting equity used when a config does not
// override it.
const DefaultInitialCapital = 100000.0

// StrategyConfig selects the pattern tags to trade and the position sizing
// rules for one strategy runner invocation. Immutable per run.
type StrategyConfig struct {
	// Patterns are the enabled pattern tags. Signals with other tags are
	// ignored; an empty set simply matches nothing and yields a zero-trade run.
	Patterns []types.PatternType `yaml:"patterns" json:"patterns" jsonschema:"title=Patterns,description=Pattern tags the strategy trades on"`
	// PositionSize is the fraction of current equity committed per entry.
	PositionSize float64 `yaml:"position_size" json:"position_size" jsonschema:"title=Position Size,description=Fraction of equity committed per entry,minimum=0,maximum=1" validate:"gt=0,lte=1"`
	// ConfidenceThreshold is the minimum signal confidence accepted.
	ConfidenceThreshold float64 `yaml:"confidence_threshold" json:"confidence_threshold" jsonschema:"title=Confidence Threshold,description=Minimum signal confidence accepted,minimum=0,maximum=1" validate:"gte=0,lte=1"`
	// InitialCapital is the starting equity for the simulation in USD.
	InitialCapital float64 `yaml:"initial_capital" json:"initial_capital" jsonschema:"title=Initial Capital,description=Starting capital for the backtest in USD,minimum=0" validate:"gt=0"`
	// AllowShort controls whether sell-class signals may open short positions.
	// When false they only close open longs.
	AllowShort bool `yaml:"allow_short" json:"allow_short" jsonschema:"title=Allow Short,description=Whether sell-class signals open short positions"`
	// MaxExposure caps the aggregate fraction of equity committed across all
	// open positions. New entries that would exceed the cap are skipped.
	MaxExposure float64 `yaml:"max_exposure" json:"max_exposure" jsonschema:"title=Max Exposure,description=Aggregate equity fraction cap across open positions,minimum=0,maximum=1" validate:"gt=0,lte=1"`
	// Schedule selects the commission schedule applied to fills.
	Schedule commission.Schedule `yaml:"schedule" json:"schedule" jsonschema:"title=Commission Schedule,description=The commission schedule applied to fills"`
	// StartTime optionally restricts the simulated bar range.
	StartTime optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional start time for the backtest period"`
	// EndTime optionally restricts the simulated bar range.
	EndTime optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional end time for the backtest period"`
}

// DefaultConfig returns a long-only StrategyConfig with a 10% position size
// and a 0.7 confidence threshold, trading the given pattern tags.
func DefaultConfig(patterns ...types.PatternType) StrategyConfig {
	return StrategyConfig{
		Patterns:            patterns,
		PositionSize:        0.1,
		ConfidenceThreshold: 0.7,
		InitialCapital:      DefaultInitialCapital,
		AllowShort:          false,
		MaxExposure:         1.0,
		Schedule:            commission.ScheduleZero,
		StartTime:           optional.None[time.Time](),
		EndTime:             optional.None[time.Time](),
	}
}

// UnmarshalYAML implements custom unmarshaling for StrategyConfig.
func (c *StrategyConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type Config struct {
		Patterns            []types.PatternType `yaml:"patterns"`
		PositionSize        float64             `yaml:"position_size"`
		ConfidenceThreshold float64             `yaml:"confidence_threshold"`
		InitialCapital      float64             `yaml:"initial_capital"`
		AllowShort          bool                `yaml:"allow_short"`
		MaxExposure         float64             `yaml:"max_exposure"`
		Schedule            commission.Schedule `yaml:"schedule"`
		StartTime           *time.Time          `yaml:"start_time"`
		EndTime             *time.Time          `yaml:"end_time"`
	}

	var config Config
	if err := unmarshal(&config); err != nil {
		return err
	}

	c.Patterns = config.Patterns
	c.PositionSize = config.PositionSize
	c.ConfidenceThreshold = config.ConfidenceThreshold
	c.InitialCapital = config.InitialCapital
	c.AllowShort = config.AllowShort
	c.MaxExposure = config.MaxExposure
	c.Schedule = config.Schedule

	if config.StartTime != nil {
		c.StartTime = optional.Some(*config.StartTime)
	}

	if config.EndTime != nil {
		c.EndTime = optional.Some(*config.EndTime)
	}

	return nil
}

// Validate fails fast on invalid position sizing, thresholds, or unknown
// pattern tags before any simulation begins.
func (c *StrategyConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid strategy config", err)
	}

	for _, pattern := range c.Patterns {
		if !types.IsValidPattern(pattern) {
			return errors.Newf(errors.ErrCodeUnknownPattern, "unknown pattern tag %q", pattern)
		}
	}

	return nil
}

// GenerateSchema generates a JSON schema for the StrategyConfig.
func (c *StrategyConfig) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}

			if strings.Contains(t.String(), "commission.Schedule") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: []any{commission.ScheduleZero, commission.ScheduleRate},
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "pattern-strategy-config"
	schema.Description = "Configuration schema for the pattern strategy runner"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the StrategyConfig.
func (c *StrategyConfig) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
