package backtest

import (
	"math/bits"
	"sort"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/rxtech-lab/chart-patterns/internal/logger"
	"github.com/rxtech-lab/chart-patterns/internal/types"
	"github.com/rxtech-lab/chart-patterns/pkg/errors"
)

// maxCatalogSize bounds the subset enumeration. The search visits every
// subset of the catalogue whose size lies in the requested range, which is
// O(2^n) in the catalogue size; 16 tags already means 65535 evaluations and
// anything beyond that is a configuration mistake, not a workload.
const maxCatalogSize = 16

// RankField selects the metric used to order optimization results.
type RankField string

const (
	RankByTotalReturn  RankField = "total_return"
	RankByWinRate      RankField = "win_rate"
	RankBySharpeRatio  RankField = "sharpe_ratio"
	RankByProfitFactor RankField = "profit_factor"
	RankByMaxDrawdown  RankField = "max_drawdown"
)

// OptimizationResult is one evaluated pattern subset with its metrics.
type OptimizationResult struct {
	Patterns []types.PatternType `yaml:"patterns"`
	Metrics  types.Metrics       `yaml:"metrics"`
}

// Optimizer evaluates every pattern subset within a size range through the
// strategy runner. Subset evaluations only read the shared bar series and
// signal list, so they are independent of one another; this implementation
// runs them sequentially.
type Optimizer struct {
	runner     *Runner
	signals    []types.Signal
	baseConfig StrategyConfig
	catalog    []types.PatternType
	rankBy     RankField
	progress   bool
	log        *logger.Logger
}

// OptimizerOption customizes an Optimizer.
type OptimizerOption func(*Optimizer)

// WithCatalog replaces the default full pattern catalogue.
func WithCatalog(catalog []types.PatternType) OptimizerOption {
	return func(o *Optimizer) {
		o.catalog = catalog
	}
}

// WithRankField replaces the default total-return ranking.
func WithRankField(field RankField) OptimizerOption {
	return func(o *Optimizer) {
		o.rankBy = field
	}
}

// WithBaseConfig replaces the default runner configuration applied to every
// subset. The Patterns field is overwritten per subset.
func WithBaseConfig(config StrategyConfig) OptimizerOption {
	return func(o *Optimizer) {
		o.baseConfig = config
	}
}

// WithProgress enables a terminal progress bar over the enumeration.
func WithProgress() OptimizerOption {
	return func(o *Optimizer) {
		o.progress = true
	}
}

// NewOptimizer creates an optimizer over the runner's bar series using the
// given recognizer signals.
func NewOptimizer(runner *Runner, signals []types.Signal, log *logger.Logger, opts ...OptimizerOption) (*Optimizer, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	o := &Optimizer{
		runner:     runner,
		signals:    signals,
		baseConfig: DefaultConfig(),
		catalog:    types.PatternCatalog(),
		rankBy:     RankByTotalReturn,
		log:        log,
	}

	for _, opt := range opts {
		opt(o)
	}

	if len(o.catalog) == 0 || len(o.catalog) > maxCatalogSize {
		return nil, errors.Newf(errors.ErrCodeCatalogTooLarge,
			"catalogue size must be in [1, %d], got %d", maxCatalogSize, len(o.catalog))
	}

	for _, pattern := range o.catalog {
		if !types.IsValidPattern(pattern) {
			return nil, errors.Newf(errors.ErrCodeUnknownPattern, "unknown pattern tag %q in catalogue", pattern)
		}
	}

	switch o.rankBy {
	case RankByTotalReturn, RankByWinRate, RankBySharpeRatio, RankByProfitFactor, RankByMaxDrawdown:
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidRankField, "unknown rank field %q", o.rankBy)
	}

	return o, nil
}

// OptimizeCombinations enumerates every subset of the catalogue whose size
// lies in [minPatterns, maxPatterns], evaluates each through the strategy
// runner, and returns all evaluated subsets sorted by the ranking field in
// descending order. Subsets are generated by iterating bitmasks 1..2^n-1 and
// mapping set bits to catalogue tags.
func (o *Optimizer) OptimizeCombinations(minPatterns, maxPatterns int) ([]OptimizationResult, error) {
	if minPatterns < 1 || minPatterns > maxPatterns {
		return nil, errors.Newf(errors.ErrCodeOptimizerBounds,
			"pattern count range [%d, %d] is invalid", minPatterns, maxPatterns)
	}

	if maxPatterns > len(o.catalog) {
		return nil, errors.Newf(errors.ErrCodeOptimizerBounds,
			"max patterns %d exceeds catalogue size %d", maxPatterns, len(o.catalog))
	}

	total := countSubsets(len(o.catalog), minPatterns, maxPatterns)

	var bar *progressbar.ProgressBar
	if o.progress {
		bar = progressbar.Default(int64(total), "optimizing")
	}

	results := make([]OptimizationResult, 0, total)

	for mask := 1; mask < 1<<len(o.catalog); mask++ {
		size := bits.OnesCount(uint(mask))
		if size < minPatterns || size > maxPatterns {
			continue
		}

		subset := make([]types.PatternType, 0, size)

		for i, pattern := range o.catalog {
			if mask&(1<<i) != 0 {
				subset = append(subset, pattern)
			}
		}

		config := o.baseConfig
		config.Patterns = subset

		result, err := o.runner.RunPatternStrategy(o.signals, config)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeBacktestFailed, err, "subset %v failed", subset)
		}

		results = append(results, OptimizationResult{
			Patterns: subset,
			Metrics:  result.Metrics,
		})

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	o.sortResults(results)
	o.log.Info("pattern combination search complete",
		zap.Int("subsets", len(results)),
		zap.String("rank_by", string(o.rankBy)),
	)

	return results, nil
}

func (o *Optimizer) sortResults(results []OptimizationResult) {
	key := func(m types.Metrics) float64 {
		switch o.rankBy {
		case RankByWinRate:
			return m.WinRate
		case RankBySharpeRatio:
			return m.SharpeRatio
		case RankByProfitFactor:
			return m.ProfitFactor
		case RankByMaxDrawdown:
			return m.MaxDrawdown
		default:
			return m.TotalReturn
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return key(results[i].Metrics) > key(results[j].Metrics)
	})
}

// countSubsets is the number of subsets of an n-tag catalogue with size in
// [min, max]: the sum of binomial coefficients C(n, k).
func countSubsets(n, min, max int) int {
	total := 0

	for k := min; k <= max && k <= n; k++ {
		c := 1
		for i := 0; i < k; i++ {
			c = c * (n - i) / (i + 1)
		}

		total += c
	}

	return total
}
