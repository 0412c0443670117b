// Package backtest simulates trades from pattern signals over a daily bar
// series and summarizes the outcome.
//
// Entry timing policy: a signal fills at the close of the bar it fired on.
// Signals are derived from completed bars, so filling at that bar's close
// needs no lookahead bar and keeps every run deterministic.
package backtest

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rxtech-lab/chart-patterns/internal/backtest/commission"
	"github.com/rxtech-lab/chart-patterns/internal/logger"
	"github.com/rxtech-lab/chart-patterns/internal/types"
)

// Result bundles the closed trades and their metrics for one run.
type Result struct {
	Metrics types.Metrics
	Trades  []types.Trade
}

// Runner simulates pattern strategies over a fixed bar series. The series is
// shared and read-only; every invocation owns its own trades and metrics.
type Runner struct {
	bars []types.Bar
	log  *logger.Logger
}

// NewRunner creates a runner over the bar series. The series must have
// strictly increasing times.
func NewRunner(bars []types.Bar, log *logger.Logger) (*Runner, error) {
	if err := types.ValidateSeries(bars); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Runner{
		bars: bars,
		log:  log,
	}, nil
}

// position tracks one open trade plus the equity fraction it committed.
type position struct {
	trade    types.Trade
	exposure float64
}

// RunPatternStrategy filters the signals by the config's pattern tags and
// confidence threshold, simulates entries and exits in date order, and
// computes metrics over the closed trades. At most one position per
// direction may be open at a time; a same-direction signal while that
// position is open is ignored. Any position still open after the final bar
// is force-closed at the final close. An empty or single-bar series, or a
// filter that matches nothing, yields well-formed zeroed metrics.
func (r *Runner) RunPatternStrategy(signals []types.Signal, config StrategyConfig) (Result, error) {
	if err := config.Validate(); err != nil {
		return Result{}, err
	}

	fee := commission.GetFeeHandler(config.Schedule)
	filtered := r.filterSignals(signals, config)

	var (
		trades      []types.Trade
		equityCurve []float64
		long        *position
		short       *position
	)

	cash := config.InitialCapital
	exposure := 0.0
	cursor := 0

	markEquity := func(price float64) float64 {
		equity := cash
		if long != nil {
			equity += long.trade.Quantity * price
		}

		if short != nil {
			equity += short.trade.Quantity * (2*short.trade.EntryPrice - price)
		}

		return equity
	}

	closePosition := func(p *position, price float64, at time.Time) {
		exitFee := fee.Calculate(p.trade.Quantity, price)
		if p.trade.Direction == types.TradeDirectionLong {
			cash += p.trade.Quantity*price - exitFee
		} else {
			cash += p.trade.Quantity*(2*p.trade.EntryPrice-price) - exitFee
		}

		p.trade.ExitTime = at
		p.trade.ExitPrice = price
		p.trade.Fee += exitFee
		p.trade.PnL = p.trade.ComputePnL()
		exposure -= p.exposure
		trades = append(trades, p.trade)
	}

	openPosition := func(direction types.TradeDirection, pattern types.PatternType, price float64, at time.Time) *position {
		if exposure+config.PositionSize > config.MaxExposure+1e-9 {
			return nil
		}

		equity := markEquity(price)
		if equity <= 0 || price <= 0 {
			return nil
		}

		quantity := equity * config.PositionSize / price
		entryFee := fee.Calculate(quantity, price)
		cash -= quantity*price + entryFee
		exposure += config.PositionSize

		return &position{
			trade: types.Trade{
				EntryTime:  at,
				EntryPrice: price,
				Direction:  direction,
				Quantity:   quantity,
				Pattern:    pattern,
				Fee:        entryFee,
			},
			exposure: config.PositionSize,
		}
	}

	for _, bar := range r.bars {
		for cursor < len(filtered) && !filtered[cursor].Time.After(bar.Time) {
			signal := filtered[cursor]
			cursor++

			if !signal.Time.Equal(bar.Time) {
				continue
			}

			switch signal.Pattern.Class() {
			case types.SignalClassBuy:
				if short != nil {
					closePosition(short, bar.Close, bar.Time)
					short = nil
				}

				if long == nil {
					long = openPosition(types.TradeDirectionLong, signal.Pattern, bar.Close, bar.Time)
				}
			case types.SignalClassSell:
				if long != nil {
					closePosition(long, bar.Close, bar.Time)
					long = nil
				}

				if config.AllowShort && short == nil {
					short = openPosition(types.TradeDirectionShort, signal.Pattern, bar.Close, bar.Time)
				}
			}
		}

		equityCurve = append(equityCurve, markEquity(bar.Close))
	}

	// Force-close anything still open at the final bar's close so every
	// trade is complete.
	if len(r.bars) > 0 {
		last := r.bars[len(r.bars)-1]
		if long != nil {
			closePosition(long, last.Close, last.Time)
			long = nil
		}

		if short != nil {
			closePosition(short, last.Close, last.Time)
			short = nil
		}

		// Replace the final mark with the fully realized equity.
		equityCurve[len(equityCurve)-1] = markEquity(last.Close)
	}

	metrics := computeMetrics(trades, equityCurve, config.InitialCapital)

	r.log.Debug("pattern strategy run complete",
		zap.Int("signals", len(filtered)),
		zap.Int("trades", metrics.TotalTrades),
		zap.Float64("total_return", metrics.TotalReturn),
	)

	return Result{
		Metrics: metrics,
		Trades:  trades,
	}, nil
}

// RunToResult wraps RunPatternStrategy output in a persistable BacktestResult
// with a fresh run ID.
func (r *Runner) RunToResult(signals []types.Signal, config StrategyConfig) (types.BacktestResult, error) {
	result, err := r.RunPatternStrategy(signals, config)
	if err != nil {
		return types.BacktestResult{}, err
	}

	return types.BacktestResult{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Patterns:  config.Patterns,
		Metrics:   result.Metrics,
		Trades:    result.Trades,
	}, nil
}

// filterSignals keeps signals whose tag is enabled, whose confidence meets
// the threshold, and whose time falls inside the configured window. The
// result is sorted ascending by time so the bar walk can merge it with a
// single cursor; same-time signals keep their input order.
func (r *Runner) filterSignals(signals []types.Signal, config StrategyConfig) []types.Signal {
	enabled := make(map[types.PatternType]bool, len(config.Patterns))
	for _, p := range config.Patterns {
		enabled[p] = true
	}

	var filtered []types.Signal

	for _, signal := range signals {
		if !enabled[signal.Pattern] || signal.Confidence < config.ConfidenceThreshold {
			continue
		}

		if config.StartTime.IsSome() && signal.Time.Before(config.StartTime.Unwrap()) {
			continue
		}

		if config.EndTime.IsSome() && signal.Time.After(config.EndTime.Unwrap()) {
			continue
		}

		filtered = append(filtered, signal)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Time.Before(filtered[j].Time)
	})

	return filtered
}
