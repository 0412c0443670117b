package types

import (
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/chart-patterns/pkg/errors"
)

// Metrics is a derived summary over a closed trade collection. It is
// recomputed per run and has no identity of its own.
type Metrics struct {
	// Count of all trades.
	TotalTrades int `yaml:"total_trades"`
	// Count of winning trades that have positive pnl.
	WinningTrades int `yaml:"winning_trades"`
	// Count of losing trades that have negative pnl.
	LosingTrades int `yaml:"losing_trades"`
	// Win rate as a percentage of total trades. Zero when there are no trades.
	WinRate float64 `yaml:"win_rate"`
	// Mean pnl of winning trades. Zero when there are no winners.
	AvgWin float64 `yaml:"avg_win"`
	// Mean pnl of losing trades. Zero when there are no losers.
	AvgLoss float64 `yaml:"avg_loss"`
	// Gross winning pnl divided by absolute gross losing pnl. +Inf when
	// there are winners but no losers, zero when there are no trades.
	ProfitFactor float64 `yaml:"profit_factor"`
	// Realized pnl over initial equity, as a percentage.
	TotalReturn float64 `yaml:"total_return"`
	// Mean over stdev of equity-curve period returns, annualized by sqrt(252).
	// Zero when the curve has fewer than two returns or zero variance.
	SharpeRatio float64 `yaml:"sharpe_ratio"`
	// Maximum peak-to-trough percentage decline of the equity curve.
	// Always <= 0; zero when equity never declined.
	MaxDrawdown float64 `yaml:"max_drawdown"`
}

// HasInfiniteProfitFactor reports whether the profit factor hit its
// no-losses sentinel.
func (m Metrics) HasInfiniteProfitFactor() bool {
	return math.IsInf(m.ProfitFactor, 1)
}

// BacktestResult bundles one strategy runner invocation's output.
type BacktestResult struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time `yaml:"timestamp"`
	// Patterns are the pattern tags the run traded on.
	Patterns []PatternType `yaml:"patterns"`
	// Metrics summarize the closed trades.
	Metrics Metrics `yaml:"metrics"`
	// Trades are the closed trades in entry order.
	Trades []Trade `yaml:"trades"`
}

// WriteResults serializes backtest results to a YAML file.
func WriteResults(path string, results []BacktestResult) error {
	data, err := yaml.Marshal(results)
	if err != nil {
		return errors.Wrap(errors.ErrCodeResultsWrite, "failed to marshal results to YAML", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeResultsWrite, "failed to write results file", err)
	}

	return nil
}
