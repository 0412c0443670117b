package backtest

import (
	"math"

	"github.com/rxtech-lab/chart-patterns/internal/types"
)

// tradingDaysPerYear annualizes the Sharpe ratio of daily equity returns.
const tradingDaysPerYear = 252

// computeMetrics summarizes closed trades and the per-bar equity curve.
// Every division is guarded: zero trades, zero losses, and zero return
// variance all resolve to documented sentinels instead of NaN.
func computeMetrics(trades []types.Trade, equityCurve []float64, initialCapital float64) types.Metrics {
	metrics := types.Metrics{}
	if len(trades) == 0 {
		return metrics
	}

	var (
		grossWin  float64
		grossLoss float64
		totalPnL  float64
	)

	for _, trade := range trades {
		totalPnL += trade.PnL

		switch {
		case trade.PnL > 0:
			metrics.WinningTrades++
			grossWin += trade.PnL
		case trade.PnL < 0:
			metrics.LosingTrades++
			grossLoss += trade.PnL
		}
	}

	metrics.TotalTrades = len(trades)
	metrics.WinRate = float64(metrics.WinningTrades) / float64(metrics.TotalTrades) * 100

	if metrics.WinningTrades > 0 {
		metrics.AvgWin = grossWin / float64(metrics.WinningTrades)
	}

	if metrics.LosingTrades > 0 {
		metrics.AvgLoss = grossLoss / float64(metrics.LosingTrades)
	}

	switch {
	case grossLoss != 0:
		metrics.ProfitFactor = grossWin / math.Abs(grossLoss)
	case grossWin > 0:
		// No losing trades: the profit factor is the infinity sentinel, not
		// an error.
		metrics.ProfitFactor = math.Inf(1)
	}

	if initialCapital > 0 {
		metrics.TotalReturn = totalPnL / initialCapital * 100
	}

	metrics.SharpeRatio = sharpeRatio(equityCurve)
	metrics.MaxDrawdown = maxDrawdown(equityCurve)

	return metrics
}

// sharpeRatio is the mean over the standard deviation of the equity curve's
// period returns, annualized by sqrt(252). It resolves to 0 when fewer than
// two returns exist or the return variance is zero.
func sharpeRatio(equityCurve []float64) float64 {
	var returns []float64

	for i := 1; i < len(equityCurve); i++ {
		if equityCurve[i-1] == 0 {
			continue
		}

		returns = append(returns, equityCurve[i]/equityCurve[i-1]-1)
	}

	if len(returns) < 2 {
		return 0
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}

	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		diff := r - mean
		variance += diff * diff
	}

	// Sample variance.
	variance /= float64(len(returns) - 1)
	if variance == 0 {
		return 0
	}

	return mean / math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear)
}

// maxDrawdown is the maximum peak-to-trough percentage decline of the equity
// curve. The result is always <= 0.
func maxDrawdown(equityCurve []float64) float64 {
	var (
		peak     float64
		drawdown float64
	)

	for i, equity := range equityCurve {
		if i == 0 || equity > peak {
			peak = equity
		}

		if peak > 0 {
			dd := (equity/peak - 1) * 100
			if dd < drawdown {
				drawdown = dd
			}
		}
	}

	return drawdown
}
