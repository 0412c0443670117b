package backtest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/chart-patterns/internal/types"
)

type MetricsTestSuite struct {
	suite.Suite
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}

func tradeWithPnL(pnl float64) types.Trade {
	return types.Trade{
		Direction: types.TradeDirectionLong,
		Quantity:  1,
		Pattern:   types.PatternMACrossoverBuy,
		PnL:       pnl,
	}
}

func (suite *MetricsTestSuite) TestZeroTrades() {
	metrics := computeMetrics(nil, []float64{100000, 100000}, 100000)

	suite.Equal(0, metrics.TotalTrades)
	suite.Equal(0.0, metrics.WinRate)
	suite.Equal(0.0, metrics.TotalReturn)
	suite.Equal(0.0, metrics.ProfitFactor)
	suite.Equal(0.0, metrics.SharpeRatio)
	suite.Equal(0.0, metrics.MaxDrawdown)
}

func (suite *MetricsTestSuite) TestWinRateAndAverages() {
	trades := []types.Trade{
		tradeWithPnL(100),
		tradeWithPnL(300),
		tradeWithPnL(-200),
		tradeWithPnL(0),
	}

	metrics := computeMetrics(trades, nil, 100000)

	suite.Equal(4, metrics.TotalTrades)
	suite.Equal(2, metrics.WinningTrades)
	suite.Equal(1, metrics.LosingTrades)
	suite.InDelta(50.0, metrics.WinRate, 1e-9)
	suite.InDelta(200.0, metrics.AvgWin, 1e-9)
	suite.InDelta(-200.0, metrics.AvgLoss, 1e-9)
	suite.InDelta(2.0, metrics.ProfitFactor, 1e-9)
	suite.InDelta(0.2, metrics.TotalReturn, 1e-9)
}

func (suite *MetricsTestSuite) TestProfitFactorInfinityWithoutLosses() {
	metrics := computeMetrics([]types.Trade{tradeWithPnL(50)}, nil, 100000)

	suite.True(math.IsInf(metrics.ProfitFactor, 1))
	suite.True(metrics.HasInfiniteProfitFactor())
}

func (suite *MetricsTestSuite) TestSharpeZeroVarianceSentinel() {
	// Flat equity curve: zero variance returns the 0 sentinel.
	suite.Equal(0.0, sharpeRatio([]float64{100, 100, 100, 100}))

	// Constant growth rate also has zero return variance.
	suite.Equal(0.0, sharpeRatio([]float64{100, 200, 400, 800}))

	// Fewer than two returns.
	suite.Equal(0.0, sharpeRatio([]float64{100, 105}))
	suite.Equal(0.0, sharpeRatio(nil))
}

func (suite *MetricsTestSuite) TestSharpeAnnualized() {
	curve := []float64{100, 102, 101, 104, 103}
	got := sharpeRatio(curve)

	returns := []float64{0.02, -1.0 / 102, 3.0 / 101, -1.0 / 104}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= 4

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= 3

	want := mean / math.Sqrt(variance) * math.Sqrt(252)
	suite.InDelta(want, got, 1e-9)
}

func (suite *MetricsTestSuite) TestMaxDrawdown() {
	// Peak 120, trough 90: (90/120 - 1) * 100 = -25.
	suite.InDelta(-25.0, maxDrawdown([]float64{100, 120, 90, 110}), 1e-9)

	// Monotonic curve never draws down.
	suite.Equal(0.0, maxDrawdown([]float64{100, 105, 110}))
	suite.Equal(0.0, maxDrawdown(nil))
}
