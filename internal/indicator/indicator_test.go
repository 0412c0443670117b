package indicator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"
)

type IndicatorTestSuite struct {
	suite.Suite
}

func TestIndicatorSuite(t *testing.T) {
	suite.Run(t, new(IndicatorTestSuite))
}

// linearRamp returns a series start, start+step, start+2*step, ...
func linearRamp(start, step float64, n int) []float64 {
	series := make([]float64, n)
	for i := range series {
		series[i] = start + step*float64(i)
	}

	return series
}

func (suite *IndicatorTestSuite) TestSMAOnLinearRamp() {
	series := linearRamp(100, 1, 20)
	window := 5

	out, err := SMA(series, window)
	suite.Require().NoError(err)
	suite.Require().Len(out, len(series))

	for i := 0; i < window-1; i++ {
		suite.False(IsDefined(out[i]), "position %d should be undefined", i)
	}

	for i := window - 1; i < len(series); i++ {
		var mean float64
		for j := i - window + 1; j <= i; j++ {
			mean += series[j]
		}

		mean /= float64(window)
		suite.InDelta(mean, out[i], 1e-9, "position %d", i)
	}
}

func (suite *IndicatorTestSuite) TestSMAShorterThanWindow() {
	out, err := SMA([]float64{1, 2, 3}, 10)
	suite.Require().NoError(err)
	suite.Len(out, 3)

	for _, v := range out {
		suite.False(IsDefined(v))
	}
}

func (suite *IndicatorTestSuite) TestSMAEmptySeries() {
	out, err := SMA(nil, 5)
	suite.Require().NoError(err)
	suite.Empty(out)
}

func (suite *IndicatorTestSuite) TestSMAInvalidWindow() {
	_, err := SMA([]float64{1, 2, 3}, 0)
	suite.Error(err)
}

func (suite *IndicatorTestSuite) TestEMASeedEqualsSMA() {
	series := []float64{10, 11, 9, 12, 14, 13, 15}
	window := 4

	ema, err := EMA(series, window)
	suite.Require().NoError(err)

	sma, err := SMA(series, window)
	suite.Require().NoError(err)

	for i := 0; i < window-1; i++ {
		suite.False(IsDefined(ema[i]))
	}

	// The first defined EMA value is seeded with the SMA.
	suite.InDelta(sma[window-1], ema[window-1], 1e-9)
}

func (suite *IndicatorTestSuite) TestEMAConstantSeries() {
	series := []float64{5, 5, 5, 5, 5, 5}

	ema, err := EMA(series, 3)
	suite.Require().NoError(err)

	for i := 2; i < len(series); i++ {
		suite.InDelta(5.0, ema[i], 1e-9)
	}
}

func (suite *IndicatorTestSuite) TestRSIBoundsOnRandomSeries() {
	rng := rand.New(rand.NewSource(42))
	series := make([]float64, 300)
	price := 100.0

	for i := range series {
		price *= 1 + (rng.Float64()-0.5)*0.04
		series[i] = price
	}

	out, err := RSI(series, DefaultRSIPeriod)
	suite.Require().NoError(err)

	for i := 0; i < DefaultRSIPeriod; i++ {
		suite.False(IsDefined(out[i]), "position %d should be undefined", i)
	}

	for i := DefaultRSIPeriod; i < len(series); i++ {
		suite.Require().True(IsDefined(out[i]), "position %d should be defined", i)
		suite.GreaterOrEqual(out[i], 0.0)
		suite.LessOrEqual(out[i], 100.0)
	}
}

func (suite *IndicatorTestSuite) TestRSIPerfectUptrend() {
	series := linearRamp(100, 1, 30)

	out, err := RSI(series, 14)
	suite.Require().NoError(err)
	suite.InDelta(100.0, out[len(out)-1], 1e-9)
}

func (suite *IndicatorTestSuite) TestRSIShortSeries() {
	out, err := RSI([]float64{1, 2, 3}, 14)
	suite.Require().NoError(err)

	for _, v := range out {
		suite.False(IsDefined(v))
	}
}

func (suite *IndicatorTestSuite) TestMACDRelations() {
	rng := rand.New(rand.NewSource(7))
	series := make([]float64, 120)
	price := 50.0

	for i := range series {
		price *= 1 + (rng.Float64()-0.5)*0.02
		series[i] = price
	}

	result, err := MACD(series, DefaultMACDFastPeriod, DefaultMACDSlowPeriod, DefaultMACDSignalPeriod)
	suite.Require().NoError(err)

	fast, err := EMA(series, DefaultMACDFastPeriod)
	suite.Require().NoError(err)

	slow, err := EMA(series, DefaultMACDSlowPeriod)
	suite.Require().NoError(err)

	// The line is fast EMA minus slow EMA wherever the slow EMA is defined.
	for i := DefaultMACDSlowPeriod - 1; i < len(series); i++ {
		suite.InDelta(fast[i]-slow[i], result.Line[i], 1e-9)
	}

	// The histogram is line minus signal wherever both are defined.
	for i := range series {
		if IsDefined(result.Signal[i]) {
			suite.InDelta(result.Line[i]-result.Signal[i], result.Histogram[i], 1e-9)
		}
	}

	// The signal head extends signalPeriod-1 past the line head.
	firstSignal := DefaultMACDSlowPeriod - 1 + DefaultMACDSignalPeriod - 1
	suite.False(IsDefined(result.Signal[firstSignal-1]))
	suite.True(IsDefined(result.Signal[firstSignal]))
}

func (suite *IndicatorTestSuite) TestBollingerBandsSymmetry() {
	series := []float64{20, 21, 19, 22, 23, 21, 24, 25, 22, 26}
	window := 4

	result, err := BollingerBands(series, window, 2)
	suite.Require().NoError(err)

	for i := 0; i < window-1; i++ {
		suite.False(IsDefined(result.Upper[i]))
		suite.False(IsDefined(result.Middle[i]))
		suite.False(IsDefined(result.Lower[i]))
	}

	for i := window - 1; i < len(series); i++ {
		suite.True(IsDefined(result.Middle[i]))
		// Bands are symmetric around the middle.
		suite.InDelta(result.Middle[i]-result.Lower[i], result.Upper[i]-result.Middle[i], 1e-9)
		suite.GreaterOrEqual(result.Upper[i], result.Middle[i])
		suite.LessOrEqual(result.Lower[i], result.Middle[i])
	}
}

func (suite *IndicatorTestSuite) TestBollingerBandsConstantSeries() {
	series := []float64{10, 10, 10, 10, 10}

	result, err := BollingerBands(series, 3, 2)
	suite.Require().NoError(err)

	// Zero variance collapses the bands onto the middle.
	suite.InDelta(10.0, result.Upper[4], 1e-9)
	suite.InDelta(10.0, result.Lower[4], 1e-9)
}

func (suite *IndicatorTestSuite) TestATRUndefinedHead() {
	high := []float64{11, 12, 13, 14, 15, 16}
	low := []float64{9, 10, 11, 12, 13, 14}
	close := []float64{10, 11, 12, 13, 14, 15}

	out, err := ATR(high, low, close, 3)
	suite.Require().NoError(err)

	suite.False(IsDefined(out[0]))
	suite.False(IsDefined(out[1]))

	for i := 2; i < len(close); i++ {
		suite.True(IsDefined(out[i]))
		suite.Greater(out[i], 0.0)
	}
}

func (suite *IndicatorTestSuite) TestStochasticBounds() {
	rng := rand.New(rand.NewSource(99))
	n := 100
	high := make([]float64, n)
	low := make([]float64, n)
	close := make([]float64, n)
	price := 100.0

	for i := 0; i < n; i++ {
		price *= 1 + (rng.Float64()-0.5)*0.03
		low[i] = price * 0.99
		high[i] = price * 1.01
		close[i] = price
	}

	result, err := Stochastic(high, low, close, DefaultStochasticPeriod, DefaultStochasticSmoothK, DefaultStochasticSmoothD)
	suite.Require().NoError(err)

	for i := range close {
		if IsDefined(result.K[i]) {
			suite.GreaterOrEqual(result.K[i], 0.0)
			suite.LessOrEqual(result.K[i], 100.0)
		}

		if IsDefined(result.D[i]) {
			suite.GreaterOrEqual(result.D[i], 0.0)
			suite.LessOrEqual(result.D[i], 100.0)
		}
	}
}

func (suite *IndicatorTestSuite) TestUndefinedMarker() {
	suite.True(math.IsNaN(Undefined()))
	suite.False(IsDefined(Undefined()))
	suite.True(IsDefined(0.0))
}
