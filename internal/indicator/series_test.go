package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type SeriesTestSuite struct {
	suite.Suite
}

func TestSeriesSuite(t *testing.T) {
	suite.Run(t, new(SeriesTestSuite))
}

func (suite *SeriesTestSuite) TestRSIMonotoneRiseIsExactly100() {
	// 100.0 -> 119.0, step 1.0: zero average loss.
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100.0 + float64(i)
	}

	suite.InDelta(100.0, wilderRSI(closes, 14), 1e-12)
}

func (suite *SeriesTestSuite) TestRSIMonotoneFallIsExactlyZero() {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 119.0 - float64(i)
	}

	suite.InDelta(0.0, wilderRSI(closes, 14), 1e-12)
}

func (suite *SeriesTestSuite) TestRSIMidrange() {
	// Alternating equal-sized gains and losses settle near 50.
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100.0 + float64(i%2)
	}

	value := wilderRSI(closes, 14)
	suite.Greater(value, 30.0)
	suite.Less(value, 70.0)
}

func (suite *SeriesTestSuite) TestRSIShortInput() {
	suite.True(math.IsNaN(wilderRSI([]float64{100}, 14)))
	suite.False(math.IsNaN(wilderRSI([]float64{100, 101, 99}, 14)))
}

func (suite *SeriesTestSuite) TestSMAFallsBackToAvailableData() {
	values := []float64{1, 2, 3}
	suite.InDelta(2.0, smaLast(values, 20), 1e-12)
	suite.InDelta(2.5, smaLast(values, 2), 1e-12)
	suite.True(math.IsNaN(smaLast(nil, 20)))
}

func (suite *SeriesTestSuite) TestEMAConstantSeries() {
	values := make([]float64, 50)
	for i := range values {
		values[i] = 42.0
	}

	suite.InDelta(42.0, emaLast(values, 12), 1e-12)
}

func (suite *SeriesTestSuite) TestEMAConvergesTowardRecentValues() {
	values := make([]float64, 60)
	for i := range values {
		if i < 30 {
			values[i] = 100
		} else {
			values[i] = 200
		}
	}

	fast := emaLast(values, 5)
	slow := emaLast(values, 50)
	suite.Greater(fast, slow)
	suite.Greater(fast, 195.0)
}

func (suite *SeriesTestSuite) TestStddev() {
	suite.InDelta(0.0, stddev([]float64{5, 5, 5}), 1e-12)
	suite.InDelta(2.0, stddev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-12)
	suite.True(math.IsNaN(stddev(nil)))
}

func (suite *SeriesTestSuite) TestMACDSignOnTrends() {
	rising := make([]float64, 100)
	for i := range rising {
		rising[i] = 100 + float64(i)
	}

	result := macd(rising, 12, 26, 9)
	suite.Greater(result.Line, 0.0)

	falling := make([]float64, 100)
	for i := range falling {
		falling[i] = 300 - float64(i)
	}

	result = macd(falling, 12, 26, 9)
	suite.Less(result.Line, 0.0)
}

func (suite *SeriesTestSuite) TestPPOIsPercentage() {
	rising := make([]float64, 100)
	for i := range rising {
		rising[i] = 100 + float64(i)
	}

	result := ppo(rising, 12, 26, 9)
	suite.Greater(result.Line, 0.0)
	// PPO is a percentage of the slow EMA, so it stays in single digits here.
	suite.Less(result.Line, 10.0)
}

func (suite *SeriesTestSuite) TestBollingerFlatSeries() {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100
	}

	bands := bollinger(closes, 20, 2.0)
	suite.InDelta(100.0, bands.Upper, 1e-12)
	suite.InDelta(100.0, bands.Middle, 1e-12)
	suite.InDelta(100.0, bands.Lower, 1e-12)
	suite.Equal(0, bands.WidthRisingCount)
}

func (suite *SeriesTestSuite) TestStochasticFlatRange() {
	bars := makeBars("AAPL", 30, func(i int) float64 { return 100 })
	k, d := stochastic(bars, 14, 3)
	suite.InDelta(50.0, k, 1e-9)
	suite.InDelta(50.0, d, 1e-9)
}

func (suite *SeriesTestSuite) TestWilliamsRBounds() {
	bars := makeBars("AAPL", 30, func(i int) float64 { return 100 + float64(i) })
	value := williamsR(bars, 14)
	suite.GreaterOrEqual(value, -100.0)
	suite.LessOrEqual(value, 0.0)
	// A rising close sits near the top of its range.
	suite.Greater(value, -50.0)
}

func (suite *SeriesTestSuite) TestMFIZeroNegativeFlowIs100() {
	bars := makeBars("AAPL", 30, func(i int) float64 { return 100 + float64(i) })
	suite.InDelta(100.0, moneyFlowIndex(bars, 14), 1e-9)
}

func (suite *SeriesTestSuite) TestATRPositive() {
	bars := makeBars("AAPL", 30, func(i int) float64 { return 100 + float64(i%3) })
	suite.Greater(atr(bars, 14), 0.0)
}

func (suite *SeriesTestSuite) TestParabolicSARBelowPriceInUptrend() {
	bars := makeBars("AAPL", 60, func(i int) float64 { return 100 + float64(i) })
	sar := parabolicSAR(bars, 0.02, 0.2)
	suite.Less(sar, bars[len(bars)-1].Close)
}
