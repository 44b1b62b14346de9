package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/signal-engine/internal/types"
	"github.com/rxtech-lab/signal-engine/pkg/errors"
)

type CalculatorTestSuite struct {
	suite.Suite
}

func TestCalculatorSuite(t *testing.T) {
	suite.Run(t, new(CalculatorTestSuite))
}

// makeBars builds n daily bars whose close follows next(i); high/low bracket
// the close and volume is constant unless vol overrides it.
func makeBars(symbol string, n int, next func(i int) float64) []types.PriceBar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]types.PriceBar, n)

	for i := 0; i < n; i++ {
		c := next(i)
		bars[i] = types.PriceBar{
			Symbol: symbol,
			Time:   start.AddDate(0, 0, i),
			Open:   c - 0.5,
			High:   c + 1.0,
			Low:    c - 1.0,
			Close:  c,
			Volume: 1000,
		}
	}

	return bars
}

func (suite *CalculatorTestSuite) TestInsufficientHistoryIsFatal() {
	calc := NewCalculator()
	bars := makeBars("AAPL", 99, func(i int) float64 { return 100 + float64(i) })

	_, err := calc.Compute(bars)
	suite.Require().Error(err)
	suite.True(errors.IsInsufficientHistoryError(err))

	var historyErr *errors.InsufficientHistoryError
	suite.Require().True(errors.As(err, &historyErr))
	suite.Equal(100, historyErr.Required)
	suite.Equal(99, historyErr.Actual)
	suite.Equal("AAPL", historyErr.Symbol)
}

func (suite *CalculatorTestSuite) TestUnorderedHistoryRejected() {
	calc := NewCalculatorWithMinHistory(10)
	bars := makeBars("AAPL", 10, func(i int) float64 { return 100 })
	bars[5].Time = bars[2].Time

	_, err := calc.Compute(bars)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnorderedHistory))
}

func (suite *CalculatorTestSuite) TestComputePopulatesEveryField() {
	calc := NewCalculator()
	bars := makeBars("AAPL", 150, func(i int) float64 {
		return 100 + 10*math.Sin(float64(i)/7)
	})

	snap, err := calc.Compute(bars)
	suite.Require().NoError(err)
	suite.Equal("AAPL", snap.Symbol)
	suite.Equal(bars[len(bars)-1].Time, snap.BarDate)
	suite.Equal(bars[len(bars)-1].Close, snap.Close)

	for name, value := range map[string]float64{
		"EMA5": snap.EMA5, "EMA10": snap.EMA10, "EMA12": snap.EMA12,
		"EMA20": snap.EMA20, "EMA26": snap.EMA26, "EMA50": snap.EMA50,
		"EMA100": snap.EMA100, "SMA20": snap.SMA20, "SMA50": snap.SMA50,
		"RSI6": snap.RSI6, "RSI7": snap.RSI7, "RSI12": snap.RSI12,
		"RSI14": snap.RSI14, "RSI21": snap.RSI21, "RSI24": snap.RSI24,
		"MACD": snap.MACD, "MACDSignal": snap.MACDSignal, "MACDHist": snap.MACDHist,
		"PPO": snap.PPO, "PPOSignal": snap.PPOSignal, "PPOHist": snap.PPOHist,
		"BBUpper": snap.BBUpper, "BBMiddle": snap.BBMiddle, "BBLower": snap.BBLower,
		"ATR14": snap.ATR14, "VolumeRatio": snap.VolumeRatio,
		"StochK": snap.StochK, "StochD": snap.StochD, "WilliamsR": snap.WilliamsR,
		"ADX14": snap.ADX14, "MFI14": snap.MFI14, "ParabolicSAR": snap.ParabolicSAR,
	} {
		suite.False(math.IsNaN(value), "%s must be computed", name)
	}
}

func (suite *CalculatorTestSuite) TestRisingSeriesSetsBullishStack() {
	calc := NewCalculator()
	bars := makeBars("AAPL", 150, func(i int) float64 { return 100 + float64(i) })

	snap, err := calc.Compute(bars)
	suite.Require().NoError(err)
	suite.True(snap.EMAStackBullish)
	suite.False(snap.EMAStackBearish)
	// Monotone rise has zero average loss on every RSI window.
	suite.InDelta(100.0, snap.RSI14, 1e-9)
	suite.InDelta(100.0, snap.RSI6, 1e-9)
}

func (suite *CalculatorTestSuite) TestFallingSeriesSetsBearishStack() {
	calc := NewCalculator()
	bars := makeBars("AAPL", 150, func(i int) float64 { return 400 - float64(i) })

	snap, err := calc.Compute(bars)
	suite.Require().NoError(err)
	suite.False(snap.EMAStackBullish)
	suite.True(snap.EMAStackBearish)
	suite.InDelta(0.0, snap.RSI14, 1e-9)
}

func (suite *CalculatorTestSuite) TestVolumeRatio() {
	calc := NewCalculator()
	bars := makeBars("AAPL", 120, func(i int) float64 { return 100 })
	bars[len(bars)-1].Volume = 2000 // every other bar has volume 1000

	snap, err := calc.Compute(bars)
	suite.Require().NoError(err)
	// Average over the trailing 20 bars = (19*1000 + 2000)/20 = 1050.
	suite.InDelta(2000.0/1050.0, snap.VolumeRatio, 1e-9)
}

func (suite *CalculatorTestSuite) TestBollingerWidthRisingCountBounds() {
	calc := NewCalculator()

	// Flat series: width never expands.
	flat := makeBars("AAPL", 120, func(i int) float64 { return 100 })
	snap, err := calc.Compute(flat)
	suite.Require().NoError(err)
	suite.Equal(0, snap.BBWidthRisingCount)

	// Accelerating divergence: width expands on every delta.
	expanding := makeBars("AAPL", 120, func(i int) float64 {
		return 100 + math.Pow(1.1, float64(i))*math.Pow(-1, float64(i))
	})
	snap, err = calc.Compute(expanding)
	suite.Require().NoError(err)
	suite.Equal(5, snap.BBWidthRisingCount)
}

func (suite *CalculatorTestSuite) TestPureFunction() {
	calc := NewCalculator()
	bars := makeBars("AAPL", 120, func(i int) float64 { return 100 + float64(i%7) })

	first, err := calc.Compute(bars)
	suite.Require().NoError(err)

	second, err := calc.Compute(bars)
	suite.Require().NoError(err)
	suite.Equal(first, second)
}
