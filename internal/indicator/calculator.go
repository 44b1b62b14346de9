package indicator

import (
	"github.com/rxtech-lab/signal-engine/internal/types"
	"github.com/rxtech-lab/signal-engine/pkg/errors"
)

// DefaultMinHistory is the minimum number of bars required before a snapshot
// is considered trustworthy.
const DefaultMinHistory = 100

// Calculator derives a full IndicatorSnapshot from an ordered OHLCV series.
// It is a pure function of its input: no state, no side effects, safe for
// concurrent use.
type Calculator struct {
	minHistory int
}

// NewCalculator creates a calculator with the default minimum-history gate.
func NewCalculator() *Calculator {
	return &Calculator{minHistory: DefaultMinHistory}
}

// NewCalculatorWithMinHistory creates a calculator with a custom
// minimum-history gate. Intended for tests and backfill tooling.
func NewCalculatorWithMinHistory(minHistory int) *Calculator {
	return &Calculator{minHistory: minHistory}
}

// MinHistory returns the configured minimum-history gate.
func (c *Calculator) MinHistory() int {
	return c.minHistory
}

// Compute derives the snapshot for the latest bar of the series. The series
// must be chronological. Histories shorter than the gate fail with
// InsufficientHistoryError; individual indicator windows longer than the
// history fall back to the data available instead of failing.
func (c *Calculator) Compute(bars []types.PriceBar) (types.IndicatorSnapshot, error) {
	symbol := ""
	if len(bars) > 0 {
		symbol = bars[len(bars)-1].Symbol
	}

	if len(bars) < c.minHistory {
		return types.IndicatorSnapshot{}, errors.NewInsufficientHistoryErrorf(
			c.minHistory, len(bars), symbol,
			"symbol %s has %d of %d required bars", symbol, len(bars), c.minHistory)
	}

	for i := 1; i < len(bars); i++ {
		if bars[i].Time.Before(bars[i-1].Time) {
			return types.IndicatorSnapshot{}, errors.Newf(errors.ErrCodeUnorderedHistory,
				"price history for %s is not chronological at index %d", symbol, i)
		}
	}

	latest := bars[len(bars)-1]
	closes := closeSeries(bars)

	snap := types.NewIndicatorSnapshot(symbol, latest.Time)
	snap.Open = latest.Open
	snap.High = latest.High
	snap.Low = latest.Low
	snap.Close = latest.Close
	snap.Volume = latest.Volume

	snap.EMA5 = emaLast(closes, 5)
	snap.EMA10 = emaLast(closes, 10)
	snap.EMA12 = emaLast(closes, 12)
	snap.EMA20 = emaLast(closes, 20)
	snap.EMA26 = emaLast(closes, 26)
	snap.EMA50 = emaLast(closes, 50)
	snap.EMA100 = emaLast(closes, 100)
	snap.SMA20 = smaLast(closes, 20)
	snap.SMA50 = smaLast(closes, 50)

	snap.RSI6 = wilderRSI(closes, 6)
	snap.RSI7 = wilderRSI(closes, 7)
	snap.RSI12 = wilderRSI(closes, 12)
	snap.RSI14 = wilderRSI(closes, 14)
	snap.RSI21 = wilderRSI(closes, 21)
	snap.RSI24 = wilderRSI(closes, 24)

	macdValues := macd(closes, 12, 26, 9)
	snap.MACD = macdValues.Line
	snap.MACDSignal = macdValues.Signal
	snap.MACDHist = macdValues.Hist

	ppoValues := ppo(closes, 12, 26, 9)
	snap.PPO = ppoValues.Line
	snap.PPOSignal = ppoValues.Signal
	snap.PPOHist = ppoValues.Hist

	bands := bollinger(closes, 20, 2.0)
	snap.BBUpper = bands.Upper
	snap.BBMiddle = bands.Middle
	snap.BBLower = bands.Lower
	snap.BBWidthRisingCount = bands.WidthRisingCount

	snap.ATR14 = atr(bars, 14)
	snap.VolumeRatio = volumeRatio(bars, 20)

	snap.StochK, snap.StochD = stochastic(bars, 14, 3)
	snap.WilliamsR = williamsR(bars, 14)
	snap.ADX14 = adx(bars, 14)
	snap.MFI14 = moneyFlowIndex(bars, 14)
	snap.AccumDist = accumulationDistribution(bars)
	snap.ParabolicSAR = parabolicSAR(bars, 0.02, 0.2)

	snap.RefreshEMAStack()

	return snap, nil
}
