package types

import (
	"math"
	"time"
)

// IndicatorSnapshot holds every derived technical value for one symbol on one
// bar date. A snapshot is immutable once computed and keyed uniquely by
// (Symbol, BarDate). Snapshots built outside the calculator may leave derived
// fields as NaN; strategy evaluation treats NaN as "indicator absent".
type IndicatorSnapshot struct {
	Symbol  string
	BarDate time.Time

	// Latest bar OHLCV.
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64

	// Moving averages.
	EMA5   float64
	EMA10  float64
	EMA12  float64
	EMA20  float64
	EMA26  float64
	EMA50  float64
	EMA100 float64
	SMA20  float64
	SMA50  float64

	// Oscillators.
	RSI6      float64
	RSI7      float64
	RSI12     float64
	RSI14     float64
	RSI21     float64
	RSI24     float64
	StochK    float64
	StochD    float64
	WilliamsR float64
	MFI14     float64

	// MACD and its percentage variant.
	MACD       float64
	MACDSignal float64
	MACDHist   float64
	PPO        float64
	PPOSignal  float64
	PPOHist    float64

	// Bollinger bands. BBWidthRisingCount counts strict width expansions
	// across the most recent 5 width deltas (0-5).
	BBUpper            float64
	BBMiddle           float64
	BBLower            float64
	BBWidthRisingCount int

	// Trend / volatility / volume.
	ATR14        float64
	ADX14        float64
	VolumeRatio  float64
	AccumDist    float64
	ParabolicSAR float64

	// EMA stack alignment: strict chains over EMA 5/12/26/50/100.
	EMAStackBullish bool
	EMAStackBearish bool
}

// NewIndicatorSnapshot returns a snapshot with every derived numeric field
// set to NaN so that partially populated snapshots are distinguishable from
// zero-valued ones.
func NewIndicatorSnapshot(symbol string, barDate time.Time) IndicatorSnapshot {
	nan := math.NaN()

	return IndicatorSnapshot{
		Symbol:  symbol,
		BarDate: barDate,
		Open:    nan, High: nan, Low: nan, Close: nan, Volume: nan,
		EMA5: nan, EMA10: nan, EMA12: nan, EMA20: nan, EMA26: nan, EMA50: nan, EMA100: nan,
		SMA20: nan, SMA50: nan,
		RSI6: nan, RSI7: nan, RSI12: nan, RSI14: nan, RSI21: nan, RSI24: nan,
		StochK: nan, StochD: nan, WilliamsR: nan, MFI14: nan,
		MACD: nan, MACDSignal: nan, MACDHist: nan,
		PPO: nan, PPOSignal: nan, PPOHist: nan,
		BBUpper: nan, BBMiddle: nan, BBLower: nan,
		ATR14: nan, ADX14: nan, VolumeRatio: nan, AccumDist: nan, ParabolicSAR: nan,
	}
}

// RefreshEMAStack recomputes the EMA stack booleans from the EMA fields.
// The chains are strict: any equality (or NaN) breaks alignment.
func (s *IndicatorSnapshot) RefreshEMAStack() {
	s.EMAStackBullish = s.EMA5 > s.EMA12 && s.EMA12 > s.EMA26 && s.EMA26 > s.EMA50 && s.EMA50 > s.EMA100
	s.EMAStackBearish = s.EMA5 < s.EMA12 && s.EMA12 < s.EMA26 && s.EMA26 < s.EMA50 && s.EMA50 < s.EMA100
}
