package indicator

import (
	"math"

	"github.com/rxtech-lab/signal-engine/internal/types"
)

// Low-level series math shared by the snapshot calculator. All helpers are
// pure and use only trailing data (no lookahead). Where a window exceeds the
// available history they degrade to the data present instead of failing; an
// empty input yields NaN.

func closeSeries(bars []types.PriceBar) []float64 {
	values := make([]float64, len(bars))
	for i, bar := range bars {
		values[i] = bar.Close
	}

	return values
}

func volumeSeries(bars []types.PriceBar) []float64 {
	values := make([]float64, len(bars))
	for i, bar := range bars {
		values[i] = bar.Volume
	}

	return values
}

// smaLast returns the simple average of the trailing period values. With
// fewer values than the period it averages everything available.
func smaLast(values []float64, period int) float64 {
	if len(values) == 0 || period <= 0 {
		return math.NaN()
	}

	if period > len(values) {
		period = len(values)
	}

	sum := 0.0
	for _, v := range values[len(values)-period:] {
		sum += v
	}

	return sum / float64(period)
}

// emaSeries computes the exponential moving average with the standard
// recurrence ema[i] = v[i]*k + ema[i-1]*(1-k), k = 2/(period+1), seeded with
// the simple average of the first period values. Short input seeds with the
// average of everything available.
func emaSeries(values []float64, period int) []float64 {
	if len(values) == 0 || period <= 0 {
		return nil
	}

	seedLen := period
	if seedLen > len(values) {
		seedLen = len(values)
	}

	seed := 0.0
	for _, v := range values[:seedLen] {
		seed += v
	}

	seed /= float64(seedLen)

	out := make([]float64, len(values))
	k := 2.0 / (float64(period) + 1.0)
	out[seedLen-1] = seed

	// Before the seed index the EMA is undefined; backfill with the seed so
	// dependent series stay index-aligned.
	for i := 0; i < seedLen-1; i++ {
		out[i] = seed
	}

	for i := seedLen; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1.0-k)
	}

	return out
}

func emaLast(values []float64, period int) float64 {
	series := emaSeries(values, period)
	if len(series) == 0 {
		return math.NaN()
	}

	return series[len(series)-1]
}

// stddev is the population standard deviation.
func stddev(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}

	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}

	return math.Sqrt(variance / float64(len(values)))
}

// highestLowest returns the max high and min low over the trailing period
// bars, degrading to the full history when shorter.
func highestLowest(bars []types.PriceBar, period int) (float64, float64) {
	if len(bars) == 0 {
		return math.NaN(), math.NaN()
	}

	if period > len(bars) {
		period = len(bars)
	}

	window := bars[len(bars)-period:]
	highest := window[0].High
	lowest := window[0].Low

	for _, bar := range window[1:] {
		highest = math.Max(highest, bar.High)
		lowest = math.Min(lowest, bar.Low)
	}

	return highest, lowest
}
