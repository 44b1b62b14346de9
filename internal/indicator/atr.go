package indicator

import (
	"math"

	"github.com/rxtech-lab/signal-engine/internal/types"
)

// trueRanges returns the true range series. The first bar's true range is its
// high-low span.
func trueRanges(bars []types.PriceBar) []float64 {
	out := make([]float64, len(bars))

	for i, bar := range bars {
		if i == 0 {
			out[i] = bar.High - bar.Low

			continue
		}

		prevClose := bars[i-1].Close
		out[i] = math.Max(bar.High-bar.Low,
			math.Max(math.Abs(bar.High-prevClose), math.Abs(bar.Low-prevClose)))
	}

	return out
}

// atr computes the Average True Range with Wilder smoothing: seeded with the
// simple average of the first period true ranges, then
// atr = (prev*(period-1) + tr) / period. Short histories average what exists.
func atr(bars []types.PriceBar, period int) float64 {
	if len(bars) == 0 || period <= 0 {
		return math.NaN()
	}

	ranges := trueRanges(bars)

	smooth := period
	if smooth > len(ranges) {
		smooth = len(ranges)
	}

	value := 0.0
	for i := 0; i < smooth; i++ {
		value += ranges[i]
	}

	value /= float64(smooth)

	for i := smooth; i < len(ranges); i++ {
		value = (value*float64(smooth-1) + ranges[i]) / float64(smooth)
	}

	return value
}
