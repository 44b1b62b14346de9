package indicator

import (
	"math"

	"github.com/rxtech-lab/signal-engine/internal/types"
)

// stochastic computes the %K/%D oscillator pair. %K is the position of the
// latest close within the trailing kPeriod high-low range; %D is the simple
// average of the last dPeriod %K values. A flat range maps %K to 50.
func stochastic(bars []types.PriceBar, kPeriod, dPeriod int) (float64, float64) {
	if len(bars) == 0 || kPeriod <= 0 || dPeriod <= 0 {
		return math.NaN(), math.NaN()
	}

	kValues := make([]float64, 0, dPeriod)

	start := len(bars) - dPeriod + 1
	if start < 1 {
		start = 1
	}

	for end := start; end <= len(bars); end++ {
		kValues = append(kValues, stochK(bars[:end], kPeriod))
	}

	return kValues[len(kValues)-1], smaLast(kValues, dPeriod)
}

func stochK(bars []types.PriceBar, period int) float64 {
	highest, lowest := highestLowest(bars, period)
	if highest == lowest {
		return 50
	}

	return 100 * (bars[len(bars)-1].Close - lowest) / (highest - lowest)
}

// williamsR computes Williams %R over the trailing period: 0 at the range
// high, -100 at the range low. A flat range maps to -50.
func williamsR(bars []types.PriceBar, period int) float64 {
	if len(bars) == 0 || period <= 0 {
		return math.NaN()
	}

	highest, lowest := highestLowest(bars, period)
	if highest == lowest {
		return -50
	}

	return -100 * (highest - bars[len(bars)-1].Close) / (highest - lowest)
}

// adx computes the Average Directional Index with Wilder smoothing of the
// +DM/-DM and true-range series. It needs roughly 2*period bars to produce a
// meaningful value; with fewer DX samples it averages what is available.
func adx(bars []types.PriceBar, period int) float64 {
	if len(bars) < 2 || period <= 0 {
		return math.NaN()
	}

	ranges := trueRanges(bars)

	plusDM := make([]float64, len(bars))
	minusDM := make([]float64, len(bars))

	for i := 1; i < len(bars); i++ {
		upMove := bars[i].High - bars[i-1].High
		downMove := bars[i-1].Low - bars[i].Low

		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}

		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}
	}

	smooth := period
	if smooth > len(bars)-1 {
		smooth = len(bars) - 1
	}

	smTR := 0.0
	smPlus := 0.0
	smMinus := 0.0

	for i := 1; i <= smooth; i++ {
		smTR += ranges[i]
		smPlus += plusDM[i]
		smMinus += minusDM[i]
	}

	dxValues := make([]float64, 0, len(bars))
	dxValues = append(dxValues, dx(smPlus, smMinus, smTR))

	for i := smooth + 1; i < len(bars); i++ {
		smTR = smTR - smTR/float64(smooth) + ranges[i]
		smPlus = smPlus - smPlus/float64(smooth) + plusDM[i]
		smMinus = smMinus - smMinus/float64(smooth) + minusDM[i]

		dxValues = append(dxValues, dx(smPlus, smMinus, smTR))
	}

	// ADX is the Wilder smoothing of DX over the same period.
	seed := smooth
	if seed > len(dxValues) {
		seed = len(dxValues)
	}

	value := 0.0
	for i := 0; i < seed; i++ {
		value += dxValues[i]
	}

	value /= float64(seed)

	for i := seed; i < len(dxValues); i++ {
		value = (value*float64(seed-1) + dxValues[i]) / float64(seed)
	}

	return value
}

func dx(plus, minus, trSum float64) float64 {
	if trSum == 0 {
		return 0
	}

	plusDI := 100 * plus / trSum
	minusDI := 100 * minus / trSum

	if plusDI+minusDI == 0 {
		return 0
	}

	return 100 * math.Abs(plusDI-minusDI) / (plusDI + minusDI)
}

// moneyFlowIndex computes MFI over the trailing period: a volume-weighted RSI
// of the typical price. Zero negative flow maps to 100.
func moneyFlowIndex(bars []types.PriceBar, period int) float64 {
	if len(bars) < 2 || period <= 0 {
		return math.NaN()
	}

	if len(bars) > period+1 {
		bars = bars[len(bars)-(period+1):]
	}

	positive := 0.0
	negative := 0.0

	prevTypical := typicalPrice(bars[0])

	for _, bar := range bars[1:] {
		typical := typicalPrice(bar)
		flow := typical * bar.Volume

		switch {
		case typical > prevTypical:
			positive += flow
		case typical < prevTypical:
			negative += flow
		}

		prevTypical = typical
	}

	if negative == 0 {
		return 100
	}

	ratio := positive / negative

	return 100 - (100 / (1 + ratio))
}

func typicalPrice(bar types.PriceBar) float64 {
	return (bar.High + bar.Low + bar.Close) / 3
}

// accumulationDistribution computes the cumulative A/D line. Bars with a flat
// high-low range contribute nothing.
func accumulationDistribution(bars []types.PriceBar) float64 {
	line := 0.0

	for _, bar := range bars {
		span := bar.High - bar.Low
		if span == 0 {
			continue
		}

		multiplier := ((bar.Close - bar.Low) - (bar.High - bar.Close)) / span
		line += multiplier * bar.Volume
	}

	return line
}

// volumeRatio is the latest volume over its trailing period average.
func volumeRatio(bars []types.PriceBar, period int) float64 {
	if len(bars) == 0 {
		return math.NaN()
	}

	avg := smaLast(volumeSeries(bars), period)
	if avg <= 0 || math.IsNaN(avg) {
		return math.NaN()
	}

	return bars[len(bars)-1].Volume / avg
}
