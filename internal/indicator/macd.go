package indicator

import "math"

// macdResult carries the latest MACD line, signal line and histogram values.
type macdResult struct {
	Line   float64
	Signal float64
	Hist   float64
}

// macd computes MACD(fast, slow) with a signalPeriod EMA signal line.
func macd(closes []float64, fast, slow, signalPeriod int) macdResult {
	if len(closes) == 0 {
		nan := math.NaN()

		return macdResult{Line: nan, Signal: nan, Hist: nan}
	}

	fastSeries := emaSeries(closes, fast)
	slowSeries := emaSeries(closes, slow)

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fastSeries[i] - slowSeries[i]
	}

	signalSeries := emaSeries(line, signalPeriod)

	last := len(closes) - 1

	return macdResult{
		Line:   line[last],
		Signal: signalSeries[last],
		Hist:   line[last] - signalSeries[last],
	}
}

// ppo computes the Percentage Price Oscillator: the MACD line expressed as a
// percentage of the slow EMA, with its own signal EMA.
func ppo(closes []float64, fast, slow, signalPeriod int) macdResult {
	if len(closes) == 0 {
		nan := math.NaN()

		return macdResult{Line: nan, Signal: nan, Hist: nan}
	}

	fastSeries := emaSeries(closes, fast)
	slowSeries := emaSeries(closes, slow)

	line := make([]float64, len(closes))
	for i := range closes {
		if slowSeries[i] == 0 {
			line[i] = 0

			continue
		}

		line[i] = (fastSeries[i] - slowSeries[i]) / slowSeries[i] * 100
	}

	signalSeries := emaSeries(line, signalPeriod)

	last := len(closes) - 1

	return macdResult{
		Line:   line[last],
		Signal: signalSeries[last],
		Hist:   line[last] - signalSeries[last],
	}
}
