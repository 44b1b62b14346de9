package indicator

import "math"

// bollingerResult carries the latest Bollinger band values and the count of
// strict width expansions over the most recent 5 width deltas.
type bollingerResult struct {
	Upper            float64
	Middle           float64
	Lower            float64
	WidthRisingCount int
}

// bollinger computes period-bar bands at k standard deviations. The rising
// width count examines the last 6 computed widths and counts strict increases
// across the 5 deltas between them (0-5). With a shorter history the bands
// fall back to the available window and the count covers the deltas present.
func bollinger(closes []float64, period int, k float64) bollingerResult {
	if len(closes) == 0 || period <= 0 {
		nan := math.NaN()

		return bollingerResult{Upper: nan, Middle: nan, Lower: nan}
	}

	upper, middle, lower := bandsAt(closes, len(closes), period, k)

	// Widths for the trailing 6 positions.
	const widthWindow = 6

	widths := make([]float64, 0, widthWindow)

	start := len(closes) - widthWindow + 1
	if start < 1 {
		start = 1
	}

	for end := start; end <= len(closes); end++ {
		u, _, l := bandsAt(closes, end, period, k)
		widths = append(widths, u-l)
	}

	rising := 0
	for i := 1; i < len(widths); i++ {
		if widths[i] > widths[i-1] {
			rising++
		}
	}

	return bollingerResult{
		Upper:            upper,
		Middle:           middle,
		Lower:            lower,
		WidthRisingCount: rising,
	}
}

// bandsAt computes the bands as of closes[:end].
func bandsAt(closes []float64, end, period int, k float64) (float64, float64, float64) {
	window := closes[:end]
	if len(window) > period {
		window = window[len(window)-period:]
	}

	middle := smaLast(window, len(window))
	sd := stddev(window)

	return middle + k*sd, middle, middle - k*sd
}
