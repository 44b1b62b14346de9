package indicator

import "math"

// wilderRSI computes the Relative Strength Index over the trailing period
// using Wilder's smoothed average gain/loss. A zero average loss maps to
// exactly 100, never NaN. Needs period+1 closes; with fewer it smooths over
// what is available, and with fewer than 2 closes returns NaN.
func wilderRSI(closes []float64, period int) float64 {
	if len(closes) < 2 || period <= 0 {
		return math.NaN()
	}

	if len(closes) > period+1 {
		closes = closes[len(closes)-(period+1):]
	}

	gains := make([]float64, 0, len(closes)-1)
	losses := make([]float64, 0, len(closes)-1)

	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains = append(gains, change)
			losses = append(losses, 0)
		} else {
			gains = append(gains, 0)
			losses = append(losses, -change)
		}
	}

	smooth := period
	if smooth > len(gains) {
		smooth = len(gains)
	}

	avgGain := 0.0
	avgLoss := 0.0

	for i := 0; i < smooth; i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}

	avgGain /= float64(smooth)
	avgLoss /= float64(smooth)

	// Wilder's smoothing for any changes beyond the seed window
	for i := smooth; i < len(gains); i++ {
		avgGain = (avgGain*float64(smooth-1) + gains[i]) / float64(smooth)
		avgLoss = (avgLoss*float64(smooth-1) + losses[i]) / float64(smooth)
	}

	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss

	return 100 - (100 / (1 + rs))
}
