package indicator

import (
	"math"

	"github.com/rxtech-lab/signal-engine/internal/types"
)

// parabolicSAR computes the latest Parabolic Stop-and-Reverse value with the
// standard acceleration schedule (start/step accelStep, capped at accelMax).
// The trend seeds from the direction of the first two closes.
func parabolicSAR(bars []types.PriceBar, accelStep, accelMax float64) float64 {
	if len(bars) < 2 {
		return math.NaN()
	}

	uptrend := bars[1].Close >= bars[0].Close

	var sar, extreme float64
	if uptrend {
		sar = bars[0].Low
		extreme = bars[1].High
	} else {
		sar = bars[0].High
		extreme = bars[1].Low
	}

	accel := accelStep

	for i := 2; i < len(bars); i++ {
		bar := bars[i]
		sar += accel * (extreme - sar)

		if uptrend {
			// SAR may never rise above the prior two lows.
			sar = math.Min(sar, math.Min(bars[i-1].Low, bars[i-2].Low))

			if bar.Low < sar {
				uptrend = false
				sar = extreme
				extreme = bar.Low
				accel = accelStep

				continue
			}

			if bar.High > extreme {
				extreme = bar.High
				accel = math.Min(accel+accelStep, accelMax)
			}
		} else {
			sar = math.Max(sar, math.Max(bars[i-1].High, bars[i-2].High))

			if bar.High > sar {
				uptrend = true
				sar = extreme
				extreme = bar.High
				accel = accelStep

				continue
			}

			if bar.Low < extreme {
				extreme = bar.Low
				accel = math.Min(accel+accelStep, accelMax)
			}
		}
	}

	return sar
}
