package signal

import (
	"math"

	"github.com/rxtech-lab/signal-engine/internal/types"
)

// computeScore derives the magnitude/momentum/participation sub-scores for a
// signal from its snapshot. Each sub-score is clamped to 0-100; the composite
// is their mean. Scores are descriptive output only and never gate emission.
func computeScore(snap types.IndicatorSnapshot, action types.SignalAction) types.SignalScore {
	score := types.SignalScore{
		Magnitude:     magnitudeScore(snap, action),
		Momentum:      momentumScore(snap, action),
		Participation: participationScore(snap),
	}
	score.Composite = (score.Magnitude + score.Momentum + score.Participation) / 3

	return score
}

// magnitudeScore measures the displacement of the close from the middle band
// in ATR units, in the direction of the signal.
func magnitudeScore(snap types.IndicatorSnapshot, action types.SignalAction) float64 {
	if math.IsNaN(snap.Close) || math.IsNaN(snap.BBMiddle) || math.IsNaN(snap.ATR14) || snap.ATR14 <= 0 {
		return 0
	}

	displacement := (snap.Close - snap.BBMiddle) / snap.ATR14
	if action == types.SignalActionSell {
		displacement = -displacement
	}

	// 2.5 ATRs of displacement saturates the score.
	return clamp(displacement/2.5*100, 0, 100)
}

// momentumScore blends RSI14 with the MACD histogram scaled by ATR.
func momentumScore(snap types.IndicatorSnapshot, action types.SignalAction) float64 {
	rsi := snap.RSI14
	if math.IsNaN(rsi) {
		rsi = 50
	}

	if action == types.SignalActionSell {
		rsi = 100 - rsi
	}

	histScore := 50.0

	if !math.IsNaN(snap.MACDHist) && !math.IsNaN(snap.ATR14) && snap.ATR14 > 0 {
		hist := snap.MACDHist / snap.ATR14
		if action == types.SignalActionSell {
			hist = -hist
		}

		histScore = clamp(50+hist*100, 0, 100)
	}

	return clamp((rsi+histScore)/2, 0, 100)
}

// participationScore maps the volume ratio onto 0-100, with 1.0x at 50 and
// 2.0x saturating.
func participationScore(snap types.IndicatorSnapshot) float64 {
	if math.IsNaN(snap.VolumeRatio) {
		return 0
	}

	return clamp(snap.VolumeRatio/2.0*100, 0, 100)
}

func clamp(v, low, high float64) float64 {
	return math.Min(high, math.Max(low, v))
}
