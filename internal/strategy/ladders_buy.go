package strategy

import (
	"github.com/rxtech-lab/signal-engine/internal/types"
)

// Buy-side ladders. Conditions within a ladder are cumulative: each level's
// predicate is the increment on top of everything below it.

func breakoutBuyLadder() [9]levelSpec {
	return [9]levelSpec{
		{
			description: "close above upper Bollinger band",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.Close, s.BBUpper)
			},
		},
		{
			description: "volume at or above its 20-bar average",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.VolumeRatio, p.Get("min_volume_ratio", 1.0))
			},
		},
		{
			description: "EMA12 above EMA26 and close above SMA20",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return allOf(above(s.EMA12, s.EMA26), above(s.Close, s.SMA20))
			},
		},
		{
			description: "MACD above its signal line",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.MACD, s.MACDSignal)
			},
		},
		{
			description: "EMA26 above EMA50",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.EMA26, s.EMA50)
			},
		},
		{
			description: "RSI14 at or above its floor",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.RSI14, p.Get("rsi_floor", 55))
			},
		},
		{
			description: "close above EMA50 with Bollinger width rising in 3 of last 5 bars",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return allOf(above(s.Close, s.EMA50),
					atLeast(float64(s.BBWidthRisingCount), p.Get("min_width_rising", 3)))
			},
		},
		{
			description: "MACD positive with strong volume",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return allOf(above(s.MACD, 0),
					atLeast(s.VolumeRatio, p.Get("strong_volume_ratio", 1.3)))
			},
		},
		{
			description: "full bullish EMA stack, RSI 7/14/21 all hot, peak volume",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				hot := p.Get("rsi_hot", 60)

				return allOf(boolCond(s.EMAStackBullish),
					atLeast(s.RSI7, hot), atLeast(s.RSI14, hot), atLeast(s.RSI21, hot),
					atLeast(s.VolumeRatio, p.Get("peak_volume_ratio", 1.5)))
			},
		},
	}
}

func volumeBreakoutBuyLadder() [9]levelSpec {
	return [9]levelSpec{
		{
			description: "close above upper Bollinger band on a volume surge",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return allOf(above(s.Close, s.BBUpper),
					atLeast(s.VolumeRatio, p.Get("surge_volume_ratio", 1.5)))
			},
		},
		{
			description: "close above SMA20",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.Close, s.SMA20)
			},
		},
		{
			description: "money flow index confirms buying pressure",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.MFI14, p.Get("mfi_floor", 55))
			},
		},
		{
			description: "MACD histogram positive",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.MACDHist, 0)
			},
		},
		{
			description: "stochastic %K above %D",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.StochK, s.StochD)
			},
		},
		{
			description: "RSI14 at or above 55",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.RSI14, 55)
			},
		},
		{
			description: "volume at twice its 20-bar average",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.VolumeRatio, p.Get("climax_volume_ratio", 2.0))
			},
		},
		{
			description: "ADX shows an established trend",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.ADX14, p.Get("adx_floor", 25))
			},
		},
		{
			description: "full bullish EMA stack with heavy money flow",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return allOf(boolCond(s.EMAStackBullish), atLeast(s.MFI14, 65))
			},
		},
	}
}

func meanReversionBuyLadder() [9]levelSpec {
	return [9]levelSpec{
		{
			description: "close below lower Bollinger band",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return below(s.Close, s.BBLower)
			},
		},
		{
			description: "RSI14 oversold",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atMost(s.RSI14, p.Get("rsi_oversold", 30))
			},
		},
		{
			description: "RSI6 deeply oversold",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atMost(s.RSI6, p.Get("rsi_fast_oversold", 25))
			},
		},
		{
			description: "Williams %R at or below -80",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atMost(s.WilliamsR, -80)
			},
		},
		{
			description: "stochastic %K at or below 20",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atMost(s.StochK, 20)
			},
		},
		{
			description: "bar closed above its open",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.Close, s.Open)
			},
		},
		{
			description: "money flow index washed out",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atMost(s.MFI14, p.Get("mfi_washout", 25))
			},
		},
		{
			description: "capitulation volume",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.VolumeRatio, p.Get("capitulation_volume_ratio", 1.2))
			},
		},
		{
			description: "extreme oversold: RSI14 under 20 and Williams %R under -90",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return allOf(atMost(s.RSI14, 20), atMost(s.WilliamsR, -90))
			},
		},
	}
}

func trendCrossBuyLadder() [9]levelSpec {
	return [9]levelSpec{
		{
			description: "EMA12 above EMA26",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.EMA12, s.EMA26)
			},
		},
		{
			description: "close above SMA20",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.Close, s.SMA20)
			},
		},
		{
			description: "MACD above its signal line",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.MACD, s.MACDSignal)
			},
		},
		{
			description: "MACD histogram positive",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.MACDHist, 0)
			},
		},
		{
			description: "close above EMA50",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.Close, s.EMA50)
			},
		},
		{
			description: "ADX confirms the trend",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.ADX14, p.Get("adx_floor", 20))
			},
		},
		{
			description: "RSI14 at or above 50",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.RSI14, 50)
			},
		},
		{
			description: "SMA20 above SMA50",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.SMA20, s.SMA50)
			},
		},
		{
			description: "full bullish EMA stack with a strong ADX",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return allOf(boolCond(s.EMAStackBullish),
					atLeast(s.ADX14, p.Get("adx_strong", 30)))
			},
		},
	}
}

func divergenceBuyLadder() [9]levelSpec {
	return [9]levelSpec{
		{
			description: "price below mid band while MACD histogram turns positive",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return allOf(below(s.Close, s.BBMiddle), above(s.MACDHist, 0))
			},
		},
		{
			description: "short RSI above long RSI (momentum improving)",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.RSI14, s.RSI24)
			},
		},
		{
			description: "stochastic %K above %D",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.StochK, s.StochD)
			},
		},
		{
			description: "MACD above its signal line",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.MACD, s.MACDSignal)
			},
		},
		{
			description: "accumulation/distribution line positive",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.AccumDist, 0)
			},
		},
		{
			description: "money flow index at or above 50",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.MFI14, 50)
			},
		},
		{
			description: "Williams %R recovered above -50",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.WilliamsR, -50)
			},
		},
		{
			description: "volume above its 20-bar average",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.VolumeRatio, p.Get("min_volume_ratio", 1.1))
			},
		},
		{
			description: "fast RSI hot with MACD positive",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return allOf(atLeast(s.RSI6, 55), above(s.MACD, 0))
			},
		},
	}
}

func supportBounceBuyLadder() [9]levelSpec {
	return [9]levelSpec{
		{
			description: "low touched the lower band but close recovered above it",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return allOf(atMost(s.Low, s.BBLower), above(s.Close, s.BBLower))
			},
		},
		{
			description: "bar closed above its open",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.Close, s.Open)
			},
		},
		{
			description: "parabolic SAR below price",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return below(s.ParabolicSAR, s.Close)
			},
		},
		{
			description: "RSI14 holding above 35",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.RSI14, p.Get("rsi_hold", 35))
			},
		},
		{
			description: "stochastic %K above %D",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.StochK, s.StochD)
			},
		},
		{
			description: "volume at or above its 20-bar average",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.VolumeRatio, p.Get("min_volume_ratio", 1.0))
			},
		},
		{
			description: "money flow index at or above 45",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.MFI14, 45)
			},
		},
		{
			description: "EMA5 above EMA10",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.EMA5, s.EMA10)
			},
		},
		{
			description: "close reclaimed SMA20 with RSI14 at or above 50",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return allOf(above(s.Close, s.SMA20), atLeast(s.RSI14, 50))
			},
		},
	}
}
