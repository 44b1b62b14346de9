package strategy

import (
	"github.com/rxtech-lab/signal-engine/internal/types"
)

// Sell-side ladders, mirroring the buy-side structure with inverted
// comparisons.

func breakdownSellLadder() [9]levelSpec {
	return [9]levelSpec{
		{
			description: "close below lower Bollinger band",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return below(s.Close, s.BBLower)
			},
		},
		{
			description: "volume at or above its 20-bar average",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.VolumeRatio, p.Get("min_volume_ratio", 1.0))
			},
		},
		{
			description: "EMA12 below EMA26 and close below SMA20",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return allOf(below(s.EMA12, s.EMA26), below(s.Close, s.SMA20))
			},
		},
		{
			description: "MACD below its signal line",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return below(s.MACD, s.MACDSignal)
			},
		},
		{
			description: "EMA26 below EMA50",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return below(s.EMA26, s.EMA50)
			},
		},
		{
			description: "RSI14 at or below its ceiling",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atMost(s.RSI14, p.Get("rsi_ceiling", 45))
			},
		},
		{
			description: "close below EMA50 with Bollinger width rising in 3 of last 5 bars",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return allOf(below(s.Close, s.EMA50),
					atLeast(float64(s.BBWidthRisingCount), p.Get("min_width_rising", 3)))
			},
		},
		{
			description: "MACD negative with strong volume",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return allOf(below(s.MACD, 0),
					atLeast(s.VolumeRatio, p.Get("strong_volume_ratio", 1.3)))
			},
		},
		{
			description: "full bearish EMA stack, RSI 7/14/21 all cold, peak volume",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				cold := p.Get("rsi_cold", 40)

				return allOf(boolCond(s.EMAStackBearish),
					atMost(s.RSI7, cold), atMost(s.RSI14, cold), atMost(s.RSI21, cold),
					atLeast(s.VolumeRatio, p.Get("peak_volume_ratio", 1.5)))
			},
		},
	}
}

func meanReversionSellLadder() [9]levelSpec {
	return [9]levelSpec{
		{
			description: "close above upper Bollinger band",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.Close, s.BBUpper)
			},
		},
		{
			description: "RSI14 overbought",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.RSI14, p.Get("rsi_overbought", 70))
			},
		},
		{
			description: "RSI6 deeply overbought",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.RSI6, p.Get("rsi_fast_overbought", 75))
			},
		},
		{
			description: "Williams %R at or above -20",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.WilliamsR, -20)
			},
		},
		{
			description: "stochastic %K at or above 80",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.StochK, 80)
			},
		},
		{
			description: "bar closed below its open",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return below(s.Close, s.Open)
			},
		},
		{
			description: "money flow index overheated",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.MFI14, p.Get("mfi_overheated", 75))
			},
		},
		{
			description: "distribution volume",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.VolumeRatio, p.Get("distribution_volume_ratio", 1.2))
			},
		},
		{
			description: "extreme overbought: RSI14 over 80 and Williams %R over -10",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return allOf(atLeast(s.RSI14, 80), atLeast(s.WilliamsR, -10))
			},
		},
	}
}

func trendCrossSellLadder() [9]levelSpec {
	return [9]levelSpec{
		{
			description: "EMA12 below EMA26",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return below(s.EMA12, s.EMA26)
			},
		},
		{
			description: "close below SMA20",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return below(s.Close, s.SMA20)
			},
		},
		{
			description: "MACD below its signal line",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return below(s.MACD, s.MACDSignal)
			},
		},
		{
			description: "MACD histogram negative",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return below(s.MACDHist, 0)
			},
		},
		{
			description: "close below EMA50",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return below(s.Close, s.EMA50)
			},
		},
		{
			description: "ADX confirms the trend",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.ADX14, p.Get("adx_floor", 20))
			},
		},
		{
			description: "RSI14 at or below 50",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atMost(s.RSI14, 50)
			},
		},
		{
			description: "SMA20 below SMA50",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return below(s.SMA20, s.SMA50)
			},
		},
		{
			description: "full bearish EMA stack with a strong ADX",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return allOf(boolCond(s.EMAStackBearish),
					atLeast(s.ADX14, p.Get("adx_strong", 30)))
			},
		},
	}
}

func divergenceSellLadder() [9]levelSpec {
	return [9]levelSpec{
		{
			description: "price above mid band while MACD histogram turns negative",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return allOf(above(s.Close, s.BBMiddle), below(s.MACDHist, 0))
			},
		},
		{
			description: "short RSI below long RSI (momentum fading)",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return below(s.RSI14, s.RSI24)
			},
		},
		{
			description: "stochastic %K below %D",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return below(s.StochK, s.StochD)
			},
		},
		{
			description: "MACD below its signal line",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return below(s.MACD, s.MACDSignal)
			},
		},
		{
			description: "accumulation/distribution line negative",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return below(s.AccumDist, 0)
			},
		},
		{
			description: "money flow index at or below 50",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atMost(s.MFI14, 50)
			},
		},
		{
			description: "Williams %R dropped below -50",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atMost(s.WilliamsR, -50)
			},
		},
		{
			description: "volume above its 20-bar average",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.VolumeRatio, p.Get("min_volume_ratio", 1.1))
			},
		},
		{
			description: "fast RSI cold with MACD negative",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return allOf(atMost(s.RSI6, 45), below(s.MACD, 0))
			},
		},
	}
}

func resistanceSellLadder() [9]levelSpec {
	return [9]levelSpec{
		{
			description: "high touched the upper band but close rejected below it",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return allOf(atLeast(s.High, s.BBUpper), below(s.Close, s.BBUpper))
			},
		},
		{
			description: "bar closed below its open",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return below(s.Close, s.Open)
			},
		},
		{
			description: "parabolic SAR above price",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return above(s.ParabolicSAR, s.Close)
			},
		},
		{
			description: "RSI14 capped below 65",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atMost(s.RSI14, p.Get("rsi_cap", 65))
			},
		},
		{
			description: "stochastic %K below %D",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return below(s.StochK, s.StochD)
			},
		},
		{
			description: "volume at or above its 20-bar average",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atLeast(s.VolumeRatio, p.Get("min_volume_ratio", 1.0))
			},
		},
		{
			description: "money flow index at or below 55",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return atMost(s.MFI14, 55)
			},
		},
		{
			description: "EMA5 below EMA10",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return below(s.EMA5, s.EMA10)
			},
		},
		{
			description: "close lost SMA20 with RSI14 at or below 50",
			eval: func(s types.IndicatorSnapshot, p Params) levelOutcome {
				return allOf(below(s.Close, s.SMA20), atMost(s.RSI14, 50))
			},
		},
	}
}
