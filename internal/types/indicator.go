package types

type IndicatorType string

const (
	IndicatorTypeEMA                  IndicatorType = "ema"
	IndicatorTypeSMA                  IndicatorType = "sma"
	IndicatorTypeRSI                  IndicatorType = "rsi"
	IndicatorTypeMACD                 IndicatorType = "macd"
	IndicatorTypePPO                  IndicatorType = "ppo"
	IndicatorTypeBollingerBands       IndicatorType = "bollinger_bands"
	IndicatorTypeATR                  IndicatorType = "atr"
	IndicatorTypeVolumeRatio          IndicatorType = "volume_ratio"
	IndicatorTypeStochasticOscillator IndicatorType = "stochastic_oscillator"
	IndicatorTypeWilliamsR            IndicatorType = "williams_r"
	IndicatorTypeADX                  IndicatorType = "adx"
	IndicatorTypeMoneyFlowIndex       IndicatorType = "mfi"
	IndicatorTypeAccumulationDist     IndicatorType = "accum_dist"
	IndicatorTypeParabolicSAR         IndicatorType = "parabolic_sar"
	IndicatorTypeEMAStack             IndicatorType = "ema_stack"
)
