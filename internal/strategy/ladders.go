package strategy

import (
	"github.com/rxtech-lab/signal-engine/pkg/errors"
)

// ladderFor returns the 9-level ladder for a base strategy. The switch is
// exhaustive over the closed strategy set.
func ladderFor(base BaseStrategy) ([9]levelSpec, error) {
	switch base {
	case StrategyBreakoutBuy:
		return breakoutBuyLadder(), nil
	case StrategyVolumeBreakoutBuy:
		return volumeBreakoutBuyLadder(), nil
	case StrategyMeanReversionBuy:
		return meanReversionBuyLadder(), nil
	case StrategyTrendCrossBuy:
		return trendCrossBuyLadder(), nil
	case StrategyDivergenceBuy:
		return divergenceBuyLadder(), nil
	case StrategySupportBounceBuy:
		return supportBounceBuyLadder(), nil
	case StrategyBreakdownSell:
		return breakdownSellLadder(), nil
	case StrategyMeanReversionSell:
		return meanReversionSellLadder(), nil
	case StrategyTrendCrossSell:
		return trendCrossSellLadder(), nil
	case StrategyDivergenceSell:
		return divergenceSellLadder(), nil
	case StrategyResistanceSell:
		return resistanceSellLadder(), nil
	default:
		return [9]levelSpec{}, errors.Newf(errors.ErrCodeUnknownStrategy,
			"no ladder defined for strategy %q", base)
	}
}
