package strategy

import (
	"github.com/rxtech-lab/signal-engine/internal/types"
	"github.com/rxtech-lab/signal-engine/pkg/errors"
)

// BaseStrategy identifies one trading heuristic family by its 4-char code:
// side char (B/S) plus a 3-letter mnemonic. The set is closed; evaluation
// entry points switch exhaustively over it so adding or removing a strategy
// is a compile-time-checked change.
type BaseStrategy string

const (
	// Buy side.
	StrategyBreakoutBuy       BaseStrategy = "BBRK"
	StrategyVolumeBreakoutBuy BaseStrategy = "BVBO"
	StrategyMeanReversionBuy  BaseStrategy = "BMRV"
	StrategyTrendCrossBuy     BaseStrategy = "BTRC"
	StrategyDivergenceBuy     BaseStrategy = "BDIV"
	StrategySupportBounceBuy  BaseStrategy = "BSUP"

	// Sell side.
	StrategyBreakdownSell     BaseStrategy = "SBDN"
	StrategyMeanReversionSell BaseStrategy = "SMRV"
	StrategyTrendCrossSell    BaseStrategy = "STRC"
	StrategyDivergenceSell    BaseStrategy = "SDIV"
	StrategyResistanceSell    BaseStrategy = "SRES"
)

// AllStrategies returns every base strategy in a stable order: buy side
// first, then sell side.
func AllStrategies() []BaseStrategy {
	return []BaseStrategy{
		StrategyBreakoutBuy,
		StrategyVolumeBreakoutBuy,
		StrategyMeanReversionBuy,
		StrategyTrendCrossBuy,
		StrategyDivergenceBuy,
		StrategySupportBounceBuy,
		StrategyBreakdownSell,
		StrategyMeanReversionSell,
		StrategyTrendCrossSell,
		StrategyDivergenceSell,
		StrategyResistanceSell,
	}
}

// ParseBaseStrategy maps a 4-char code onto the closed strategy set.
func ParseBaseStrategy(code string) (BaseStrategy, error) {
	switch BaseStrategy(code) {
	case StrategyBreakoutBuy, StrategyVolumeBreakoutBuy, StrategyMeanReversionBuy,
		StrategyTrendCrossBuy, StrategyDivergenceBuy, StrategySupportBounceBuy,
		StrategyBreakdownSell, StrategyMeanReversionSell, StrategyTrendCrossSell,
		StrategyDivergenceSell, StrategyResistanceSell:
		return BaseStrategy(code), nil
	default:
		return "", errors.Newf(errors.ErrCodeUnknownStrategy, "unknown base strategy %q", code)
	}
}

// Side returns the strategy side encoded in the first character of the code.
func (s BaseStrategy) Side() types.StrategySide {
	if len(s) > 0 && s[0] == 'S' {
		return types.StrategySideSell
	}

	return types.StrategySideBuy
}

// Action returns the signal action matching the strategy side.
func (s BaseStrategy) Action() types.SignalAction {
	if s.Side() == types.StrategySideSell {
		return types.SignalActionSell
	}

	return types.SignalActionBuy
}
