package types

import (
	"fmt"
	"time"
)

type SignalAction string

const (
	// SignalActionBuy marks a buy-side signal
	SignalActionBuy SignalAction = "B"
	// SignalActionSell marks a sell-side signal
	SignalActionSell SignalAction = "S"
)

// LevelCondition is the audit trace for one rung of a strategy ladder.
// It is evidence output only, never a source of truth.
type LevelCondition struct {
	// Level is the ladder level this condition belongs to (1-9)
	Level int
	// Met reports whether the level was credited
	Met bool
	// Description is the human-readable condition text
	Description string
	// Actual is the observed value, NaN when not applicable
	Actual float64
	// Threshold is the compared-against value, NaN when not applicable
	Threshold float64
}

// StrategyLevelResult is the outcome of evaluating one base strategy's ladder
// against one snapshot. Ephemeral: recomputed per evaluation, never stored.
type StrategyLevelResult struct {
	BaseStrategy    string
	Symbol          string
	BarDate         time.Time
	BaseTriggerMet  bool
	HighestLevelMet int
	Conditions      []LevelCondition
	Snapshot        IndicatorSnapshot
}

// SignalScore decomposes a signal's quality into sub-scores, each 0-100.
type SignalScore struct {
	// Magnitude measures how far price moved relative to volatility
	Magnitude float64
	// Momentum blends oscillator and MACD readings
	Momentum float64
	// Participation measures volume relative to its recent average
	Participation float64
	// Composite is the mean of the sub-scores
	Composite float64
}

// Signal is the persisted unit: one (strategy, strength) observation for a
// symbol on one bar date, with its evidence trace. The upsert identity within
// a run is (RunID, Symbol, BarDate, StrategyKey).
type Signal struct {
	SignalID       string
	RunID          string
	Symbol         string
	BarDate        time.Time
	BaseStrategy   string
	StrategyKey    string
	Action         SignalAction
	Strength       int
	CloseAtSignal  float64
	VolumeAtSignal float64
	// Thresholds records the parameter values the evaluation used
	Thresholds map[string]float64
	// Reasons lists the fired level descriptions in level order
	Reasons []string
	Score   SignalScore
	// Provisional stays true until the owning run is completed
	Provisional bool
}

// FormatStrategyKey builds the persisted strategy key from a base strategy
// code and the highest level met, e.g. ("BBRK", 7) -> "BBRK7".
func FormatStrategyKey(baseStrategy string, level int) string {
	return fmt.Sprintf("%s%d", baseStrategy, level)
}
