package strategy

import (
	"math"

	"github.com/rxtech-lab/signal-engine/internal/types"
)

// levelOutcome is the result of evaluating one level's incremental predicate.
type levelOutcome struct {
	met       bool
	actual    float64
	threshold float64
}

// levelSpec is one rung of a ladder: its condition text plus the incremental
// predicate. Predicates compare snapshot fields directly; NaN fields make
// every comparison false, so a missing indicator suppresses the level (and,
// through the cumulative rule, everything above it) without error.
type levelSpec struct {
	description string
	eval        func(s types.IndicatorSnapshot, p Params) levelOutcome
}

// LevelEngine evaluates a base strategy's 9-level cumulative ladder against
// one indicator snapshot. Stateless and safe for concurrent use.
type LevelEngine struct{}

// NewLevelEngine creates a level engine.
func NewLevelEngine() *LevelEngine {
	return &LevelEngine{}
}

// Evaluate walks the ladder strictly in ascending level order. Level N is
// credited iff levels 1..N-1 were credited and N's own predicate holds; the
// first failure stops crediting, so HighestLevelMet can never skip a level
// even when a higher predicate would independently be true. Predicates after
// the first failure are not evaluated; their trace entries carry NaN values.
func (e *LevelEngine) Evaluate(base BaseStrategy, snap types.IndicatorSnapshot, params Params) (types.StrategyLevelResult, error) {
	ladder, err := ladderFor(base)
	if err != nil {
		return types.StrategyLevelResult{}, err
	}

	result := types.StrategyLevelResult{
		BaseStrategy: string(base),
		Symbol:       snap.Symbol,
		BarDate:      snap.BarDate,
		Conditions:   make([]types.LevelCondition, 0, len(ladder)),
		Snapshot:     snap,
	}

	failed := false

	for i, spec := range ladder {
		level := i + 1

		if failed {
			result.Conditions = append(result.Conditions, types.LevelCondition{
				Level:       level,
				Met:         false,
				Description: spec.description,
				Actual:      math.NaN(),
				Threshold:   math.NaN(),
			})

			continue
		}

		outcome := spec.eval(snap, params)
		result.Conditions = append(result.Conditions, types.LevelCondition{
			Level:       level,
			Met:         outcome.met,
			Description: spec.description,
			Actual:      outcome.actual,
			Threshold:   outcome.threshold,
		})

		if !outcome.met {
			failed = true

			continue
		}

		result.HighestLevelMet = level
	}

	result.BaseTriggerMet = len(result.Conditions) > 0 && result.Conditions[0].Met

	return result, nil
}

// Predicate helpers. All of them report false on NaN inputs.

func above(actual, threshold float64) levelOutcome {
	return levelOutcome{met: actual > threshold, actual: actual, threshold: threshold}
}

func below(actual, threshold float64) levelOutcome {
	return levelOutcome{met: actual < threshold, actual: actual, threshold: threshold}
}

func atLeast(actual, threshold float64) levelOutcome {
	return levelOutcome{met: actual >= threshold, actual: actual, threshold: threshold}
}

func atMost(actual, threshold float64) levelOutcome {
	return levelOutcome{met: actual <= threshold, actual: actual, threshold: threshold}
}

// allOf combines outcomes; the trace keeps the first outcome's values.
func allOf(outcomes ...levelOutcome) levelOutcome {
	combined := outcomes[0]
	for _, o := range outcomes[1:] {
		combined.met = combined.met && o.met
	}

	return combined
}

func boolCond(met bool) levelOutcome {
	return levelOutcome{met: met, actual: math.NaN(), threshold: math.NaN()}
}
