// Package signal assembles persisted Signal records from strategy ladder
// evaluations.
package signal

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rxtech-lab/signal-engine/internal/logger"
	"github.com/rxtech-lab/signal-engine/internal/strategy"
	"github.com/rxtech-lab/signal-engine/internal/types"
)

// Assembler runs every base strategy's ladder against one snapshot and
// materializes a Signal for each strategy whose base trigger fired. A failed
// base trigger produces no output at all, never a zero-strength record.
type Assembler struct {
	engine  *strategy.LevelEngine
	catalog *strategy.Catalog
	logger  *logger.Logger
}

// NewAssembler creates an assembler bound to a catalog.
func NewAssembler(catalog *strategy.Catalog, log *logger.Logger) *Assembler {
	return &Assembler{
		engine:  strategy.NewLevelEngine(),
		catalog: catalog,
		logger:  log,
	}
}

// Assemble evaluates all base strategies for the snapshot's symbol/date and
// returns the emitted signals. Parameter overrides are merged over each
// strategy's catalog defaults; the merged values the evaluation actually used
// are recorded on the signal for auditability.
func (a *Assembler) Assemble(runID string, snap types.IndicatorSnapshot, overrides strategy.Params) ([]types.Signal, error) {
	signals := make([]types.Signal, 0)

	for _, base := range strategy.AllStrategies() {
		meta, err := a.catalog.Get(string(base))
		if err != nil {
			return nil, err
		}

		params := strategy.MergeParams(meta.Defaults, overrides)

		result, err := a.engine.Evaluate(base, snap, params)
		if err != nil {
			return nil, err
		}

		if !result.BaseTriggerMet || result.HighestLevelMet < 1 {
			continue
		}

		signals = append(signals, a.materialize(runID, base, params, result))
	}

	a.logger.Debug("assembled signals",
		zap.String("symbol", snap.Symbol),
		zap.Time("bar_date", snap.BarDate),
		zap.Int("count", len(signals)))

	return signals, nil
}

func (a *Assembler) materialize(runID string, base strategy.BaseStrategy, params strategy.Params, result types.StrategyLevelResult) types.Signal {
	reasons := make([]string, 0, result.HighestLevelMet)

	for _, cond := range result.Conditions {
		if !cond.Met {
			break
		}

		reasons = append(reasons, cond.Description)
	}

	thresholds := make(map[string]float64, len(params))
	for k, v := range params {
		thresholds[k] = v
	}

	return types.Signal{
		SignalID:       uuid.New().String(),
		RunID:          runID,
		Symbol:         result.Symbol,
		BarDate:        result.BarDate,
		BaseStrategy:   string(base),
		StrategyKey:    types.FormatStrategyKey(string(base), result.HighestLevelMet),
		Action:         base.Action(),
		Strength:       result.HighestLevelMet,
		CloseAtSignal:  result.Snapshot.Close,
		VolumeAtSignal: result.Snapshot.Volume,
		Thresholds:     thresholds,
		Reasons:        reasons,
		Score:          computeScore(result.Snapshot, base.Action()),
		Provisional:    true,
	}
}
