// Package store persists snapshots, signals, parameter sets and runs. The
// engine depends only on the Store contract, not on a particular storage
// engine.
package store

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/signal-engine/internal/types"
)

// SignalFilter narrows signal queries. Unset fields match everything.
type SignalFilter struct {
	RunID       optional.Option[string]
	Symbol      optional.Option[string]
	StrategyKey optional.Option[string]
	Start       optional.Option[time.Time]
	End         optional.Option[time.Time]
	MinStrength optional.Option[int]
}

// Store is the persistence contract. Writes to the same signal upsert key
// (run, symbol, bar date, strategy key) are serialized by the implementation;
// writes across different keys may proceed concurrently in any order.
type Store interface {
	// UpsertSnapshot stores a snapshot keyed by (symbol, bar date).
	UpsertSnapshot(snap types.IndicatorSnapshot) error
	// GetSnapshot retrieves a snapshot by its key.
	GetSnapshot(symbol string, barDate time.Time) (optional.Option[types.IndicatorSnapshot], error)

	// UpsertSignal inserts or replaces a signal on its
	// (RunID, Symbol, BarDate, StrategyKey) identity.
	UpsertSignal(sig types.Signal) error
	// GetSignals returns signals matching the filter, ordered by bar date
	// then symbol then strategy key.
	GetSignals(filter SignalFilter) ([]types.Signal, error)

	// InsertParameterSet stores a new parameter set.
	InsertParameterSet(ps types.ParameterSet) error
	// GetParameterSetByHash looks a parameter set up by its content-addressed
	// (hash, engine version) identity.
	GetParameterSetByHash(contentHash, engineVersion string) (optional.Option[types.ParameterSet], error)
	// GetParameterSet looks a parameter set up by id.
	GetParameterSet(paramSetID string) (optional.Option[types.ParameterSet], error)

	// CreateRun stores a new run.
	CreateRun(run types.SignalRun) error
	// GetRun retrieves a run by id.
	GetRun(runID string) (optional.Option[types.SignalRun], error)
	// CompleteRun marks a run complete and finalizes its signals. The
	// transition is one-way and idempotent: completing a completed run is a
	// no-op.
	CompleteRun(runID string, completedAt time.Time) error

	// Close releases underlying resources.
	Close() error
}
