package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/signal-engine/internal/types"
)

// MemoryStore is an in-memory Store. It backs tests and one-shot evaluations
// that have no need for a database file.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]types.IndicatorSnapshot
	signals   map[string]types.Signal
	paramSets map[string]types.ParameterSet
	runs      map[string]types.SignalRun
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]types.IndicatorSnapshot),
		signals:   make(map[string]types.Signal),
		paramSets: make(map[string]types.ParameterSet),
		runs:      make(map[string]types.SignalRun),
	}
}

func snapshotKey(symbol string, barDate time.Time) string {
	return symbol + "|" + barDate.UTC().Format(time.RFC3339)
}

func signalKey(sig types.Signal) string {
	return strings.Join([]string{sig.RunID, sig.Symbol, sig.BarDate.UTC().Format(time.RFC3339), sig.StrategyKey}, "|")
}

// UpsertSnapshot implements Store.
func (m *MemoryStore) UpsertSnapshot(snap types.IndicatorSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshots[snapshotKey(snap.Symbol, snap.BarDate)] = snap

	return nil
}

// GetSnapshot implements Store.
func (m *MemoryStore) GetSnapshot(symbol string, barDate time.Time) (optional.Option[types.IndicatorSnapshot], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap, ok := m.snapshots[snapshotKey(symbol, barDate)]
	if !ok {
		return optional.None[types.IndicatorSnapshot](), nil
	}

	return optional.Some(snap), nil
}

// UpsertSignal implements Store.
func (m *MemoryStore) UpsertSignal(sig types.Signal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := signalKey(sig)
	if existing, ok := m.signals[key]; ok {
		// Re-evaluation keeps the original id.
		sig.SignalID = existing.SignalID
	}

	m.signals[key] = sig

	return nil
}

// GetSignals implements Store.
func (m *MemoryStore) GetSignals(filter SignalFilter) ([]types.Signal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Signal, 0)

	for _, sig := range m.signals {
		if !matches(sig, filter) {
			continue
		}

		out = append(out, sig)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].BarDate.Equal(out[j].BarDate) {
			return out[i].BarDate.Before(out[j].BarDate)
		}

		if out[i].Symbol != out[j].Symbol {
			return out[i].Symbol < out[j].Symbol
		}

		return out[i].StrategyKey < out[j].StrategyKey
	})

	return out, nil
}

func matches(sig types.Signal, filter SignalFilter) bool {
	if filter.RunID.IsSome() && sig.RunID != filter.RunID.Unwrap() {
		return false
	}

	if filter.Symbol.IsSome() && sig.Symbol != filter.Symbol.Unwrap() {
		return false
	}

	if filter.StrategyKey.IsSome() && sig.StrategyKey != filter.StrategyKey.Unwrap() {
		return false
	}

	if filter.Start.IsSome() && sig.BarDate.Before(filter.Start.Unwrap()) {
		return false
	}

	if filter.End.IsSome() && sig.BarDate.After(filter.End.Unwrap()) {
		return false
	}

	if filter.MinStrength.IsSome() && sig.Strength < filter.MinStrength.Unwrap() {
		return false
	}

	return true
}

// InsertParameterSet implements Store.
func (m *MemoryStore) InsertParameterSet(ps types.ParameterSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.paramSets[ps.ParamSetID] = ps

	return nil
}

// GetParameterSetByHash implements Store.
func (m *MemoryStore) GetParameterSetByHash(contentHash, engineVersion string) (optional.Option[types.ParameterSet], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, ps := range m.paramSets {
		if ps.ContentHash == contentHash && ps.EngineVersion == engineVersion {
			return optional.Some(ps), nil
		}
	}

	return optional.None[types.ParameterSet](), nil
}

// GetParameterSet implements Store.
func (m *MemoryStore) GetParameterSet(paramSetID string) (optional.Option[types.ParameterSet], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ps, ok := m.paramSets[paramSetID]
	if !ok {
		return optional.None[types.ParameterSet](), nil
	}

	return optional.Some(ps), nil
}

// CreateRun implements Store.
func (m *MemoryStore) CreateRun(run types.SignalRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs[run.RunID] = run

	return nil
}

// GetRun implements Store.
func (m *MemoryStore) GetRun(runID string) (optional.Option[types.SignalRun], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, ok := m.runs[runID]
	if !ok {
		return optional.None[types.SignalRun](), nil
	}

	return optional.Some(run), nil
}

// CompleteRun implements Store.
func (m *MemoryStore) CompleteRun(runID string, completedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, ok := m.runs[runID]
	if !ok {
		return nil
	}

	if run.Completed() {
		// One-way transition: already complete, keep the first timestamp.
		return nil
	}

	run.CompletedAt = optional.Some(completedAt)
	m.runs[runID] = run

	for key, sig := range m.signals {
		if sig.RunID == runID {
			sig.Provisional = false
			m.signals[key] = sig
		}
	}

	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	return nil
}
