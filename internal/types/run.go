package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// ParameterSet is a named, immutable bundle of tunable thresholds. Identity
// is content-addressed: identical (ContentHash, EngineVersion) pairs resolve
// to the same ParamSetID.
type ParameterSet struct {
	ParamSetID    string
	Name          string
	Params        map[string]float64
	ContentHash   string
	EngineVersion string
	CreatedAt     time.Time
}

// SignalRun groups one batch evaluation over a universe of symbols under one
// parameter set. Completion is a one-way transition.
type SignalRun struct {
	RunID       string
	ParamSetID  string
	Universe    string
	StartDate   time.Time
	EndDate     time.Time
	Notes       string
	CreatedAt   time.Time
	CompletedAt optional.Option[time.Time]
}

// Completed reports whether the run has been marked complete.
func (r SignalRun) Completed() bool {
	return r.CompletedAt.IsSome()
}
