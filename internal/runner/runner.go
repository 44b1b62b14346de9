// Package runner executes signal runs: one batch evaluation of the strategy
// catalog over a universe of symbols under one parameter set.
package runner

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rxtech-lab/signal-engine/internal/indicator"
	"github.com/rxtech-lab/signal-engine/internal/logger"
	"github.com/rxtech-lab/signal-engine/internal/params"
	"github.com/rxtech-lab/signal-engine/internal/provider"
	"github.com/rxtech-lab/signal-engine/internal/signal"
	"github.com/rxtech-lab/signal-engine/internal/store"
	"github.com/rxtech-lab/signal-engine/internal/strategy"
	"github.com/rxtech-lab/signal-engine/internal/types"
	"github.com/rxtech-lab/signal-engine/pkg/errors"
)

// RunRequest describes one batch evaluation.
type RunRequest struct {
	ParamSet types.ParameterSet `validate:"required"`
	// Universe is the symbol list to evaluate
	Symbols []string `validate:"required,min=1"`
	// UniverseName labels the run, e.g. "sp500"
	UniverseName string    `validate:"required"`
	Start        time.Time `validate:"required"`
	End          time.Time `validate:"required"`
	Notes        string
}

// SymbolSkip records one symbol the run could not evaluate and why. Skips are
// part of a normal run outcome, not failures.
type SymbolSkip struct {
	Symbol string
	Reason string
}

// RunReport summarizes a finished (or aborted) run.
type RunReport struct {
	RunID     string
	Evaluated int
	Signals   int
	Skipped   []SymbolSkip
	// Completed is false only when the run was aborted mid-flight
	Completed bool
}

// Runner owns the worker pool that fans a run out over its universe.
type Runner struct {
	store       store.Store
	provider    provider.Provider
	calculator  *indicator.Calculator
	assembler   *signal.Assembler
	concurrency int
	logger      *logger.Logger
	validator   *validator.Validate
	// onSymbol, when set, is called after each symbol finishes. Used for
	// progress reporting; must be safe for concurrent calls.
	onSymbol func(symbol string)
}

// NewRunner creates a runner. Concurrency values below 1 are clamped to 1.
func NewRunner(st store.Store, prov provider.Provider, catalog *strategy.Catalog, concurrency int, log *logger.Logger) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}

	return &Runner{
		store:       st,
		provider:    prov,
		calculator:  indicator.NewCalculator(),
		assembler:   signal.NewAssembler(catalog, log),
		concurrency: concurrency,
		logger:      log,
		validator:   validator.New(),
	}
}

// SetProgressFunc registers a per-symbol completion callback.
func (r *Runner) SetProgressFunc(fn func(symbol string)) {
	r.onSymbol = fn
}

type symbolOutcome struct {
	symbol  string
	signals int
	skip    string
}

// Execute runs the full evaluation. Per-symbol failures are recorded as
// skips; the run completes as long as it is not cancelled. Cancellation is
// cooperative: in-flight symbols finish, queued symbols are abandoned, and
// the run is left provisional.
func (r *Runner) Execute(ctx context.Context, req RunRequest) (RunReport, error) {
	if err := r.validator.Struct(req); err != nil {
		return RunReport{}, errors.Wrap(errors.ErrCodeInvalidRunRequest, "invalid run request", err)
	}

	if err := params.CheckVersionCompatibility(params.EngineVersion, req.ParamSet.EngineVersion); err != nil {
		return RunReport{}, err
	}

	run := types.SignalRun{
		RunID:      uuid.New().String(),
		ParamSetID: req.ParamSet.ParamSetID,
		Universe:   req.UniverseName,
		StartDate:  req.Start,
		EndDate:    req.End,
		Notes:      req.Notes,
		CreatedAt:  time.Now().UTC(),
	}

	if err := r.store.CreateRun(run); err != nil {
		return RunReport{}, err
	}

	r.logger.Info("run started",
		zap.String("run_id", run.RunID),
		zap.String("universe", req.UniverseName),
		zap.Int("symbols", len(req.Symbols)),
		zap.Int("concurrency", r.concurrency))

	var (
		wg       sync.WaitGroup
		workers  = make(chan struct{}, r.concurrency)
		mu       sync.Mutex
		outcomes = make([]symbolOutcome, 0, len(req.Symbols))
		aborted  bool
	)

	for _, symbol := range req.Symbols {
		// Cooperative abort checkpoint: never mid-symbol, only between
		// dispatches.
		if ctx.Err() != nil {
			aborted = true

			break
		}

		wg.Add(1)
		workers <- struct{}{}

		go func(symbol string) {
			defer wg.Done()
			defer func() { <-workers }()

			outcome := r.evaluateSymbol(ctx, run.RunID, req, symbol)

			mu.Lock()
			outcomes = append(outcomes, outcome)
			mu.Unlock()

			if r.onSymbol != nil {
				r.onSymbol(symbol)
			}
		}(symbol)
	}

	wg.Wait()

	report := RunReport{RunID: run.RunID}

	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].symbol < outcomes[j].symbol
	})

	for _, outcome := range outcomes {
		if outcome.skip != "" {
			report.Skipped = append(report.Skipped, SymbolSkip{Symbol: outcome.symbol, Reason: outcome.skip})

			continue
		}

		report.Evaluated++
		report.Signals += outcome.signals
	}

	if aborted {
		r.logger.Warn("run aborted, leaving signals provisional",
			zap.String("run_id", run.RunID),
			zap.Int("evaluated", report.Evaluated))

		return report, errors.Newf(errors.ErrCodeRunAborted, "run %s aborted after %d of %d symbols",
			run.RunID, len(outcomes), len(req.Symbols))
	}

	// Completion barrier: only after every symbol has finished.
	if err := r.store.CompleteRun(run.RunID, time.Now().UTC()); err != nil {
		return report, err
	}

	report.Completed = true

	r.logger.Info("run completed",
		zap.String("run_id", run.RunID),
		zap.Int("evaluated", report.Evaluated),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("signals", report.Signals))

	return report, nil
}

// evaluateSymbol computes the snapshot for one symbol and persists the
// signals it produces. All failures are folded into a skip reason.
func (r *Runner) evaluateSymbol(ctx context.Context, runID string, req RunRequest, symbol string) symbolOutcome {
	bars, err := r.provider.GetPriceHistory(ctx, symbol, req.Start, req.End)
	if err != nil {
		// Provider trouble means "no data for this symbol", never a run
		// failure.
		return symbolOutcome{symbol: symbol, skip: err.Error()}
	}

	snap, err := r.calculator.Compute(bars)
	if err != nil {
		return symbolOutcome{symbol: symbol, skip: err.Error()}
	}

	if err := r.store.UpsertSnapshot(snap); err != nil {
		return symbolOutcome{symbol: symbol, skip: err.Error()}
	}

	signals, err := r.assembler.Assemble(runID, snap, req.ParamSet.Params)
	if err != nil {
		return symbolOutcome{symbol: symbol, skip: err.Error()}
	}

	for _, sig := range signals {
		if err := r.store.UpsertSignal(sig); err != nil {
			return symbolOutcome{symbol: symbol, skip: err.Error()}
		}
	}

	return symbolOutcome{symbol: symbol, signals: len(signals)}
}
