package store

import (
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/rxtech-lab/signal-engine/internal/logger"
	"github.com/rxtech-lab/signal-engine/internal/types"
	"github.com/rxtech-lab/signal-engine/pkg/errors"
)

// DuckDBStore implements Store on DuckDB. Use ":memory:" as the path for an
// ephemeral database.
type DuckDBStore struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
	// writeMu serializes writes; reads go through without it.
	writeMu sync.Mutex
}

// NewDuckDBStore opens (or creates) the database at path and ensures the
// schema exists.
func NewDuckDBStore(path string, log *logger.Logger) (*DuckDBStore, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, "failed to open duckdb", err)
	}

	s := &DuckDBStore{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}

	if err := s.ensureSchema(); err != nil {
		db.Close()

		return nil, err
	}

	return s, nil
}

func (s *DuckDBStore) ensureSchema() error {
	statements := []string{`
		CREATE TABLE IF NOT EXISTS indicator_snapshots (
			symbol TEXT NOT NULL,
			bar_date TIMESTAMP NOT NULL,
			open DOUBLE, high DOUBLE, low DOUBLE, close DOUBLE, volume DOUBLE,
			ema5 DOUBLE, ema10 DOUBLE, ema12 DOUBLE, ema20 DOUBLE,
			ema26 DOUBLE, ema50 DOUBLE, ema100 DOUBLE,
			sma20 DOUBLE, sma50 DOUBLE,
			rsi6 DOUBLE, rsi7 DOUBLE, rsi12 DOUBLE, rsi14 DOUBLE,
			rsi21 DOUBLE, rsi24 DOUBLE,
			macd DOUBLE, macd_signal DOUBLE, macd_hist DOUBLE,
			ppo DOUBLE, ppo_signal DOUBLE, ppo_hist DOUBLE,
			bb_upper DOUBLE, bb_middle DOUBLE, bb_lower DOUBLE,
			bb_width_rising_count INTEGER,
			atr14 DOUBLE, adx14 DOUBLE, volume_ratio DOUBLE,
			stoch_k DOUBLE, stoch_d DOUBLE, williams_r DOUBLE, mfi14 DOUBLE,
			accum_dist DOUBLE, parabolic_sar DOUBLE,
			ema_stack_bullish BOOLEAN, ema_stack_bearish BOOLEAN,
			PRIMARY KEY (symbol, bar_date)
		)`, `
		CREATE TABLE IF NOT EXISTS signals (
			signal_id TEXT NOT NULL,
			run_id TEXT NOT NULL,
			symbol TEXT NOT NULL,
			bar_date TIMESTAMP NOT NULL,
			base_strategy TEXT NOT NULL,
			strategy_key TEXT NOT NULL,
			action TEXT NOT NULL,
			strength INTEGER NOT NULL,
			close_at_signal DOUBLE,
			volume_at_signal DOUBLE,
			thresholds TEXT,
			reasons TEXT,
			score TEXT,
			provisional BOOLEAN NOT NULL,
			PRIMARY KEY (run_id, symbol, bar_date, strategy_key)
		)`, `
		CREATE TABLE IF NOT EXISTS parameter_sets (
			param_set_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			params TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			engine_version TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			UNIQUE (content_hash, engine_version)
		)`, `
		CREATE TABLE IF NOT EXISTS signal_runs (
			run_id TEXT PRIMARY KEY,
			param_set_id TEXT NOT NULL,
			universe TEXT NOT NULL,
			start_date TIMESTAMP NOT NULL,
			end_date TIMESTAMP NOT NULL,
			notes TEXT,
			created_at TIMESTAMP NOT NULL,
			completed_at TIMESTAMP
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return errors.Wrap(errors.ErrCodeStoreUnavailable, "failed to create schema", err)
		}
	}

	return nil
}

// UpsertSnapshot implements Store.
func (s *DuckDBStore) UpsertSnapshot(snap types.IndicatorSnapshot) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO indicator_snapshots VALUES
		($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,
		 $21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34,$35,$36,$37,$38,
		 $39,$40,$41,$42,$43)
	`,
		snap.Symbol, snap.BarDate,
		snap.Open, snap.High, snap.Low, snap.Close, snap.Volume,
		snap.EMA5, snap.EMA10, snap.EMA12, snap.EMA20, snap.EMA26, snap.EMA50, snap.EMA100,
		snap.SMA20, snap.SMA50,
		snap.RSI6, snap.RSI7, snap.RSI12, snap.RSI14, snap.RSI21, snap.RSI24,
		snap.MACD, snap.MACDSignal, snap.MACDHist,
		snap.PPO, snap.PPOSignal, snap.PPOHist,
		snap.BBUpper, snap.BBMiddle, snap.BBLower, snap.BBWidthRisingCount,
		snap.ATR14, snap.ADX14, snap.VolumeRatio,
		snap.StochK, snap.StochD, snap.WilliamsR, snap.MFI14,
		snap.AccumDist, snap.ParabolicSAR,
		snap.EMAStackBullish, snap.EMAStackBearish,
	)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeUpsertFailed, err, "failed to upsert snapshot for %s", snap.Symbol)
	}

	return nil
}

// GetSnapshot implements Store.
func (s *DuckDBStore) GetSnapshot(symbol string, barDate time.Time) (optional.Option[types.IndicatorSnapshot], error) {
	row := s.db.QueryRow(`
		SELECT symbol, bar_date, open, high, low, close, volume,
			ema5, ema10, ema12, ema20, ema26, ema50, ema100, sma20, sma50,
			rsi6, rsi7, rsi12, rsi14, rsi21, rsi24,
			macd, macd_signal, macd_hist, ppo, ppo_signal, ppo_hist,
			bb_upper, bb_middle, bb_lower, bb_width_rising_count,
			atr14, adx14, volume_ratio, stoch_k, stoch_d, williams_r, mfi14,
			accum_dist, parabolic_sar, ema_stack_bullish, ema_stack_bearish
		FROM indicator_snapshots WHERE symbol = $1 AND bar_date = $2
	`, symbol, barDate)

	var snap types.IndicatorSnapshot

	err := row.Scan(&snap.Symbol, &snap.BarDate,
		&snap.Open, &snap.High, &snap.Low, &snap.Close, &snap.Volume,
		&snap.EMA5, &snap.EMA10, &snap.EMA12, &snap.EMA20, &snap.EMA26, &snap.EMA50, &snap.EMA100,
		&snap.SMA20, &snap.SMA50,
		&snap.RSI6, &snap.RSI7, &snap.RSI12, &snap.RSI14, &snap.RSI21, &snap.RSI24,
		&snap.MACD, &snap.MACDSignal, &snap.MACDHist,
		&snap.PPO, &snap.PPOSignal, &snap.PPOHist,
		&snap.BBUpper, &snap.BBMiddle, &snap.BBLower, &snap.BBWidthRisingCount,
		&snap.ATR14, &snap.ADX14, &snap.VolumeRatio,
		&snap.StochK, &snap.StochD, &snap.WilliamsR, &snap.MFI14,
		&snap.AccumDist, &snap.ParabolicSAR,
		&snap.EMAStackBullish, &snap.EMAStackBearish)
	if err == sql.ErrNoRows {
		return optional.None[types.IndicatorSnapshot](), nil
	}

	if err != nil {
		return optional.None[types.IndicatorSnapshot](), errors.Wrap(errors.ErrCodeQueryFailed, "failed to read snapshot", err)
	}

	return optional.Some(snap), nil
}

// UpsertSignal implements Store.
func (s *DuckDBStore) UpsertSignal(sig types.Signal) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	thresholds, err := json.Marshal(sig.Thresholds)
	if err != nil {
		return errors.Wrap(errors.ErrCodeUpsertFailed, "failed to encode thresholds", err)
	}

	reasons, err := json.Marshal(sig.Reasons)
	if err != nil {
		return errors.Wrap(errors.ErrCodeUpsertFailed, "failed to encode reasons", err)
	}

	score, err := json.Marshal(sig.Score)
	if err != nil {
		return errors.Wrap(errors.ErrCodeUpsertFailed, "failed to encode score", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO signals VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (run_id, symbol, bar_date, strategy_key) DO UPDATE SET
			strength = EXCLUDED.strength,
			close_at_signal = EXCLUDED.close_at_signal,
			volume_at_signal = EXCLUDED.volume_at_signal,
			thresholds = EXCLUDED.thresholds,
			reasons = EXCLUDED.reasons,
			score = EXCLUDED.score,
			provisional = EXCLUDED.provisional
	`,
		sig.SignalID, sig.RunID, sig.Symbol, sig.BarDate,
		sig.BaseStrategy, sig.StrategyKey, string(sig.Action), sig.Strength,
		sig.CloseAtSignal, sig.VolumeAtSignal,
		string(thresholds), string(reasons), string(score), sig.Provisional,
	)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeUpsertFailed, err, "failed to upsert signal %s/%s", sig.Symbol, sig.StrategyKey)
	}

	return nil
}

// GetSignals implements Store.
func (s *DuckDBStore) GetSignals(filter SignalFilter) ([]types.Signal, error) {
	query := s.sq.Select(
		"signal_id", "run_id", "symbol", "bar_date", "base_strategy",
		"strategy_key", "action", "strength", "close_at_signal",
		"volume_at_signal", "thresholds", "reasons", "score", "provisional",
	).From("signals").OrderBy("bar_date", "symbol", "strategy_key")

	if filter.RunID.IsSome() {
		query = query.Where(squirrel.Eq{"run_id": filter.RunID.Unwrap()})
	}

	if filter.Symbol.IsSome() {
		query = query.Where(squirrel.Eq{"symbol": filter.Symbol.Unwrap()})
	}

	if filter.StrategyKey.IsSome() {
		query = query.Where(squirrel.Eq{"strategy_key": filter.StrategyKey.Unwrap()})
	}

	if filter.Start.IsSome() {
		query = query.Where(squirrel.GtOrEq{"bar_date": filter.Start.Unwrap()})
	}

	if filter.End.IsSome() {
		query = query.Where(squirrel.LtOrEq{"bar_date": filter.End.Unwrap()})
	}

	if filter.MinStrength.IsSome() {
		query = query.Where(squirrel.GtOrEq{"strength": filter.MinStrength.Unwrap()})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build signal query", err)
	}

	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query signals", err)
	}
	defer rows.Close()

	out := make([]types.Signal, 0)

	for rows.Next() {
		var (
			sig        types.Signal
			action     string
			thresholds string
			reasons    string
			score      string
		)

		if err := rows.Scan(&sig.SignalID, &sig.RunID, &sig.Symbol, &sig.BarDate,
			&sig.BaseStrategy, &sig.StrategyKey, &action, &sig.Strength,
			&sig.CloseAtSignal, &sig.VolumeAtSignal,
			&thresholds, &reasons, &score, &sig.Provisional); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan signal row", err)
		}

		sig.Action = types.SignalAction(action)

		if err := json.Unmarshal([]byte(thresholds), &sig.Thresholds); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to decode thresholds", err)
		}

		if err := json.Unmarshal([]byte(reasons), &sig.Reasons); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to decode reasons", err)
		}

		if err := json.Unmarshal([]byte(score), &sig.Score); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to decode score", err)
		}

		out = append(out, sig)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "signal row iteration failed", err)
	}

	return out, nil
}

// InsertParameterSet implements Store.
func (s *DuckDBStore) InsertParameterSet(ps types.ParameterSet) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	params, err := json.Marshal(ps.Params)
	if err != nil {
		return errors.Wrap(errors.ErrCodeUpsertFailed, "failed to encode params", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO parameter_sets VALUES ($1,$2,$3,$4,$5,$6)
	`, ps.ParamSetID, ps.Name, string(params), ps.ContentHash, ps.EngineVersion, ps.CreatedAt)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeUpsertFailed, err, "failed to insert parameter set %s", ps.Name)
	}

	return nil
}

// GetParameterSetByHash implements Store.
func (s *DuckDBStore) GetParameterSetByHash(contentHash, engineVersion string) (optional.Option[types.ParameterSet], error) {
	row := s.db.QueryRow(`
		SELECT param_set_id, name, params, content_hash, engine_version, created_at
		FROM parameter_sets WHERE content_hash = $1 AND engine_version = $2
	`, contentHash, engineVersion)

	return scanParameterSet(row)
}

// GetParameterSet implements Store.
func (s *DuckDBStore) GetParameterSet(paramSetID string) (optional.Option[types.ParameterSet], error) {
	row := s.db.QueryRow(`
		SELECT param_set_id, name, params, content_hash, engine_version, created_at
		FROM parameter_sets WHERE param_set_id = $1
	`, paramSetID)

	return scanParameterSet(row)
}

func scanParameterSet(row *sql.Row) (optional.Option[types.ParameterSet], error) {
	var (
		ps     types.ParameterSet
		params string
	)

	err := row.Scan(&ps.ParamSetID, &ps.Name, &params, &ps.ContentHash, &ps.EngineVersion, &ps.CreatedAt)
	if err == sql.ErrNoRows {
		return optional.None[types.ParameterSet](), nil
	}

	if err != nil {
		return optional.None[types.ParameterSet](), errors.Wrap(errors.ErrCodeQueryFailed, "failed to read parameter set", err)
	}

	if err := json.Unmarshal([]byte(params), &ps.Params); err != nil {
		return optional.None[types.ParameterSet](), errors.Wrap(errors.ErrCodeQueryFailed, "failed to decode params", err)
	}

	return optional.Some(ps), nil
}

// CreateRun implements Store.
func (s *DuckDBStore) CreateRun(run types.SignalRun) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var completedAt any
	if run.CompletedAt.IsSome() {
		completedAt = run.CompletedAt.Unwrap()
	}

	_, err := s.db.Exec(`
		INSERT INTO signal_runs VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, run.RunID, run.ParamSetID, run.Universe, run.StartDate, run.EndDate,
		run.Notes, run.CreatedAt, completedAt)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeUpsertFailed, err, "failed to insert run %s", run.RunID)
	}

	return nil
}

// GetRun implements Store.
func (s *DuckDBStore) GetRun(runID string) (optional.Option[types.SignalRun], error) {
	row := s.db.QueryRow(`
		SELECT run_id, param_set_id, universe, start_date, end_date, notes, created_at, completed_at
		FROM signal_runs WHERE run_id = $1
	`, runID)

	var (
		run         types.SignalRun
		completedAt sql.NullTime
	)

	err := row.Scan(&run.RunID, &run.ParamSetID, &run.Universe, &run.StartDate,
		&run.EndDate, &run.Notes, &run.CreatedAt, &completedAt)
	if err == sql.ErrNoRows {
		return optional.None[types.SignalRun](), nil
	}

	if err != nil {
		return optional.None[types.SignalRun](), errors.Wrap(errors.ErrCodeQueryFailed, "failed to read run", err)
	}

	if completedAt.Valid {
		run.CompletedAt = optional.Some(completedAt.Time)
	}

	return optional.Some(run), nil
}

// CompleteRun implements Store.
func (s *DuckDBStore) CompleteRun(runID string, completedAt time.Time) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	result, err := s.db.Exec(`
		UPDATE signal_runs SET completed_at = $1
		WHERE run_id = $2 AND completed_at IS NULL
	`, completedAt, runID)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeUpsertFailed, err, "failed to complete run %s", runID)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(errors.ErrCodeUpsertFailed, "failed to read completion result", err)
	}

	// Already complete (or unknown run): idempotent no-op.
	if affected == 0 {
		return nil
	}

	_, err = s.db.Exec(`UPDATE signals SET provisional = false WHERE run_id = $1`, runID)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeUpsertFailed, err, "failed to finalize signals for run %s", runID)
	}

	s.logger.Debug("run completed", zap.String("run_id", runID))

	return nil
}

// Close implements Store.
func (s *DuckDBStore) Close() error {
	return s.db.Close()
}
