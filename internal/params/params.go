// Package params manages content-addressed parameter sets. Two callers who
// submit the same parameters under the same engine version always resolve to
// the same stored set, so runs can be compared by parameter identity alone.
package params

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rxtech-lab/signal-engine/internal/logger"
	"github.com/rxtech-lab/signal-engine/internal/store"
	"github.com/rxtech-lab/signal-engine/internal/strategy"
	"github.com/rxtech-lab/signal-engine/internal/types"
	"github.com/rxtech-lab/signal-engine/pkg/errors"
)

// Canonicalize renders a parameter map into a stable textual form: keys in
// ascending order, values in shortest exact decimal notation. Map iteration
// order and float formatting quirks never leak into the hash.
func Canonicalize(params map[string]float64) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}

		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(decimal.NewFromFloat(params[key]).String())
	}

	return b.String()
}

// ContentHash computes the identity hash of a parameter map under an engine
// version.
func ContentHash(params map[string]float64, engineVersion string) string {
	sum := sha256.Sum256([]byte(Canonicalize(params) + "\n@engine=" + engineVersion))

	return hex.EncodeToString(sum[:])
}

// Manager resolves parameter maps to stored parameter sets.
type Manager struct {
	store   store.Store
	catalog *strategy.Catalog
	logger  *logger.Logger
}

// NewManager creates a parameter set manager backed by the given store.
func NewManager(st store.Store, catalog *strategy.Catalog, log *logger.Logger) *Manager {
	return &Manager{
		store:   st,
		catalog: catalog,
		logger:  log,
	}
}

// Validate checks every parameter name and value against the catalog. A name
// must be declared by at least one strategy, and its value must fall inside
// the declared range of every strategy that tunes it.
func (m *Manager) Validate(params map[string]float64) error {
	for name, value := range params {
		declared := false

		for _, code := range m.catalog.Codes() {
			meta, err := m.catalog.Get(code)
			if err != nil {
				return err
			}

			rng, ok := meta.Ranges[name]
			if !ok {
				continue
			}

			declared = true

			if !rng.Contains(value) {
				return errors.Newf(errors.ErrCodeParameterOutOfRange,
					"parameter %q value %v is outside [%v, %v] declared by strategy %s",
					name, value, rng.Min, rng.Max, code)
			}
		}

		if !declared {
			return errors.Newf(errors.ErrCodeUnknownParameter,
				"parameter %q is not tunable by any strategy", name)
		}
	}

	return nil
}

// GetOrCreate resolves params to an existing parameter set with the same
// content under the current engine version, or stores a new one. The returned
// set's ParamSetID is stable for identical content.
func (m *Manager) GetOrCreate(name string, params map[string]float64) (types.ParameterSet, error) {
	if err := ValidateEngineVersion(EngineVersion); err != nil {
		return types.ParameterSet{}, err
	}

	if err := m.Validate(params); err != nil {
		return types.ParameterSet{}, err
	}

	hash := ContentHash(params, EngineVersion)

	existing, err := m.store.GetParameterSetByHash(hash, EngineVersion)
	if err != nil {
		return types.ParameterSet{}, err
	}

	if existing.IsSome() {
		m.logger.Debug("reusing parameter set",
			zap.String("param_set_id", existing.Unwrap().ParamSetID),
			zap.String("content_hash", hash))

		return existing.Unwrap(), nil
	}

	copied := make(map[string]float64, len(params))
	for key, value := range params {
		copied[key] = value
	}

	ps := types.ParameterSet{
		ParamSetID:    uuid.New().String(),
		Name:          name,
		Params:        copied,
		ContentHash:   hash,
		EngineVersion: EngineVersion,
		CreatedAt:     time.Now().UTC(),
	}

	if err := m.store.InsertParameterSet(ps); err != nil {
		return types.ParameterSet{}, err
	}

	m.logger.Info("created parameter set",
		zap.String("param_set_id", ps.ParamSetID),
		zap.String("name", name),
		zap.String("content_hash", hash))

	return ps, nil
}
