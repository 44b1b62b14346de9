package params

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/signal-engine/internal/logger"
	"github.com/rxtech-lab/signal-engine/internal/store"
	"github.com/rxtech-lab/signal-engine/internal/strategy"
	"github.com/rxtech-lab/signal-engine/pkg/errors"
)

type ParamsSuite struct {
	suite.Suite
	manager *Manager
	store   store.Store
}

func (s *ParamsSuite) SetupTest() {
	catalog, err := strategy.DefaultCatalog()
	s.Require().NoError(err)

	s.store = store.NewMemoryStore()
	s.manager = NewManager(s.store, catalog, logger.NewNopLogger())
}

func (s *ParamsSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func (s *ParamsSuite) TestCanonicalizeIsOrderInsensitive() {
	a := map[string]float64{"rsi_floor": 60, "min_volume_ratio": 1.2}
	b := map[string]float64{"min_volume_ratio": 1.2, "rsi_floor": 60}

	s.Equal(Canonicalize(a), Canonicalize(b))
	s.Equal("min_volume_ratio=1.2\nrsi_floor=60", Canonicalize(a))
}

func (s *ParamsSuite) TestCanonicalizeNormalizesValues() {
	// 1.50 and 1.5 are the same parameter value.
	s.Equal(Canonicalize(map[string]float64{"x": 1.50}), Canonicalize(map[string]float64{"x": 1.5}))
}

func (s *ParamsSuite) TestContentHashBindsEngineVersion() {
	p := map[string]float64{"rsi_floor": 60}

	s.NotEqual(ContentHash(p, "1.0.0"), ContentHash(p, "1.1.0"))
	s.Equal(ContentHash(p, "1.0.0"), ContentHash(p, "1.0.0"))
}

func (s *ParamsSuite) TestGetOrCreateDeduplicates() {
	first, err := s.manager.GetOrCreate("nightly", map[string]float64{"rsi_floor": 60, "min_volume_ratio": 1.2})
	s.Require().NoError(err)

	// Same content under a different label resolves to the same set.
	second, err := s.manager.GetOrCreate("adhoc", map[string]float64{"min_volume_ratio": 1.2, "rsi_floor": 60})
	s.Require().NoError(err)

	s.Equal(first.ParamSetID, second.ParamSetID)
	s.Equal("nightly", second.Name)
}

func (s *ParamsSuite) TestGetOrCreateDistinguishesContent() {
	first, err := s.manager.GetOrCreate("a", map[string]float64{"rsi_floor": 60})
	s.Require().NoError(err)

	second, err := s.manager.GetOrCreate("b", map[string]float64{"rsi_floor": 61})
	s.Require().NoError(err)

	s.NotEqual(first.ParamSetID, second.ParamSetID)
	s.NotEqual(first.ContentHash, second.ContentHash)
}

func (s *ParamsSuite) TestGetOrCreateCopiesParams() {
	input := map[string]float64{"rsi_floor": 60}

	ps, err := s.manager.GetOrCreate("a", input)
	s.Require().NoError(err)

	input["rsi_floor"] = 65
	s.Equal(60.0, ps.Params["rsi_floor"])
}

func (s *ParamsSuite) TestValidateRejectsUnknownParameter() {
	_, err := s.manager.GetOrCreate("bad", map[string]float64{"warp_factor": 9})
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeUnknownParameter))
}

func (s *ParamsSuite) TestValidateRejectsOutOfRange() {
	// rsi_floor is declared with range [40, 70].
	_, err := s.manager.GetOrCreate("bad", map[string]float64{"rsi_floor": 95})
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeParameterOutOfRange))
}

func (s *ParamsSuite) TestValidateEngineVersion() {
	s.NoError(ValidateEngineVersion("1.0.0"))
	s.NoError(ValidateEngineVersion(EngineVersion))

	err := ValidateEngineVersion("not-a-version")
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeInvalidEngineVersion))
}

func (s *ParamsSuite) TestVersionCompatibility() {
	s.NoError(CheckVersionCompatibility("1.2.0", "1.2.5"))
	s.NoError(CheckVersionCompatibility("v1.2.0", "1.2.0"))
	s.NoError(CheckVersionCompatibility("main", "1.2.0"))
	s.NoError(CheckVersionCompatibility("1.2.0", "main"))

	s.Error(CheckVersionCompatibility("1.3.0", "1.2.0"))
	s.Error(CheckVersionCompatibility("2.0.0", "1.2.0"))
	s.Error(CheckVersionCompatibility("1.2.0", "garbage"))
}

func TestParamsSuite(t *testing.T) {
	suite.Run(t, new(ParamsSuite))
}
