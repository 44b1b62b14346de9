package validation

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/signal-engine/internal/strategy"
	"github.com/rxtech-lab/signal-engine/internal/types"
	"github.com/rxtech-lab/signal-engine/pkg/errors"
)

type ValidationSuite struct {
	suite.Suite
	validator *Validator
}

func (s *ValidationSuite) SetupTest() {
	catalog, err := strategy.DefaultCatalog()
	s.Require().NoError(err)

	s.validator = NewValidator(catalog)
}

func (s *ValidationSuite) TestValidCode() {
	result := s.validator.ValidateSignalCode("BBRK7")
	s.True(result.Valid)
	s.Empty(result.Errors)
	s.Empty(result.Warnings)
}

func (s *ValidationSuite) TestStrengthZeroRejected() {
	result := s.validator.ValidateSignalCode("BBRK0")
	s.False(result.Valid)
	s.Require().Len(result.Errors, 1)
	s.Contains(result.Errors[0], "strength 0 is outside 1-9")
}

func (s *ValidationSuite) TestUnknownSideSuggestsNearestCode() {
	result := s.validator.ValidateSignalCode("XYZZ5")
	s.False(result.Valid)
	s.Require().NotEmpty(result.Errors)
	s.Contains(result.Errors[0], "side B or S")
	s.Require().NotEmpty(result.Suggestions)
}

func (s *ValidationSuite) TestUnknownStrategySuggestsNearestCode() {
	// BBRX is one edit away from BBRK.
	result := s.validator.ValidateSignalCode("BBRX5")
	s.False(result.Valid)
	s.Require().Len(result.Errors, 1)
	s.Contains(result.Errors[0], "unknown strategy")
	s.Require().Len(result.Suggestions, 1)
	s.Contains(result.Suggestions[0], "BBRK")
}

func (s *ValidationSuite) TestSideMismatchSuggestsCorrection() {
	// BDN is the SBDN mnemonic under the wrong side char.
	result := s.validator.ValidateSignalCode("BBDN5")
	s.False(result.Valid)
	s.Require().NotEmpty(result.Errors)
	s.Require().NotEmpty(result.Suggestions)
	s.Contains(result.Suggestions[0], "SBDN5")
}

func (s *ValidationSuite) TestBoundaryStrengthWarnings() {
	low := s.validator.ValidateSignalCode("BBRK2")
	s.True(low.Valid)
	s.Require().Len(low.Warnings, 1)
	s.Contains(low.Warnings[0], "low confidence")

	high := s.validator.ValidateSignalCode("BBRK9")
	s.True(high.Valid)
	s.Require().Len(high.Warnings, 1)
	s.Contains(high.Warnings[0], "rare")

	mid := s.validator.ValidateSignalCode("BBRK5")
	s.True(mid.Valid)
	s.Empty(mid.Warnings)
}

func (s *ValidationSuite) TestMalformedShapes() {
	for _, code := range []string{"", "BBRK", "BBRK77", "BbRK5", "B1RK5"} {
		result := s.validator.ValidateSignalCode(code)
		s.False(result.Valid, "code %q should be rejected", code)
	}
}

func (s *ValidationSuite) TestRoundTrip() {
	// Any accepted code parses and re-serializes to the identical string.
	for _, base := range strategy.AllStrategies() {
		for strength := 1; strength <= 9; strength++ {
			code := types.FormatStrategyKey(string(base), strength)
			result := s.validator.ValidateSignalCode(code)
			s.Require().True(result.Valid, "code %q should be accepted", code)

			parsed, err := ParseSignalCode(code)
			s.Require().NoError(err)
			s.Equal(code, parsed.String())
		}
	}
}

func (s *ValidationSuite) TestParseRejectsStrengthZero() {
	_, err := ParseSignalCode("BBRK0")
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeStrengthOutOfRange))
}

func (s *ValidationSuite) TestContextMissingIndicators() {
	result := s.validator.ValidateSignalCodeInContext("BBRK5", Context{
		AvailableIndicators: []types.IndicatorType{types.IndicatorTypeRSI},
	})
	s.True(result.Valid)
	s.Require().NotEmpty(result.Warnings)
	s.Contains(result.Warnings[0], "required indicators unavailable")
}

func (s *ValidationSuite) TestContextUnsuitedMarketCondition() {
	result := s.validator.ValidateSignalCodeInContext("BMRV5", Context{
		MarketCondition: "trending",
	})
	s.True(result.Valid)
	s.Require().NotEmpty(result.Warnings)
	s.Contains(result.Warnings[0], "not well-suited")
}

func (s *ValidationSuite) TestContextSuitedConditionIsQuiet() {
	result := s.validator.ValidateSignalCodeInContext("BMRV5", Context{
		MarketCondition: "ranging",
	})
	s.True(result.Valid)
	s.Empty(result.Warnings)
}

func (s *ValidationSuite) TestValidateParameters() {
	ok := s.validator.ValidateParameters("BBRK", map[string]float64{"rsi_floor": 60})
	s.True(ok.Valid)

	outOfRange := s.validator.ValidateParameters("BBRK", map[string]float64{"rsi_floor": 95})
	s.False(outOfRange.Valid)
	s.Require().Len(outOfRange.Errors, 1)
	s.Contains(outOfRange.Errors[0], "outside")

	unknown := s.validator.ValidateParameters("BBRK", map[string]float64{"warp_factor": 1})
	s.False(unknown.Valid)
	s.Contains(unknown.Errors[0], "not tunable")
}

func (s *ValidationSuite) TestValidateStrategyDefinition() {
	meta := types.StrategyMetadata{
		Code:     "BTST",
		Name:     "Test",
		Side:     types.StrategySideBuy,
		Category: types.StrategyCategoryTrend,
		Required: []types.IndicatorType{types.IndicatorTypeEMA},
		Defaults: map[string]float64{"x": 5},
		Ranges:   map[string]types.ParameterRange{"x": {Min: 0, Max: 10}},
	}

	s.True(s.validator.ValidateStrategyDefinition(meta).Valid)

	bad := meta
	bad.Defaults = map[string]float64{"x": 50}
	s.False(s.validator.ValidateStrategyDefinition(bad).Valid)

	mismatch := meta
	mismatch.Side = types.StrategySideSell
	result := s.validator.ValidateStrategyDefinition(mismatch)
	s.False(result.Valid)
	s.Require().NotEmpty(result.Suggestions)
	s.Contains(result.Suggestions[0], "STST")
}

func (s *ValidationSuite) TestLevenshtein() {
	s.Equal(0, levenshtein("BBRK", "BBRK"))
	s.Equal(1, levenshtein("BBRX", "BBRK"))
	s.Equal(4, levenshtein("", "BBRK"))
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationSuite))
}
