// Package validation checks signal codes and strategy/parameter definitions
// before they are persisted or accepted from an external caller. Failures are
// returned as structured results, never as errors, so a batch of submissions
// can be reported in full.
package validation

import (
	"fmt"
	"sort"

	"github.com/rxtech-lab/signal-engine/internal/strategy"
	"github.com/rxtech-lab/signal-engine/internal/types"
	"github.com/rxtech-lab/signal-engine/pkg/errors"
)

// ValidationResult is the caller-facing outcome of one validation. Errors
// block acceptance; warnings and suggestions are advisory.
type ValidationResult struct {
	Valid       bool
	Errors      []string
	Warnings    []string
	Suggestions []string
}

func (r *ValidationResult) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Valid = false
}

func (r *ValidationResult) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) addSuggestion(format string, args ...any) {
	r.Suggestions = append(r.Suggestions, fmt.Sprintf(format, args...))
}

// ParsedSignal is the decomposed form of a well-shaped signal code.
type ParsedSignal struct {
	Side         types.StrategySide
	BaseStrategy string
	Strength     int
}

// String re-serializes the parsed signal to its code form. For any code
// accepted by the validator, ParseSignalCode followed by String yields the
// identical string.
func (p ParsedSignal) String() string {
	return types.FormatStrategyKey(p.BaseStrategy, p.Strength)
}

// ParseSignalCode splits a signal code into (side, base strategy, strength).
// Shape only: the base strategy is not checked against any catalog.
func ParseSignalCode(code string) (ParsedSignal, error) {
	if len(code) != 5 {
		return ParsedSignal{}, errors.Newf(errors.ErrCodeInvalidSignalFormat,
			"signal code %q must be 5 characters (side + 3 letters + strength digit)", code)
	}

	side := code[0]
	if side != 'B' && side != 'S' {
		return ParsedSignal{}, errors.Newf(errors.ErrCodeInvalidSignalFormat,
			"signal code %q must start with side B or S", code)
	}

	for i := 1; i < 4; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return ParsedSignal{}, errors.Newf(errors.ErrCodeInvalidSignalFormat,
				"signal code %q characters 2-4 must be uppercase letters", code)
		}
	}

	digit := code[4]
	if digit < '0' || digit > '9' {
		return ParsedSignal{}, errors.Newf(errors.ErrCodeInvalidSignalFormat,
			"signal code %q must end with a strength digit", code)
	}

	strength := int(digit - '0')
	if strength < 1 {
		return ParsedSignal{}, errors.Newf(errors.ErrCodeStrengthOutOfRange,
			"signal code %q strength %d is outside 1-9", code, strength)
	}

	return ParsedSignal{
		Side:         types.StrategySide(code[:1]),
		BaseStrategy: code[:4],
		Strength:     strength,
	}, nil
}

// Context carries optional caller-supplied evaluation context. Both fields
// are advisory inputs: missing indicators and unsuited market conditions
// produce warnings, never errors.
type Context struct {
	// AvailableIndicators lists the indicators the caller can compute.
	// Nil means unknown, which skips the check entirely.
	AvailableIndicators []types.IndicatorType
	// MarketCondition is a label such as "trending" or "ranging". Empty
	// skips the suitability check.
	MarketCondition string
}

// Validator validates signal codes and parameter definitions against a
// strategy catalog.
type Validator struct {
	catalog *strategy.Catalog
}

// NewValidator creates a validator backed by the given catalog.
func NewValidator(catalog *strategy.Catalog) *Validator {
	return &Validator{catalog: catalog}
}

// ValidateSignalCode format- and cross-checks a signal code.
func (v *Validator) ValidateSignalCode(code string) ValidationResult {
	return v.ValidateSignalCodeInContext(code, Context{})
}

// ValidateSignalCodeInContext validates a signal code and additionally runs
// the advisory contextual checks that ctx enables.
func (v *Validator) ValidateSignalCodeInContext(code string, ctx Context) ValidationResult {
	result := ValidationResult{Valid: true}

	parsed, err := ParseSignalCode(code)
	if err != nil {
		result.addError("%s", validationMessage(err))

		// A 5-char code with a bad side or letters still has a 4-char
		// prefix worth matching against the catalog.
		if len(code) == 5 && errors.HasCode(err, errors.ErrCodeInvalidSignalFormat) {
			if nearest, ok := nearestCode(code[:4], v.catalog.Codes()); ok {
				result.addSuggestion("did you mean %q?", nearest)
			}
		}

		return result
	}

	meta, err := v.catalog.Get(parsed.BaseStrategy)
	if err != nil {
		// The mnemonic may exist under the opposite side char, which is a
		// side mismatch rather than a truly unknown strategy.
		flipped := flipSide(parsed.Side) + parsed.BaseStrategy[1:]
		if v.catalog.Has(flipped) {
			flippedMeta, _ := v.catalog.Get(flipped)
			result.addError("strategy %s is %s-side but the code declares side %s",
				flipped, sideName(flippedMeta.Side), sideName(parsed.Side))
			result.addSuggestion("use %q instead", flipped+code[4:])

			return result
		}

		result.addError("unknown strategy %q", parsed.BaseStrategy)

		if nearest, ok := nearestCode(parsed.BaseStrategy, v.catalog.Codes()); ok {
			result.addSuggestion("did you mean %q?", nearest)
		}

		return result
	}

	switch {
	case parsed.Strength <= 3:
		result.addWarning("strength %d is low confidence", parsed.Strength)
	case parsed.Strength >= 8:
		result.addWarning("strength %d signals are rare; verify the evidence trace", parsed.Strength)
	}

	v.applyContext(&result, meta, ctx)

	return result
}

func (v *Validator) applyContext(result *ValidationResult, meta types.StrategyMetadata, ctx Context) {
	if ctx.AvailableIndicators != nil {
		available := make(map[types.IndicatorType]bool, len(ctx.AvailableIndicators))
		for _, ind := range ctx.AvailableIndicators {
			available[ind] = true
		}

		missing := make([]string, 0)

		for _, required := range meta.Required {
			if !available[required] {
				missing = append(missing, string(required))
			}
		}

		if len(missing) > 0 {
			sort.Strings(missing)
			result.addWarning("required indicators unavailable: %v", missing)
		}
	}

	if ctx.MarketCondition != "" {
		suited := false

		for _, condition := range meta.SuitedConditions {
			if condition == ctx.MarketCondition {
				suited = true

				break
			}
		}

		if !suited {
			result.addWarning("strategy %s is not well-suited to %s markets (suited: %v)",
				meta.Code, ctx.MarketCondition, meta.SuitedConditions)
		}
	}
}

// ValidateParameters checks parameter values for one strategy against its
// registered ranges. Out-of-range values are errors, not warnings.
func (v *Validator) ValidateParameters(code string, params map[string]float64) ValidationResult {
	result := ValidationResult{Valid: true}

	meta, err := v.catalog.Get(code)
	if err != nil {
		result.addError("unknown strategy %q", code)

		if nearest, ok := nearestCode(code, v.catalog.Codes()); ok {
			result.addSuggestion("did you mean %q?", nearest)
		}

		return result
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		rng, ok := meta.Ranges[name]
		if !ok {
			result.addError("parameter %q is not tunable for strategy %s", name, code)

			continue
		}

		if !rng.Contains(params[name]) {
			result.addError("parameter %q value %v is outside [%v, %v]",
				name, params[name], rng.Min, rng.Max)
		}
	}

	return result
}

// ValidateStrategyDefinition checks a caller-supplied strategy definition: a
// well-formed code, declared defaults inside their declared ranges, and every
// range with Min <= Max.
func (v *Validator) ValidateStrategyDefinition(meta types.StrategyMetadata) ValidationResult {
	result := ValidationResult{Valid: true}

	if len(meta.Code) != 4 {
		result.addError("strategy code %q must be 4 characters", meta.Code)
	} else if types.StrategySide(meta.Code[:1]) != meta.Side {
		result.addError("strategy code %q does not match declared side %s", meta.Code, sideName(meta.Side))
		result.addSuggestion("use code %q instead", string(meta.Side)+meta.Code[1:])
	}

	if len(meta.Required) == 0 {
		result.addError("strategy %s declares no required indicators", meta.Code)
	}

	names := make([]string, 0, len(meta.Ranges))
	for name := range meta.Ranges {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		rng := meta.Ranges[name]
		if rng.Min > rng.Max {
			result.addError("parameter %q range [%v, %v] is inverted", name, rng.Min, rng.Max)
		}
	}

	defaults := make([]string, 0, len(meta.Defaults))
	for name := range meta.Defaults {
		defaults = append(defaults, name)
	}

	sort.Strings(defaults)

	for _, name := range defaults {
		rng, ok := meta.Ranges[name]
		if !ok {
			result.addWarning("default for %q has no declared range", name)

			continue
		}

		if !rng.Contains(meta.Defaults[name]) {
			result.addError("default for %q (%v) is outside [%v, %v]",
				name, meta.Defaults[name], rng.Min, rng.Max)
		}
	}

	return result
}

func flipSide(side types.StrategySide) string {
	if side == types.StrategySideBuy {
		return string(types.StrategySideSell)
	}

	return string(types.StrategySideBuy)
}

func sideName(side types.StrategySide) string {
	if side == types.StrategySideBuy {
		return "buy"
	}

	return "sell"
}

// validationMessage strips the numeric code prefix from a structured error so
// caller-facing results read as plain sentences.
func validationMessage(err error) string {
	var structured *errors.Error
	if errors.As(err, &structured) {
		return structured.Message
	}

	return err.Error()
}
