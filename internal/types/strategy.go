package types

type StrategySide string

const (
	StrategySideBuy  StrategySide = "B"
	StrategySideSell StrategySide = "S"
)

type StrategyCategory string

const (
	StrategyCategoryBreakout      StrategyCategory = "breakout"
	StrategyCategoryMeanReversion StrategyCategory = "mean_reversion"
	StrategyCategoryTrend         StrategyCategory = "trend"
	StrategyCategoryDivergence    StrategyCategory = "divergence"
	StrategyCategoryLevel         StrategyCategory = "level"
)

// ParameterRange is the permitted [Min, Max] interval for one tunable
// parameter.
type ParameterRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains reports whether v lies within the range (inclusive).
func (r ParameterRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// StrategyMetadata describes one base strategy. It is external configuration:
// loaded once at startup, read-only at runtime, safe for concurrent readers.
type StrategyMetadata struct {
	// Code is the 4-char base strategy code: side char + 3-letter mnemonic
	Code string `yaml:"code" validate:"required,len=4"`
	// Name is the human-readable strategy name
	Name string `yaml:"name" validate:"required"`
	// Side is B or S and must match the code's first character
	Side StrategySide `yaml:"side" validate:"required,oneof=B S"`
	// Category groups strategies by heuristic family
	Category StrategyCategory `yaml:"category" validate:"required,oneof=breakout mean_reversion trend divergence level"`
	// Required lists indicators the ladder cannot evaluate without
	Required []IndicatorType `yaml:"required" validate:"required,min=1"`
	// Optional lists indicators that raise levels but whose absence only
	// suppresses the levels depending on them
	Optional []IndicatorType `yaml:"optional"`
	// Defaults holds the default value for every tunable parameter
	Defaults map[string]float64 `yaml:"defaults"`
	// Ranges holds the permitted interval for every tunable parameter
	Ranges map[string]ParameterRange `yaml:"ranges"`
	// SuitedConditions lists market-condition labels the strategy fits,
	// used by contextual validation (advisory only)
	SuitedConditions []string `yaml:"suited_conditions"`
}
