package strategy

import (
	_ "embed"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/signal-engine/internal/types"
	"github.com/rxtech-lab/signal-engine/pkg/errors"
)

//go:embed strategies.yaml
var defaultCatalogYAML []byte

type catalogFile struct {
	Strategies []types.StrategyMetadata `yaml:"strategies" validate:"required,min=1,dive"`
}

// Catalog is the read-only strategy metadata table. It is loaded once at
// process start and never mutated afterwards, so concurrent readers need no
// synchronization.
type Catalog struct {
	byCode map[string]types.StrategyMetadata
	codes  []string
}

// DefaultCatalog loads the catalog embedded in the binary.
func DefaultCatalog() (*Catalog, error) {
	return newCatalog(defaultCatalogYAML)
}

// LoadCatalog loads a catalog from a YAML file. Changing strategy metadata
// means redeploying config, not engine code.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeCatalogLoadFailed, err, "failed to read catalog file %s", path)
	}

	return newCatalog(data)
}

func newCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCatalogLoadFailed, "failed to parse catalog yaml", err)
	}

	validate := validator.New()
	if err := validate.Struct(&file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCatalogInvalid, "catalog failed validation", err)
	}

	byCode := make(map[string]types.StrategyMetadata, len(file.Strategies))
	codes := make([]string, 0, len(file.Strategies))

	for _, meta := range file.Strategies {
		base, err := ParseBaseStrategy(meta.Code)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeCatalogInvalid, err, "catalog entry %q", meta.Code)
		}

		if base.Side() != meta.Side {
			return nil, errors.Newf(errors.ErrCodeCatalogInvalid,
				"catalog entry %q declares side %s but its code encodes %s", meta.Code, meta.Side, base.Side())
		}

		if _, exists := byCode[meta.Code]; exists {
			return nil, errors.Newf(errors.ErrCodeCatalogInvalid, "duplicate catalog entry %q", meta.Code)
		}

		for name, value := range meta.Defaults {
			r, ok := meta.Ranges[name]
			if !ok {
				return nil, errors.Newf(errors.ErrCodeCatalogInvalid,
					"catalog entry %q has no range for parameter %q", meta.Code, name)
			}

			if !r.Contains(value) {
				return nil, errors.Newf(errors.ErrCodeCatalogInvalid,
					"catalog entry %q default %q=%v outside range [%v, %v]",
					meta.Code, name, value, r.Min, r.Max)
			}
		}

		byCode[meta.Code] = meta
		codes = append(codes, meta.Code)
	}

	// Evaluation iterates every engine strategy, so a catalog must describe
	// all of them.
	for _, base := range AllStrategies() {
		if _, ok := byCode[string(base)]; !ok {
			return nil, errors.Newf(errors.ErrCodeCatalogInvalid,
				"catalog is missing strategy %s", base)
		}
	}

	sort.Strings(codes)

	return &Catalog{byCode: byCode, codes: codes}, nil
}

// Get returns the metadata for a base strategy code.
func (c *Catalog) Get(code string) (types.StrategyMetadata, error) {
	meta, ok := c.byCode[code]
	if !ok {
		return types.StrategyMetadata{}, errors.Newf(errors.ErrCodeUnknownStrategy,
			"strategy %q is not in the catalog", code)
	}

	return meta, nil
}

// Has reports whether a base strategy code is in the catalog.
func (c *Catalog) Has(code string) bool {
	_, ok := c.byCode[code]

	return ok
}

// Codes returns all catalog codes in sorted order.
func (c *Catalog) Codes() []string {
	out := make([]string, len(c.codes))
	copy(out, c.codes)

	return out
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.byCode)
}
