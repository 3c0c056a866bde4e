// Package rules holds the fault signature catalog: the named patterns of
// cycle-metric deviations the diagnostic engine scores against.
package rules

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mrhapile/hvac-diagnoser/pkg/types"
	"github.com/mrhapile/hvac-diagnoser/pkg/validation"
	"gopkg.in/yaml.v3"
)

const catalogName = "fault signature"

type signatureFile struct {
	Signatures []signatureRecord `yaml:"signatures" validate:"required,min=1,dive"`
}

type signatureRecord struct {
	Name        string            `yaml:"name" validate:"required"`
	Category    string            `yaml:"category" validate:"required"`
	Description string            `yaml:"description"`
	Remedy      string            `yaml:"remedy"`
	Indicators  []indicatorRecord `yaml:"indicators" validate:"required,min=1,dive"`
}

type indicatorRecord struct {
	Metric   string          `yaml:"metric" validate:"required"`
	Expected types.Direction `yaml:"expected" validate:"required"`
	Weight   float64         `yaml:"weight" validate:"finite,gte=0"`
	Band     bandRecord      `yaml:"band"`
}

type bandRecord struct {
	Low  float64 `yaml:"low" validate:"finite"`
	High float64 `yaml:"high" validate:"finite,gtefield=Low"`
}

// Catalog is a loaded, read-only, ordered set of fault signatures.
type Catalog struct {
	signatures []types.FaultSignature
	byName     map[string]int
}

// Default parses the signatures embedded in the binary.
func Default() (*Catalog, error) {
	return Load(builtinSignatures)
}

// LoadFile reads and parses a signature YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fault signature catalog %s: %w", path, err)
	}
	return Load(data)
}

// Load parses signature YAML. Structural problems are *types.CatalogError.
func Load(data []byte) (*Catalog, error) {
	var file signatureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &types.CatalogError{Catalog: catalogName, Reason: err.Error()}
	}
	if err := validation.Struct(file); err != nil {
		return nil, shapeError(err)
	}

	sigs := make([]types.FaultSignature, 0, len(file.Signatures))
	for _, rec := range file.Signatures {
		sig := types.FaultSignature{
			Name:        strings.TrimSpace(rec.Name),
			Category:    rec.Category,
			Description: rec.Description,
			Remedy:      rec.Remedy,
		}
		for _, ind := range rec.Indicators {
			sig.Indicators = append(sig.Indicators, types.Indicator{
				Metric:   ind.Metric,
				Expected: ind.Expected,
				Weight:   ind.Weight,
				Band:     types.Band{Low: ind.Band.Low, High: ind.Band.High},
			})
		}
		sigs = append(sigs, sig)
	}
	return New(sigs)
}

// New builds a catalog from signatures supplied in code. The same checks as
// Load apply; a signature with zero total weight is rejected here, never
// at diagnosis time.
func New(signatures []types.FaultSignature) (*Catalog, error) {
	if len(signatures) == 0 {
		return nil, &types.CatalogError{Catalog: catalogName, Reason: "no signatures defined"}
	}

	c := &Catalog{byName: make(map[string]int, len(signatures))}
	for _, sig := range signatures {
		if err := check(sig); err != nil {
			return nil, err
		}
		if _, dup := c.byName[sig.Name]; dup {
			return nil, &types.CatalogError{Catalog: catalogName, Entry: sig.Name, Reason: "duplicate signature name"}
		}
		c.byName[sig.Name] = len(c.signatures)
		c.signatures = append(c.signatures, clone(sig))
	}
	return c, nil
}

func check(sig types.FaultSignature) error {
	fail := func(format string, args ...any) error {
		return &types.CatalogError{Catalog: catalogName, Entry: sig.Name, Reason: fmt.Sprintf(format, args...)}
	}

	if strings.TrimSpace(sig.Name) == "" {
		return &types.CatalogError{Catalog: catalogName, Reason: "signature without name"}
	}
	if len(sig.Indicators) == 0 {
		return fail("no indicators")
	}
	for i, ind := range sig.Indicators {
		if !types.IsKnownMetric(ind.Metric) {
			return fail("indicator %d references unknown metric %q", i, ind.Metric)
		}
		if !ind.Expected.Valid() {
			return fail("indicator %d has invalid expected direction %q", i, ind.Expected)
		}
		if math.IsNaN(ind.Weight) || math.IsInf(ind.Weight, 0) || ind.Weight < 0 {
			return fail("indicator %d has invalid weight %v", i, ind.Weight)
		}
		if ind.Band.Low > ind.Band.High {
			return fail("indicator %d band low %.3f is above high %.3f", i, ind.Band.Low, ind.Band.High)
		}
	}
	if !(sig.TotalWeight() > 0) {
		return fail("total indicator weight must be positive")
	}
	return nil
}

func shapeError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &types.CatalogError{
			Catalog: catalogName,
			Entry:   fe.Namespace(),
			Reason:  fmt.Sprintf("failed %q check", fe.Tag()),
		}
	}
	return &types.CatalogError{Catalog: catalogName, Reason: err.Error()}
}

func clone(sig types.FaultSignature) types.FaultSignature {
	sig.Indicators = append([]types.Indicator(nil), sig.Indicators...)
	return sig
}

// All returns the signatures in catalog order. The slice is a copy.
func (c *Catalog) All() []types.FaultSignature {
	out := make([]types.FaultSignature, len(c.signatures))
	for i, sig := range c.signatures {
		out[i] = clone(sig)
	}
	return out
}

// Get returns the signature with the given name.
func (c *Catalog) Get(name string) (types.FaultSignature, bool) {
	i, ok := c.byName[name]
	if !ok {
		return types.FaultSignature{}, false
	}
	return clone(c.signatures[i]), true
}

// Len returns the number of signatures.
func (c *Catalog) Len() int {
	return len(c.signatures)
}
