// Package refrigerant holds saturation property tables for the supported
// refrigerants and answers pressure/temperature lookups against them.
//
// A Catalog is immutable once loaded. Every method is safe for concurrent
// use without locking.
package refrigerant

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/mrhapile/hvac-diagnoser/pkg/types"
	"gopkg.in/yaml.v3"
)

const catalogName = "refrigerant"

// Entry is one row of a saturation table.
type Entry struct {
	Pressure       float64 `json:"pressure" yaml:"pressure"`
	Temperature    float64 `json:"temperature" yaml:"temperature"`
	LiquidEnthalpy float64 `json:"liquid_enthalpy" yaml:"liquid_enthalpy"`
	VaporEnthalpy  float64 `json:"vapor_enthalpy" yaml:"vapor_enthalpy"`
	LiquidEntropy  float64 `json:"liquid_entropy" yaml:"liquid_entropy"`
	VaporEntropy   float64 `json:"vapor_entropy" yaml:"vapor_entropy"`
}

type refrigerantFile struct {
	Refrigerants []refrigerantRecord `yaml:"refrigerants"`
}

type refrigerantRecord struct {
	ID                  string   `yaml:"id"`
	Description         string   `yaml:"description"`
	Aliases             []string `yaml:"aliases"`
	CriticalPressure    float64  `yaml:"critical_pressure"`
	CriticalTemperature float64  `yaml:"critical_temperature"`
	VaporSpecificHeat   float64  `yaml:"vapor_specific_heat"`
	Saturation          []Entry  `yaml:"saturation"`
}

// Refrigerant is the immutable reference data for one refrigerant.
type Refrigerant struct {
	id                  string
	description         string
	aliases             []string
	criticalPressure    float64
	criticalTemperature float64
	vaporSpecificHeat   float64
	table               []Entry
}

func (r *Refrigerant) ID() string                   { return r.id }
func (r *Refrigerant) Description() string          { return r.description }
func (r *Refrigerant) CriticalPressure() float64    { return r.criticalPressure }
func (r *Refrigerant) CriticalTemperature() float64 { return r.criticalTemperature }

// VaporSpecificHeat is the superheated-vapor specific heat proxy in Btu/lb·°F
// used to extend enthalpy and entropy beyond the saturated vapor line.
func (r *Refrigerant) VaporSpecificHeat() float64 { return r.vaporSpecificHeat }

// Aliases returns a copy of the alternative ids.
func (r *Refrigerant) Aliases() []string {
	return append([]string(nil), r.aliases...)
}

// Entries returns a copy of the saturation table ordered by pressure.
func (r *Refrigerant) Entries() []Entry {
	return append([]Entry(nil), r.table...)
}

// PressureRange returns the lowest and highest tabulated pressures.
func (r *Refrigerant) PressureRange() (float64, float64) {
	return r.table[0].Pressure, r.table[len(r.table)-1].Pressure
}

// TemperatureRange returns the lowest and highest tabulated temperatures.
func (r *Refrigerant) TemperatureRange() (float64, float64) {
	return r.table[0].Temperature, r.table[len(r.table)-1].Temperature
}

// Catalog is a loaded, read-only set of refrigerants.
type Catalog struct {
	byKey map[string]*Refrigerant
	ids   []string
}

// Default parses the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Load(builtinTables)
}

// LoadFile reads and parses a catalog YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read refrigerant catalog %s: %w", path, err)
	}
	return Load(data)
}

// Load parses catalog YAML and runs the structural checks. Any violation
// is a *types.CatalogError.
func Load(data []byte) (*Catalog, error) {
	var file refrigerantFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &types.CatalogError{Catalog: catalogName, Reason: err.Error()}
	}
	if len(file.Refrigerants) == 0 {
		return nil, &types.CatalogError{Catalog: catalogName, Reason: "no refrigerants defined"}
	}

	c := &Catalog{byKey: make(map[string]*Refrigerant)}
	for _, rec := range file.Refrigerants {
		ref, err := build(rec)
		if err != nil {
			return nil, err
		}
		for _, key := range append([]string{rec.ID}, rec.Aliases...) {
			k := normalizeID(key)
			if _, dup := c.byKey[k]; dup {
				return nil, &types.CatalogError{Catalog: catalogName, Entry: rec.ID,
					Reason: fmt.Sprintf("id or alias %q is already defined", key)}
			}
			c.byKey[k] = ref
		}
		c.ids = append(c.ids, ref.id)
	}
	sort.Strings(c.ids)
	return c, nil
}

func build(rec refrigerantRecord) (*Refrigerant, error) {
	fail := func(format string, args ...any) error {
		return &types.CatalogError{Catalog: catalogName, Entry: rec.ID, Reason: fmt.Sprintf(format, args...)}
	}

	if strings.TrimSpace(rec.ID) == "" {
		return nil, &types.CatalogError{Catalog: catalogName, Reason: "refrigerant without id"}
	}
	if len(rec.Saturation) < 2 {
		return nil, fail("saturation table needs at least 2 entries, got %d", len(rec.Saturation))
	}
	if !(rec.VaporSpecificHeat > 0) {
		return nil, fail("vapor_specific_heat must be positive")
	}

	for i, e := range rec.Saturation {
		for _, v := range []float64{e.Pressure, e.Temperature, e.LiquidEnthalpy, e.VaporEnthalpy, e.LiquidEntropy, e.VaporEntropy} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fail("entry %d has a non-finite value", i)
			}
		}
		if e.Pressure <= 0 {
			return nil, fail("entry %d has non-positive pressure %.3f", i, e.Pressure)
		}
		if e.VaporEnthalpy <= e.LiquidEnthalpy {
			return nil, fail("entry %d vapor enthalpy %.3f is not above liquid enthalpy %.3f",
				i, e.VaporEnthalpy, e.LiquidEnthalpy)
		}
		if i == 0 {
			continue
		}
		prev := rec.Saturation[i-1]
		if e.Pressure <= prev.Pressure {
			return nil, fail("pressures must be strictly increasing (entry %d: %.3f after %.3f)",
				i, e.Pressure, prev.Pressure)
		}
		if e.Temperature <= prev.Temperature {
			return nil, fail("temperatures must be strictly increasing (entry %d: %.3f after %.3f)",
				i, e.Temperature, prev.Temperature)
		}
	}

	last := rec.Saturation[len(rec.Saturation)-1]
	if rec.CriticalPressure <= last.Pressure {
		return nil, fail("critical pressure %.3f must exceed the last table pressure %.3f",
			rec.CriticalPressure, last.Pressure)
	}
	if rec.CriticalTemperature <= last.Temperature {
		return nil, fail("critical temperature %.3f must exceed the last table temperature %.3f",
			rec.CriticalTemperature, last.Temperature)
	}

	return &Refrigerant{
		id:                  rec.ID,
		description:         rec.Description,
		aliases:             append([]string(nil), rec.Aliases...),
		criticalPressure:    rec.CriticalPressure,
		criticalTemperature: rec.CriticalTemperature,
		vaporSpecificHeat:   rec.VaporSpecificHeat,
		table:               append([]Entry(nil), rec.Saturation...),
	}, nil
}

// normalizeID folds case, dashes and spaces, and adds the R prefix, so
// "r-410a", "R410A" and "410A" resolve to the same key.
func normalizeID(id string) string {
	k := strings.ToUpper(strings.TrimSpace(id))
	k = strings.NewReplacer("-", "", " ", "", "_", "").Replace(k)
	if k != "" && !strings.HasPrefix(k, "R") && !strings.HasPrefix(k, "HFC") && !strings.HasPrefix(k, "HCFC") {
		k = "R" + k
	}
	return k
}

// Lookup resolves an id or alias.
func (c *Catalog) Lookup(id string) (*Refrigerant, error) {
	ref, ok := c.byKey[normalizeID(id)]
	if !ok {
		return nil, &types.UnknownRefrigerantError{ID: id}
	}
	return ref, nil
}

// IDs returns the canonical refrigerant ids, sorted.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.ids...)
}

// LookupByPressure returns saturation properties at pressure p (psia).
func (c *Catalog) LookupByPressure(id string, p float64) (SaturationPoint, error) {
	ref, err := c.Lookup(id)
	if err != nil {
		return SaturationPoint{}, err
	}
	return ref.AtPressure(p)
}

// LookupByTemperature returns saturation properties at temperature t (°F).
func (c *Catalog) LookupByTemperature(id string, t float64) (SaturationPoint, error) {
	ref, err := c.Lookup(id)
	if err != nil {
		return SaturationPoint{}, err
	}
	return ref.AtTemperature(t)
}
