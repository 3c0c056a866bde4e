package refrigerant

import (
	"math"
	"sort"

	"github.com/mrhapile/hvac-diagnoser/pkg/types"
)

// SaturationPoint is the interpolated state on the saturation curve.
type SaturationPoint struct {
	Pressure       float64 `json:"pressure"`
	Temperature    float64 `json:"temperature"`
	LiquidEnthalpy float64 `json:"liquid_enthalpy"`
	VaporEnthalpy  float64 `json:"vapor_enthalpy"`
	LiquidEntropy  float64 `json:"liquid_entropy"`
	VaporEntropy   float64 `json:"vapor_entropy"`

	// LiquidSlope is dh_f/dT over the bracketing interval (Btu/lb·°F). It is
	// the liquid specific-heat proxy used for subcooling corrections.
	LiquidSlope float64 `json:"liquid_slope"`
}

// LatentHeat returns h_g - h_f.
func (s SaturationPoint) LatentHeat() float64 {
	return s.VaporEnthalpy - s.LiquidEnthalpy
}

// AtPressure interpolates the saturation table at pressure p (psia).
func (r *Refrigerant) AtPressure(p float64) (SaturationPoint, error) {
	lo, hi := r.PressureRange()
	if math.IsNaN(p) || p < lo || p > hi {
		return SaturationPoint{}, &types.OutOfRangeError{
			Refrigerant: r.id, Quantity: "pressure", Value: p, Min: lo, Max: hi,
		}
	}
	i := sort.Search(len(r.table), func(i int) bool { return r.table[i].Pressure >= p })
	return r.pointAt(i, p, true), nil
}

// AtTemperature interpolates the saturation table at temperature t (°F).
func (r *Refrigerant) AtTemperature(t float64) (SaturationPoint, error) {
	lo, hi := r.TemperatureRange()
	if math.IsNaN(t) || t < lo || t > hi {
		return SaturationPoint{}, &types.OutOfRangeError{
			Refrigerant: r.id, Quantity: "temperature", Value: t, Min: lo, Max: hi,
		}
	}
	i := sort.Search(len(r.table), func(i int) bool { return r.table[i].Temperature >= t })
	return r.pointAt(i, t, false), nil
}

// pointAt builds the point for a query q whose first entry with key >= q is
// i. The key is pressure when byPressure is set, temperature otherwise.
// Exact hits return the row itself so tabulated values round-trip unchanged.
func (r *Refrigerant) pointAt(i int, q float64, byPressure bool) SaturationPoint {
	key := func(e Entry) float64 {
		if byPressure {
			return e.Pressure
		}
		return e.Temperature
	}
	if key(r.table[i]) == q {
		lower, upper := i, i+1
		if upper == len(r.table) {
			lower, upper = i-1, i
		}
		pt := fromEntry(r.table[i])
		pt.LiquidSlope = slope(r.table[lower], r.table[upper])
		return pt
	}

	a, b := r.table[i-1], r.table[i]
	f := (q - key(a)) / (key(b) - key(a))
	lerp := func(x, y float64) float64 { return x + f*(y-x) }

	pt := SaturationPoint{
		Pressure:       lerp(a.Pressure, b.Pressure),
		Temperature:    lerp(a.Temperature, b.Temperature),
		LiquidEnthalpy: lerp(a.LiquidEnthalpy, b.LiquidEnthalpy),
		VaporEnthalpy:  lerp(a.VaporEnthalpy, b.VaporEnthalpy),
		LiquidEntropy:  lerp(a.LiquidEntropy, b.LiquidEntropy),
		VaporEntropy:   lerp(a.VaporEntropy, b.VaporEntropy),
		LiquidSlope:    slope(a, b),
	}
	// keep the queried coordinate exact
	if byPressure {
		pt.Pressure = q
	} else {
		pt.Temperature = q
	}
	return pt
}

func fromEntry(e Entry) SaturationPoint {
	return SaturationPoint{
		Pressure:       e.Pressure,
		Temperature:    e.Temperature,
		LiquidEnthalpy: e.LiquidEnthalpy,
		VaporEnthalpy:  e.VaporEnthalpy,
		LiquidEntropy:  e.LiquidEntropy,
		VaporEntropy:   e.VaporEntropy,
	}
}

func slope(a, b Entry) float64 {
	return (b.LiquidEnthalpy - a.LiquidEnthalpy) / (b.Temperature - a.Temperature)
}
