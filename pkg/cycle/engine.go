// Package cycle turns a field reading into a CycleState: saturation
// temperatures, superheat, subcooling, compression ratio, four approximate
// state points and the derived performance figures.
//
// Compute is pure. The same reading against the same catalog always yields
// an identical CycleState.
package cycle

import (
	"fmt"
	"math"

	"github.com/mrhapile/hvac-diagnoser/pkg/refrigerant"
	"github.com/mrhapile/hvac-diagnoser/pkg/types"
	"github.com/mrhapile/hvac-diagnoser/pkg/validation"
)

// DefaultIsentropicEfficiency is used to estimate discharge enthalpy when no
// discharge-line temperature was measured.
const DefaultIsentropicEfficiency = 0.75

// Thresholds for advisory warnings.
const (
	nearCriticalFraction = 0.9
	freezingPoint        = 32.0
)

// Options tune the approximations used by the engine.
type Options struct {
	// IsentropicEfficiency in (0, 1]. Zero selects DefaultIsentropicEfficiency.
	IsentropicEfficiency float64 `json:"isentropic_efficiency" yaml:"isentropic_efficiency"`
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{IsentropicEfficiency: DefaultIsentropicEfficiency}
}

func (o Options) efficiency() float64 {
	if o.IsentropicEfficiency <= 0 || o.IsentropicEfficiency > 1 {
		return DefaultIsentropicEfficiency
	}
	return o.IsentropicEfficiency
}

// Engine computes cycle states against one refrigerant catalog.
type Engine struct {
	catalog *refrigerant.Catalog
	opts    Options
}

// NewEngine binds an engine to a catalog. The catalog is only read.
func NewEngine(catalog *refrigerant.Catalog, opts Options) *Engine {
	return &Engine{catalog: catalog, opts: opts}
}

// Compute builds the CycleState for a reading.
//
// Errors: *types.IncompleteReadingError and *types.InvalidReadingError from
// validation, *types.UnknownRefrigerantError and *types.OutOfRangeError from
// the catalog. No partial state is returned with an error.
func (e *Engine) Compute(reading types.FieldReading) (types.CycleState, error) {
	if err := validation.Reading(reading); err != nil {
		return types.CycleState{}, err
	}
	r := reading.Absolute()

	ref, err := e.catalog.Lookup(r.Refrigerant)
	if err != nil {
		return types.CycleState{}, err
	}

	ps, pd := *r.SuctionPressure, *r.DischargePressure

	evap, err := ref.AtPressure(ps)
	if err != nil {
		return types.CycleState{}, fmt.Errorf("suction pressure: %w", err)
	}
	cond, err := ref.AtPressure(pd)
	if err != nil {
		return types.CycleState{}, fmt.Errorf("discharge pressure: %w", err)
	}

	ratio, err := CompressionRatio(ps, pd)
	if err != nil {
		return types.CycleState{}, err
	}

	state := types.CycleState{
		Refrigerant:            ref.ID(),
		SuctionPressure:        ps,
		DischargePressure:      pd,
		EvaporatingTemperature: evap.Temperature,
		CondensingTemperature:  cond.Temperature,
		Superheat:              Superheat(r.SuctionLineTemp, evap.Temperature),
		Subcooling:             Subcooling(r.LiquidLineTemp, cond.Temperature),
		CompressionRatio:       ratio,
	}

	if state.Superheat.Available() && state.Superheat.Value < 0 {
		state.Warnings = append(state.Warnings, types.Warning{
			Code:    types.WarningNegativeSuperheat,
			Message: "suction line is colder than saturation; liquid may be returning to the compressor",
			Value:   state.Superheat.Value,
		})
	}
	if state.Subcooling.Available() && state.Subcooling.Value < 0 {
		state.Warnings = append(state.Warnings, types.Warning{
			Code:    types.WarningNegativeSubcooling,
			Message: "liquid line is warmer than saturation; flash gas is likely at the metering device",
			Value:   state.Subcooling.Value,
		})
	}

	m := model{ref: ref, evap: evap, cond: cond, efficiency: e.opts.efficiency()}
	points, estimatedDischarge := m.statePoints(state.Superheat, state.Subcooling, r.DischargeLineTemp)
	state.StatePoints = points
	if estimatedDischarge {
		state.Warnings = append(state.Warnings, types.Warning{
			Code:    types.WarningEstimatedDischarge,
			Message: fmt.Sprintf("discharge state estimated from suction entropy at %.0f%% isentropic efficiency", m.efficiency*100),
			Value:   points.Discharge.Temperature,
		})
	}

	if loc, ok := nonFinite(points); ok {
		return types.CycleState{}, &types.InvalidReadingError{
			Field:  "reading",
			Reason: fmt.Sprintf("%s state point is not physically representable", loc),
		}
	}

	state.Performance = performance(points, evap.Temperature, cond.Temperature)
	state.Airside = airside(r, evap.Temperature, cond.Temperature)

	if pd > nearCriticalFraction*ref.CriticalPressure() {
		state.Warnings = append(state.Warnings, types.Warning{
			Code:    types.WarningNearCritical,
			Message: fmt.Sprintf("discharge pressure is above %.0f%% of the critical pressure %.1f psia", nearCriticalFraction*100, ref.CriticalPressure()),
			Value:   pd,
		})
	}
	if evap.Temperature < freezingPoint {
		state.Warnings = append(state.Warnings, types.Warning{
			Code:    types.WarningCoilBelowFreezing,
			Message: "evaporating temperature is below freezing; coil icing is possible on comfort cooling systems",
			Value:   evap.Temperature,
		})
	}

	return state, nil
}

// nonFinite reports the first state point holding a NaN or infinite value.
func nonFinite(points types.StatePoints) (types.Location, bool) {
	for _, pt := range []types.StatePoint{points.Suction, points.Discharge, points.LiquidLine, points.EvaporatorInlet} {
		vals := []float64{pt.Pressure, pt.Temperature, pt.Enthalpy, pt.Entropy}
		if pt.Quality != nil {
			vals = append(vals, *pt.Quality)
		}
		for _, v := range vals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return pt.Location, true
			}
		}
	}
	return "", false
}

// Superheat is the suction-line temperature minus the evaporating
// temperature. Negative values are kept; they are evidence of flood-back.
func Superheat(suctionLineTemp *float64, evaporating float64) types.Measurement {
	if suctionLineTemp == nil {
		return types.Absent("suction_line_temp not supplied")
	}
	return types.Present(*suctionLineTemp - evaporating)
}

// Subcooling is the condensing temperature minus the liquid-line
// temperature. Negative values are kept.
func Subcooling(liquidLineTemp *float64, condensing float64) types.Measurement {
	if liquidLineTemp == nil {
		return types.Absent("liquid_line_temp not supplied")
	}
	return types.Present(condensing - *liquidLineTemp)
}

// CompressionRatio is discharge over suction, both absolute.
func CompressionRatio(suction, discharge float64) (float64, error) {
	if suction <= 0 {
		return 0, &types.InvalidReadingError{
			Field:  "suction_pressure",
			Reason: fmt.Sprintf("must be greater than 0 psia, got %v", suction),
		}
	}
	return discharge / suction, nil
}
