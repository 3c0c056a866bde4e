package cycle

import (
	"math"

	"github.com/mrhapile/hvac-diagnoser/pkg/refrigerant"
	"github.com/mrhapile/hvac-diagnoser/pkg/types"
)

const (
	rankineOffset = 459.67
	// btuPerMinutePerTon is one ton of refrigeration.
	btuPerMinutePerTon = 200.0
)

func rankine(f float64) float64 { return f + rankineOffset }

// model holds the saturation states at both pressures for one reading.
//
// Enthalpy beyond saturation is extended linearly: superheated vapor uses
// the refrigerant's vapor specific-heat proxy, subcooled liquid uses the
// table slope dh_f/dT at the condensing pressure. Entropy uses the same
// proxies with a logarithmic temperature ratio.
type model struct {
	ref        *refrigerant.Refrigerant
	evap       refrigerant.SaturationPoint
	cond       refrigerant.SaturationPoint
	efficiency float64
}

// statePoints returns the four cycle points and whether the discharge point
// had to be estimated.
func (m model) statePoints(superheat, subcooling types.Measurement, dischargeTemp *float64) (types.StatePoints, bool) {
	suction := m.suction(superheat)
	liquid := m.liquidLine(subcooling)

	var discharge types.StatePoint
	estimated := dischargeTemp == nil
	if estimated {
		discharge = m.estimatedDischarge(suction)
	} else {
		discharge = m.measuredDischarge(*dischargeTemp)
	}

	return types.StatePoints{
		Suction:         suction,
		Discharge:       discharge,
		LiquidLine:      liquid,
		EvaporatorInlet: m.evaporatorInlet(liquid),
	}, estimated
}

func (m model) suction(superheat types.Measurement) types.StatePoint {
	cpv := m.ref.VaporSpecificHeat()
	pt := types.StatePoint{
		Location:    types.LocationSuction,
		Pressure:    m.evap.Pressure,
		Temperature: m.evap.Temperature,
		Enthalpy:    m.evap.VaporEnthalpy,
		Entropy:     m.evap.VaporEntropy,
		Phase:       types.PhaseSaturatedVapor,
	}
	if !superheat.Available() {
		pt.Estimated = true
		return pt
	}

	sh := superheat.Value
	pt.Temperature = m.evap.Temperature + sh
	switch {
	case sh > 0:
		pt.Enthalpy = m.evap.VaporEnthalpy + cpv*sh
		pt.Entropy = m.evap.VaporEntropy + cpv*math.Log(rankine(pt.Temperature)/rankine(m.evap.Temperature))
		pt.Phase = types.PhaseSuperheatedVapor
	case sh < 0:
		// flood-back: treat the deficit as unevaporated liquid
		h := math.Max(m.evap.VaporEnthalpy+cpv*sh, m.evap.LiquidEnthalpy)
		x := quality(h, m.evap)
		pt.Enthalpy = h
		pt.Entropy = m.evap.LiquidEntropy + x*(m.evap.VaporEntropy-m.evap.LiquidEntropy)
		pt.Quality = &x
		pt.Phase = types.PhaseTwoPhase
	}
	return pt
}

func (m model) liquidLine(subcooling types.Measurement) types.StatePoint {
	pt := types.StatePoint{
		Location:    types.LocationLiquidLine,
		Pressure:    m.cond.Pressure,
		Temperature: m.cond.Temperature,
		Enthalpy:    m.cond.LiquidEnthalpy,
		Entropy:     m.cond.LiquidEntropy,
		Phase:       types.PhaseSaturatedLiquid,
	}
	if !subcooling.Available() {
		pt.Estimated = true
		return pt
	}

	sc := subcooling.Value
	cpl := m.cond.LiquidSlope
	pt.Temperature = m.cond.Temperature - sc
	switch {
	case sc > 0:
		pt.Enthalpy = m.cond.LiquidEnthalpy - cpl*sc
		pt.Entropy = m.cond.LiquidEntropy + cpl*math.Log(rankine(pt.Temperature)/rankine(m.cond.Temperature))
		pt.Phase = types.PhaseSubcooledLiquid
	case sc < 0:
		// flash gas: the excess temperature is carried as vapor fraction
		h := math.Min(m.cond.LiquidEnthalpy-cpl*sc, m.cond.VaporEnthalpy)
		x := quality(h, m.cond)
		pt.Enthalpy = h
		pt.Entropy = m.cond.LiquidEntropy + x*(m.cond.VaporEntropy-m.cond.LiquidEntropy)
		pt.Quality = &x
		pt.Phase = types.PhaseTwoPhase
	}
	return pt
}

func (m model) measuredDischarge(temp float64) types.StatePoint {
	cpv := m.ref.VaporSpecificHeat()
	pt := types.StatePoint{
		Location:    types.LocationDischarge,
		Pressure:    m.cond.Pressure,
		Temperature: temp,
		Enthalpy:    m.cond.VaporEnthalpy,
		Entropy:     m.cond.VaporEntropy,
		Phase:       types.PhaseSaturatedVapor,
	}
	if dsh := temp - m.cond.Temperature; dsh > 0 {
		pt.Enthalpy = m.cond.VaporEnthalpy + cpv*dsh
		pt.Entropy = m.cond.VaporEntropy + cpv*math.Log(rankine(temp)/rankine(m.cond.Temperature))
		pt.Phase = types.PhaseSuperheatedVapor
	}
	return pt
}

// estimatedDischarge compresses from the suction state to the condensing
// pressure along constant entropy, then applies the isentropic efficiency.
func (m model) estimatedDischarge(suction types.StatePoint) types.StatePoint {
	cpv := m.ref.VaporSpecificHeat()
	tc := rankine(m.cond.Temperature)

	var hIdeal float64
	if suction.Entropy > m.cond.VaporEntropy {
		t2 := tc * math.Exp((suction.Entropy-m.cond.VaporEntropy)/cpv)
		hIdeal = m.cond.VaporEnthalpy + cpv*(t2-tc)
	} else {
		x := clamp01((suction.Entropy - m.cond.LiquidEntropy) / (m.cond.VaporEntropy - m.cond.LiquidEntropy))
		hIdeal = m.cond.LiquidEnthalpy + x*m.cond.LatentHeat()
	}
	h := suction.Enthalpy + (hIdeal-suction.Enthalpy)/m.efficiency

	pt := types.StatePoint{
		Location:  types.LocationDischarge,
		Pressure:  m.cond.Pressure,
		Enthalpy:  h,
		Estimated: true,
	}
	if h > m.cond.VaporEnthalpy {
		pt.Temperature = m.cond.Temperature + (h-m.cond.VaporEnthalpy)/cpv
		pt.Entropy = m.cond.VaporEntropy + cpv*math.Log(rankine(pt.Temperature)/tc)
		pt.Phase = types.PhaseSuperheatedVapor
		return pt
	}
	x := quality(h, m.cond)
	pt.Temperature = m.cond.Temperature
	pt.Entropy = m.cond.LiquidEntropy + x*(m.cond.VaporEntropy-m.cond.LiquidEntropy)
	pt.Quality = &x
	pt.Phase = types.PhaseTwoPhase
	return pt
}

// evaporatorInlet expands the liquid-line state at constant enthalpy.
func (m model) evaporatorInlet(liquid types.StatePoint) types.StatePoint {
	h := liquid.Enthalpy
	x := quality(h, m.evap)
	pt := types.StatePoint{
		Location:    types.LocationEvaporatorInlet,
		Pressure:    m.evap.Pressure,
		Temperature: m.evap.Temperature,
		Enthalpy:    h,
		Estimated:   liquid.Estimated,
	}
	switch {
	case x <= 0:
		pt.Entropy = m.evap.LiquidEntropy + (h-m.evap.LiquidEnthalpy)/rankine(m.evap.Temperature)
		pt.Phase = types.PhaseSaturatedLiquid
	case x >= 1:
		pt.Entropy = m.evap.VaporEntropy
		pt.Phase = types.PhaseSaturatedVapor
	default:
		pt.Entropy = m.evap.LiquidEntropy + x*(m.evap.VaporEntropy-m.evap.LiquidEntropy)
		pt.Quality = &x
		pt.Phase = types.PhaseTwoPhase
	}
	return pt
}

func quality(h float64, sat refrigerant.SaturationPoint) float64 {
	return clamp01((h - sat.LiquidEnthalpy) / sat.LatentHeat())
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// performance derives the per-pound energy balance from the state points.
func performance(points types.StatePoints, evaporating, condensing float64) types.Performance {
	var perf types.Performance

	re := points.Suction.Enthalpy - points.EvaporatorInlet.Enthalpy
	work := points.Discharge.Enthalpy - points.Suction.Enthalpy
	rejection := points.Discharge.Enthalpy - points.LiquidLine.Enthalpy

	if re > 0 {
		perf.RefrigerationEffect = types.Present(re)
		perf.FlowPerTon = types.Present(btuPerMinutePerTon / re)
	} else {
		perf.RefrigerationEffect = types.Invalid("suction enthalpy is not above evaporator inlet enthalpy")
		perf.FlowPerTon = types.Invalid("no refrigeration effect")
	}

	if work > 0 {
		perf.CompressionWork = types.Present(work)
	} else {
		perf.CompressionWork = types.Invalid("discharge enthalpy is not above suction enthalpy")
	}

	if rejection > 0 {
		perf.HeatRejection = types.Present(rejection)
	} else {
		perf.HeatRejection = types.Invalid("discharge enthalpy is not above liquid-line enthalpy")
	}

	if perf.RefrigerationEffect.Available() && perf.CompressionWork.Available() {
		perf.COP = types.Present(re / work)
	} else {
		perf.COP = types.Invalid("refrigeration effect or compression work unavailable")
	}

	te, tc := rankine(evaporating), rankine(condensing)
	if tc > te {
		perf.CarnotCOP = types.Present(te / (tc - te))
	} else {
		perf.CarnotCOP = types.Invalid("condensing temperature is not above evaporating temperature")
	}
	return perf
}

// airside derives the temperature differences that need optional air readings.
func airside(r types.FieldReading, evaporating, condensing float64) types.Airside {
	a := types.Airside{
		CondenserApproach:    types.Absent("ambient_temp not supplied"),
		EvaporatorApproach:   types.Absent("return_air_temp not supplied"),
		TemperatureSplit:     types.Absent("return_air_temp and supply_air_temp are both required"),
		DischargeTemperature: types.Absent("discharge_line_temp not supplied"),
	}
	if r.AmbientTemp != nil {
		a.CondenserApproach = types.Present(condensing - *r.AmbientTemp)
	}
	if r.ReturnAirTemp != nil {
		a.EvaporatorApproach = types.Present(*r.ReturnAirTemp - evaporating)
		if r.SupplyAirTemp != nil {
			a.TemperatureSplit = types.Present(*r.ReturnAirTemp - *r.SupplyAirTemp)
		}
	}
	if r.DischargeLineTemp != nil {
		a.DischargeTemperature = types.Present(*r.DischargeLineTemp)
	}
	return a
}
