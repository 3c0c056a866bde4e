package engine

import (
	"math"

	"github.com/mrhapile/hvac-diagnoser/pkg/types"
)

// Metrics resolves indicator metric names against one cycle and the reading
// it was computed from.
type Metrics struct {
	cycle   types.CycleState
	reading types.FieldReading
}

// NewMetrics binds a resolver to a cycle and reading. Neither is modified.
func NewMetrics(cycle types.CycleState, reading types.FieldReading) Metrics {
	return Metrics{cycle: cycle, reading: reading}
}

// Resolve returns the named metric. Unknown names and non-finite values are
// reported invalid, so they score as indeterminate.
func (m Metrics) Resolve(name string) types.Measurement {
	v := m.lookup(name)
	if v.Available() && (math.IsNaN(v.Value) || math.IsInf(v.Value, 0)) {
		return types.Invalid(name + " is not finite")
	}
	return v
}

func (m Metrics) lookup(name string) types.Measurement {
	c := m.cycle
	switch name {
	case types.MetricSuperheat:
		return c.Superheat
	case types.MetricSubcooling:
		return c.Subcooling
	case types.MetricCompressionRatio:
		if c.CompressionRatio <= 0 {
			return types.Invalid("compression ratio not computed")
		}
		return types.Present(c.CompressionRatio)
	case types.MetricEvaporatingTemperature:
		return types.Present(c.EvaporatingTemperature)
	case types.MetricCondensingTemperature:
		return types.Present(c.CondensingTemperature)
	case types.MetricDischargeTemperature:
		if c.Airside.DischargeTemperature.Available() {
			return c.Airside.DischargeTemperature
		}
		if m.reading.DischargeLineTemp != nil {
			return types.Present(*m.reading.DischargeLineTemp)
		}
		return types.Absent("discharge_line_temp not supplied")
	case types.MetricCondenserApproach:
		return c.Airside.CondenserApproach
	case types.MetricEvaporatorApproach:
		return c.Airside.EvaporatorApproach
	case types.MetricTemperatureSplit:
		return c.Airside.TemperatureSplit
	case types.MetricCOP:
		return c.Performance.COP
	default:
		return types.Invalid("unknown metric " + name)
	}
}
