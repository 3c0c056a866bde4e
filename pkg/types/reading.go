package types

import "time"

// PressureBasis tells whether reading pressures are absolute or gauge.
type PressureBasis string

const (
	PressureAbsolute PressureBasis = "absolute"
	PressureGauge    PressureBasis = "gauge"
)

// AtmosphericPressure is the standard atmosphere in psi, used to convert
// gauge readings to absolute.
const AtmosphericPressure = 14.696

// AbsoluteZero in °F. Temperature readings must lie strictly above it.
const AbsoluteZero = -459.67

// FieldReading is one set of service measurements taken on a system.
//
// Required fields are the refrigerant and both pressures. Every optional
// measurement is a pointer: nil means "not measured", which is different
// from a measured zero.
type FieldReading struct {
	ID       string     `json:"id,omitempty" yaml:"id,omitempty"`
	System   string     `json:"system,omitempty" yaml:"system,omitempty"`
	Captured *time.Time `json:"captured_at,omitempty" yaml:"captured_at,omitempty"`

	Refrigerant   string        `json:"refrigerant" yaml:"refrigerant" validate:"required"`
	PressureBasis PressureBasis `json:"pressure_basis,omitempty" yaml:"pressure_basis,omitempty" validate:"omitempty,oneof=absolute gauge"`

	SuctionPressure   *float64 `json:"suction_pressure" yaml:"suction_pressure" validate:"required,finite"`
	DischargePressure *float64 `json:"discharge_pressure" yaml:"discharge_pressure" validate:"required,finite"`

	SuctionLineTemp   *float64 `json:"suction_line_temp,omitempty" yaml:"suction_line_temp,omitempty" validate:"omitempty,finite,abovezero"`
	LiquidLineTemp    *float64 `json:"liquid_line_temp,omitempty" yaml:"liquid_line_temp,omitempty" validate:"omitempty,finite,abovezero"`
	DischargeLineTemp *float64 `json:"discharge_line_temp,omitempty" yaml:"discharge_line_temp,omitempty" validate:"omitempty,finite,abovezero"`
	AmbientTemp       *float64 `json:"ambient_temp,omitempty" yaml:"ambient_temp,omitempty" validate:"omitempty,finite,abovezero"`
	ReturnAirTemp     *float64 `json:"return_air_temp,omitempty" yaml:"return_air_temp,omitempty" validate:"omitempty,finite,abovezero"`
	SupplyAirTemp     *float64 `json:"supply_air_temp,omitempty" yaml:"supply_air_temp,omitempty" validate:"omitempty,finite,abovezero"`
}

// Float returns a pointer to v. It keeps literal readings short in callers
// and tests.
func Float(v float64) *float64 {
	return &v
}

// Absolute returns a copy of the reading with both pressures expressed in
// psia. Readings already absolute are returned unchanged.
func (r FieldReading) Absolute() FieldReading {
	if r.PressureBasis != PressureGauge {
		r.PressureBasis = PressureAbsolute
		return r
	}
	out := r
	if r.SuctionPressure != nil {
		out.SuctionPressure = Float(*r.SuctionPressure + AtmosphericPressure)
	}
	if r.DischargePressure != nil {
		out.DischargePressure = Float(*r.DischargePressure + AtmosphericPressure)
	}
	out.PressureBasis = PressureAbsolute
	return out
}
