package types

// Phase is the thermodynamic phase of refrigerant at a state point.
type Phase string

const (
	PhaseSubcooledLiquid  Phase = "subcooled_liquid"
	PhaseSaturatedLiquid  Phase = "saturated_liquid"
	PhaseTwoPhase         Phase = "two_phase"
	PhaseSaturatedVapor   Phase = "saturated_vapor"
	PhaseSuperheatedVapor Phase = "superheated_vapor"
)

// Location identifies a state point in the vapor-compression cycle.
type Location string

const (
	LocationSuction         Location = "compressor_suction"
	LocationDischarge       Location = "compressor_discharge"
	LocationLiquidLine      Location = "liquid_line"
	LocationEvaporatorInlet Location = "evaporator_inlet"
)

// StatePoint is an approximate refrigerant state on the P-h diagram.
// Estimated is set when the point relies on an assumption rather than a
// measured temperature.
type StatePoint struct {
	Location    Location `json:"location" yaml:"location"`
	Pressure    float64  `json:"pressure" yaml:"pressure"`
	Temperature float64  `json:"temperature" yaml:"temperature"`
	Enthalpy    float64  `json:"enthalpy" yaml:"enthalpy"`
	Entropy     float64  `json:"entropy" yaml:"entropy"`
	Quality     *float64 `json:"quality,omitempty" yaml:"quality,omitempty"`
	Phase       Phase    `json:"phase" yaml:"phase"`
	Estimated   bool     `json:"estimated,omitempty" yaml:"estimated,omitempty"`
}

// StatePoints holds the four cycle locations in flow order.
type StatePoints struct {
	Suction         StatePoint `json:"suction" yaml:"suction"`
	Discharge       StatePoint `json:"discharge" yaml:"discharge"`
	LiquidLine      StatePoint `json:"liquid_line" yaml:"liquid_line"`
	EvaporatorInlet StatePoint `json:"evaporator_inlet" yaml:"evaporator_inlet"`
}

// Performance holds per-pound cycle energy figures derived from the state points.
type Performance struct {
	RefrigerationEffect Measurement `json:"refrigeration_effect" yaml:"refrigeration_effect"`
	CompressionWork     Measurement `json:"compression_work" yaml:"compression_work"`
	HeatRejection       Measurement `json:"heat_rejection" yaml:"heat_rejection"`
	COP                 Measurement `json:"cop" yaml:"cop"`
	CarnotCOP           Measurement `json:"carnot_cop" yaml:"carnot_cop"`
	FlowPerTon          Measurement `json:"flow_per_ton" yaml:"flow_per_ton"`
}

// Airside holds temperature differences that need optional air readings.
type Airside struct {
	CondenserApproach    Measurement `json:"condenser_approach" yaml:"condenser_approach"`
	EvaporatorApproach   Measurement `json:"evaporator_approach" yaml:"evaporator_approach"`
	TemperatureSplit     Measurement `json:"temperature_split" yaml:"temperature_split"`
	DischargeTemperature Measurement `json:"discharge_temperature" yaml:"discharge_temperature"`
}

// WarningCode classifies advisory conditions found while computing a cycle.
type WarningCode string

const (
	WarningNegativeSuperheat  WarningCode = "negative_superheat"
	WarningNegativeSubcooling WarningCode = "negative_subcooling"
	WarningEstimatedDischarge WarningCode = "estimated_discharge"
	WarningNearCritical       WarningCode = "near_critical"
	WarningCoilBelowFreezing  WarningCode = "coil_below_freezing"
)

// Warning is advisory data attached to a CycleState. It never aborts a run.
type Warning struct {
	Code    WarningCode `json:"code" yaml:"code"`
	Message string      `json:"message" yaml:"message"`
	Value   float64     `json:"value" yaml:"value"`
}

// CycleState is computed fresh from a FieldReading and never patched.
// Pressures are psia, temperatures °F, enthalpies Btu/lb.
type CycleState struct {
	Refrigerant            string      `json:"refrigerant" yaml:"refrigerant"`
	SuctionPressure        float64     `json:"suction_pressure" yaml:"suction_pressure"`
	DischargePressure      float64     `json:"discharge_pressure" yaml:"discharge_pressure"`
	EvaporatingTemperature float64     `json:"evaporating_temperature" yaml:"evaporating_temperature"`
	CondensingTemperature  float64     `json:"condensing_temperature" yaml:"condensing_temperature"`
	Superheat              Measurement `json:"superheat" yaml:"superheat"`
	Subcooling             Measurement `json:"subcooling" yaml:"subcooling"`
	CompressionRatio       float64     `json:"compression_ratio" yaml:"compression_ratio"`
	StatePoints            StatePoints `json:"state_points" yaml:"state_points"`
	Performance            Performance `json:"performance" yaml:"performance"`
	Airside                Airside     `json:"airside" yaml:"airside"`
	Warnings               []Warning   `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// HasWarning reports whether a warning with the given code was raised.
func (c CycleState) HasWarning(code WarningCode) bool {
	for _, w := range c.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
