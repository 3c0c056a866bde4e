package cycle

import (
	"errors"
	"testing"

	"github.com/mrhapile/hvac-diagnoser/pkg/refrigerant"
	"github.com/mrhapile/hvac-diagnoser/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	cat, err := refrigerant.Default()
	require.NoError(t, err)
	return NewEngine(cat, DefaultOptions())
}

func baseReading() types.FieldReading {
	return types.FieldReading{
		Refrigerant:       "R-410A",
		SuctionPressure:   types.Float(120),
		DischargePressure: types.Float(350),
		SuctionLineTemp:   types.Float(45),
		LiquidLineTemp:    types.Float(96),
	}
}

func TestCompute_Superheat(t *testing.T) {
	state, err := newEngine(t).Compute(baseReading())
	require.NoError(t, err)

	assert.Equal(t, 35.0, state.EvaporatingTemperature)
	require.True(t, state.Superheat.Available())
	assert.Equal(t, 10.0, state.Superheat.Value)
	assert.False(t, state.HasWarning(types.WarningNegativeSuperheat))
}

func TestCompute_Subcooling(t *testing.T) {
	state, err := newEngine(t).Compute(baseReading())
	require.NoError(t, err)

	assert.Equal(t, 104.0, state.CondensingTemperature)
	require.True(t, state.Subcooling.Available())
	assert.Equal(t, 8.0, state.Subcooling.Value)
	assert.False(t, state.HasWarning(types.WarningNegativeSubcooling))
}

func TestCompute_CompressionRatio(t *testing.T) {
	state, err := newEngine(t).Compute(baseReading())
	require.NoError(t, err)

	assert.InDelta(t, 350.0/120.0, state.CompressionRatio, 1e-12)
}

func TestCompute_ZeroSuctionPressure(t *testing.T) {
	r := baseReading()
	r.SuctionPressure = types.Float(0)

	state, err := newEngine(t).Compute(r)

	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidReading))
	assert.Equal(t, types.CycleState{}, state)
}

func TestCompute_MissingRequiredField(t *testing.T) {
	r := baseReading()
	r.DischargePressure = nil

	_, err := newEngine(t).Compute(r)

	var incomplete *types.IncompleteReadingError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, "discharge_pressure", incomplete.Field)
}

func TestCompute_UnknownRefrigerant(t *testing.T) {
	r := baseReading()
	r.Refrigerant = "R-12"

	_, err := newEngine(t).Compute(r)

	assert.True(t, errors.Is(err, types.ErrUnknownRefrigerant))
}

func TestCompute_PressureAboveTable(t *testing.T) {
	r := baseReading()
	r.DischargePressure = types.Float(650)

	_, err := newEngine(t).Compute(r)

	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrOutOfRange))
	assert.Contains(t, err.Error(), "discharge pressure")
}

func TestCompute_NegativeSuperheatIsKept(t *testing.T) {
	r := baseReading()
	r.SuctionLineTemp = types.Float(32)

	state, err := newEngine(t).Compute(r)
	require.NoError(t, err)

	assert.Equal(t, -3.0, state.Superheat.Value)
	assert.True(t, state.HasWarning(types.WarningNegativeSuperheat))
	assert.Equal(t, types.PhaseTwoPhase, state.StatePoints.Suction.Phase)
	require.NotNil(t, state.StatePoints.Suction.Quality)
	assert.Less(t, *state.StatePoints.Suction.Quality, 1.0)
}

func TestCompute_NegativeSubcoolingIsKept(t *testing.T) {
	r := baseReading()
	r.LiquidLineTemp = types.Float(108)

	state, err := newEngine(t).Compute(r)
	require.NoError(t, err)

	assert.Equal(t, -4.0, state.Subcooling.Value)
	assert.True(t, state.HasWarning(types.WarningNegativeSubcooling))
	assert.Equal(t, types.PhaseTwoPhase, state.StatePoints.LiquidLine.Phase)
}

func TestCompute_MissingOptionalFieldsDegrade(t *testing.T) {
	r := types.FieldReading{
		Refrigerant:       "R-410A",
		SuctionPressure:   types.Float(120),
		DischargePressure: types.Float(350),
	}

	state, err := newEngine(t).Compute(r)
	require.NoError(t, err)

	assert.Equal(t, types.MetricAbsent, state.Superheat.Status)
	assert.Equal(t, types.MetricAbsent, state.Subcooling.Status)
	assert.Equal(t, types.MetricAbsent, state.Airside.CondenserApproach.Status)
	assert.Equal(t, types.MetricAbsent, state.Airside.TemperatureSplit.Status)

	sp := state.StatePoints
	assert.True(t, sp.Suction.Estimated)
	assert.Equal(t, types.PhaseSaturatedVapor, sp.Suction.Phase)
	assert.Equal(t, 122.3, sp.Suction.Enthalpy)
	assert.True(t, sp.LiquidLine.Estimated)
	assert.Equal(t, 62.0, sp.LiquidLine.Enthalpy)
}

func TestCompute_StatePoints(t *testing.T) {
	state, err := newEngine(t).Compute(baseReading())
	require.NoError(t, err)
	sp := state.StatePoints

	// suction: hg(120 psia) + cpv * 10 F
	assert.Equal(t, types.PhaseSuperheatedVapor, sp.Suction.Phase)
	assert.InDelta(t, 122.3+0.24*10, sp.Suction.Enthalpy, 1e-9)
	assert.Equal(t, 45.0, sp.Suction.Temperature)

	// liquid line: hf(350 psia) - slope * 8 F, slope from the 104-110 F interval
	slope := (65.5 - 62.0) / 6.0
	assert.Equal(t, types.PhaseSubcooledLiquid, sp.LiquidLine.Phase)
	assert.InDelta(t, 62.0-slope*8, sp.LiquidLine.Enthalpy, 1e-9)
	assert.Equal(t, 96.0, sp.LiquidLine.Temperature)

	// metering device is isenthalpic
	assert.Equal(t, sp.LiquidLine.Enthalpy, sp.EvaporatorInlet.Enthalpy)
	assert.Equal(t, types.PhaseTwoPhase, sp.EvaporatorInlet.Phase)
	require.NotNil(t, sp.EvaporatorInlet.Quality)
	assert.InDelta(t, (sp.EvaporatorInlet.Enthalpy-29.3)/(122.3-29.3), *sp.EvaporatorInlet.Quality, 1e-9)

	// discharge is estimated without a discharge-line temperature
	assert.True(t, sp.Discharge.Estimated)
	assert.True(t, state.HasWarning(types.WarningEstimatedDischarge))
	assert.Equal(t, types.PhaseSuperheatedVapor, sp.Discharge.Phase)
	assert.Greater(t, sp.Discharge.Enthalpy, sp.Suction.Enthalpy)
	assert.Greater(t, sp.Discharge.Temperature, state.CondensingTemperature)
	assert.Greater(t, sp.Discharge.Entropy, sp.Suction.Entropy)
}

func TestCompute_MeasuredDischarge(t *testing.T) {
	r := baseReading()
	r.DischargeLineTemp = types.Float(180)

	state, err := newEngine(t).Compute(r)
	require.NoError(t, err)

	d := state.StatePoints.Discharge
	assert.False(t, d.Estimated)
	assert.False(t, state.HasWarning(types.WarningEstimatedDischarge))
	assert.InDelta(t, 119.8+0.24*(180-104), d.Enthalpy, 1e-9)
	assert.Equal(t, types.MetricPresent, state.Airside.DischargeTemperature.Status)
}

func TestCompute_Performance(t *testing.T) {
	state, err := newEngine(t).Compute(baseReading())
	require.NoError(t, err)
	perf := state.Performance
	sp := state.StatePoints

	require.True(t, perf.RefrigerationEffect.Available())
	require.True(t, perf.CompressionWork.Available())
	require.True(t, perf.COP.Available())
	assert.InDelta(t, sp.Suction.Enthalpy-sp.EvaporatorInlet.Enthalpy, perf.RefrigerationEffect.Value, 1e-9)
	assert.InDelta(t, perf.RefrigerationEffect.Value/perf.CompressionWork.Value, perf.COP.Value, 1e-9)
	assert.InDelta(t, (35+459.67)/(104.0-35.0), perf.CarnotCOP.Value, 1e-9)
	assert.Less(t, perf.COP.Value, perf.CarnotCOP.Value)
	assert.InDelta(t, 200/perf.RefrigerationEffect.Value, perf.FlowPerTon.Value, 1e-9)
}

func TestCompute_Airside(t *testing.T) {
	r := baseReading()
	r.AmbientTemp = types.Float(85)
	r.ReturnAirTemp = types.Float(75)
	r.SupplyAirTemp = types.Float(55)

	state, err := newEngine(t).Compute(r)
	require.NoError(t, err)

	assert.Equal(t, 19.0, state.Airside.CondenserApproach.Value)
	assert.Equal(t, 40.0, state.Airside.EvaporatorApproach.Value)
	assert.Equal(t, 20.0, state.Airside.TemperatureSplit.Value)
}

func TestCompute_GaugePressures(t *testing.T) {
	r := baseReading()
	r.PressureBasis = types.PressureGauge
	r.SuctionPressure = types.Float(120 - types.AtmosphericPressure)
	r.DischargePressure = types.Float(350 - types.AtmosphericPressure)

	state, err := newEngine(t).Compute(r)
	require.NoError(t, err)

	assert.InDelta(t, 35.0, state.EvaporatingTemperature, 1e-9)
	assert.InDelta(t, 120.0, state.SuctionPressure, 1e-9)
}

func TestCompute_GaugeVacuumSuction(t *testing.T) {
	tests := []struct {
		name        string
		suction     float64
		evaporating float64
	}{
		{"vacuum", -1.8, -20.0},
		{"zero gauge", 0, -15.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := newEngine(t).Compute(types.FieldReading{
				Refrigerant:       "R-134a",
				PressureBasis:     types.PressureGauge,
				SuctionPressure:   types.Float(tt.suction),
				DischargePressure: types.Float(150),
			})
			require.NoError(t, err)

			assert.InDelta(t, tt.suction+types.AtmosphericPressure, state.SuctionPressure, 1e-9)
			assert.InDelta(t, tt.evaporating, state.EvaporatingTemperature, 0.1)
			assert.True(t, state.HasWarning(types.WarningCoilBelowFreezing))
		})
	}
}

func TestCompute_TemperatureBelowAbsoluteZero(t *testing.T) {
	r := baseReading()
	r.LiquidLineTemp = types.Float(-500)

	state, err := newEngine(t).Compute(r)

	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidReading))
	var invalid *types.InvalidReadingError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "liquid_line_temp", invalid.Field)
	assert.Equal(t, types.CycleState{}, state)
}

func TestCompute_NonFiniteStatePointIsRejected(t *testing.T) {
	// a table reaching below absolute zero makes the entropy ratio negative
	cat, err := refrigerant.Load([]byte(`
refrigerants:
  - id: R-COLD
    critical_pressure: 100
    critical_temperature: -400
    vapor_specific_heat: 0.2
    saturation:
      - {pressure: 10, temperature: -600, liquid_enthalpy: 1, vapor_enthalpy: 90, liquid_entropy: 0.01, vapor_entropy: 0.2}
      - {pressure: 20, temperature: -500, liquid_enthalpy: 5, vapor_enthalpy: 95, liquid_entropy: 0.02, vapor_entropy: 0.21}
`))
	require.NoError(t, err)

	state, err := NewEngine(cat, Options{}).Compute(types.FieldReading{
		Refrigerant:       "R-COLD",
		SuctionPressure:   types.Float(12),
		DischargePressure: types.Float(18),
		SuctionLineTemp:   types.Float(-400),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidReading))
	assert.Contains(t, err.Error(), string(types.LocationSuction))
	assert.Equal(t, types.CycleState{}, state)
}

func TestCompute_CoilBelowFreezing(t *testing.T) {
	r := types.FieldReading{
		Refrigerant:       "R-22",
		SuctionPressure:   types.Float(47.5),
		DischargePressure: types.Float(241.1),
	}

	state, err := newEngine(t).Compute(r)
	require.NoError(t, err)

	assert.Equal(t, 10.0, state.EvaporatingTemperature)
	assert.True(t, state.HasWarning(types.WarningCoilBelowFreezing))
	assert.False(t, state.HasWarning(types.WarningNearCritical))
}

func TestCompute_NearCritical(t *testing.T) {
	cat, err := refrigerant.Load([]byte(`
refrigerants:
  - id: R-TEST
    critical_pressure: 400
    critical_temperature: 140
    vapor_specific_heat: 0.2
    saturation:
      - {pressure: 100, temperature: 30, liquid_enthalpy: 20, vapor_enthalpy: 110, liquid_entropy: 0.04, vapor_entropy: 0.22}
      - {pressure: 380, temperature: 120, liquid_enthalpy: 50, vapor_enthalpy: 112, liquid_entropy: 0.10, vapor_entropy: 0.21}
`))
	require.NoError(t, err)

	state, err := NewEngine(cat, Options{}).Compute(types.FieldReading{
		Refrigerant:       "R-TEST",
		SuctionPressure:   types.Float(120),
		DischargePressure: types.Float(370),
	})
	require.NoError(t, err)

	assert.True(t, state.HasWarning(types.WarningNearCritical))
	assert.False(t, state.HasWarning(types.WarningCoilBelowFreezing))
}

func TestCompute_Deterministic(t *testing.T) {
	e := newEngine(t)
	r := baseReading()
	r.AmbientTemp = types.Float(90)

	first, err := e.Compute(r)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := e.Compute(r)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCompressionRatio_NonPositiveSuction(t *testing.T) {
	_, err := CompressionRatio(0, 300)
	assert.True(t, errors.Is(err, types.ErrInvalidReading))

	_, err = CompressionRatio(-1, 300)
	assert.True(t, errors.Is(err, types.ErrInvalidReading))
}
