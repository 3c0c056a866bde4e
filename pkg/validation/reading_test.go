package validation

import (
	"errors"
	"math"
	"testing"

	"github.com/mrhapile/hvac-diagnoser/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validReading() types.FieldReading {
	return types.FieldReading{
		Refrigerant:       "R-410A",
		SuctionPressure:   types.Float(120),
		DischargePressure: types.Float(350),
		SuctionLineTemp:   types.Float(45),
	}
}

func TestReading_Valid(t *testing.T) {
	assert.NoError(t, Reading(validReading()))

	gauge := validReading()
	gauge.PressureBasis = types.PressureGauge
	assert.NoError(t, Reading(gauge))
}

func TestReading_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.FieldReading)
		field  string
	}{
		{"refrigerant", func(r *types.FieldReading) { r.Refrigerant = "" }, "refrigerant"},
		{"suction pressure", func(r *types.FieldReading) { r.SuctionPressure = nil }, "suction_pressure"},
		{"discharge pressure", func(r *types.FieldReading) { r.DischargePressure = nil }, "discharge_pressure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validReading()
			tt.mutate(&r)

			err := Reading(r)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrIncompleteReading))

			var incomplete *types.IncompleteReadingError
			require.True(t, errors.As(err, &incomplete))
			assert.Equal(t, tt.field, incomplete.Field)
		})
	}
}

func TestReading_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.FieldReading)
		field  string
	}{
		{"zero suction", func(r *types.FieldReading) { r.SuctionPressure = types.Float(0) }, "suction_pressure"},
		{"negative discharge", func(r *types.FieldReading) { r.DischargePressure = types.Float(-5) }, "discharge_pressure"},
		{"nan suction", func(r *types.FieldReading) { r.SuctionPressure = types.Float(math.NaN()) }, "suction_pressure"},
		{"infinite ambient", func(r *types.FieldReading) { r.AmbientTemp = types.Float(math.Inf(1)) }, "ambient_temp"},
		{"unknown basis", func(r *types.FieldReading) { r.PressureBasis = "bar" }, "pressure_basis"},
		{"discharge below suction", func(r *types.FieldReading) { r.DischargePressure = types.Float(100) }, "discharge_pressure"},
		{"liquid line below absolute zero", func(r *types.FieldReading) { r.LiquidLineTemp = types.Float(-500) }, "liquid_line_temp"},
		{"suction line below absolute zero", func(r *types.FieldReading) { r.SuctionLineTemp = types.Float(-600) }, "suction_line_temp"},
		{"supply air at absolute zero", func(r *types.FieldReading) { r.SupplyAirTemp = types.Float(types.AbsoluteZero) }, "supply_air_temp"},
		{"gauge suction below perfect vacuum", func(r *types.FieldReading) {
			r.PressureBasis = types.PressureGauge
			r.SuctionPressure = types.Float(-20)
		}, "suction_pressure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validReading()
			tt.mutate(&r)

			err := Reading(r)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrInvalidReading), "got %v", err)

			var invalid *types.InvalidReadingError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestReading_GaugeVacuumIsValid(t *testing.T) {
	for _, suction := range []float64{0, -1.8, -10} {
		r := types.FieldReading{
			Refrigerant:       "R-134a",
			PressureBasis:     types.PressureGauge,
			SuctionPressure:   types.Float(suction),
			DischargePressure: types.Float(150),
		}
		assert.NoError(t, Reading(r), "suction %v psig", suction)
	}
}

func TestReading_ColdTemperaturesAboveAbsoluteZero(t *testing.T) {
	r := validReading()
	r.AmbientTemp = types.Float(-40)
	r.SuctionLineTemp = types.Float(-459)

	assert.NoError(t, Reading(r))
}

func TestReading_OptionalFieldsMayBeMissing(t *testing.T) {
	r := types.FieldReading{
		Refrigerant:       "R-22",
		SuctionPressure:   types.Float(83.2),
		DischargePressure: types.Float(241.1),
	}

	assert.NoError(t, Reading(r))
}
