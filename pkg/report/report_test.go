package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mrhapile/hvac-diagnoser/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReading() types.FieldReading {
	return types.FieldReading{
		ID:                "rtu-4",
		System:            "Store 12 rooftop",
		Refrigerant:       "R-410A",
		SuctionPressure:   types.Float(120),
		DischargePressure: types.Float(350),
		SuctionLineTemp:   types.Float(45),
	}
}

func sampleCycle() types.CycleState {
	return types.CycleState{
		Refrigerant:            "R-410A",
		SuctionPressure:        120,
		DischargePressure:      350,
		EvaporatingTemperature: 35,
		CondensingTemperature:  104,
		Superheat:              types.Present(10),
		Subcooling:             types.Absent("liquid_line_temp not supplied"),
		CompressionRatio:       350.0 / 120.0,
		Warnings: []types.Warning{
			{Code: types.WarningEstimatedDischarge, Message: "discharge enthalpy estimated"},
		},
	}
}

func sampleDiagnoses() []types.Diagnosis {
	return []types.Diagnosis{
		{Rank: 1, Signature: "Low refrigerant charge", Category: "refrigerant_charge", Confidence: 0.8, Rationale: "superheat is high", Remedy: "Leak-check"},
		{Rank: 2, Signature: "Dirty condenser coil", Category: "airflow", Confidence: 0.1, Rationale: "no indicator matched"},
	}
}

func TestAssemble(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.FixedZone("EST", -5*3600))

	rep := Assemble(sampleReading(), sampleCycle(), sampleDiagnoses(), at)

	assert.Equal(t, types.EngineName, rep.Engine)
	assert.Equal(t, time.UTC, rep.GeneratedAt.Location())
	assert.True(t, rep.GeneratedAt.Equal(at))
	assert.Equal(t, "Low refrigerant charge", rep.Summary.TopDiagnosis)
	assert.Equal(t, 0.8, rep.Summary.TopConfidence)
	assert.Equal(t, 2, rep.Summary.Candidates)
	assert.Equal(t, 1, rep.Summary.Warnings)

	_, err := uuid.Parse(rep.ID)
	require.NoError(t, err)
}

func TestAssemble_IDIsDeterministic(t *testing.T) {
	at := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)

	a := Assemble(sampleReading(), sampleCycle(), sampleDiagnoses(), at)
	b := Assemble(sampleReading(), sampleCycle(), sampleDiagnoses(), at)
	assert.Equal(t, a.ID, b.ID)

	later := Assemble(sampleReading(), sampleCycle(), sampleDiagnoses(), at.Add(time.Second))
	assert.NotEqual(t, a.ID, later.ID)

	other := sampleReading()
	other.SuctionLineTemp = types.Float(46)
	changed := Assemble(other, sampleCycle(), sampleDiagnoses(), at)
	assert.NotEqual(t, a.ID, changed.ID)
}

func TestAssemble_NoDiagnoses(t *testing.T) {
	rep := Assemble(sampleReading(), sampleCycle(), nil, time.Now())

	assert.NotNil(t, rep.Diagnoses)
	assert.Empty(t, rep.Summary.TopDiagnosis)
	assert.Equal(t, 0, rep.Summary.Candidates)

	out, err := json.Marshal(rep)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"diagnoses":[]`)
}

func TestAssemble_ZeroConfidenceIsNotTop(t *testing.T) {
	diagnoses := []types.Diagnosis{{Rank: 1, Signature: "Refrigerant overcharge", Confidence: 0}}
	rep := Assemble(sampleReading(), sampleCycle(), diagnoses, time.Now())

	assert.Empty(t, rep.Summary.TopDiagnosis)
	assert.Equal(t, 1, rep.Summary.Candidates)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{" text ", FormatText, false},
		{"", FormatJSON, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode_JSON(t *testing.T) {
	rep := Assemble(sampleReading(), sampleCycle(), sampleDiagnoses(), time.Now())

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, rep, FormatJSON))

	var decoded types.DiagnosticReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, rep.ID, decoded.ID)
	assert.Len(t, decoded.Diagnoses, 2)
	assert.Equal(t, types.MetricAbsent, decoded.Cycle.Subcooling.Status)
}

func TestEncode_YAML(t *testing.T) {
	rep := Assemble(sampleReading(), sampleCycle(), sampleDiagnoses(), time.Now())

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, rep, FormatYAML))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, rep.ID, decoded["id"])
	assert.Equal(t, types.EngineName, decoded["engine"])
}

func TestEncode_Text(t *testing.T) {
	rep := Assemble(sampleReading(), sampleCycle(), sampleDiagnoses(), time.Now())

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, rep, FormatText))
	out := buf.String()

	assert.Contains(t, out, rep.ID)
	assert.Contains(t, out, "Store 12 rooftop")
	assert.Contains(t, out, "1. Low refrigerant charge (refrigerant_charge)  confidence 0.80")
	assert.Contains(t, out, "Remedy: Leak-check")
	assert.Contains(t, out, "absent (liquid_line_temp not supplied)")
	assert.Contains(t, out, "estimated_discharge")
	assert.True(t, strings.Contains(out, "10.0 F"))
}

func TestEncode_TextUnsupported(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, map[string]string{"a": "b"}, FormatText)
	assert.Error(t, err)
}
