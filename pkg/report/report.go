// Package report assembles and encodes diagnostic reports.
package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mrhapile/hvac-diagnoser/pkg/types"
)

// namespace scopes report ids generated by this module.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/mrhapile/hvac-diagnoser/report"))

// Assemble packages a reading, its cycle and its ranked diagnoses.
//
// The timestamp is injected and normalised to UTC, and the id is derived
// from the reading and timestamp, so identical inputs produce identical
// reports.
func Assemble(reading types.FieldReading, cycle types.CycleState, diagnoses []types.Diagnosis, at time.Time) types.DiagnosticReport {
	at = at.UTC()
	if diagnoses == nil {
		diagnoses = []types.Diagnosis{}
	}

	return types.DiagnosticReport{
		ID:          ID(reading, at),
		Reading:     reading,
		Cycle:       cycle,
		Diagnoses:   diagnoses,
		Summary:     summarize(cycle, diagnoses),
		GeneratedAt: at,
		Engine:      types.EngineName,
	}
}

// ID returns the deterministic report id for a reading at a point in time.
func ID(reading types.FieldReading, at time.Time) string {
	canonical, err := json.Marshal(struct {
		Reading types.FieldReading `json:"reading"`
		At      string             `json:"at"`
	}{reading, at.UTC().Format(time.RFC3339Nano)})
	if err != nil {
		// NaN or Inf in an unvalidated reading.
		canonical = []byte(at.UTC().Format(time.RFC3339Nano))
	}
	return uuid.NewSHA1(namespace, canonical).String()
}

func summarize(cycle types.CycleState, diagnoses []types.Diagnosis) types.Summary {
	s := types.Summary{
		Candidates: len(diagnoses),
		Warnings:   len(cycle.Warnings),
	}
	if len(diagnoses) > 0 && diagnoses[0].Confidence > 0 {
		s.TopDiagnosis = diagnoses[0].Signature
		s.TopConfidence = diagnoses[0].Confidence
	}
	return s
}
