// Package engine scores computed refrigeration cycles against the fault
// signature catalog and assembles ranked diagnostic reports.
package engine

import (
	"sort"
	"time"

	"github.com/mrhapile/hvac-diagnoser/pkg/cycle"
	"github.com/mrhapile/hvac-diagnoser/pkg/report"
	"github.com/mrhapile/hvac-diagnoser/pkg/rules"
	"github.com/mrhapile/hvac-diagnoser/pkg/types"
)

// Diagnose performs deterministic scoring of a cycle against every
// signature in the catalog. It is a pure function that:
//   - Never mutates the input
//   - Never performs I/O
//   - Never fails on data-quality issues; unavailable metrics are skipped
//   - Produces deterministic, repeatable output
func Diagnose(catalog *rules.Catalog, state types.CycleState, reading types.FieldReading) []types.Diagnosis {
	signatures := catalog.All()
	allRules := make([]Rule, 0, len(signatures))
	for _, sig := range signatures {
		allRules = append(allRules, SignatureRule{Signature: sig})
	}
	return Score(allRules, NewMetrics(state, reading))
}

// Score applies each rule and ranks the diagnoses it produces.
func Score(allRules []Rule, m Metrics) []types.Diagnosis {
	diagnoses := []types.Diagnosis{}

	// Apply each rule
	for _, rule := range allRules {
		if rule.Match(m) {
			diagnoses = append(diagnoses, rule.Diagnosis(m))
		}
	}

	// Sort by confidence (descending) for deterministic ordering
	sort.SliceStable(diagnoses, func(i, j int) bool {
		// Primary: higher confidence first
		if diagnoses[i].Confidence != diagnoses[j].Confidence {
			return diagnoses[i].Confidence > diagnoses[j].Confidence
		}
		// Secondary: alphabetical by signature name
		return diagnoses[i].Signature < diagnoses[j].Signature
	})

	// Assign ranks after sorting
	for i := range diagnoses {
		diagnoses[i].Rank = i + 1
	}

	return diagnoses
}

// Analyze runs compute, diagnose and assemble for one reading against one
// snapshot. Errors come only from the cycle engine.
func Analyze(snap *Snapshot, reading types.FieldReading, at time.Time) (types.DiagnosticReport, error) {
	state, err := cycle.NewEngine(snap.Refrigerants, snap.Cycle).Compute(reading)
	if err != nil {
		return types.DiagnosticReport{}, err
	}
	diagnoses := Diagnose(snap.Signatures, state, reading)
	return report.Assemble(reading, state, diagnoses, at), nil
}
