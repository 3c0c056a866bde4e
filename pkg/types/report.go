package types

import "time"

// Summary is the headline of a report.
type Summary struct {
	TopDiagnosis  string  `json:"top_diagnosis,omitempty" yaml:"top_diagnosis,omitempty"`
	TopConfidence float64 `json:"top_confidence" yaml:"top_confidence"`
	Candidates    int     `json:"candidates" yaml:"candidates"`
	Warnings      int     `json:"warnings" yaml:"warnings"`
}

// DiagnosticReport is the structured result handed to rendering and
// storage collaborators. Its contents depend only on the reading, the
// catalogs and GeneratedAt.
type DiagnosticReport struct {
	ID          string       `json:"id" yaml:"id"`
	Reading     FieldReading `json:"reading" yaml:"reading"`
	Cycle       CycleState   `json:"cycle" yaml:"cycle"`
	Diagnoses   []Diagnosis  `json:"diagnoses" yaml:"diagnoses"`
	Summary     Summary      `json:"summary" yaml:"summary"`
	GeneratedAt time.Time    `json:"generated_at" yaml:"generated_at"`
	Engine      string       `json:"engine" yaml:"engine"`
}
