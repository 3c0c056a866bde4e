package types

// EngineName identifies the diagnostic method in reports.
const EngineName = "signature-scoring"

// Outcome is the result of comparing one indicator with a cycle.
type Outcome string

const (
	// OutcomeMatched adds the indicator weight to the raw score.
	OutcomeMatched Outcome = "matched"
	// OutcomeContradicted subtracts the indicator weight.
	OutcomeContradicted Outcome = "contradicted"
	// OutcomeNeutral contributes nothing but still counts as considered weight.
	// It happens when a low/high deviation was expected and the value is normal.
	OutcomeNeutral Outcome = "neutral"
	// OutcomeIndeterminate means the metric was unavailable. It is excluded
	// from both the score and the considered weight.
	OutcomeIndeterminate Outcome = "indeterminate"
)

// Confidence bounds.
const (
	ConfidenceMin = 0.0
	ConfidenceMax = 1.0
)
