package engine

import (
	"fmt"
	"strings"

	"github.com/mrhapile/hvac-diagnoser/pkg/types"
)

// Rule defines the interface for deterministic scoring rules.
// Each rule inspects the resolved metrics and produces a Diagnosis if it
// has any evidence to weigh.
type Rule interface {
	// ID returns a unique identifier for this rule.
	ID() string

	// Match returns true if at least one indicator could be evaluated.
	Match(m Metrics) bool

	// Diagnosis scores the rule. Only call it when Match returns true.
	Diagnosis(m Metrics) types.Diagnosis
}

// SignatureRule scores one fault signature.
type SignatureRule struct {
	Signature types.FaultSignature
}

func (r SignatureRule) ID() string {
	return r.Signature.Name
}

func (r SignatureRule) Match(m Metrics) bool {
	for _, ind := range r.Signature.Indicators {
		if ind.Weight > 0 && m.Resolve(ind.Metric).Available() {
			return true
		}
	}
	return false
}

func (r SignatureRule) Diagnosis(m Metrics) types.Diagnosis {
	sig := r.Signature
	d := types.Diagnosis{
		Signature:  sig.Name,
		Category:   sig.Category,
		Remedy:     sig.Remedy,
		Matched:    []types.Evidence{},
		Mismatched: []types.Evidence{},
	}

	var raw float64
	for _, ind := range sig.Indicators {
		value := m.Resolve(ind.Metric)
		outcome, observed := Evaluate(ind, value)
		if outcome == types.OutcomeIndeterminate {
			d.Indeterminate = append(d.Indeterminate, ind.Metric)
			continue
		}

		d.WeightUsed += ind.Weight
		ev := types.Evidence{
			Metric:   ind.Metric,
			Expected: ind.Expected,
			Observed: observed,
			Value:    value.Value,
			Band:     ind.Band,
			Weight:   ind.Weight,
		}
		switch outcome {
		case types.OutcomeMatched:
			raw += ind.Weight
			d.Matched = append(d.Matched, ev)
		case types.OutcomeContradicted:
			raw -= ind.Weight
			d.Mismatched = append(d.Mismatched, ev)
		}
	}

	d.Score = raw
	if d.WeightUsed > 0 {
		d.Confidence = clamp(raw / d.WeightUsed)
	}
	d.Rationale = rationale(d)
	return d
}

// Evaluate compares one indicator with a resolved metric value.
//
// Expecting low or high: the same side matches, the opposite side
// contradicts, a normal value is neutral. Expecting normal: a normal value
// matches, any deviation contradicts. Unavailable values are indeterminate.
func Evaluate(ind types.Indicator, value types.Measurement) (types.Outcome, types.Direction) {
	if !value.Available() {
		return types.OutcomeIndeterminate, ""
	}

	observed := ind.Band.Classify(value.Value)
	switch {
	case observed == ind.Expected:
		return types.OutcomeMatched, observed
	case ind.Expected == types.DirectionNormal:
		return types.OutcomeContradicted, observed
	case observed == types.DirectionNormal:
		return types.OutcomeNeutral, observed
	default:
		return types.OutcomeContradicted, observed
	}
}

func clamp(v float64) float64 {
	switch {
	case v < types.ConfidenceMin:
		return types.ConfidenceMin
	case v > types.ConfidenceMax:
		return types.ConfidenceMax
	default:
		return v
	}
}

func rationale(d types.Diagnosis) string {
	var b strings.Builder
	if len(d.Matched) == 0 {
		b.WriteString("no indicator matched")
	}
	for i, ev := range d.Matched {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s is %s (%.1f, normal %.1f to %.1f)",
			strings.ReplaceAll(ev.Metric, "_", " "), ev.Observed, ev.Value, ev.Band.Low, ev.Band.High)
	}
	if len(d.Indeterminate) > 0 {
		fmt.Fprintf(&b, "; not evaluated: %s", strings.Join(d.Indeterminate, ", "))
	}
	return b.String()
}
