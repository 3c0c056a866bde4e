package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Metric names that fault indicators may reference.
const (
	MetricSuperheat              = "superheat"
	MetricSubcooling             = "subcooling"
	MetricCompressionRatio       = "compression_ratio"
	MetricEvaporatingTemperature = "evaporating_temperature"
	MetricCondensingTemperature  = "condensing_temperature"
	MetricDischargeTemperature   = "discharge_temperature"
	MetricCondenserApproach      = "condenser_approach"
	MetricEvaporatorApproach     = "evaporator_approach"
	MetricTemperatureSplit       = "temperature_split"
	MetricCOP                    = "cop"
)

var knownMetrics = map[string]struct{}{
	MetricSuperheat:              {},
	MetricSubcooling:             {},
	MetricCompressionRatio:       {},
	MetricEvaporatingTemperature: {},
	MetricCondensingTemperature:  {},
	MetricDischargeTemperature:   {},
	MetricCondenserApproach:      {},
	MetricEvaporatorApproach:     {},
	MetricTemperatureSplit:       {},
	MetricCOP:                    {},
}

// IsKnownMetric reports whether name is a metric the engine can resolve.
func IsKnownMetric(name string) bool {
	_, ok := knownMetrics[name]
	return ok
}

// Direction is where a metric sits relative to its tolerance band.
type Direction string

const (
	DirectionLow    Direction = "low"
	DirectionNormal Direction = "normal"
	DirectionHigh   Direction = "high"
)

func (d Direction) Valid() bool {
	switch d {
	case DirectionLow, DirectionNormal, DirectionHigh:
		return true
	}
	return false
}

// UnmarshalYAML rejects unknown directions while the catalog is parsed.
func (d *Direction) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	incoming := Direction(s)
	if !incoming.Valid() {
		return fmt.Errorf("invalid value for expected direction: %q", s)
	}
	*d = incoming
	return nil
}

// Band is the tolerance band of normal values for a metric, inclusive.
type Band struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// Classify places v below, inside or above the band.
func (b Band) Classify(v float64) Direction {
	switch {
	case v < b.Low:
		return DirectionLow
	case v > b.High:
		return DirectionHigh
	default:
		return DirectionNormal
	}
}

// Indicator is one metric-direction-weight rule inside a fault signature.
type Indicator struct {
	Metric   string    `json:"metric" yaml:"metric"`
	Expected Direction `json:"expected" yaml:"expected"`
	Weight   float64   `json:"weight" yaml:"weight"`
	Band     Band      `json:"band" yaml:"band"`
}

// FaultSignature is a named pattern of expected cycle-metric deviations.
type FaultSignature struct {
	Name        string      `json:"name" yaml:"name"`
	Category    string      `json:"category" yaml:"category"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Remedy      string      `json:"remedy,omitempty" yaml:"remedy,omitempty"`
	Indicators  []Indicator `json:"indicators" yaml:"indicators"`
}

// TotalWeight sums the weights of every indicator.
func (s FaultSignature) TotalWeight() float64 {
	var total float64
	for _, ind := range s.Indicators {
		total += ind.Weight
	}
	return total
}
