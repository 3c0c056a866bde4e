package types

// MetricStatus is the availability of a derived value.
type MetricStatus string

const (
	// MetricPresent means the value was computed from supplied inputs.
	MetricPresent MetricStatus = "present"
	// MetricAbsent means an input needed for the value was not supplied.
	MetricAbsent MetricStatus = "absent"
	// MetricInvalid means inputs were supplied but the value has no physical meaning.
	MetricInvalid MetricStatus = "invalid"
)

// Measurement is a derived value that may be unavailable.
// Value is only meaningful when Status is MetricPresent.
type Measurement struct {
	Value  float64      `json:"value" yaml:"value"`
	Status MetricStatus `json:"status" yaml:"status"`
	Reason string       `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func Present(v float64) Measurement {
	return Measurement{Value: v, Status: MetricPresent}
}

func Absent(reason string) Measurement {
	return Measurement{Status: MetricAbsent, Reason: reason}
}

func Invalid(reason string) Measurement {
	return Measurement{Status: MetricInvalid, Reason: reason}
}

// Available reports whether the value can be used.
func (m Measurement) Available() bool {
	return m.Status == MetricPresent
}
