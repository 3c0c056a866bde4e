package types

// Evidence records how one indicator compared against the cycle.
type Evidence struct {
	Metric   string    `json:"metric" yaml:"metric"`
	Expected Direction `json:"expected" yaml:"expected"`
	Observed Direction `json:"observed" yaml:"observed"`
	Value    float64   `json:"value" yaml:"value"`
	Band     Band      `json:"band" yaml:"band"`
	Weight   float64   `json:"weight" yaml:"weight"`
}

// Diagnosis is the score of one fault signature against one cycle.
type Diagnosis struct {
	Rank          int        `json:"rank" yaml:"rank"`
	Signature     string     `json:"signature" yaml:"signature"`
	Category      string     `json:"category" yaml:"category"`
	Confidence    float64    `json:"confidence" yaml:"confidence"`
	Score         float64    `json:"score" yaml:"score"`
	WeightUsed    float64    `json:"weight_considered" yaml:"weight_considered"`
	Matched       []Evidence `json:"matched" yaml:"matched"`
	Mismatched    []Evidence `json:"mismatched" yaml:"mismatched"`
	Indeterminate []string   `json:"indeterminate,omitempty" yaml:"indeterminate,omitempty"`
	Rationale     string     `json:"rationale" yaml:"rationale"`
	Remedy        string     `json:"remedy,omitempty" yaml:"remedy,omitempty"`
}
