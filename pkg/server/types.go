package server

import (
	"time"

	"github.com/mrhapile/hvac-diagnoser/pkg/refrigerant"
	"github.com/mrhapile/hvac-diagnoser/pkg/types"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is a stable machine-readable error code.
	Code string `json:"code"`
}

// HealthResponse is returned by GET /v1/health.
type HealthResponse struct {
	Status       string    `json:"status"`
	Refrigerants int       `json:"refrigerants"`
	Signatures   int       `json:"signatures"`
	LoadedAt     time.Time `json:"loaded_at"`
}

// BatchRequest is the body of POST /v1/diagnose/batch.
type BatchRequest struct {
	Readings []types.FieldReading `json:"readings" binding:"required"`
}

// BatchItem is the outcome for one reading of a batch.
type BatchItem struct {
	Index  int                     `json:"index"`
	Report *types.DiagnosticReport `json:"report,omitempty"`
	Error  *ErrorResponse          `json:"error,omitempty"`
}

// BatchResponse keeps the order of BatchRequest.Readings.
type BatchResponse struct {
	Results   []BatchItem `json:"results"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
}

// RefrigerantInfo describes one catalog refrigerant.
type RefrigerantInfo struct {
	ID                  string     `json:"id" yaml:"id"`
	Description         string     `json:"description,omitempty" yaml:"description,omitempty"`
	Aliases             []string   `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	CriticalPressure    float64    `json:"critical_pressure" yaml:"critical_pressure"`
	CriticalTemperature float64    `json:"critical_temperature" yaml:"critical_temperature"`
	PressureRange       [2]float64 `json:"pressure_range" yaml:"pressure_range"`
	TemperatureRange    [2]float64 `json:"temperature_range" yaml:"temperature_range"`
}

// DescribeRefrigerants lists the catalog in id order.
func DescribeRefrigerants(catalog *refrigerant.Catalog) []RefrigerantInfo {
	ids := catalog.IDs()
	out := make([]RefrigerantInfo, 0, len(ids))
	for _, id := range ids {
		ref, err := catalog.Lookup(id)
		if err != nil {
			continue
		}
		pmin, pmax := ref.PressureRange()
		tmin, tmax := ref.TemperatureRange()
		out = append(out, RefrigerantInfo{
			ID:                  ref.ID(),
			Description:         ref.Description(),
			Aliases:             ref.Aliases(),
			CriticalPressure:    ref.CriticalPressure(),
			CriticalTemperature: ref.CriticalTemperature(),
			PressureRange:       [2]float64{pmin, pmax},
			TemperatureRange:    [2]float64{tmin, tmax},
		})
	}
	return out
}
