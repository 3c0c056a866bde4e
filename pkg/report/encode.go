package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mrhapile/hvac-diagnoser/pkg/types"
	"gopkg.in/yaml.v3"
)

// Format selects an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatText:
		return f, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json, yaml or text)", s)
	}
}

// Encode writes v in the given format. The text format understands reports,
// cycle states and lists of reports; json and yaml accept anything.
func Encode(w io.Writer, v any, format Format) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatText:
		return encodeText(w, v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func encodeText(w io.Writer, v any) error {
	switch x := v.(type) {
	case types.DiagnosticReport:
		return writeReport(w, x)
	case *types.DiagnosticReport:
		return writeReport(w, *x)
	case []types.DiagnosticReport:
		for i, r := range x {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := writeReport(w, r); err != nil {
				return err
			}
		}
		return nil
	case types.CycleState:
		return writeCycle(w, x)
	case *types.CycleState:
		return writeCycle(w, *x)
	default:
		return fmt.Errorf("text format does not support %T", v)
	}
}

func writeReport(w io.Writer, r types.DiagnosticReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Report\t%s\n", r.ID)
	fmt.Fprintf(tw, "Generated\t%s\n", r.GeneratedAt.Format(time.RFC3339))
	if r.Reading.System != "" {
		fmt.Fprintf(tw, "System\t%s\n", r.Reading.System)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if err := writeCycle(w, r.Cycle); err != nil {
		return err
	}

	fmt.Fprintln(w, "Diagnoses:")
	if len(r.Diagnoses) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, d := range r.Diagnoses {
		fmt.Fprintf(w, "  %d. %s (%s)  confidence %.2f\n", d.Rank, d.Signature, d.Category, d.Confidence)
		fmt.Fprintf(w, "     %s\n", d.Rationale)
		if d.Remedy != "" && d.Confidence > 0 {
			fmt.Fprintf(w, "     Remedy: %s\n", d.Remedy)
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func writeCycle(w io.Writer, c types.CycleState) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Refrigerant\t%s\n", c.Refrigerant)
	fmt.Fprintf(tw, "Suction\t%.1f psia\t%.1f F saturated\n", c.SuctionPressure, c.EvaporatingTemperature)
	fmt.Fprintf(tw, "Discharge\t%.1f psia\t%.1f F saturated\n", c.DischargePressure, c.CondensingTemperature)
	fmt.Fprintf(tw, "Superheat\t%s\n", measurement(c.Superheat, "F"))
	fmt.Fprintf(tw, "Subcooling\t%s\n", measurement(c.Subcooling, "F"))
	fmt.Fprintf(tw, "Compression ratio\t%.2f\n", c.CompressionRatio)
	fmt.Fprintf(tw, "Refrigeration effect\t%s\n", measurement(c.Performance.RefrigerationEffect, "Btu/lb"))
	fmt.Fprintf(tw, "COP\t%s\n", measurement(c.Performance.COP, ""))
	fmt.Fprintf(tw, "Carnot COP\t%s\n", measurement(c.Performance.CarnotCOP, ""))
	fmt.Fprintf(tw, "Condenser approach\t%s\n", measurement(c.Airside.CondenserApproach, "F"))
	fmt.Fprintf(tw, "Evaporator approach\t%s\n", measurement(c.Airside.EvaporatorApproach, "F"))
	fmt.Fprintf(tw, "Temperature split\t%s\n", measurement(c.Airside.TemperatureSplit, "F"))
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(c.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range c.Warnings {
			fmt.Fprintf(w, "  - %s: %s\n", warn.Code, warn.Message)
		}
	}
	return nil
}

func measurement(m types.Measurement, unit string) string {
	if !m.Available() {
		if m.Reason != "" {
			return fmt.Sprintf("%s (%s)", m.Status, m.Reason)
		}
		return string(m.Status)
	}
	if unit == "" {
		return fmt.Sprintf("%.2f", m.Value)
	}
	return fmt.Sprintf("%.1f %s", m.Value, unit)
}
