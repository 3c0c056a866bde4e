package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mrhapile/hvac-diagnoser/pkg/types"
	"gopkg.in/yaml.v3"
)

// readReadings loads one reading or a list of readings from a JSON or YAML
// file. "-" reads stdin.
func readReadings(path string, stdin io.Reader) ([]types.FieldReading, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return decodeReadings(data)
}

// decodeReadings accepts a single mapping or a sequence of mappings. JSON is
// valid YAML, so one decoder covers both.
func decodeReadings(data []byte) ([]types.FieldReading, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse readings: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("no readings found")
	}

	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		var readings []types.FieldReading
		if err := node.Decode(&readings); err != nil {
			return nil, fmt.Errorf("failed to decode readings: %w", err)
		}
		if len(readings) == 0 {
			return nil, fmt.Errorf("no readings found")
		}
		return readings, nil
	case yaml.MappingNode:
		var reading types.FieldReading
		if err := node.Decode(&reading); err != nil {
			return nil, fmt.Errorf("failed to decode reading: %w", err)
		}
		return []types.FieldReading{reading}, nil
	default:
		return nil, fmt.Errorf("expected a reading or a list of readings")
	}
}
