package rules

import (
	_ "embed"
)

// builtinSignatures holds the raw bytes of data/fault_signatures.yaml.
//
//go:embed data/fault_signatures.yaml
var builtinSignatures []byte
