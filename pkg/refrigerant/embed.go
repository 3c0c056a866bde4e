package refrigerant

import (
	_ "embed"
)

// builtinTables holds the raw bytes of data/refrigerants.yaml, baked into
// the binary so the default catalog cannot drift from the release.
//
//go:embed data/refrigerants.yaml
var builtinTables []byte
