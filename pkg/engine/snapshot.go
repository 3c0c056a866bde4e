package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/mrhapile/hvac-diagnoser/pkg/cycle"
	"github.com/mrhapile/hvac-diagnoser/pkg/refrigerant"
	"github.com/mrhapile/hvac-diagnoser/pkg/rules"
)

// Snapshot is one immutable set of catalogs and cycle options. A run uses
// a single snapshot from start to finish.
type Snapshot struct {
	Refrigerants *refrigerant.Catalog
	Signatures   *rules.Catalog
	Cycle        cycle.Options
	LoadedAt     time.Time
}

// NewSnapshot bundles already loaded catalogs.
func NewSnapshot(refrigerants *refrigerant.Catalog, signatures *rules.Catalog, opts cycle.Options) (*Snapshot, error) {
	if refrigerants == nil {
		return nil, errors.New("refrigerant catalog is required")
	}
	if signatures == nil {
		return nil, errors.New("fault signature catalog is required")
	}
	return &Snapshot{
		Refrigerants: refrigerants,
		Signatures:   signatures,
		Cycle:        opts,
		LoadedAt:     time.Now().UTC(),
	}, nil
}

// DefaultSnapshot uses the embedded catalogs and default options.
func DefaultSnapshot() (*Snapshot, error) {
	return LoadSnapshot("", "", cycle.DefaultOptions())
}

// LoadSnapshot loads catalogs from files. An empty path selects the
// embedded catalog.
func LoadSnapshot(refrigerantPath, signaturePath string, opts cycle.Options) (*Snapshot, error) {
	var (
		refs *refrigerant.Catalog
		sigs *rules.Catalog
		err  error
	)

	if refrigerantPath == "" {
		refs, err = refrigerant.Default()
	} else {
		refs, err = refrigerant.LoadFile(refrigerantPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load refrigerant catalog: %w", err)
	}

	if signaturePath == "" {
		sigs, err = rules.Default()
	} else {
		sigs, err = rules.LoadFile(signaturePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load fault signature catalog: %w", err)
	}

	return NewSnapshot(refs, sigs, opts)
}
