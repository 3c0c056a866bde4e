package types

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every typed error below matches one of these with errors.Is.
var (
	ErrUnknownRefrigerant = errors.New("unknown refrigerant")
	ErrOutOfRange         = errors.New("outside saturation table range")
	ErrIncompleteReading  = errors.New("incomplete reading")
	ErrInvalidReading     = errors.New("invalid reading")
	ErrInvalidCatalog     = errors.New("invalid catalog")
)

// UnknownRefrigerantError is returned when a refrigerant id is not in the catalog.
type UnknownRefrigerantError struct {
	ID string
}

func (e *UnknownRefrigerantError) Error() string {
	return fmt.Sprintf("unknown refrigerant %q", e.ID)
}

func (e *UnknownRefrigerantError) Is(target error) bool {
	return target == ErrUnknownRefrigerant
}

// OutOfRangeError is returned when a lookup falls outside the saturation
// table. The catalog never extrapolates.
type OutOfRangeError struct {
	Refrigerant string
	Quantity    string
	Value       float64
	Min         float64
	Max         float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %.2f for %s is outside saturation table range [%.2f, %.2f]",
		e.Quantity, e.Value, e.Refrigerant, e.Min, e.Max)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// IncompleteReadingError names a required reading field that was not supplied.
type IncompleteReadingError struct {
	Field string
}

func (e *IncompleteReadingError) Error() string {
	return fmt.Sprintf("incomplete reading: %s is required", e.Field)
}

func (e *IncompleteReadingError) Is(target error) bool {
	return target == ErrIncompleteReading
}

// InvalidReadingError is a supplied value that is physically impossible.
type InvalidReadingError struct {
	Field  string
	Reason string
}

func (e *InvalidReadingError) Error() string {
	return fmt.Sprintf("invalid reading: %s %s", e.Field, e.Reason)
}

func (e *InvalidReadingError) Is(target error) bool {
	return target == ErrInvalidReading
}

// CatalogError is a configuration-time failure while loading reference data.
type CatalogError struct {
	Catalog string
	Entry   string
	Reason  string
}

func (e *CatalogError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("invalid %s catalog: %s", e.Catalog, e.Reason)
	}
	return fmt.Sprintf("invalid %s catalog: %s: %s", e.Catalog, e.Entry, e.Reason)
}

func (e *CatalogError) Is(target error) bool {
	return target == ErrInvalidCatalog
}
