// Package validation checks the shape of inputs once, at the boundary of the
// core. Engines downstream assume a validated reading.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mrhapile/hvac-diagnoser/pkg/types"
)

// =============================================================================
// Shared Validator Instance
// =============================================================================

// validate is shared by every check in this package. Initialized in init()
// with the custom validators and json field naming.
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report json names so errors match what collaborators send.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			name = strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("finite", validateFinite); err != nil {
		panic(fmt.Sprintf("validation: register finite: %v", err))
	}
	if err := validate.RegisterValidation("abovezero", validateAboveAbsoluteZero); err != nil {
		panic(fmt.Sprintf("validation: register abovezero: %v", err))
	}
}

// validateFinite rejects NaN and ±Inf.
func validateFinite(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		v := fl.Field().Float()
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	default:
		return true
	}
}

// validateAboveAbsoluteZero rejects temperatures at or below -459.67 °F.
func validateAboveAbsoluteZero(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		return fl.Field().Float() > types.AbsoluteZero
	default:
		return true
	}
}

// Reading validates a field reading.
//
// A missing required field yields *types.IncompleteReadingError naming the
// field. Any other violation (non-finite value, temperature at or below
// absolute zero, unknown pressure basis, pressure not above zero psia once
// converted from gauge, discharge not above suction) yields
// *types.InvalidReadingError. The first violation in field order wins.
func Reading(r types.FieldReading) error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return &types.InvalidReadingError{Field: "reading", Reason: err.Error()}
		}
		return fieldError(verrs[0])
	}

	abs := r.Absolute()
	if *abs.SuctionPressure <= 0 {
		return &types.InvalidReadingError{
			Field:  "suction_pressure",
			Reason: fmt.Sprintf("must be greater than 0 psia, got %.2f psia", *abs.SuctionPressure),
		}
	}
	if *abs.DischargePressure <= 0 {
		return &types.InvalidReadingError{
			Field:  "discharge_pressure",
			Reason: fmt.Sprintf("must be greater than 0 psia, got %.2f psia", *abs.DischargePressure),
		}
	}
	if *abs.DischargePressure <= *abs.SuctionPressure {
		return &types.InvalidReadingError{
			Field: "discharge_pressure",
			Reason: fmt.Sprintf("%.2f must be above suction pressure %.2f",
				*abs.DischargePressure, *abs.SuctionPressure),
		}
	}
	return nil
}

func fieldError(fe validator.FieldError) error {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return &types.IncompleteReadingError{Field: field}
	case "gt":
		return &types.InvalidReadingError{Field: field, Reason: fmt.Sprintf("must be greater than %s, got %v", fe.Param(), fe.Value())}
	case "finite":
		return &types.InvalidReadingError{Field: field, Reason: "must be a finite number"}
	case "abovezero":
		return &types.InvalidReadingError{Field: field, Reason: fmt.Sprintf("must be above absolute zero (%.2f °F), got %v", types.AbsoluteZero, fe.Value())}
	case "oneof":
		return &types.InvalidReadingError{Field: field, Reason: fmt.Sprintf("must be one of [%s], got %v", fe.Param(), fe.Value())}
	default:
		return &types.InvalidReadingError{Field: field, Reason: fmt.Sprintf("failed %q check", fe.Tag())}
	}
}

// Struct runs the tag validators on any struct, for configuration and
// request bodies outside the core data model.
func Struct(v any) error {
	return validate.Struct(v)
}
