package server

import (
	"errors"
	"net/http"

	"github.com/mrhapile/hvac-diagnoser/pkg/types"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeIncompleteReading  = "INCOMPLETE_READING"
	CodeInvalidReading     = "INVALID_READING"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnknownRefrigerant = "UNKNOWN_REFRIGERANT"
	CodeOutOfRange         = "OUT_OF_RANGE"
	CodeInternal           = "INTERNAL_ERROR"
)

// StatusFor maps a core error to an HTTP status and error code.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, types.ErrIncompleteReading):
		return http.StatusBadRequest, CodeIncompleteReading
	case errors.Is(err, types.ErrInvalidReading):
		return http.StatusBadRequest, CodeInvalidReading
	case errors.Is(err, types.ErrUnknownRefrigerant):
		return http.StatusNotFound, CodeUnknownRefrigerant
	case errors.Is(err, types.ErrOutOfRange):
		return http.StatusUnprocessableEntity, CodeOutOfRange
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func errorResponse(err error) (int, ErrorResponse) {
	status, code := StatusFor(err)
	return status, ErrorResponse{Error: err.Error(), Code: code}
}
