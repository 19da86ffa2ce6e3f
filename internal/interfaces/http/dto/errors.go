package dto

import (
	"net/http"
	"strings"
)

// ErrCodeInternal is used when no more specific code applies
const ErrCodeInternal = "INTERNAL_ERROR"

// ErrCodeBadRequest is used for malformed requests before they reach a service
const ErrCodeBadRequest = "BAD_REQUEST"

// errorCodeHTTPStatus maps domain error codes to HTTP status codes. Codes
// describing a conflict with current state map to 409, codes describing a
// business rule the request itself violates map to 422.
var errorCodeHTTPStatus = map[string]int{
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"REFERENTIAL_CONFLICT": http.StatusConflict,
	"DUPLICATE_REQUEST":    http.StatusConflict,
	"INVALID_STATE":        http.StatusConflict,
	"INSUFFICIENT_STOCK":   http.StatusUnprocessableEntity,
	"NEGATIVE_COST":        http.StatusUnprocessableEntity,
	"EXCEEDS_OUTSTANDING":  http.StatusUnprocessableEntity,
	"EMPTY_SALE":           http.StatusBadRequest,
	"EMPTY_PURCHASE":       http.StatusBadRequest,
	"DUPLICATE_PRODUCT":    http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInternal:        http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unmapped INVALID_* codes are treated as client input errors; anything
// else unknown is an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
