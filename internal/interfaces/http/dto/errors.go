package dto

import (
	"net/http"
	"strings"
)

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	"NOT_FOUND": http.StatusNotFound,

	"UNAUTHORIZED": http.StatusUnauthorized,
	"FORBIDDEN":    http.StatusForbidden,

	"ALREADY_EXISTS": http.StatusConflict,

	// PRODUCT_NOT_FOUND is an order-line failure, not a resource
	// lookup miss; it rejects the request that named the product.
	"ALREADY_SHIPPED":        http.StatusBadRequest,
	"INSUFFICIENT_STOCK":     http.StatusBadRequest,
	"PRODUCT_NOT_FOUND":      http.StatusBadRequest,
	"MISSING_DETAILS":        http.StatusBadRequest,
	"MISSING_ADDRESS_FIELDS": http.StatusBadRequest,
	ErrCodeBadRequest:        http.StatusBadRequest,

	"ORDER_NUMBER_EXHAUSTED": http.StatusInternalServerError,
	"INTEGRITY":              http.StatusInternalServerError,
	ErrCodeInternal:          http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Validation-style codes (INVALID_*) fall through to 400; anything
// unrecognized is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
