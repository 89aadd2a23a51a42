package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
// Codes are formatted as MODULE_NNN so the owning module can be recovered
// with ModuleForCode.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeNotImplemented     ErrorCode = "COMMON_016"
)

// Aliases used by infrastructure packages.
const (
	CodeUnknown      ErrorCode = ""
	CodeInternal               = ErrCodeInternal
	CodeInvalidParam           = ErrCodeBadRequest
	CodeNotFound               = ErrCodeNotFound
	CodeConflict               = ErrCodeConflict
)

// Formula Module Error Codes
const (
	ErrCodeIllegalFormula ErrorCode = "FRM_001"
	ErrCodeUnknownElement ErrorCode = "FRM_002"
)

// Molecule Module Error Codes
const (
	ErrCodeIllegalMolecule ErrorCode = "MOL_001"
)

// Atom Module Error Codes
const (
	ErrCodeUnusableAtom ErrorCode = "ATM_001"
)

// Cache Error Codes
const (
	ErrCodeCacheMiss        ErrorCode = "CACHE_001"
	ErrCodeCacheUnavailable ErrorCode = "CACHE_002"
)

// Messaging Error Codes
const (
	ErrCodePublishFailed  ErrorCode = "MSG_001"
	ErrCodeConsumerState  ErrorCode = "MSG_002"
	ErrCodeMessageInvalid ErrorCode = "MSG_003"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeIllegalFormula:  http.StatusUnprocessableEntity,
	ErrCodeUnknownElement:  http.StatusUnprocessableEntity,
	ErrCodeIllegalMolecule: http.StatusUnprocessableEntity,
	ErrCodeUnusableAtom:    http.StatusUnprocessableEntity,

	ErrCodeCacheMiss:        http.StatusNotFound,
	ErrCodeCacheUnavailable: http.StatusServiceUnavailable,

	ErrCodePublishFailed:  http.StatusBadGateway,
	ErrCodeConsumerState:  http.StatusConflict,
	ErrCodeMessageInvalid: http.StatusBadRequest,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeIllegalFormula:  "illegal formula",
	ErrCodeUnknownElement:  "unknown element",
	ErrCodeIllegalMolecule: "illegal molecule",
	ErrCodeUnusableAtom:    "unusable atom",

	ErrCodeCacheMiss:        "cache miss",
	ErrCodeCacheUnavailable: "cache unavailable",

	ErrCodePublishFailed:  "message publish failed",
	ErrCodeConsumerState:  "invalid consumer state",
	ErrCodeMessageInvalid: "invalid message",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// IsChemistryError reports whether the code belongs to one of the four
// classification failure classes raised by the domain packages.
func IsChemistryError(code ErrorCode) bool {
	switch code {
	case ErrCodeIllegalFormula, ErrCodeUnknownElement, ErrCodeIllegalMolecule, ErrCodeUnusableAtom:
		return true
	}
	return false
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
