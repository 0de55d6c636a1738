package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Authentication
	ErrInvalidCredentials    = "AUTH_001" // invalid credentials
	ErrNoSession             = "AUTH_002" // no current portal user
	ErrInvalidToken          = "AUTH_006" // invalid token
	ErrExpiredToken          = "AUTH_007" // expired token
	ErrInsufficientPrivilege = "AUTH_008" // insufficient privilege

	// Validation
	ErrInvalidRequest      = "VAL_001" // malformed request
	ErrMissingRequiredData = "VAL_002" // required data missing
	ErrInvalidFormat       = "VAL_003" // invalid data format

	// Ads
	ErrAdNotFound       = "AD_001" // ad not found
	ErrRotationNotFound = "AD_002" // rotation session not found
	ErrInvalidScreen    = "AD_003" // unknown screen

	// Server
	ErrInternalServer    = "SRV_001" // internal error
	ErrDatabaseOperation = "SRV_002" // storage error
	ErrExternalService   = "SRV_003" // upstream error
	ErrRouteNotFound     = "SRV_005" // no such route
	ErrMethodNotAllowed  = "SRV_006" // method not allowed
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrNoSession:             http.StatusNotFound,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrAdNotFound:            http.StatusNotFound,
	ErrRotationNotFound:      http.StatusNotFound,
	ErrInvalidScreen:         http.StatusBadRequest,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
	ErrRouteNotFound:         http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
}

// APIError is the body of every error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StatusFor returns the HTTP status of code, 500 for unknown codes.
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError writes a standard error response.
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	_ = json.NewEncoder(w).Encode(apiErr)
}

// FromError wraps a Go error into an APIError.
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "unknown error",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
