package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Error codes returned in the error envelope.
const (
	CodeMissingFields        = "MISSING_FIELDS"
	CodeInvalidEmail         = "INVALID_EMAIL"
	CodeInvalidPassword      = "INVALID_PASSWORD"
	CodeDuplicateEmail       = "DUPLICATE_EMAIL"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeNoToken              = "NO_TOKEN"
	CodeTokenExpired         = "TOKEN_EXPIRED"
	CodeInvalidToken         = "INVALID_TOKEN"
	CodeAuthError            = "AUTH_ERROR"
	CodeValidationError      = "VALIDATION_ERROR"
	CodeNotFound             = "NOT_FOUND"
	CodeRouteNotFound        = "ROUTE_NOT_FOUND"
	CodeRateLimited          = "RATE_LIMITED"
	CodeRegistrationError    = "REGISTRATION_ERROR"
	CodeLoginError           = "LOGIN_ERROR"
	CodeDatabaseError        = "DATABASE_ERROR"
	CodeInternalServerError  = "INTERNAL_SERVER_ERROR"
	CodeDatabaseDisconnected = "DATABASE_DISCONNECTED"
	CodeHealthCheckError     = "HEALTH_CHECK_ERROR"
)

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// writeSuccess writes the standard success envelope.
func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successEnvelope{Success: true, Data: data})
}

// writeError writes the standard error envelope.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorEnvelope{
		Success: false,
		Error:   errorBody{Message: message, Code: code},
	})
}

// writeErrorDetails writes the error envelope with a details payload.
func writeErrorDetails(w http.ResponseWriter, status int, message, code string, details any) {
	writeJSON(w, status, errorEnvelope{
		Success: false,
		Error:   errorBody{Message: message, Code: code, Details: details},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode response", "error", err)
	}
}
