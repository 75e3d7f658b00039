package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/loverescue/coachcore/internal/assessment"
	"github.com/loverescue/coachcore/internal/redact"
)

const (
	typeInvalidArgument = "invalid_argument"
	typeAuthentication  = "authentication_error"
	typeTooLarge        = "request_too_large"
	typeRateLimited     = "rate_limited"
	typeInternal        = "internal_error"
)

// apiError is an error with a fixed HTTP status and error type.
type apiError struct {
	status  int
	message string
	typ     string
}

func (e *apiError) Error() string { return e.message }

var (
	errMissingAuth = &apiError{http.StatusUnauthorized, "Missing or invalid Authorization header", typeAuthentication}
	errInvalidKey  = &apiError{http.StatusUnauthorized, "Invalid API key", typeAuthentication}
	errTooBusy     = &apiError{http.StatusTooManyRequests, "Too many requests in flight", typeRateLimited}
	errRateLimited = &apiError{http.StatusTooManyRequests, "Rate limit exceeded", typeRateLimited}
	errTooLarge    = &apiError{http.StatusRequestEntityTooLarge, "Request body too large", typeTooLarge}
)

func invalidArgument(format string, args ...interface{}) error {
	return &apiError{http.StatusBadRequest, fmt.Sprintf(format, args...), typeInvalidArgument}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// writeError writes an error JSON in the {"error":{message,type}} shape.
func writeError(w http.ResponseWriter, status int, message, typ string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{
		Error: errorDetail{
			Message: message,
			Type:    typ,
		},
	})
}

// writeAPIError maps err to a status and writes it. It returns the status.
func writeAPIError(w http.ResponseWriter, err error) int {
	var ae *apiError
	switch {
	case errors.As(err, &ae):
	case errors.Is(err, assessment.ErrInvalidArgument):
		ae = &apiError{http.StatusBadRequest, err.Error(), typeInvalidArgument}
	default:
		redact.Logf("request failed: %v", err)
		ae = &apiError{http.StatusInternalServerError, "Internal error", typeInternal}
	}
	writeError(w, ae.status, ae.message, ae.typ)
	return ae.status
}

func errorType(err error) string {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae.typ
	}
	if errors.Is(err, assessment.ErrInvalidArgument) {
		return typeInvalidArgument
	}
	return typeInternal
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		redact.Logf("encode response: %v", err)
	}
}
