package apperrors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized is returned when no valid session accompanies the request.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the caller's role or ownership is insufficient.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when a referenced entity is absent.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned on schema or validation failure.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDateConflict is returned when a booking overlaps an existing one.
	ErrDateConflict = errors.New("property is not available for the selected dates")
	// ErrInvalidDateRange is returned when check-in is not before check-out.
	ErrInvalidDateRange = errors.New("check-in date must be before check-out date")
	// ErrInvalidTransition is returned on an illegal booking status change.
	ErrInvalidTransition = errors.New("invalid booking status transition")
	// ErrInvalidState is returned when an operation needs the entity in another state.
	ErrInvalidState = errors.New("invalid state for this operation")
	// ErrConflict is returned on duplicate unique keys (email, review per booking).
	ErrConflict = errors.New("already exists")
)

// ErrorResponse is the standardized JSON error body.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// HTTPError carries a status code alongside the response body.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     map[string]string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message, Code: code}
}

// Validation builds a 400 with per-field detail for form-level feedback.
func Validation(fields map[string]string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusBadRequest,
		Message:    "validation failed",
		Code:       "INVALID_INPUT",
		Fields:     fields,
	}
}

func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message, Code: e.Code, Fields: e.Fields}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unexpected errors collapse
// to a generic server fault without leaking internals.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	case errors.Is(err, ErrDateConflict):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DATE_CONFLICT")
	case errors.Is(err, ErrInvalidDateRange):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_DATE_RANGE")
	case errors.Is(err, ErrInvalidTransition):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TRANSITION")
	case errors.Is(err, ErrInvalidState):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATE")
	case errors.Is(err, ErrConflict):
		// the public surface reports duplicates as 400, distinguished by code
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CONFLICT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "server error", "SERVER_ERROR")
	}
}
