package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user record is missing.
	ErrUserNotFound = errors.New("user not found")
	// ErrProfileNotFound is returned when a nutrition profile is missing.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrEntryNotFound is returned when a product entry is missing.
	ErrEntryNotFound = errors.New("product entry not found")
	// ErrValidation is returned for malformed input (bad name, non-positive grams).
	ErrValidation = errors.New("validation failed")
	// ErrInvalidDate is returned when a date cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidDateRange is returned when a range start is after its end.
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrNoEntries is returned when a report is requested for dates with no entries.
	ErrNoEntries = errors.New("no entries for requested dates")
	// ErrExternalService is returned when the nutrition API or mail transport fails.
	ErrExternalService = errors.New("external service unavailable")
	// ErrTaskEnqueue is returned when the task queue cannot accept work.
	ErrTaskEnqueue = errors.New("task enqueue failed")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrProfileNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PROFILE_NOT_FOUND")
	case errors.Is(err, ErrEntryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ENTRY_NOT_FOUND")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_FAILED")
	case errors.Is(err, ErrInvalidDate):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_DATE")
	case errors.Is(err, ErrInvalidDateRange):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_DATE_RANGE")
	case errors.Is(err, ErrNoEntries):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_ENTRIES")
	case errors.Is(err, ErrExternalService):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "EXTERNAL_SERVICE")
	case errors.Is(err, ErrTaskEnqueue):
		return NewHTTPError(http.StatusServiceUnavailable, err.Error(), "TASK_ENQUEUE_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
