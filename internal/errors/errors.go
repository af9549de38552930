// Package errors provides custom error types for the stockdash API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Upload and parsing errors. These halt the whole analysis request;
// a partial result is never produced for a malformed ledger.
var (
	ErrMissingColumns  = &AppError{Code: "MISSING_COLUMNS", Message: "Required columns are missing", StatusCode: http.StatusUnprocessableEntity}
	ErrUnsupportedFile = &AppError{Code: "UNSUPPORTED_FILE", Message: "Unsupported file type; upload .xlsx or .csv", StatusCode: http.StatusUnsupportedMediaType}
	ErrUnreadableFile  = &AppError{Code: "UNREADABLE_FILE", Message: "File could not be parsed", StatusCode: http.StatusUnprocessableEntity}
	ErrNoValidTrades   = &AppError{Code: "NO_VALID_TRADES", Message: "No valid trades found in the uploaded ledger", StatusCode: http.StatusUnprocessableEntity}
)

// Market data errors. Per-ticker fetch failures inside an analysis run
// are carried as warnings in the report, not as AppErrors; ErrQuoteFetch
// is returned only when a direct quote lookup fails entirely.
var (
	ErrQuoteFetch = &AppError{Code: "QUOTE_FETCH_FAILED", Message: "Market data could not be retrieved", StatusCode: http.StatusBadGateway}
)

// Forecast errors.
var (
	ErrInsufficientData = &AppError{Code: "INSUFFICIENT_DATA", Message: "Not enough observations to forecast", StatusCode: http.StatusUnprocessableEntity}
)
