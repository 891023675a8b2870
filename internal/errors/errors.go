// Package errors provides custom error types for the pennywise web app.
// All service-layer errors should use AppError so handlers can turn them into
// flash messages without leaking internal details to the browser.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string
	Message    string
	StatusCode int
	Internal   error
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError carrying the same code, so that
// errors.Is(err, ErrCategoryInUse) matches wrapped or re-messaged copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

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

// Authentication errors. ErrInvalidCredentials is returned for both unknown
// usernames and wrong passwords.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Please log in to view that resource", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Please fill in all required fields.", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Page not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "Something went wrong. Please try again.", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound      = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "Username is already taken", StatusCode: http.StatusConflict}
)

// Category errors. Not-found and not-owned are deliberately the same error.
var (
	ErrCategoryNotFound         = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found or you are not authorized.", StatusCode: http.StatusNotFound}
	ErrDuplicateCategory        = &AppError{Code: "DUPLICATE_CATEGORY", Message: "Category with this name and type already exists.", StatusCode: http.StatusConflict}
	ErrDefaultCategoryImmutable = &AppError{Code: "DEFAULT_CATEGORY_IMMUTABLE", Message: "Default categories cannot be modified.", StatusCode: http.StatusForbidden}
	ErrCategoryInUse            = &AppError{Code: "CATEGORY_IN_USE", Message: "Cannot delete category as it is used in existing transactions.", StatusCode: http.StatusConflict}
)

// Transaction errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found or you are not authorized.", StatusCode: http.StatusNotFound}
)
