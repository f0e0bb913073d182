package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies application errors by domain concern.
type ErrorType string

const (
	ErrorTypePath                ErrorType = "PATH_ERROR"
	ErrorTypeValidation          ErrorType = "VALIDATION_ERROR"
	ErrorTypeTransactionOrdering ErrorType = "TRANSACTION_ORDERING_ERROR"
	ErrorTypeTransactionCallback ErrorType = "TRANSACTION_CALLBACK_ERROR"
	ErrorTypeNotFound            ErrorType = "NOT_FOUND_ERROR"
	ErrorTypeInternal            ErrorType = "INTERNAL_ERROR"
)

// Common sentinel errors shared across the store engines.
var (
	ErrInvalidPath           = errors.New("invalid path")
	ErrInvalidDocumentPath   = errors.New("invalid document path")
	ErrInvalidCollectionPath = errors.New("invalid collection path")
	ErrDocumentNotFound      = errors.New("document not found")
	ErrInvalidQuery          = errors.New("invalid query")
	ErrReadAfterWrite        = errors.New("transactions require all reads to be executed before all writes")
	ErrInvalidResultValue    = errors.New("transaction result contains an unsupported value type")
)

// AppError is a typed application error with structured context.
type AppError struct {
	Type      ErrorType              `json:"type"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Cause     error                  `json:"-"`
	Component string                 `json:"component,omitempty"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error.
func NewAppError(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

// WithCause attaches the underlying cause.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithComponent attaches the originating component name.
func (e *AppError) WithComponent(component string) *AppError {
	e.Component = component
	return e
}

// WithDetail attaches a structured detail field.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewPathError reports a malformed or inconsistent path. Always a caller
// contract violation, never retried.
func NewPathError(message string) *AppError {
	return NewAppError(ErrorTypePath, message)
}

// NewValidationError reports an invalid write payload or transaction result.
func NewValidationError(message string) *AppError {
	return NewAppError(ErrorTypeValidation, message)
}

// NewTransactionOrderingError reports a read issued after a write within the
// same transaction attempt.
func NewTransactionOrderingError(message string) *AppError {
	return NewAppError(ErrorTypeTransactionOrdering, message).WithCause(ErrReadAfterWrite)
}

// NewTransactionCallbackError wraps a failure raised by the caller-supplied
// transaction callback.
func NewTransactionCallbackError(cause error) *AppError {
	return NewAppError(ErrorTypeTransactionCallback, "transaction callback failed").WithCause(cause)
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrorTypeNotFound, fmt.Sprintf("%s not found", resource))
}

// NewInternalError reports an unexpected internal failure.
func NewInternalError(message string) *AppError {
	return NewAppError(ErrorTypeInternal, message)
}

// WrapError wraps an error with context, preserving typed errors as-is.
func WrapError(err error, message string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(message).WithCause(err)
}

// typeOf extracts the ErrorType from an error, if it carries one.
func typeOf(err error) (ErrorType, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type, true
	}
	return "", false
}

// IsPathError checks if an error is a path error.
func IsPathError(err error) bool {
	if t, ok := typeOf(err); ok {
		return t == ErrorTypePath
	}
	return errors.Is(err, ErrInvalidPath) || errors.Is(err, ErrInvalidDocumentPath) || errors.Is(err, ErrInvalidCollectionPath)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	if t, ok := typeOf(err); ok {
		return t == ErrorTypeValidation
	}
	return errors.Is(err, ErrInvalidResultValue)
}

// IsTransactionOrdering checks if an error is a transaction ordering error.
func IsTransactionOrdering(err error) bool {
	if t, ok := typeOf(err); ok {
		return t == ErrorTypeTransactionOrdering
	}
	return errors.Is(err, ErrReadAfterWrite)
}

// IsTransactionCallback checks if an error originated in a transaction callback.
func IsTransactionCallback(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrorTypeTransactionCallback
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	if t, ok := typeOf(err); ok {
		return t == ErrorTypeNotFound
	}
	return errors.Is(err, ErrDocumentNotFound)
}
