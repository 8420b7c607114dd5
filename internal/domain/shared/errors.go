package shared

import "errors"

// Error codes shared by every bounded context. The HTTP layer maps them to
// status codes, so keep them stable.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeAuthorization  = "AUTHORIZATION_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodePersistence    = "PERSISTENCE_ERROR"
	CodeInvalidState   = "INVALID_STATE"
	CodeConflict       = "CONFLICT"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Cause is the underlying error, never exposed to clients
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError with the same code.
// This lets errors.Is(err, ErrNotFound) match any not-found error.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError reports missing or malformed input
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewAuthenticationError reports a missing or invalid credential
func NewAuthenticationError(message string) *DomainError {
	return NewDomainError(CodeAuthentication, message)
}

// NewAuthorizationError reports an authenticated caller that lacks permission
func NewAuthorizationError(message string) *DomainError {
	return NewDomainError(CodeAuthorization, message)
}

// NewNotFoundError reports a referenced entity that does not exist
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// NewInvalidStateError reports an operation the current state does not allow
func NewInvalidStateError(message string) *DomainError {
	return NewDomainError(CodeInvalidState, message)
}

// NewConflictError reports a uniqueness or concurrency conflict
func NewConflictError(message string) *DomainError {
	return NewDomainError(CodeConflict, message)
}

// NewPersistenceError wraps a store failure. op names the failed operation.
func NewPersistenceError(op string, cause error) *DomainError {
	return &DomainError{
		Code:    CodePersistence,
		Message: "failed to " + op,
		Cause:   cause,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewNotFoundError("Resource not found")
	ErrAlreadyExists = NewConflictError("Resource already exists")
	ErrInvalidInput  = NewValidationError("Invalid input provided")
	ErrUnauthorized  = NewAuthenticationError("Authentication required")
	ErrForbidden     = NewAuthorizationError("Access to this resource is forbidden")
	ErrInvalidState  = NewInvalidStateError("Operation not allowed in current state")
	ErrPersistence   = NewPersistenceError("access the store", nil)
)

// AsDomainError extracts a DomainError from an error chain
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
