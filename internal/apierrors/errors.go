// Package apierrors defines the typed errors lifecycle services return
// to the transport boundary. Each error carries the HTTP status the REST
// layer should respond with; handlers never invent status codes of
// their own.
package apierrors

import (
	"errors"
	"net/http"
)

// APIError is an operation failure with a client-facing message and an
// HTTP status code.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// AsAPIError unwraps err into an *APIError if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// NewErrValidation reports malformed or missing input.
func NewErrValidation(message string) *APIError {
	return &APIError{Status: http.StatusUnprocessableEntity, Message: message}
}

// NewErrEmailTaken reports a registration with an email already in use.
func NewErrEmailTaken() *APIError {
	return &APIError{Status: http.StatusUnprocessableEntity, Message: "Email already exists!"}
}

// NewErrInvalidCredentials reports a failed login attempt. The message
// stays generic so it leaks nothing about which part was wrong.
func NewErrInvalidCredentials() *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: "Unauthorized"}
}

// NewErrMissingAuthorizationToken reports a request without a bearer token.
func NewErrMissingAuthorizationToken() *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: "missing authorization token"}
}

// NewErrInvalidAuthorizationToken reports an unknown or revoked bearer token.
func NewErrInvalidAuthorizationToken() *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: "invalid authorization token"}
}

// NewErrForbidden reports an authenticated actor without sufficient
// privilege for the target row.
func NewErrForbidden() *APIError {
	return &APIError{Status: http.StatusForbidden, Message: "You do not have permission to access this resource."}
}

// NewErrAdminImmutable reports an attempt to delete an admin user.
func NewErrAdminImmutable() *APIError {
	return &APIError{Status: http.StatusForbidden, Message: "Admin users cannot be deleted"}
}

// NewErrWrongPassword reports a password change with an incorrect
// current password.
func NewErrWrongPassword() *APIError {
	return &APIError{Status: http.StatusForbidden, Message: "Current password is incorrect"}
}

// NewErrPasswordMismatch reports a password confirmation that does not
// match the new password.
func NewErrPasswordMismatch() *APIError {
	return &APIError{Status: http.StatusUnprocessableEntity, Message: "Passwords do not match"}
}

// NewErrSamePassword reports a reset with an unchanged password.
func NewErrSamePassword() *APIError {
	return &APIError{Status: http.StatusUnprocessableEntity, Message: "New password must be different from the current password."}
}

// NewErrDecryptionFailed reports corrupt ciphertext or a wrong key.
// Surfaced to clients as a generic internal error.
func NewErrDecryptionFailed() *APIError {
	return &APIError{Status: http.StatusInternalServerError, Message: "internal server error"}
}

// NewErrUserNotFound reports a missing or soft-deleted user row.
func NewErrUserNotFound() *APIError {
	return &APIError{Status: http.StatusNotFound, Message: "User not found"}
}

// NewErrAccountNotFound reports a missing or soft-deleted account row.
func NewErrAccountNotFound() *APIError {
	return &APIError{Status: http.StatusNotFound, Message: "Account does not exist"}
}

// NewErrNoAccountsFound reports an empty account listing.
func NewErrNoAccountsFound() *APIError {
	return &APIError{Status: http.StatusNotFound, Message: "No accounts found."}
}
