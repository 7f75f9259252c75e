package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsAPIError(t *testing.T) {
	apiErr, ok := AsAPIError(NewErrForbidden())
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestAsAPIError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", NewErrUserNotFound())

	apiErr, ok := AsAPIError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "User not found", apiErr.Message)
}

func TestAsAPIError_NotAPIError(t *testing.T) {
	_, ok := AsAPIError(errors.New("plain"))
	assert.False(t, ok)
}

func TestConstructors_StatusAndMessage(t *testing.T) {
	tests := []struct {
		name    string
		err     *APIError
		status  int
		message string
	}{
		{"validation", NewErrValidation("The name field is required."), http.StatusUnprocessableEntity, "The name field is required."},
		{"email taken", NewErrEmailTaken(), http.StatusUnprocessableEntity, "Email already exists!"},
		{"invalid credentials", NewErrInvalidCredentials(), http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", NewErrForbidden(), http.StatusForbidden, "You do not have permission to access this resource."},
		{"admin immutable", NewErrAdminImmutable(), http.StatusForbidden, "Admin users cannot be deleted"},
		{"wrong password", NewErrWrongPassword(), http.StatusForbidden, "Current password is incorrect"},
		{"password mismatch", NewErrPasswordMismatch(), http.StatusUnprocessableEntity, "Passwords do not match"},
		{"same password", NewErrSamePassword(), http.StatusUnprocessableEntity, "New password must be different from the current password."},
		{"user not found", NewErrUserNotFound(), http.StatusNotFound, "User not found"},
		{"account not found", NewErrAccountNotFound(), http.StatusNotFound, "Account does not exist"},
		{"no accounts", NewErrNoAccountsFound(), http.StatusNotFound, "No accounts found."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.message, tt.err.Message)
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}
