package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/1wzhdxtx/task-management-system/internal/domain"
	"github.com/1wzhdxtx/task-management-system/internal/service"
	"github.com/1wzhdxtx/task-management-system/internal/service/auth"
	"github.com/1wzhdxtx/task-management-system/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"inactive account", service.ErrAccountInactive, http.StatusUnauthorized},
		{"not owned", service.ErrNotOwned, http.StatusForbidden},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"category not found", store.ErrCategoryNotFound, http.StatusNotFound},
		{"tag not found", store.ErrTagNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"username exists", store.ErrUsernameExists, http.StatusConflict},
		{"category name exists", store.ErrCategoryNameExists, http.StatusConflict},
		{"tag name exists", store.ErrTagNameExists, http.StatusConflict},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"invalid email", domain.ErrInvalidEmail, http.StatusBadRequest},
		{"invalid status", domain.ErrInvalidStatus, http.StatusBadRequest},
		{"invalid priority", domain.ErrInvalidPriority, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestMapErrorToStatusCode_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("failed to retrieve task: %w", store.ErrTaskNotFound)
	assert.Equal(t, http.StatusNotFound, MapErrorToStatusCode(wrapped))

	doubly := fmt.Errorf("request failed: %w", fmt.Errorf("failed to log in: %w", service.ErrInvalidCredentials))
	assert.Equal(t, http.StatusUnauthorized, MapErrorToStatusCode(doubly))
}

func TestGetSafeErrorMessage(t *testing.T) {
	assert.Equal(t, "Invalid email or password", GetSafeErrorMessage(service.ErrInvalidCredentials))
	assert.Equal(t, "Task not found", GetSafeErrorMessage(store.ErrTaskNotFound))
	assert.Equal(t, "Email already registered", GetSafeErrorMessage(store.ErrEmailExists))
	assert.Equal(t, "You do not own this resource", GetSafeErrorMessage(service.ErrNotOwned))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestGetSafeErrorMessage_DoesNotLeakInternalDetail(t *testing.T) {
	err := errors.New("pq: connection to postgres://user:hunter2@db:5432 refused")
	msg := GetSafeErrorMessage(err)
	assert.Equal(t, "An unexpected error occurred", msg)
	assert.NotContains(t, msg, "hunter2")
}

func TestGetSafeErrorMessage_ValidationError(t *testing.T) {
	err := domain.NewValidationError("title", "cannot be empty", domain.ErrValidation)
	assert.Equal(t, "Invalid title: cannot be empty", GetSafeErrorMessage(err))

	wrapped := fmt.Errorf("failed to create task: %w", err)
	assert.Equal(t, "Invalid title: cannot be empty", GetSafeErrorMessage(wrapped))
}

func TestSanitizeValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "required tag",
			err:  errors.New("Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"),
			want: "Invalid Email: required field",
		},
		{
			name: "email tag",
			err:  errors.New("Key: 'RegisterRequest.Email' Error:Field validation for 'Email' failed on the 'email' tag"),
			want: "Invalid Email: invalid email format",
		},
		{
			name: "hexcolor tag",
			err:  errors.New("Key: 'CreateTagRequest.Color' Error:Field validation for 'Color' failed on the 'hexcolor' tag"),
			want: "Invalid Color: invalid color format",
		},
		{
			name: "oneof tag",
			err:  errors.New("Key: 'UpdateTaskStatusRequest.Status' Error:Field validation for 'Status' failed on the 'oneof' tag"),
			want: "Invalid Status: invalid value",
		},
		{
			name: "unrecognized shape",
			err:  errors.New("something else entirely"),
			want: "Validation error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeValidationError(tt.err))
		})
	}
}
