package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1wzhdxtx/task-management-system/internal/domain"
	"github.com/1wzhdxtx/task-management-system/internal/mocks"
	"github.com/1wzhdxtx/task-management-system/internal/service"
)

func newAuthHandler(t *testing.T, userStore *mocks.MockUserStore) *AuthHandler {
	t.Helper()
	hasher := &mocks.MockPasswordHasher{}
	svc := service.NewAuthService(userStore, hasher, hasher, &mocks.MockJWTService{}, newTestDB(t), testLogger())
	return NewAuthHandler(svc)
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		payload    map[string]any
		wantStatus int
	}{
		{
			name: "valid registration",
			payload: map[string]any{
				"username": "alice",
				"email":    "alice@example.com",
				"password": "s3cretpass",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "invalid email",
			payload: map[string]any{
				"username": "alice",
				"email":    "not-an-email",
				"password": "s3cretpass",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "password too short",
			payload: map[string]any{
				"username": "alice",
				"email":    "alice@example.com",
				"password": "short",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing username",
			payload: map[string]any{
				"email":    "alice@example.com",
				"password": "s3cretpass",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newAuthHandler(t, mocks.NewMockUserStore())

			rec := httptest.NewRecorder()
			handler.Register(rec, jsonRequest(t, "POST", "/api/v1/auth/register", tt.payload, 0))

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusCreated {
				user := decodeBody[domain.User](t, rec)
				assert.Equal(t, "alice", user.Username)
				assert.True(t, user.IsActive)
			}
		})
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	userStore.Users[1] = &domain.User{ID: 1, Username: "alice", Email: "alice@example.com"}
	userStore.NextID = 2
	handler := newAuthHandler(t, userStore)

	rec := httptest.NewRecorder()
	handler.Register(rec, jsonRequest(t, "POST", "/api/v1/auth/register", map[string]any{
		"username": "other",
		"email":    "alice@example.com",
		"password": "s3cretpass",
	}, 0))

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "Email already registered", resp["error"])
}

func TestAuthHandler_Register_MalformedBody(t *testing.T) {
	handler := newAuthHandler(t, mocks.NewMockUserStore())

	req := httptest.NewRequest("POST", "/api/v1/auth/register", nil)
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	userStore.Users[1] = &domain.User{
		ID:             1,
		Username:       "alice",
		Email:          "alice@example.com",
		HashedPassword: "hashed:s3cretpass",
		IsActive:       true,
	}
	userStore.NextID = 2
	handler := newAuthHandler(t, userStore)

	rec := httptest.NewRecorder()
	handler.Login(rec, jsonRequest(t, "POST", "/api/v1/auth/login", map[string]any{
		"email":    "alice@example.com",
		"password": "s3cretpass",
	}, 0))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[AuthResponse](t, rec)
	assert.Equal(t, "mock-token-1", resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.False(t, resp.ExpiresAt.IsZero())
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice", resp.User.Username)
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		active   bool
		wantMsg  string
	}{
		{"unknown email", "nobody@example.com", "s3cretpass", true, "Invalid email or password"},
		{"wrong password", "alice@example.com", "wrongpass123", true, "Invalid email or password"},
		{"inactive account", "alice@example.com", "s3cretpass", false, "Account is inactive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStore := mocks.NewMockUserStore()
			userStore.Users[1] = &domain.User{
				ID:             1,
				Username:       "alice",
				Email:          "alice@example.com",
				HashedPassword: "hashed:s3cretpass",
				IsActive:       tt.active,
			}
			userStore.NextID = 2
			handler := newAuthHandler(t, userStore)

			rec := httptest.NewRecorder()
			handler.Login(rec, jsonRequest(t, "POST", "/api/v1/auth/login", map[string]any{
				"email":    tt.email,
				"password": tt.password,
			}, 0))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			resp := decodeBody[map[string]any](t, rec)
			assert.Equal(t, tt.wantMsg, resp["error"])
		})
	}
}
