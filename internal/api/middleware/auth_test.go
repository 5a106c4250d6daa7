package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1wzhdxtx/task-management-system/internal/domain"
	"github.com/1wzhdxtx/task-management-system/internal/mocks"
	"github.com/1wzhdxtx/task-management-system/internal/service/auth"
)

func newAuthFixture(active bool) (*AuthMiddleware, http.Handler, *int64) {
	userStore := mocks.NewMockUserStore()
	userStore.Users[42] = &domain.User{
		ID:       42,
		Username: "alice",
		Email:    "alice@example.com",
		IsActive: active,
	}
	userStore.NextID = 43

	mw := NewAuthMiddleware(&mocks.MockJWTService{}, userStore)

	var seenUserID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r)
		if ok {
			seenUserID = userID
		}
		w.WriteHeader(http.StatusOK)
	})
	return mw, next, &seenUserID
}

func TestAuthenticate_ValidToken(t *testing.T) {
	mw, next, seenUserID := newAuthFixture(true)

	req := httptest.NewRequest("GET", "/tasks", nil)
	req.Header.Set("Authorization", "Bearer mock-token-42")
	rec := httptest.NewRecorder()

	mw.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), *seenUserID)
}

func TestAuthenticate_HeaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{"missing header", "", "Authorization header required"},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "Invalid authorization format"},
		{"no token part", "Bearer", "Invalid authorization format"},
		{"garbage token", "Bearer not-a-real-token", "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw, next, _ := newAuthFixture(true)

			req := httptest.NewRequest("GET", "/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			mw.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var resp map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantMsg, resp["error"])
		})
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	mw, next, _ := newAuthFixture(true)
	mw.jwtService = &mocks.MockJWTService{
		ValidateTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
			return nil, auth.ErrExpiredToken
		},
	}

	req := httptest.NewRequest("GET", "/tasks", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rec := httptest.NewRecorder()

	mw.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Token expired", resp["error"])
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	// A token that validates but points at a user who no longer exists.
	mw, next, _ := newAuthFixture(true)

	req := httptest.NewRequest("GET", "/tasks", nil)
	req.Header.Set("Authorization", "Bearer mock-token-7")
	rec := httptest.NewRecorder()

	mw.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Invalid token", resp["error"])
}

func TestAuthenticate_InactiveUser(t *testing.T) {
	mw, next, _ := newAuthFixture(false)

	req := httptest.NewRequest("GET", "/tasks", nil)
	req.Header.Set("Authorization", "Bearer mock-token-42")
	rec := httptest.NewRecorder()

	mw.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Account is inactive", resp["error"])
}
