package mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/1wzhdxtx/task-management-system/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, userID int64) (string, time.Time, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default token lifetime for the built-in behavior
	TokenLifetime time.Duration
}

var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements the auth.JWTService interface. The default
// behavior produces a recognizable fake token carrying the user id.
func (m *MockJWTService) GenerateToken(ctx context.Context, userID int64) (string, time.Time, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}

	lifetime := m.TokenLifetime
	if lifetime == 0 {
		lifetime = 30 * time.Minute
	}
	return fmt.Sprintf("mock-token-%d", userID), time.Now().Add(lifetime), nil
}

// ValidateToken implements the auth.JWTService interface
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}

	var userID int64
	if _, err := fmt.Sscanf(tokenString, "mock-token-%d", &userID); err != nil {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: userID}, nil
}

// MockPasswordHasher implements auth.PasswordHasher and
// auth.PasswordVerifier with a reversible fake hash for testing.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error
}

var (
	_ auth.PasswordHasher   = (*MockPasswordHasher)(nil)
	_ auth.PasswordVerifier = (*MockPasswordHasher)(nil)
)

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if strings.TrimPrefix(hashedPassword, "hashed:") != password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}
