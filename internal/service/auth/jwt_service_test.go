package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1wzhdxtx/task-management-system/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-secret-key-thats-at-least-32-chars",
		TokenLifetimeMinutes: 30,
	}
}

func TestNewJWTService_RejectsShortSecret(t *testing.T) {
	_, err := NewJWTService(config.AuthConfig{
		JWTSecret:            "too-short",
		TokenLifetimeMinutes: 30,
	})
	assert.Error(t, err)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	ctx := context.Background()
	token, expiresAt, err := svc.GenerateToken(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt, time.Second)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)
	impl := svc.(*hmacJWTService)

	ctx := context.Background()

	// Issue the token in the past, beyond lifetime plus clock skew.
	issuedAt := time.Now().Add(-2 * time.Hour)
	impl.timeFunc = func() time.Time { return issuedAt }
	token, _, err := impl.GenerateToken(ctx, 7)
	require.NoError(t, err)

	impl.timeFunc = time.Now
	_, err = impl.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_TokenWithinClockSkew(t *testing.T) {
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)
	impl := svc.(*hmacJWTService)

	ctx := context.Background()

	// Issued one minute in the future; within the two minute skew allowance.
	issuedAt := time.Now().Add(time.Minute)
	impl.timeFunc = func() time.Time { return issuedAt }
	token, _, err := impl.GenerateToken(ctx, 7)
	require.NoError(t, err)

	impl.timeFunc = time.Now
	claims, err := impl.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
}

func TestJWTService_WrongSigningKey(t *testing.T) {
	svc1, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	svc2, err := NewJWTService(config.AuthConfig{
		JWTSecret:            "another-secret-key-also-32-chars-min",
		TokenLifetimeMinutes: 30,
	})
	require.NoError(t, err)

	ctx := context.Background()
	token, _, err := svc1.GenerateToken(ctx, 1)
	require.NoError(t, err)

	_, err = svc2.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	ctx := context.Background()
	for _, tokenString := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.ValidateToken(ctx, tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tokenString)
	}
}

func TestJWTService_TamperedToken(t *testing.T) {
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	ctx := context.Background()
	token, _, err := svc.GenerateToken(ctx, 9)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = svc.ValidateToken(ctx, tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
