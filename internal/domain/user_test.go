package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "s3cretpass", user.Password)
	assert.Empty(t, user.HashedPassword)
	assert.True(t, user.IsActive)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
}

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "valid user",
			username: "bob",
			email:    "bob@example.com",
			password: "longenough",
			wantErr:  nil,
		},
		{
			name:     "empty username",
			username: "",
			email:    "bob@example.com",
			password: "longenough",
			wantErr:  ErrValidation,
		},
		{
			name:     "whitespace username",
			username: "   ",
			email:    "bob@example.com",
			password: "longenough",
			wantErr:  ErrValidation,
		},
		{
			name:     "username too long",
			username: strings.Repeat("a", 51),
			email:    "bob@example.com",
			password: "longenough",
			wantErr:  ErrValidation,
		},
		{
			name:     "empty email",
			username: "bob",
			email:    "",
			password: "longenough",
			wantErr:  ErrValidation,
		},
		{
			name:     "email missing at",
			username: "bob",
			email:    "bob.example.com",
			password: "longenough",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "email missing domain dot",
			username: "bob",
			email:    "bob@example",
			password: "longenough",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "password too short",
			username: "bob",
			email:    "bob@example.com",
			password: "short",
			wantErr:  ErrValidation,
		},
		{
			name:     "password too long for bcrypt",
			username: "bob",
			email:    "bob@example.com",
			password: strings.Repeat("x", 73),
			wantErr:  ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &User{
				Username: tt.username,
				Email:    tt.email,
				Password: tt.password,
			}
			err := user.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestUserValidate_StoredUserWithoutPlaintext(t *testing.T) {
	// A user loaded from storage has a hash and no plaintext password.
	user := &User{
		Username:       "carol",
		Email:          "carol@example.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}
	assert.NoError(t, user.Validate())
}

func TestUserValidate_MissingBothPasswords(t *testing.T) {
	user := &User{
		Username: "carol",
		Email:    "carol@example.com",
	}
	err := user.Validate()
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "password", validationErr.Field)
}
