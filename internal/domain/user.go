package domain

import (
	"strings"
	"time"
)

// User represents a registered account. Each user owns their tasks,
// categories, and tags; every service-layer operation is scoped to a
// single owning user.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, only populated transiently during registration/updates
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a User with the given username, email, and plaintext
// password. The caller is responsible for hashing the password before the
// user is persisted.
func NewUser(username, email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Username:  username,
		Email:     email,
		Password:  password,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks that the User carries valid data.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return NewValidationError("username", "cannot be empty", ErrValidation)
	}
	if len(u.Username) > 50 {
		return NewValidationError("username", "must be at most 50 characters", ErrValidation)
	}

	if u.Email == "" {
		return NewValidationError("email", "cannot be empty", ErrValidation)
	}
	if !validEmailFormat(u.Email) {
		return NewValidationError("email", "is malformed", ErrInvalidEmail)
	}

	// An existing user loaded from storage carries only the hash; a user
	// being registered or changing password carries a plaintext password.
	if u.Password == "" && u.HashedPassword == "" {
		return NewValidationError("password", "cannot be empty", ErrValidation)
	}
	if u.Password != "" && !validPasswordLength(u.Password) {
		return NewValidationError("password", "must be between 8 and 72 characters", ErrValidation)
	}

	return nil
}

// validEmailFormat performs a structural check on the email address:
// exactly one non-leading, non-trailing @, with a dotted domain part.
func validEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

// validPasswordLength bounds passwords to bcrypt's practical input limit.
func validPasswordLength(password string) bool {
	n := len(password)
	return n >= 8 && n <= 72
}
