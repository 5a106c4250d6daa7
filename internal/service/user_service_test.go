package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1wzhdxtx/task-management-system/internal/domain"
	"github.com/1wzhdxtx/task-management-system/internal/mocks"
	"github.com/1wzhdxtx/task-management-system/internal/store"
)

func strPtr(s string) *string { return &s }

func TestUserService_GetUser(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	user := registeredUser(t, userStore, true)
	db, _ := newTestDB(t)
	svc := NewUserService(userStore, &mocks.MockPasswordHasher{}, db, testLogger())

	got, err := svc.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.GetUser(context.Background(), 999)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserService_UpdateProfile(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	userStore := mocks.NewMockUserStore()
	registeredUser(t, userStore, true)
	svc := NewUserService(userStore, &mocks.MockPasswordHasher{}, db, testLogger())

	updated, err := svc.UpdateProfile(context.Background(), 1, UserProfileUpdate{
		Username: strPtr("alice2"),
		Email:    strPtr("alice2@example.com"),
	})
	require.NoError(t, err)

	assert.Equal(t, "alice2", updated.Username)
	assert.Equal(t, "alice2@example.com", updated.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_UpdateProfile_EmptyUpdateReturnsCurrent(t *testing.T) {
	db, mock := newTestDB(t)
	// No transaction expectations: an empty update must not touch the database.

	userStore := mocks.NewMockUserStore()
	user := registeredUser(t, userStore, true)
	svc := NewUserService(userStore, &mocks.MockPasswordHasher{}, db, testLogger())

	got, err := svc.UpdateProfile(context.Background(), user.ID, UserProfileUpdate{})
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_UpdateProfile_KeepingOwnIdentifiersIsNotAConflict(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	userStore := mocks.NewMockUserStore()
	user := registeredUser(t, userStore, true)
	svc := NewUserService(userStore, &mocks.MockPasswordHasher{}, db, testLogger())

	// Resubmitting the current username and email must succeed even though
	// both values exist in the store (they belong to this user).
	got, err := svc.UpdateProfile(context.Background(), user.ID, UserProfileUpdate{
		Username: strPtr(user.Username),
		Email:    strPtr(user.Email),
	})
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_UpdateProfile_EmailConflict(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	userStore := mocks.NewMockUserStore()
	registeredUser(t, userStore, true)
	other := &domain.User{ID: 2, Username: "bob", Email: "bob@example.com"}
	userStore.Users[other.ID] = other
	userStore.NextID = 3

	svc := NewUserService(userStore, &mocks.MockPasswordHasher{}, db, testLogger())

	_, err := svc.UpdateProfile(context.Background(), 1, UserProfileUpdate{
		Email: strPtr("bob@example.com"),
	})
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_UpdateProfile_UsernameConflict(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	userStore := mocks.NewMockUserStore()
	registeredUser(t, userStore, true)
	other := &domain.User{ID: 2, Username: "bob", Email: "bob@example.com"}
	userStore.Users[other.ID] = other
	userStore.NextID = 3

	svc := NewUserService(userStore, &mocks.MockPasswordHasher{}, db, testLogger())

	_, err := svc.UpdateProfile(context.Background(), 1, UserProfileUpdate{
		Username: strPtr("bob"),
	})
	assert.ErrorIs(t, err, store.ErrUsernameExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_UpdateProfile_InvalidEmail(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	userStore := mocks.NewMockUserStore()
	registeredUser(t, userStore, true)
	svc := NewUserService(userStore, &mocks.MockPasswordHasher{}, db, testLogger())

	_, err := svc.UpdateProfile(context.Background(), 1, UserProfileUpdate{
		Email: strPtr("not-an-email"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_UpdateProfile_RehashesPassword(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	userStore := mocks.NewMockUserStore()
	user := registeredUser(t, userStore, true)
	svc := NewUserService(userStore, &mocks.MockPasswordHasher{}, db, testLogger())

	updated, err := svc.UpdateProfile(context.Background(), user.ID, UserProfileUpdate{
		Password: strPtr("newpassword"),
	})
	require.NoError(t, err)
	assert.Equal(t, "hashed:newpassword", updated.HashedPassword)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_DeactivateUser(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	user := registeredUser(t, userStore, true)
	db, _ := newTestDB(t)
	svc := NewUserService(userStore, &mocks.MockPasswordHasher{}, db, testLogger())

	err := svc.DeactivateUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, userStore.Users[user.ID].IsActive)

	err = svc.DeactivateUser(context.Background(), 999)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserService_DeleteUser(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	userStore := mocks.NewMockUserStore()
	user := registeredUser(t, userStore, true)
	svc := NewUserService(userStore, &mocks.MockPasswordHasher{}, db, testLogger())

	err := svc.DeleteUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, userStore.Users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	userStore := mocks.NewMockUserStore()
	svc := NewUserService(userStore, &mocks.MockPasswordHasher{}, db, testLogger())

	err := svc.DeleteUser(context.Background(), 42)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
