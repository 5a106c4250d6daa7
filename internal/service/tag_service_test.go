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

func seedTag(t *testing.T, tagStore *mocks.MockTagStore, userID int64, name string) *domain.Tag {
	t.Helper()
	tag, err := domain.NewTag(userID, name)
	require.NoError(t, err)
	require.NoError(t, tagStore.Create(context.Background(), tag))
	return tag
}

func TestTagService_CreateTag(t *testing.T) {
	tagStore := mocks.NewMockTagStore()
	svc := NewTagService(tagStore, testLogger())

	tag, err := svc.CreateTag(context.Background(), ownerID, "urgent", "")
	require.NoError(t, err)
	assert.Equal(t, "urgent", tag.Name)
	assert.Equal(t, domain.DefaultTagColor, tag.Color)

	custom, err := svc.CreateTag(context.Background(), ownerID, "review", "#AB12CD")
	require.NoError(t, err)
	assert.Equal(t, "#AB12CD", custom.Color)

	_, err = svc.CreateTag(context.Background(), ownerID, "bad", "purple")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTagService_CreateTag_NameConflictScopedToUser(t *testing.T) {
	tagStore := mocks.NewMockTagStore()
	seedTag(t, tagStore, ownerID, "urgent")
	svc := NewTagService(tagStore, testLogger())

	_, err := svc.CreateTag(context.Background(), ownerID, "urgent", "")
	assert.ErrorIs(t, err, store.ErrTagNameExists)

	_, err = svc.CreateTag(context.Background(), intruderID, "urgent", "")
	assert.NoError(t, err)
}

func TestTagService_GetTag(t *testing.T) {
	tagStore := mocks.NewMockTagStore()
	tag := seedTag(t, tagStore, ownerID, "urgent")
	svc := NewTagService(tagStore, testLogger())

	got, err := svc.GetTag(context.Background(), ownerID, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, tag.Name, got.Name)

	_, err = svc.GetTag(context.Background(), ownerID, 999)
	assert.ErrorIs(t, err, store.ErrTagNotFound)

	_, err = svc.GetTag(context.Background(), intruderID, tag.ID)
	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestTagService_ListTags(t *testing.T) {
	tagStore := mocks.NewMockTagStore()
	seedTag(t, tagStore, ownerID, "urgent")
	seedTag(t, tagStore, ownerID, "backlog")
	seedTag(t, tagStore, intruderID, "other")
	svc := NewTagService(tagStore, testLogger())

	tags, err := svc.ListTags(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "backlog", tags[0].Name)
	assert.Equal(t, "urgent", tags[1].Name)
}

func TestTagService_UpdateTag(t *testing.T) {
	tagStore := mocks.NewMockTagStore()
	tag := seedTag(t, tagStore, ownerID, "urgent")
	seedTag(t, tagStore, ownerID, "backlog")
	svc := NewTagService(tagStore, testLogger())

	updated, err := svc.UpdateTag(context.Background(), ownerID, tag.ID, store.TagUpdate{
		Name:  strPtr("blocker"),
		Color: strPtr("#FF0000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "blocker", updated.Name)
	assert.Equal(t, "#FF0000", updated.Color)

	_, err = svc.UpdateTag(context.Background(), ownerID, tag.ID, store.TagUpdate{
		Name: strPtr("backlog"),
	})
	assert.ErrorIs(t, err, store.ErrTagNameExists)

	_, err = svc.UpdateTag(context.Background(), intruderID, tag.ID, store.TagUpdate{
		Name: strPtr("stolen"),
	})
	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestTagService_DeleteTag(t *testing.T) {
	tagStore := mocks.NewMockTagStore()
	tag := seedTag(t, tagStore, ownerID, "urgent")
	svc := NewTagService(tagStore, testLogger())

	err := svc.DeleteTag(context.Background(), intruderID, tag.ID)
	assert.ErrorIs(t, err, ErrNotOwned)

	err = svc.DeleteTag(context.Background(), ownerID, tag.ID)
	require.NoError(t, err)
	assert.Empty(t, tagStore.Tags)

	err = svc.DeleteTag(context.Background(), ownerID, tag.ID)
	assert.ErrorIs(t, err, store.ErrTagNotFound)
}
