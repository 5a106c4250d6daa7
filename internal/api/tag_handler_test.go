package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1wzhdxtx/task-management-system/internal/domain"
	"github.com/1wzhdxtx/task-management-system/internal/mocks"
	"github.com/1wzhdxtx/task-management-system/internal/service"
)

func newTagRouter(t *testing.T, tagStore *mocks.MockTagStore) chi.Router {
	t.Helper()
	handler := NewTagHandler(service.NewTagService(tagStore, testLogger()))

	r := chi.NewRouter()
	r.Route("/tags", func(r chi.Router) {
		r.Post("/", handler.Create)
		r.Get("/", handler.List)
		r.Get("/{id}", handler.Get)
		r.Patch("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
	})
	return r
}

func TestTagHandler_CRUD(t *testing.T) {
	tagStore := mocks.NewMockTagStore()
	router := newTagRouter(t, tagStore)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(t, "POST", "/tags", map[string]any{"name": "urgent"}, 1))
	require.Equal(t, http.StatusCreated, rec.Code)
	tag := decodeBody[domain.Tag](t, rec)
	assert.Equal(t, "urgent", tag.Name)
	assert.Equal(t, domain.DefaultTagColor, tag.Color)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(t, "POST", "/tags", map[string]any{"name": "urgent"}, 1))
	assert.Equal(t, http.StatusConflict, rec.Code)

	path := fmt.Sprintf("/tags/%d", tag.ID)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(t, "PATCH", path, map[string]any{"color": "#FF0000"}, 1))
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[domain.Tag](t, rec)
	assert.Equal(t, "#FF0000", updated.Color)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(t, "GET", "/tags", nil, 1))
	require.Equal(t, http.StatusOK, rec.Code)
	tags := decodeBody[[]domain.Tag](t, rec)
	assert.Len(t, tags, 1)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(t, "DELETE", path, nil, 1))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, tagStore.Tags)
}

func TestTagHandler_Ownership(t *testing.T) {
	tagStore := mocks.NewMockTagStore()
	tag, err := domain.NewTag(1, "mine")
	require.NoError(t, err)
	require.NoError(t, tagStore.Create(context.Background(), tag))
	router := newTagRouter(t, tagStore)
	path := fmt.Sprintf("/tags/%d", tag.ID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(t, "GET", path, nil, 2))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(t, "DELETE", path, nil, 2))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Len(t, tagStore.Tags, 1)
}
