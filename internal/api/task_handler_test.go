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

type taskHandlerFixture struct {
	router    chi.Router
	taskStore *mocks.MockTaskStore
	tagStore  *mocks.MockTagStore
	catStore  *mocks.MockCategoryStore
}

func newTaskHandlerFixture(t *testing.T) *taskHandlerFixture {
	t.Helper()

	f := &taskHandlerFixture{
		taskStore: mocks.NewMockTaskStore(),
		tagStore:  mocks.NewMockTagStore(),
		catStore:  mocks.NewMockCategoryStore(),
	}
	svc := service.NewTaskService(f.taskStore, f.catStore, f.tagStore, newTestDB(t), testLogger())
	handler := NewTaskHandler(svc)

	r := chi.NewRouter()
	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", handler.Create)
		r.Get("/", handler.List)
		r.Get("/statistics", handler.Statistics)
		r.Get("/{id}", handler.Get)
		r.Patch("/{id}", handler.Update)
		r.Patch("/{id}/status", handler.UpdateStatus)
		r.Delete("/{id}", handler.Delete)
	})
	f.router = r
	return f
}

func (f *taskHandlerFixture) seedTask(t *testing.T, userID int64, title string, status domain.TaskStatus) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(userID, title)
	require.NoError(t, err)
	task.Status = status
	require.NoError(t, f.taskStore.Create(context.Background(), task))
	return task
}

func (f *taskHandlerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestTaskHandler_Create(t *testing.T) {
	f := newTaskHandlerFixture(t)

	rec := f.do(jsonRequest(t, "POST", "/tasks", map[string]any{
		"title":    "Ship it",
		"priority": "high",
	}, 1))

	require.Equal(t, http.StatusCreated, rec.Code)
	task := decodeBody[domain.Task](t, rec)
	assert.Equal(t, "Ship it", task.Title)
	assert.Equal(t, domain.TaskStatusPending, task.Status)
	assert.Equal(t, domain.TaskPriorityHigh, task.Priority)
}

func TestTaskHandler_Create_Invalid(t *testing.T) {
	f := newTaskHandlerFixture(t)

	rec := f.do(jsonRequest(t, "POST", "/tasks", map[string]any{
		"title":  "Bad status",
		"status": "paused",
	}, 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(jsonRequest(t, "POST", "/tasks", map[string]any{
		"status": "pending",
	}, 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskHandler_Create_Unauthenticated(t *testing.T) {
	f := newTaskHandlerFixture(t)

	rec := f.do(jsonRequest(t, "POST", "/tasks", map[string]any{"title": "No auth"}, 0))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTaskHandler_List(t *testing.T) {
	f := newTaskHandlerFixture(t)
	for i := 0; i < 5; i++ {
		f.seedTask(t, 1, fmt.Sprintf("Task %d", i), domain.TaskStatusPending)
	}
	f.seedTask(t, 2, "Other", domain.TaskStatusPending)

	rec := f.do(jsonRequest(t, "GET", "/tasks?page=1&page_size=2", nil, 1))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[TaskListResponse](t, rec)
	assert.Equal(t, int64(5), resp.Total)
	assert.Equal(t, int64(3), resp.TotalPages)
	assert.Len(t, resp.Items, 2)
}

func TestTaskHandler_List_StatusFilter(t *testing.T) {
	f := newTaskHandlerFixture(t)
	f.seedTask(t, 1, "Done", domain.TaskStatusCompleted)
	f.seedTask(t, 1, "Open", domain.TaskStatusPending)

	rec := f.do(jsonRequest(t, "GET", "/tasks?status=completed", nil, 1))
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[TaskListResponse](t, rec)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Done", resp.Items[0].Title)

	rec = f.do(jsonRequest(t, "GET", "/tasks?status=bogus", nil, 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskHandler_Statistics(t *testing.T) {
	f := newTaskHandlerFixture(t)
	f.seedTask(t, 1, "Done", domain.TaskStatusCompleted)
	f.seedTask(t, 1, "Open", domain.TaskStatusPending)

	rec := f.do(jsonRequest(t, "GET", "/tasks/statistics", nil, 1))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[TaskStatisticsResponse](t, rec)
	assert.Equal(t, int64(2), resp.Total)
	assert.Equal(t, int64(1), resp.ByStatus["completed"])
	assert.Equal(t, int64(0), resp.ByStatus["archived"])
	assert.Equal(t, float64(50), resp.CompletionRate)
}

func TestTaskHandler_Get(t *testing.T) {
	f := newTaskHandlerFixture(t)
	task := f.seedTask(t, 1, "Mine", domain.TaskStatusPending)

	rec := f.do(jsonRequest(t, "GET", fmt.Sprintf("/tasks/%d", task.ID), nil, 1))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(jsonRequest(t, "GET", "/tasks/999", nil, 1))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(jsonRequest(t, "GET", fmt.Sprintf("/tasks/%d", task.ID), nil, 2))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(jsonRequest(t, "GET", "/tasks/abc", nil, 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskHandler_Update(t *testing.T) {
	f := newTaskHandlerFixture(t)
	task := f.seedTask(t, 1, "Before", domain.TaskStatusPending)

	rec := f.do(jsonRequest(t, "PATCH", fmt.Sprintf("/tasks/%d", task.ID), map[string]any{
		"title":  "After",
		"status": "in_progress",
	}, 1))

	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[domain.Task](t, rec)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, domain.TaskStatusInProgress, updated.Status)
}

func TestTaskHandler_UpdateStatus(t *testing.T) {
	f := newTaskHandlerFixture(t)
	task := f.seedTask(t, 1, "Moving", domain.TaskStatusPending)

	rec := f.do(jsonRequest(t, "PATCH", fmt.Sprintf("/tasks/%d/status", task.ID), map[string]any{
		"status": "completed",
	}, 1))
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[domain.Task](t, rec)
	assert.Equal(t, domain.TaskStatusCompleted, updated.Status)

	rec = f.do(jsonRequest(t, "PATCH", fmt.Sprintf("/tasks/%d/status", task.ID), map[string]any{
		"status": "done",
	}, 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskHandler_Delete(t *testing.T) {
	f := newTaskHandlerFixture(t)
	task := f.seedTask(t, 1, "Doomed", domain.TaskStatusPending)

	rec := f.do(jsonRequest(t, "DELETE", fmt.Sprintf("/tasks/%d", task.ID), nil, 2))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(jsonRequest(t, "DELETE", fmt.Sprintf("/tasks/%d", task.ID), nil, 1))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())

	rec = f.do(jsonRequest(t, "DELETE", fmt.Sprintf("/tasks/%d", task.ID), nil, 1))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
