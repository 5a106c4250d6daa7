package api

import (
	"net/http"

	"github.com/1wzhdxtx/task-management-system/internal/api/shared"
	"github.com/1wzhdxtx/task-management-system/internal/service"
	"github.com/1wzhdxtx/task-management-system/internal/service/auth"
	"github.com/1wzhdxtx/task-management-system/internal/store"
)

// CategoryHandler handles category-related API requests.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler with the given dependencies.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, auth.ErrMissingToken, "Authentication required")
		return
	}

	var req CreateCategoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), userID, req.Name, req.Description, req.Color)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create category")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, category)
}

// List handles GET /categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, auth.ErrMissingToken, "Authentication required")
		return
	}

	categories, err := h.categoryService.ListCategories(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list categories")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, categories)
}

// Get handles GET /categories/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, categoryID, ok := handleUserIDAndPathID(w, r, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategory(r.Context(), userID, categoryID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve category")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, category)
}

// Update handles PATCH /categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, categoryID, ok := handleUserIDAndPathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	category, err := h.categoryService.UpdateCategory(r.Context(), userID, categoryID, store.CategoryUpdate{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update category")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, category)
}

// Delete handles DELETE /categories/{id}. Tasks in the category survive
// with their category detached.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, categoryID, ok := handleUserIDAndPathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(r.Context(), userID, categoryID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
