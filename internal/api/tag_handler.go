package api

import (
	"net/http"

	"github.com/1wzhdxtx/task-management-system/internal/api/shared"
	"github.com/1wzhdxtx/task-management-system/internal/service"
	"github.com/1wzhdxtx/task-management-system/internal/service/auth"
	"github.com/1wzhdxtx/task-management-system/internal/store"
)

// TagHandler handles tag-related API requests.
type TagHandler struct {
	tagService service.TagService
}

// NewTagHandler creates a new TagHandler with the given dependencies.
func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
	}
}

// Create handles POST /tags.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, auth.ErrMissingToken, "Authentication required")
		return
	}

	var req CreateTagRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	tag, err := h.tagService.CreateTag(r.Context(), userID, req.Name, req.Color)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create tag")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, tag)
}

// List handles GET /tags.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, auth.ErrMissingToken, "Authentication required")
		return
	}

	tags, err := h.tagService.ListTags(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tags")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tags)
}

// Get handles GET /tags/{id}.
func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, tagID, ok := handleUserIDAndPathID(w, r, "id")
	if !ok {
		return
	}

	tag, err := h.tagService.GetTag(r.Context(), userID, tagID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve tag")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tag)
}

// Update handles PATCH /tags/{id}.
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, tagID, ok := handleUserIDAndPathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTagRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	tag, err := h.tagService.UpdateTag(r.Context(), userID, tagID, store.TagUpdate{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update tag")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tag)
}

// Delete handles DELETE /tags/{id}.
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, tagID, ok := handleUserIDAndPathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.tagService.DeleteTag(r.Context(), userID, tagID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete tag")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
