package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"linkloom/internal/contextutil"
	"linkloom/internal/service"
)

// DraftsHandler handles HTTP requests for item drafts.
type DraftsHandler struct {
	drafts service.DraftService
}

// NewDraftsHandler creates a new DraftsHandler.
func NewDraftsHandler(drafts service.DraftService) *DraftsHandler {
	return &DraftsHandler{drafts: drafts}
}

// CreateDraftRequest optionally carries pasted share text or a link.
type CreateDraftRequest struct {
	Input string `json:"input"`
}

// Create starts a draft. The body is optional.
func (h *DraftsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateDraftRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	st, err := h.drafts.Create(ctx, req.Input)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to create draft")
		return
	}
	writeJSON(w, ctx, http.StatusCreated, st)
}

// Get returns the draft.
func (h *DraftsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	st, err := h.drafts.Get(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get draft")
		return
	}
	writeJSON(w, ctx, http.StatusOK, st)
}

// Update changes draft fields; setting input re-runs smart paste.
func (h *DraftsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	var upd service.DraftUpdate
	if !decodeJSON(w, r, &upd) {
		return
	}
	st, err := h.drafts.Update(ctx, id, upd)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to update draft")
		return
	}
	writeJSON(w, ctx, http.StatusOK, st)
}

// Analyze applies AI suggestions to the draft.
func (h *DraftsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	st, err := h.drafts.Analyze(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to analyze draft")
		return
	}
	writeJSON(w, ctx, http.StatusOK, st)
}

// Save turns the draft into an item.
func (h *DraftsHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	item, err := h.drafts.Save(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to save draft")
		return
	}
	writeJSON(w, ctx, http.StatusCreated, item)
}

// Discard drops the draft.
func (h *DraftsHandler) Discard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.drafts.Discard(ctx, id); err != nil {
		handleServiceError(w, ctx, err, "Failed to discard draft")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
