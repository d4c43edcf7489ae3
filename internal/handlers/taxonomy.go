package handlers

import (
	"net/http"

	"linkloom/internal/catalog"
)

// FoldersHandler manages the folder set.
type FoldersHandler struct {
	store *catalog.Store
}

// NewFoldersHandler creates a new FoldersHandler.
func NewFoldersHandler(store *catalog.Store) *FoldersHandler {
	return &FoldersHandler{store: store}
}

// NameRequest carries a folder or platform name.
type NameRequest struct {
	Name string `json:"name"`
}

// RenameRequest carries the new folder name.
type RenameRequest struct {
	NewName string `json:"newName"`
}

// DeleteFolderResponse reports where the folder's items went.
type DeleteFolderResponse struct {
	Applied  bool   `json:"applied"`
	Fallback string `json:"fallback,omitempty"`
}

// List returns the sorted folder names.
func (h *FoldersHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r.Context(), http.StatusOK, h.store.Folders())
}

// Create adds a folder. Blank or duplicate names are ignored.
func (h *FoldersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req NameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	applied := h.store.AddFolder(r.Context(), req.Name)
	writeJSON(w, r.Context(), http.StatusOK, AppliedResponse{Applied: applied})
}

// Rename renames a folder and every item in it.
func (h *FoldersHandler) Rename(w http.ResponseWriter, r *http.Request) {
	name, ok := pathParam(w, r, "name")
	if !ok {
		return
	}
	var req RenameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	applied := h.store.RenameFolder(r.Context(), name, req.NewName)
	writeJSON(w, r.Context(), http.StatusOK, AppliedResponse{Applied: applied})
}

// Delete removes a folder, moving its items to the fallback folder.
func (h *FoldersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name, ok := pathParam(w, r, "name")
	if !ok {
		return
	}
	fallback, applied := h.store.DeleteFolder(r.Context(), name)
	writeJSON(w, r.Context(), http.StatusOK, DeleteFolderResponse{Applied: applied, Fallback: fallback})
}

// PlatformsHandler manages the platform tab strip.
type PlatformsHandler struct {
	store *catalog.Store
}

// NewPlatformsHandler creates a new PlatformsHandler.
func NewPlatformsHandler(store *catalog.Store) *PlatformsHandler {
	return &PlatformsHandler{store: store}
}

// ReorderRequest is the desired tab order.
type ReorderRequest struct {
	Order []string `json:"order"`
}

// PlatformsResponse is the platform tab list.
type PlatformsResponse struct {
	Platforms []string `json:"platforms"`
}

// List returns the platform tabs in user order.
func (h *PlatformsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r.Context(), http.StatusOK, h.store.Platforms())
}

// Create adds a platform tab.
func (h *PlatformsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req NameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	applied := h.store.AddPlatformTab(r.Context(), req.Name)
	writeJSON(w, r.Context(), http.StatusOK, AppliedResponse{Applied: applied})
}

// Reorder replaces the tab order.
func (h *PlatformsHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	platforms := h.store.ReorderPlatformTabs(r.Context(), req.Order)
	writeJSON(w, r.Context(), http.StatusOK, PlatformsResponse{Platforms: platforms})
}

// Delete removes a platform tab. Items keep their platform label.
func (h *PlatformsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name, ok := pathParam(w, r, "name")
	if !ok {
		return
	}
	applied := h.store.DeletePlatformTab(r.Context(), name)
	writeJSON(w, r.Context(), http.StatusOK, AppliedResponse{Applied: applied})
}
