package handlers

import (
	"net/http"

	"linkloom/internal/catalog"
	"linkloom/internal/navigator"
)

// ViewHandler exposes the shared navigation state.
type ViewHandler struct {
	store *catalog.Store
}

// NewViewHandler creates a new ViewHandler.
func NewViewHandler(store *catalog.Store) *ViewHandler {
	return &ViewHandler{store: store}
}

// ViewRequest changes parts of the navigation state. Omitted fields are left
// untouched.
type ViewRequest struct {
	Query     *string `json:"query,omitempty"`
	Filter    *string `json:"filter,omitempty"`
	Favorites *bool   `json:"favorites,omitempty"`
	Selected  *string `json:"selected,omitempty"`
	Options   *string `json:"options,omitempty"`
}

// TabRequest selects a tab.
type TabRequest struct {
	Tab string `json:"tab"`
}

// SwipeRequest is a finished drag. With End set the drag is classified from
// its endpoints; otherwise Moves are replayed as touch-move events and the
// last one is the end position.
type SwipeRequest struct {
	Start navigator.Point   `json:"start"`
	Moves []navigator.Point `json:"moves,omitempty"`
	End   *navigator.Point  `json:"end,omitempty"`
}

// Get returns the state, tab strip and visible items.
func (h *ViewHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r.Context(), http.StatusOK, h.store.View())
}

// Update patches the state.
func (h *ViewHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req ViewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	snap := h.store.UpdateView(catalog.ViewPatch{
		Filter:        req.Filter,
		FavoritesOnly: req.Favorites,
		Query:         req.Query,
		SelectedID:    req.Selected,
		OptionsID:     req.Options,
	})
	writeJSON(w, r.Context(), http.StatusOK, snap)
}

// SetTab selects a tab and reports the slide direction.
func (h *ViewHandler) SetTab(w http.ResponseWriter, r *http.Request) {
	var req TabRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, r.Context(), http.StatusOK, h.store.SetTab(req.Tab))
}

// Swipe moves to the neighbouring tab for a horizontal drag.
func (h *ViewHandler) Swipe(w http.ResponseWriter, r *http.Request) {
	var req SwipeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.End != nil {
		writeJSON(w, r.Context(), http.StatusOK, h.store.Swipe(r.Context(), req.Start, *req.End))
		return
	}

	var tracker navigator.Tracker
	tracker.Start(req.Start)
	for _, p := range req.Moves {
		tracker.Move(p)
	}
	writeJSON(w, r.Context(), http.StatusOK, h.store.Navigate(r.Context(), tracker.End()))
}
