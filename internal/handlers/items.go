package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"linkloom/internal/catalog"
	"linkloom/internal/contextutil"
	"linkloom/internal/model"
	"linkloom/internal/service"
	"linkloom/internal/view"
)

// ItemsHandler serves the saved content items.
type ItemsHandler struct {
	store    *catalog.Store
	markdown goldmark.Markdown
}

// NewItemsHandler creates a new ItemsHandler.
func NewItemsHandler(store *catalog.Store) *ItemsHandler {
	return &ItemsHandler{
		store: store,
		// Raw HTML in notes is escaped; notes are user input.
		markdown: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
		),
	}
}

// ItemResponse is an item with its notes rendered as HTML.
type ItemResponse struct {
	model.ContentItem
	RenderedNotes string `json:"renderedNotes,omitempty"`
}

// FavoriteResponse reports the favorite flag after a toggle.
type FavoriteResponse struct {
	ID         string `json:"id"`
	IsFavorite bool   `json:"isFavorite"`
}

// MoveRequest moves an item to another folder.
type MoveRequest struct {
	Folder string `json:"folder"`
}

// List returns the items matching the query parameters. It does not touch the
// shared navigation state.
//
// Query parameters: q (search), tab (primary dimension value), filter
// (secondary dimension value), favorites=true.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	state := view.NewState(h.store.View().State.Primary)
	if tab := q.Get("tab"); tab != "" {
		state.Tab = tab
	}
	state.Filter = q.Get("filter")
	state.Query = q.Get("q")
	if fav := q.Get("favorites"); fav != "" {
		b, err := strconv.ParseBool(fav)
		if err != nil {
			writeError(w, http.StatusBadRequest, "favorites must be a boolean")
			return
		}
		state.FavoritesOnly = b
	}

	writeJSON(w, ctx, http.StatusOK, view.Visible(h.store.Items(), state))
}

// Create adds a new item from a draft.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var draft model.Draft
	if !decodeJSON(w, r, &draft) {
		return
	}

	item, err := h.store.AddItem(ctx, draft)
	if err != nil {
		if errors.Is(err, catalog.ErrURLRequired) {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}
		handleServiceError(w, ctx, err, "Failed to add item")
		return
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "item added", "item_id", item.ID, "platform", item.Platform)
	writeJSON(w, ctx, http.StatusCreated, item)
}

// Get returns one item with rendered notes.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	item, found := h.store.Item(id)
	if !found {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	resp := ItemResponse{ContentItem: item}
	if strings.TrimSpace(item.Notes) != "" {
		rendered, err := h.renderMarkdown([]byte(item.Notes))
		if err != nil {
			// The item is still useful without rendered notes.
			logger.WarnContext(ctx, "failed to render notes", "item_id", id, "error", err)
		}
		resp.RenderedNotes = rendered
	}

	writeJSON(w, ctx, http.StatusOK, resp)
}

// Update applies a partial update.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	var patch model.Patch
	if !decodeJSON(w, r, &patch) {
		return
	}

	item, found := h.store.UpdateItem(ctx, id, patch)
	if !found {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	writeJSON(w, ctx, http.StatusOK, item)
}

// Move changes an item's folder.
func (h *ItemsHandler) Move(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	var req MoveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Folder) == "" {
		handleServiceError(w, ctx, service.RequiredError("folder"), "")
		return
	}

	item, found := h.store.MoveItem(ctx, id, req.Folder)
	if !found {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	writeJSON(w, ctx, http.StatusOK, item)
}

// Delete removes an item.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	if !h.store.DeleteItem(ctx, id) {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "item deleted", "item_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// Favorite toggles the favorite flag.
func (h *ItemsHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	fav, found := h.store.ToggleFavorite(ctx, id)
	if !found {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	writeJSON(w, ctx, http.StatusOK, FavoriteResponse{ID: id, IsFavorite: fav})
}

func (h *ItemsHandler) renderMarkdown(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := h.markdown.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

// pathParam returns the unescaped URL parameter name, writing a 400 when it
// is malformed or blank.
func pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := chi.URLParam(r, name)
	// chi routes on RawPath when it is set, leaving params escaped.
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(value)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
			return "", false
		}
		value = unescaped
	}
	if strings.TrimSpace(value) == "" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s is required", name))
		return "", false
	}
	return value, true
}
