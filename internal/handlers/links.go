package handlers

import (
	"net/http"
	"strings"

	"linkloom/internal/contextutil"
	"linkloom/internal/model"
	"linkloom/internal/platform"
	"linkloom/internal/resolver"
	"linkloom/internal/service"
)

// LinksHandler exposes the link helpers: metadata resolution, platform
// classification and share-text parsing.
type LinksHandler struct {
	resolver service.Resolver
}

// NewLinksHandler creates a new LinksHandler.
func NewLinksHandler(res service.Resolver) *LinksHandler {
	return &LinksHandler{resolver: res}
}

// ResolveRequest names the link to preview.
type ResolveRequest struct {
	URL string `json:"url"`
}

// ResolveResponse is the preview of a link. Fields that could not be found
// are omitted.
type ResolveResponse struct {
	URL string `json:"url"`
	resolver.Metadata
}

// ClassifyResponse is the platform label of a link with its display hints.
type ClassifyResponse struct {
	URL      string         `json:"url"`
	Platform string         `json:"platform"`
	Matched  bool           `json:"matched"`
	Display  platform.Known `json:"display"`
}

// ShareRequest is text copied from a share sheet.
type ShareRequest struct {
	Text string `json:"text"`
}

// ShareResponse is the parsed share text with its classification.
type ShareResponse struct {
	platform.Share
	Platform string `json:"platform"`
}

// Resolve fetches a preview once, without debouncing.
func (h *LinksHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ResolveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	target := strings.TrimSpace(req.URL)
	if target == "" {
		handleServiceError(w, ctx, service.RequiredError("url"), "")
		return
	}

	md := h.resolver.Resolve(ctx, target)
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "link resolved", "url", target, "source", md.Source)
	writeJSON(w, ctx, http.StatusOK, ResolveResponse{URL: target, Metadata: md})
}

// Classify returns the platform for the url query parameter. Unknown links
// are reported as Other.
func (h *LinksHandler) Classify(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	label, matched := platform.Classify(raw)
	if !matched {
		label = model.OtherPlatform
	}
	display, _ := platform.Lookup(label)
	writeJSON(w, r.Context(), http.StatusOK, ClassifyResponse{
		URL:      raw,
		Platform: label,
		Matched:  matched,
		Display:  display,
	})
}

// Share splits pasted share text into a link and a title.
func (h *LinksHandler) Share(w http.ResponseWriter, r *http.Request) {
	var req ShareRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	share := platform.ParseShare(req.Text)
	writeJSON(w, r.Context(), http.StatusOK, ShareResponse{
		Share:    share,
		Platform: platform.ClassifyOr(share.URL, model.OtherPlatform),
	})
}
