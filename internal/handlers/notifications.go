package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"linkloom/internal/contextutil"
	"linkloom/internal/notify"
)

// NotificationSource provides toast notifications.
type NotificationSource interface {
	Recent() []notify.Notification
	Subscribe(ctx context.Context) <-chan notify.Notification
}

// NotificationsHandler serves toasts as JSON or as a Server-Sent Events stream.
type NotificationsHandler struct {
	source NotificationSource
}

// NewNotificationsHandler creates a new NotificationsHandler.
func NewNotificationsHandler(source NotificationSource) *NotificationsHandler {
	return &NotificationsHandler{source: source}
}

// ServeHTTP returns the recent toasts, or streams new ones with ?stream=true.
func (h *NotificationsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.URL.Query().Get("stream") != "true" {
		writeJSON(w, ctx, http.StatusOK, h.source.Recent())
		return
	}
	h.stream(w, r)
}

// stream writes each notification as an SSE "data:" event until the client
// goes away.
func (h *NotificationsHandler) stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.ErrorContext(ctx, "streaming not supported by response writer")
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	// Subscribe before writing headers so nothing published after the
	// response starts is missed.
	events := h.source.Subscribe(ctx)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for n := range events {
		data, err := json.Marshal(n)
		if err != nil {
			logger.ErrorContext(ctx, "failed to encode notification", "error", err)
			continue
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			logger.DebugContext(ctx, "notification stream closed", "error", err)
			return
		}
		flusher.Flush()
	}
}
