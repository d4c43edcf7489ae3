package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"linkloom/internal/notify"
)

func TestNotificationsHandler_Recent(t *testing.T) {
	hub := notify.NewHub(5)
	hub.Notify(context.Background(), "Folder Created")
	h := NewNotificationsHandler(hub)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notifications", nil))

	got := decode[[]notify.Notification](t, w)
	if len(got) != 1 || got[0].Message != "Folder Created" {
		t.Errorf("recent = %+v", got)
	}
}

func TestNotificationsHandler_Stream(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := notify.NewHub(5)
	server := httptest.NewServer(NewNotificationsHandler(hub))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"?stream=true", nil)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q", ct)
	}

	// Headers are flushed after subscribing, so this is delivered.
	hub.Notify(context.Background(), "Item Deleted")

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var n notify.Notification
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &n); err != nil {
			t.Fatalf("bad event %q: %v", line, err)
		}
		if n.Message != "Item Deleted" {
			t.Errorf("message = %q, want Item Deleted", n.Message)
		}
		break
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan error = %v", err)
	}

	cancel()
	server.CloseClientConnections()
	http.DefaultClient.CloseIdleConnections()
}
