package resolver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChrome answers every DevTools call with an empty result and records
// the methods it saw.
type fakeChrome struct {
	server *httptest.Server

	mu      sync.Mutex
	methods []string
	closed  chan struct{}
}

func newFakeChrome(t *testing.T) *fakeChrome {
	t.Helper()
	f := &fakeChrome{closed: make(chan struct{})}
	upgrader := websocket.Upgrader{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer func() {
			_ = conn.Close()
			close(f.closed)
		}()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var req struct {
				ID     int    `json:"id"`
				Method string `json:"method"`
			}
			if err := json.Unmarshal(data, &req); err != nil {
				return
			}
			f.mu.Lock()
			f.methods = append(f.methods, req.Method)
			f.mu.Unlock()
			if err := conn.WriteJSON(map[string]any{"id": req.ID, "result": map[string]any{}}); err != nil {
				return
			}
		}
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeChrome) controlURL() string {
	return "ws" + strings.TrimPrefix(f.server.URL, "http") + "/devtools/browser/test"
}

func (f *fakeChrome) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.methods...)
}

func TestNewRenderer_Disabled(t *testing.T) {
	assert.Nil(t, newRenderer(""))
}

func TestRenderer_CloseLeavesChromeRunning(t *testing.T) {
	chrome := newFakeChrome(t)
	r := newRenderer(chrome.controlURL())

	_, err := r.connect()
	require.NoError(t, err)
	assert.Contains(t, chrome.seen(), "Target.setDiscoverTargets")

	require.NoError(t, r.close())

	select {
	case <-chrome.closed:
	case <-time.After(5 * time.Second):
		t.Fatal("connection not closed")
	}
	assert.NotContains(t, chrome.seen(), "Browser.close", "closing must not shut down the shared browser")
	assert.NoError(t, r.close(), "second close is a no-op")
}
