package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"linkloom/internal/catalog"
	"linkloom/internal/notify"
	"linkloom/internal/storage"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const testSeed = `
platforms: [YouTube, Douyin]
folders: [General, Design]
items:
  - id: "1"
    url: https://www.youtube.com/watch?v=abc123xyz
    title: Color theory basics
    platform: YouTube
    folder: Design
    tags: [color, design]
    age: 1h
  - id: "2"
    url: https://www.douyin.com/video/42
    title: Street food tour
    platform: Douyin
    folder: General
    tags: [food]
    isFavorite: true
    age: 2h
`

type testEnv struct {
	db    *sql.DB
	store *catalog.Store
	hub   *notify.Hub
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := storage.New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	seed, err := catalog.ParseSeed([]byte(testSeed))
	if err != nil {
		t.Fatalf("ParseSeed() error = %v", err)
	}

	n := 0
	hub := notify.NewHub(10)
	store, err := catalog.Open(context.Background(), storage.NewDocumentRepo(db),
		catalog.WithSeed(seed),
		catalog.WithNotifier(hub),
		catalog.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("new-%d", n)
		}),
		catalog.WithClock(func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }),
	)
	if err != nil {
		t.Fatalf("catalog.Open() error = %v", err)
	}
	return &testEnv{db: db, store: store, hub: hub}
}

// serve routes a single request through a chi router so URL parameters are
// populated.
func serve(method, pattern string, h http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return v
}
