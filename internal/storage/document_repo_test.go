package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func TestDocumentRepo_GetDocument(t *testing.T) {
	db := newTestDB(t)
	repo := NewDocumentRepo(db)
	ctx := context.Background()

	if err := repo.PutDocument(ctx, "linkloom_folders_v1", []byte(`["General"]`)); err != nil {
		t.Fatalf("PutDocument() error = %v", err)
	}

	tests := []struct {
		name    string
		key     string
		want    string
		wantErr error
	}{
		{
			name: "existing document",
			key:  "linkloom_folders_v1",
			want: `["General"]`,
		},
		{
			name:    "missing document",
			key:     "linkloom_items_v2",
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetDocument(ctx, tt.key)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetDocument() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetDocument() unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("GetDocument() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDocumentRepo_PutDocument_Replaces(t *testing.T) {
	db := newTestDB(t)
	repo := NewDocumentRepo(db)
	ctx := context.Background()

	for _, body := range []string{`[]`, `["YouTube"]`, `["YouTube","Douyin"]`} {
		if err := repo.PutDocument(ctx, "linkloom_platforms_v1", []byte(body)); err != nil {
			t.Fatalf("PutDocument(%s) error = %v", body, err)
		}
	}

	got, err := repo.GetDocument(ctx, "linkloom_platforms_v1")
	if err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}
	if string(got) != `["YouTube","Douyin"]` {
		t.Errorf("GetDocument() = %s, want last written body", got)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&count); err != nil {
		t.Fatalf("count documents: %v", err)
	}
	if count != 1 {
		t.Errorf("documents count = %d, want 1", count)
	}
}

func TestDocumentRepo_ListDocuments(t *testing.T) {
	db := newTestDB(t)
	repo := NewDocumentRepo(db)
	ctx := context.Background()

	docs, err := repo.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("ListDocuments() on empty db = %d docs, want 0", len(docs))
	}

	for _, key := range []string{"b", "a"} {
		if err := repo.PutDocument(ctx, key, []byte(`[]`)); err != nil {
			t.Fatalf("PutDocument() error = %v", err)
		}
	}

	docs, err = repo.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}
	if len(docs) != 2 || docs[0].Key != "a" || docs[1].Key != "b" {
		t.Fatalf("ListDocuments() = %+v, want keys a, b", docs)
	}
	if docs[0].UpdatedAt.IsZero() {
		t.Error("ListDocuments() UpdatedAt not set")
	}
}
