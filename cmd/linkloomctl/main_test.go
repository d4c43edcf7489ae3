package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkloom/internal/catalog"
	"linkloom/internal/model"
)

// setupEnv points the CLI at a fresh database.
func setupEnv(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cli.db")
	t.Setenv("DB_PATH", dbPath)
	t.Setenv("SEED_PATH", "")
	t.Setenv("PRIMARY_DIMENSION", "platform")
	return dbPath
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestClassifyCmd(t *testing.T) {
	setupEnv(t)

	tests := []struct {
		url  string
		want string
	}{
		{url: "https://www.bilibili.com/video/BV1", want: "Bilibili"},
		{url: "https://www.instagram.com/p/abc", want: "Instagram"},
		{url: "not a url", want: "Other"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			out, _, err := run(t, "classify", tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}

	_, _, err := run(t, "classify")
	assert.Error(t, err, "a url argument is required")
}

func TestShareCmd(t *testing.T) {
	setupEnv(t)

	out, _, err := run(t, "share", "Best", "dumplings", "https://v.douyin.com/iRNBho6/", "复制打开抖音")
	require.NoError(t, err)

	var got struct {
		URL      string `json:"url"`
		Title    string `json:"title"`
		Platform string `json:"platform"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "https://v.douyin.com/iRNBho6/", got.URL)
	assert.Equal(t, "Best dumplings", got.Title)
	assert.Equal(t, "Douyin", got.Platform)
}

func TestFoldersCmd(t *testing.T) {
	setupEnv(t)

	out, _, err := run(t, "folders", "add", "Recipes")
	require.NoError(t, err)
	assert.Contains(t, out, "Folder Created")

	_, _, err = run(t, "folders", "add", "Recipes")
	assert.Error(t, err, "duplicate folder")

	_, _, err = run(t, "folders", "rename", "Entertainment", "Fun")
	require.NoError(t, err)

	out, _, err = run(t, "folders", "delete", "Fun")
	require.NoError(t, err)
	assert.Contains(t, out, "Items moved to General")

	out, _, err = run(t, "folders", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Recipes\t0")
	assert.NotContains(t, out, "Fun\t")
	assert.NotContains(t, out, "Entertainment\t")
}

func TestDocumentsCmd(t *testing.T) {
	setupEnv(t)

	out, stderr, err := run(t, "documents")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "No documents")

	_, _, err = run(t, "folders", "add", "Recipes")
	require.NoError(t, err)

	out, _, err = run(t, "documents")
	require.NoError(t, err)
	assert.Contains(t, out, catalog.FoldersKey+"\t")
}

func TestExportImportRoundTrip(t *testing.T) {
	setupEnv(t)
	dir := t.TempDir()
	exported := filepath.Join(dir, "export.json")

	_, stderr, err := run(t, "export", exported)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Exported")

	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	var before model.Snapshot
	require.NoError(t, json.Unmarshal(data, &before))
	require.NotEmpty(t, before.Items)

	replacement := model.Snapshot{
		Items: []model.ContentItem{{
			ID:        "imported-1",
			URL:       "https://www.tiktok.com/@a/video/1",
			Title:     "Imported",
			Platform:  "TikTok",
			Tags:      []string{"dance"},
			Folder:    "Imported Folder",
			CreatedAt: 1700000000000,
		}},
		Platforms: []string{"TikTok"},
		Folders:   []string{"General"},
	}
	importFile := filepath.Join(dir, "import.json")
	body, err := json.Marshal(replacement)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(importFile, body, 0o644))

	out, _, err := run(t, "import", importFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 items, 1 platforms, 2 folders")

	out, _, err = run(t, "export")
	require.NoError(t, err)
	var after model.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &after))

	want := replacement
	want.Folders = []string{"General", "Imported Folder"}
	if diff := cmp.Diff(want, after); diff != "" {
		t.Errorf("exported snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestImportCmd_Invalid(t *testing.T) {
	setupEnv(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed json", content: "{"},
		{name: "item without url", content: `{"items":[{"id":"x"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, _, err := run(t, "import", path)
			assert.Error(t, err)
		})
	}

	_, _, err := run(t, "import", filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestResolveCmd(t *testing.T) {
	setupEnv(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/microlink" {
			http.Error(w, "unavailable", http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"status":"success","data":{"title":"Preview","image":{"url":"https://img.example.com/p.jpg"}}}`)
	}))
	defer server.Close()

	t.Setenv("MICROLINK_URL", server.URL+"/microlink")
	t.Setenv("PROXY_URLS", server.URL+"/proxy?u={url}")

	out, _, err := run(t, "resolve", "--no-cache", "https://example.com/post")
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "Preview"`)
	assert.Contains(t, out, `"thumbnailUrl": "https://img.example.com/p.jpg"`)

	_, _, err = run(t, "resolve", "--no-cache", "not-a-link")
	assert.Error(t, err)
}
