package model

import "testing"

func strPtr(s string) *string { return &s }

func TestPatch_Apply(t *testing.T) {
	item := ContentItem{
		ID:       "1",
		URL:      "https://example.com",
		Title:    "Old",
		Platform: "Other",
		Tags:     []string{"a"},
		Folder:   "General",
	}

	tags := []string{"x", "y"}
	fav := true
	Patch{
		Title:      strPtr("New"),
		Folder:     strPtr("Design"),
		Tags:       &tags,
		IsFavorite: &fav,
	}.Apply(&item)

	if item.Title != "New" {
		t.Errorf("Title = %q, want New", item.Title)
	}
	if item.Folder != "Design" {
		t.Errorf("Folder = %q, want Design", item.Folder)
	}
	if !item.IsFavorite {
		t.Error("IsFavorite should be true")
	}
	if len(item.Tags) != 2 || item.Tags[0] != "x" {
		t.Errorf("Tags = %v, want [x y]", item.Tags)
	}
	if item.Platform != "Other" || item.URL != "https://example.com" {
		t.Error("untouched fields changed")
	}

	// The patch slice must not alias the item.
	tags[0] = "changed"
	if item.Tags[0] != "x" {
		t.Error("Apply() should copy tags")
	}
}

func TestContentItem_Clone(t *testing.T) {
	item := ContentItem{Tags: []string{"a"}, NoteImages: []string{"img"}}
	clone := item.Clone()
	clone.Tags[0] = "b"
	clone.NoteImages[0] = "other"

	if item.Tags[0] != "a" || item.NoteImages[0] != "img" {
		t.Error("Clone() should deep copy slices")
	}
}
