package model

import "time"

// Well-known labels. Platforms and folders are free-form strings; these are
// only defaults and sentinels.
const (
	// DefaultFolder is the folder new drafts start in and the preferred
	// fallback when a folder is deleted.
	DefaultFolder = "General"
	// UncategorizedFolder is used as fallback when no other folder remains.
	UncategorizedFolder = "Uncategorized"
	// OtherPlatform is the catch-all platform label. It is never added to the
	// platform tab list automatically.
	OtherPlatform = "Other"
)

// ContentItem is a saved piece of content.
//
// JSON field names match the documents written by the web client so existing
// exports can be imported unchanged.
type ContentItem struct {
	ID           string   `json:"id"`
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Summary      string   `json:"summary,omitempty"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty"`
	Platform     string   `json:"platform"`
	Tags         []string `json:"tags"`
	Folder       string   `json:"folder"`
	IsFavorite   bool     `json:"isFavorite"`
	Notes        string   `json:"notes,omitempty"`
	NoteImages   []string `json:"noteImages,omitempty"`
	// CreatedAt is a Unix timestamp in milliseconds.
	CreatedAt int64 `json:"createdAt"`
}

// Created returns CreatedAt as a time.Time.
func (i ContentItem) Created() time.Time {
	return time.UnixMilli(i.CreatedAt)
}

// Clone returns a deep copy of the item.
func (i ContentItem) Clone() ContentItem {
	out := i
	if i.Tags != nil {
		out.Tags = append(make([]string, 0, len(i.Tags)), i.Tags...)
	}
	if i.NoteImages != nil {
		out.NoteImages = append(make([]string, 0, len(i.NoteImages)), i.NoteImages...)
	}
	return out
}

// Draft holds the user-supplied fields of an item that has not been saved yet.
type Draft struct {
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Summary      string   `json:"summary,omitempty"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty"`
	Platform     string   `json:"platform"`
	Tags         []string `json:"tags"`
	Folder       string   `json:"folder"`
	Notes        string   `json:"notes,omitempty"`
	NoteImages   []string `json:"noteImages,omitempty"`
}

// Patch is a partial update of an item. Nil fields are left untouched.
// ID, URL and CreatedAt cannot be patched.
type Patch struct {
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Summary      *string   `json:"summary,omitempty"`
	ThumbnailURL *string   `json:"thumbnailUrl,omitempty"`
	Platform     *string   `json:"platform,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
	Folder       *string   `json:"folder,omitempty"`
	IsFavorite   *bool     `json:"isFavorite,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	NoteImages   *[]string `json:"noteImages,omitempty"`
}

// Apply merges the patch into item.
func (p Patch) Apply(item *ContentItem) {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Summary != nil {
		item.Summary = *p.Summary
	}
	if p.ThumbnailURL != nil {
		item.ThumbnailURL = *p.ThumbnailURL
	}
	if p.Platform != nil {
		item.Platform = *p.Platform
	}
	if p.Tags != nil {
		item.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.Folder != nil {
		item.Folder = *p.Folder
	}
	if p.IsFavorite != nil {
		item.IsFavorite = *p.IsFavorite
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
	if p.NoteImages != nil {
		item.NoteImages = append([]string(nil), (*p.NoteImages)...)
	}
}

// Snapshot is the persisted state: items in display order (most recent
// first), platform tabs in user order and folders sorted.
type Snapshot struct {
	Items     []ContentItem `json:"items"`
	Platforms []string      `json:"platforms"`
	Folders   []string      `json:"folders"`
}
