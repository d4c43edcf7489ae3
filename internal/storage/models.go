package storage

import "time"

// Document is a whole JSON document stored under a key.
type Document struct {
	Key       string
	Body      []byte
	UpdatedAt time.Time
}

// CachedMetadata is a resolved link preview kept to avoid refetching.
type CachedMetadata struct {
	URL          string
	Title        string
	Description  string
	ThumbnailURL string
	Source       string    // Stage that produced the result
	FetchedAt    time.Time // Stored with second precision
}
