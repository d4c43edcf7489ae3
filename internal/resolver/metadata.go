package resolver

// Metadata is a best-effort link preview. Any field may be empty.
type Metadata struct {
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	// Source names the stages that contributed, for diagnostics.
	Source string `json:"source,omitempty"`
}

// Empty reports whether nothing was found.
func (m Metadata) Empty() bool {
	return m.Title == "" && m.Description == "" && m.ThumbnailURL == ""
}

// Complete reports whether both a title and a thumbnail are known, which ends
// the stage chain.
func (m Metadata) Complete() bool {
	return m.Title != "" && m.ThumbnailURL != ""
}

// merge fills fields missing from m with those from other.
func (m Metadata) merge(other Metadata, stage string) Metadata {
	contributed := false
	if m.Title == "" && other.Title != "" {
		m.Title = other.Title
		contributed = true
	}
	if m.Description == "" && other.Description != "" {
		m.Description = other.Description
		contributed = true
	}
	if m.ThumbnailURL == "" && other.ThumbnailURL != "" {
		m.ThumbnailURL = other.ThumbnailURL
		contributed = true
	}
	if contributed {
		if m.Source == "" {
			m.Source = stage
		} else {
			m.Source += "+" + stage
		}
	}
	return m
}
