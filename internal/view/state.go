// Package view derives the visible item set from the catalog and the current
// navigation state.
package view

import "fmt"

// Recent is the tab sentinel meaning "no primary filter".
const Recent = "RECENT"

// Dimension names which item field the primary tabs filter on. The other
// dimension is used by the secondary (sidebar) filter.
type Dimension string

const (
	Platform Dimension = "platform"
	Folder   Dimension = "folder"
)

// ParseDimension validates a dimension name.
func ParseDimension(s string) (Dimension, error) {
	switch Dimension(s) {
	case Platform, Folder:
		return Dimension(s), nil
	}
	return "", fmt.Errorf("unknown dimension %q (want platform or folder)", s)
}

// Complement returns the other dimension.
func (d Dimension) Complement() Dimension {
	if d == Folder {
		return Platform
	}
	return Folder
}

// State is the ephemeral navigation state. It is never persisted.
type State struct {
	Primary       Dimension `json:"primary"`
	Tab           string    `json:"tab"`
	Filter        string    `json:"filter,omitempty"`
	FavoritesOnly bool      `json:"favoritesOnly"`
	Query         string    `json:"query,omitempty"`
	SelectedID    string    `json:"selectedId,omitempty"`
	OptionsID     string    `json:"optionsId,omitempty"`
}

// NewState returns the initial state for the given primary dimension.
func NewState(primary Dimension) State {
	if primary == "" {
		primary = Platform
	}
	return State{Primary: primary, Tab: Recent}
}

// ResetFilters clears search, tab, sidebar filter and favorites so every
// item is visible again.
func (s *State) ResetFilters() {
	s.Tab = Recent
	s.Filter = ""
	s.FavoritesOnly = false
	s.Query = ""
}

// Redirect replaces a selection of old with new in dimension d.
func (s *State) Redirect(d Dimension, old, new string) {
	if d == s.Primary {
		if s.Tab == old {
			s.Tab = new
		}
		return
	}
	if s.Filter == old {
		s.Filter = new
	}
}

// Clear drops any selection of name in dimension d. A cleared tab falls back
// to Recent.
func (s *State) Clear(d Dimension, name string) {
	if d == s.Primary {
		if s.Tab == name {
			s.Tab = Recent
		}
		return
	}
	if s.Filter == name {
		s.Filter = ""
	}
}

// Forget clears item selections pointing at id.
func (s *State) Forget(id string) {
	if s.SelectedID == id {
		s.SelectedID = ""
	}
	if s.OptionsID == id {
		s.OptionsID = ""
	}
}
