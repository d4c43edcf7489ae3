package view

import (
	"strings"

	"linkloom/internal/model"
)

// Visible returns the items that pass every active filter of s, in their
// original order. The result never contains items absent from items.
func Visible(items []model.ContentItem, s State) []model.ContentItem {
	query := strings.ToLower(s.Query)
	out := make([]model.ContentItem, 0, len(items))
	for _, item := range items {
		if Matches(item, s, query) {
			out = append(out, item)
		}
	}
	return out
}

// Matches reports whether item passes the filters of s. query must already
// be lower-cased.
func Matches(item model.ContentItem, s State, query string) bool {
	if !matchesQuery(item, query) {
		return false
	}
	if s.Tab != "" && s.Tab != Recent && valueOf(item, s.Primary) != s.Tab {
		return false
	}
	if s.Filter != "" && valueOf(item, s.Primary.Complement()) != s.Filter {
		return false
	}
	if s.FavoritesOnly && !item.IsFavorite {
		return false
	}
	return true
}

func matchesQuery(item model.ContentItem, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(item.Title), query) ||
		strings.Contains(strings.ToLower(item.Description), query) ||
		strings.Contains(strings.ToLower(item.Summary), query) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func valueOf(item model.ContentItem, d Dimension) string {
	if d == Folder {
		return item.Folder
	}
	return item.Platform
}
