package catalog

import (
	"context"
	"sort"
	"strings"

	"linkloom/internal/model"
	"linkloom/internal/view"
)

// AddFolder inserts name into the folder set. Empty and existing names are
// ignored.
func (s *Store) AddFolder(ctx context.Context, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if contains(s.folders, name) {
		return false
	}
	s.folders = insertSorted(s.folders, name)
	s.persist(ctx, FoldersKey)

	s.notify(ctx, "Folder Created")
	return true
}

// RenameFolder renames oldName to newName, moving every item and any active
// selection along. It does nothing when newName is empty or already taken,
// or when oldName does not exist.
func (s *Store) RenameFolder(ctx context.Context, oldName, newName string) bool {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if contains(s.folders, newName) || !contains(s.folders, oldName) {
		s.logger.DebugContext(ctx, "folder rename rejected", "old", oldName, "new", newName)
		return false
	}

	s.folders = insertSorted(remove(s.folders, oldName), newName)
	for i := range s.items {
		if s.items[i].Folder == oldName {
			s.items[i].Folder = newName
		}
	}
	s.view.Redirect(view.Folder, oldName, newName)
	s.persist(ctx, FoldersKey, ItemsKey)

	s.logger.InfoContext(ctx, "folder renamed", "old", oldName, "new", newName)
	s.notify(ctx, "Folder Renamed")
	return true
}

// DeleteFolder removes name and moves its items to the fallback folder,
// which is returned. The fallback is model.DefaultFolder when it remains,
// else the first remaining folder, else model.UncategorizedFolder. The
// fallback is always a member of the resulting folder set.
func (s *Store) DeleteFolder(ctx context.Context, name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !contains(s.folders, name) {
		return "", false
	}
	if s.protectFallback && name == model.DefaultFolder {
		s.logger.DebugContext(ctx, "protected folder not deleted", "folder", name)
		return "", false
	}

	remaining := remove(s.folders, name)
	fallback := fallbackFolder(remaining)
	if !contains(remaining, fallback) {
		remaining = insertSorted(remaining, fallback)
	}
	s.folders = remaining

	moved := 0
	for i := range s.items {
		if s.items[i].Folder == name {
			s.items[i].Folder = fallback
			moved++
		}
	}
	s.view.Clear(view.Folder, name)
	s.persist(ctx, FoldersKey, ItemsKey)

	s.logger.InfoContext(ctx, "folder deleted", "folder", name, "fallback", fallback, "moved", moved)
	s.notify(ctx, "Folder Deleted")
	return fallback, true
}

func fallbackFolder(remaining []string) string {
	if contains(remaining, model.DefaultFolder) {
		return model.DefaultFolder
	}
	if len(remaining) > 0 {
		return remaining[0]
	}
	return model.UncategorizedFolder
}

// normalizeFolders returns folders trimmed, deduplicated and sorted, with
// every folder referenced by items added.
func normalizeFolders(folders []string, items []model.ContentItem) []string {
	out := make([]string, 0, len(folders))
	for _, f := range folders {
		if f = strings.TrimSpace(f); f != "" {
			out = insertSorted(out, f)
		}
	}
	for _, item := range items {
		out = insertSorted(out, item.Folder)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// insertSorted adds s to a sorted list unless present.
func insertSorted(list []string, s string) []string {
	i := sort.SearchStrings(list, s)
	if i < len(list) && list[i] == s {
		return list
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, list[:i]...)
	out = append(out, s)
	return append(out, list[i:]...)
}

func remove(list []string, s string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
