package catalog

import (
	"context"
	"strings"

	"linkloom/internal/view"
)

// AddPlatformTab appends name to the platform tabs.
func (s *Store) AddPlatformTab(ctx context.Context, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if contains(s.platforms, name) {
		return false
	}
	s.platforms = append(s.platforms, name)
	s.persist(ctx, PlatformsKey)

	s.notify(ctx, "Added %s", name)
	return true
}

// DeletePlatformTab removes name from the tabs. Items keep their platform
// value; a selected tab or filter on name is cleared.
func (s *Store) DeletePlatformTab(ctx context.Context, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !contains(s.platforms, name) {
		return false
	}
	s.platforms = remove(s.platforms, name)
	s.view.Clear(view.Platform, name)
	s.persist(ctx, PlatformsKey)

	s.notify(ctx, "Platform Removed")
	return true
}

// ReorderPlatformTabs replaces the tab order. Blank and repeated names are
// dropped. Tabs left out of order are removed, clearing any selection on
// them as DeletePlatformTab does.
func (s *Store) ReorderPlatformTabs(ctx context.Context, order []string) []string {
	seen := make(map[string]bool, len(order))
	tabs := make([]string, 0, len(order))
	for _, name := range order {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		tabs = append(tabs, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, old := range s.platforms {
		if !seen[old] {
			s.view.Clear(view.Platform, old)
		}
	}
	s.platforms = tabs
	s.persist(ctx, PlatformsKey)
	return append([]string(nil), tabs...)
}
