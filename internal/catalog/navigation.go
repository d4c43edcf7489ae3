package catalog

import (
	"context"
	"strings"

	"linkloom/internal/model"
	"linkloom/internal/navigator"
	"linkloom/internal/view"
)

// ViewSnapshot is the navigation state together with what it shows.
type ViewSnapshot struct {
	State view.State          `json:"state"`
	Tabs  []string            `json:"tabs"`
	Items []model.ContentItem `json:"items"`
}

// ViewPatch changes parts of the navigation state. Nil fields are left
// untouched; an empty Filter clears the sidebar filter.
type ViewPatch struct {
	Filter        *string `json:"filter,omitempty"`
	FavoritesOnly *bool   `json:"favoritesOnly,omitempty"`
	Query         *string `json:"query,omitempty"`
	SelectedID    *string `json:"selectedId,omitempty"`
	OptionsID     *string `json:"optionsId,omitempty"`
}

// TabChange reports the outcome of a tab switch.
type TabChange struct {
	Tab       string `json:"tab"`
	Direction int    `json:"direction"`
	Changed   bool   `json:"changed"`
}

// View returns the navigation state, the tab strip and the visible items.
func (s *Store) View() ViewSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Store) viewLocked() ViewSnapshot {
	items := view.Visible(s.items, s.view)
	for i := range items {
		items[i] = items[i].Clone()
	}
	return ViewSnapshot{
		State: s.view,
		Tabs:  s.tabsLocked(),
		Items: items,
	}
}

// Tabs returns the ordered tab strip, starting with view.Recent.
func (s *Store) Tabs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tabsLocked()
}

func (s *Store) tabsLocked() []string {
	return view.Tabs(s.view.Primary, s.platforms, s.folders)
}

// VisibleItems returns the items matching the current navigation state.
func (s *Store) VisibleItems() []model.ContentItem {
	return s.View().Items
}

// UpdateView applies patch to the navigation state.
func (s *Store) UpdateView(patch ViewPatch) ViewSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Filter != nil {
		s.view.Filter = strings.TrimSpace(*patch.Filter)
	}
	if patch.FavoritesOnly != nil {
		s.view.FavoritesOnly = *patch.FavoritesOnly
	}
	if patch.Query != nil {
		s.view.Query = *patch.Query
	}
	if patch.SelectedID != nil {
		s.view.SelectedID = *patch.SelectedID
	}
	if patch.OptionsID != nil {
		s.view.OptionsID = *patch.OptionsID
	}
	return s.viewLocked()
}

// SetTab selects tab. An empty tab selects view.Recent. Direction is the
// sign of the index change over the tab strip.
func (s *Store) SetTab(tab string) TabChange {
	tab = strings.TrimSpace(tab)
	if tab == "" {
		tab = view.Recent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setTabLocked(tab)
}

func (s *Store) setTabLocked(tab string) TabChange {
	old := s.view.Tab
	direction := view.Direction(s.tabsLocked(), old, tab)
	s.view.Tab = tab
	return TabChange{Tab: tab, Direction: direction, Changed: old != tab}
}

// Swipe moves one tab along the strip for a horizontal drag from start to
// end. Vertical or short drags, and drags past either end, change nothing.
func (s *Store) Swipe(ctx context.Context, start, end navigator.Point) TabChange {
	return s.Navigate(ctx, navigator.Classify(start.X-end.X, start.Y-end.Y))
}

// Navigate applies a classified swipe to the current tab.
func (s *Store) Navigate(ctx context.Context, swipe navigator.Swipe) TabChange {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := navigator.Next(s.tabsLocked(), s.view.Tab, swipe)
	if !ok {
		s.logger.DebugContext(ctx, "swipe ignored", "swipe", swipe.String(), "tab", s.view.Tab)
		return TabChange{Tab: s.view.Tab}
	}
	return s.setTabLocked(next)
}
