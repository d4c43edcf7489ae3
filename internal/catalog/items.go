package catalog

import (
	"context"
	"strings"

	"linkloom/internal/model"
)

// AddItem saves a draft as a new item at the front of the collection. Novel
// platforms (except the catch-all) become tabs, novel folders join the
// folder set, and all view filters are reset so the item is visible.
func (s *Store) AddItem(ctx context.Context, draft model.Draft) (model.ContentItem, error) {
	url := strings.TrimSpace(draft.URL)
	if url == "" {
		return model.ContentItem{}, ErrURLRequired
	}

	item := normalizeItem(model.ContentItem{
		URL:          url,
		Title:        strings.TrimSpace(draft.Title),
		Description:  draft.Description,
		Summary:      draft.Summary,
		ThumbnailURL: draft.ThumbnailURL,
		Platform:     strings.TrimSpace(draft.Platform),
		Tags:         append([]string(nil), draft.Tags...),
		Folder:       strings.TrimSpace(draft.Folder),
		Notes:        draft.Notes,
		NoteImages:   append([]string(nil), draft.NoteImages...),
	})
	if item.Title == "" {
		item.Title = url
	}
	if len(item.NoteImages) == 0 {
		item.NoteImages = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.newID()
	item.CreatedAt = s.now().UnixMilli()
	item.IsFavorite = false

	s.items = append([]model.ContentItem{item}, s.items...)
	keys := []string{ItemsKey}

	if item.Platform != model.OtherPlatform && !contains(s.platforms, item.Platform) {
		s.platforms = append(s.platforms, item.Platform)
		keys = append(keys, PlatformsKey)
	}
	if !contains(s.folders, item.Folder) {
		s.folders = insertSorted(s.folders, item.Folder)
		keys = append(keys, FoldersKey)
	}

	s.view.ResetFilters()
	s.persist(ctx, keys...)

	s.logger.InfoContext(ctx, "item added", "id", item.ID, "platform", item.Platform, "folder", item.Folder)
	s.notify(ctx, "Collection Saved!")
	return item.Clone(), nil
}

// UpdateItem merges patch into the item with id. Unknown ids are ignored.
// An empty folder in the patch is ignored; a novel folder joins the folder
// set.
func (s *Store) UpdateItem(ctx context.Context, id string, patch model.Patch) (model.ContentItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.logger.DebugContext(ctx, "update of unknown item ignored", "id", id)
		return model.ContentItem{}, false
	}

	if patch.Folder != nil {
		folder := strings.TrimSpace(*patch.Folder)
		if folder == "" {
			patch.Folder = nil
		} else {
			patch.Folder = &folder
		}
	}

	item := s.items[i]
	patch.Apply(&item)
	item = normalizeItem(item)
	s.items[i] = item

	keys := []string{ItemsKey}
	if patch.Folder != nil && !contains(s.folders, item.Folder) {
		s.folders = insertSorted(s.folders, item.Folder)
		keys = append(keys, FoldersKey)
	}
	s.persist(ctx, keys...)

	return item.Clone(), true
}

// MoveItem reassigns the item to folder.
func (s *Store) MoveItem(ctx context.Context, id, folder string) (model.ContentItem, bool) {
	if strings.TrimSpace(folder) == "" {
		return model.ContentItem{}, false
	}
	return s.UpdateItem(ctx, id, model.Patch{Folder: &folder})
}

// DeleteItem removes the item with id and clears any selection of it.
func (s *Store) DeleteItem(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	s.items = append(s.items[:i:i], s.items[i+1:]...)
	s.view.Forget(id)
	s.persist(ctx, ItemsKey)

	s.logger.InfoContext(ctx, "item deleted", "id", id)
	s.notify(ctx, "Item Deleted")
	return true
}

// ToggleFavorite flips the favorite flag and returns the new value. Only
// favoriting notifies; unfavoriting is silent.
func (s *Store) ToggleFavorite(ctx context.Context, id string) (favorite bool, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, false
	}

	s.items[i].IsFavorite = !s.items[i].IsFavorite
	favorite = s.items[i].IsFavorite
	s.persist(ctx, ItemsKey)

	if favorite {
		s.notify(ctx, "Added to Favorites")
	}
	return favorite, true
}
