package service

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/mmcdole/streamlist/internal/domain"
	"github.com/sahilm/fuzzy"
)

// EmptyState tells the view which empty message, if any, to show
type EmptyState int

const (
	EmptyNone   EmptyState = iota
	EmptyList              // No items at all
	EmptyFilter            // Items exist but the filter hides all of them
)

// WatchlistService owns the in-memory list, the active filter and the edit
// session. Every mutation is written through to the store.
type WatchlistService struct {
	store  domain.WatchlistStore
	logger *slog.Logger

	items  []domain.WatchlistItem
	filter domain.Filter
	edit   *domain.EditSession

	newID func() string
}

// NewWatchlistService loads the list and filter once from the store.
// Missing or unreadable data falls back to an empty list and FilterAll.
func NewWatchlistService(store domain.WatchlistStore, logger *slog.Logger) *WatchlistService {
	if logger == nil {
		logger = slog.Default()
	}

	s := &WatchlistService{
		store:  store,
		logger: logger,
		filter: domain.FilterAll,
		newID:  func() string { return uuid.NewString() },
	}

	if items, ok := store.LoadItems(); ok {
		s.items = items
	} else {
		logger.Debug("no stored watchlist, starting empty")
	}
	if filter, ok := store.LoadFilter(); ok {
		s.filter = filter
	}

	logger.Info("watchlist loaded", "items", len(s.items), "filter", s.filter)
	return s
}

// === Mutations ===

// AddItem appends a new item. Blank text is ignored.
func (s *WatchlistService) AddItem(text string) (domain.WatchlistItem, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.WatchlistItem{}, false
	}

	item := domain.WatchlistItem{ID: s.newID(), Text: text}
	s.items = append(s.items, item)
	s.logger.Debug("item added", "id", item.ID)
	s.persistItems()
	return item, true
}

// DeleteItem removes the item with id, closing any edit on it
func (s *WatchlistService) DeleteItem(id string) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}

	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	if s.edit != nil && s.edit.ItemID == id {
		s.edit = nil
	}
	s.logger.Debug("item deleted", "id", id)
	s.persistItems()
}

// ToggleComplete flips the completed flag of the item with id
func (s *WatchlistService) ToggleComplete(id string) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}

	s.items[idx].Completed = !s.items[idx].Completed
	s.persistItems()
}

// StartEdit opens an edit session seeded with the item's text,
// replacing any session already open.
func (s *WatchlistService) StartEdit(id string) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	s.edit = &domain.EditSession{ItemID: id, Draft: s.items[idx].Text}
}

// UpdateEditDraft replaces the draft text. Not persisted.
func (s *WatchlistService) UpdateEditDraft(text string) {
	if s.edit == nil {
		return
	}
	s.edit.Draft = text
}

// SaveEdit applies a non-blank draft and closes the session.
// A blank draft leaves the session open and returns false.
func (s *WatchlistService) SaveEdit() bool {
	if s.edit == nil {
		return false
	}

	draft := strings.TrimSpace(s.edit.Draft)
	if draft == "" {
		return false
	}

	idx := s.indexOf(s.edit.ItemID)
	s.edit = nil
	if idx < 0 {
		return false
	}

	s.items[idx].Text = draft
	s.persistItems()
	return true
}

// CancelEdit discards the session without touching the item
func (s *WatchlistService) CancelEdit() {
	s.edit = nil
}

// SetFilter changes the active filter. Unknown values are ignored.
func (s *WatchlistService) SetFilter(filter domain.Filter) {
	if !filter.Valid() {
		return
	}
	s.filter = filter
	if err := s.store.SaveFilter(filter); err != nil {
		s.logger.Warn("failed to persist filter", "error", err)
	}
}

func (s *WatchlistService) persistItems() {
	if err := s.store.SaveItems(s.items); err != nil {
		s.logger.Warn("failed to persist watchlist", "error", err, "items", len(s.items))
	}
}

func (s *WatchlistService) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// === Queries ===

// VisibleItems returns the items matching the active filter, in list order
func (s *WatchlistService) VisibleItems() []domain.WatchlistItem {
	visible := make([]domain.WatchlistItem, 0, len(s.items))
	for _, item := range s.items {
		if s.filter.Matches(item) {
			visible = append(visible, item)
		}
	}
	return visible
}

// Items returns a copy of the full list
func (s *WatchlistService) Items() []domain.WatchlistItem {
	return append([]domain.WatchlistItem(nil), s.items...)
}

// Find returns the item with id
func (s *WatchlistService) Find(id string) (domain.WatchlistItem, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.WatchlistItem{}, false
	}
	return s.items[idx], true
}

func (s *WatchlistService) Filter() domain.Filter { return s.filter }
func (s *WatchlistService) Len() int              { return len(s.items) }

// EditSession returns the active session, if any
func (s *WatchlistService) EditSession() (domain.EditSession, bool) {
	if s.edit == nil {
		return domain.EditSession{}, false
	}
	return *s.edit, true
}

// Counts returns total, active and completed counts over the full list
func (s *WatchlistService) Counts() (total, active, completed int) {
	for _, item := range s.items {
		if item.Completed {
			completed++
		} else {
			active++
		}
	}
	return len(s.items), active, completed
}

// EmptyState reports which empty message applies. An empty list wins over
// an empty filter result.
func (s *WatchlistService) EmptyState() EmptyState {
	if len(s.items) == 0 {
		return EmptyList
	}
	for _, item := range s.items {
		if s.filter.Matches(item) {
			return EmptyNone
		}
	}
	return EmptyFilter
}

// visibleSource implements sahilm/fuzzy.Source over visible items
type visibleSource []domain.WatchlistItem

func (v visibleSource) String(i int) string { return strings.ToLower(v[i].Text) }
func (v visibleSource) Len() int            { return len(v) }

// Search narrows the visible items to fuzzy matches of query, keeping list order
func (s *WatchlistService) Search(query string) []domain.WatchlistItem {
	visible := s.VisibleItems()
	query = strings.TrimSpace(query)
	if query == "" {
		return visible
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), visibleSource(visible))
	indexes := make([]int, 0, len(matches))
	for _, m := range matches {
		indexes = append(indexes, m.Index)
	}
	sort.Ints(indexes)

	results := make([]domain.WatchlistItem, 0, len(indexes))
	for _, i := range indexes {
		results = append(results, visible[i])
	}
	return results
}
