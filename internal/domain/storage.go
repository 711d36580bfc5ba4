package domain

// WatchlistStore persists the item list and the active filter as two
// independent values. Loads report ok=false for absent or unreadable data
// so callers can fall back to defaults.
type WatchlistStore interface {
	LoadItems() ([]WatchlistItem, bool)
	SaveItems(items []WatchlistItem) error

	LoadFilter() (Filter, bool)
	SaveFilter(filter Filter) error

	Close() error
}
