package domain

import "strings"

// WatchlistItem is a single title on the user's list
type WatchlistItem struct {
	ID        string `json:"id"`        // Opaque unique identifier, fixed at creation
	Text      string `json:"text"`      // Title as entered by the user (never blank)
	Completed bool   `json:"completed"` // Whether the user has watched it
}

// Filter restricts which items are shown without touching the list itself
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters is the cycling order used by the UI
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// ParseFilter converts user or stored input into a Filter
func ParseFilter(s string) (Filter, bool) {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterAll:
		return FilterAll, true
	case FilterActive:
		return FilterActive, true
	case FilterCompleted:
		return FilterCompleted, true
	default:
		return "", false
	}
}

// Valid reports whether f is one of the known filters
func (f Filter) Valid() bool {
	return f == FilterAll || f == FilterActive || f == FilterCompleted
}

// Matches reports whether the item passes this filter
func (f Filter) Matches(item WatchlistItem) bool {
	switch f {
	case FilterActive:
		return !item.Completed
	case FilterCompleted:
		return item.Completed
	default:
		return true
	}
}

// Next returns the filter after f in cycling order
func (f Filter) Next() Filter {
	for i, candidate := range Filters {
		if candidate == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Label returns the capitalized display name
func (f Filter) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// EditSession captures an in-progress retitle of one item.
// Holders keep it behind a pointer; nil means no edit is active.
type EditSession struct {
	ItemID string
	Draft  string
}
