package tui

import (
	"github.com/mmcdole/streamlist/internal/domain"
)

// Message types for the TUI

// CatalogLoadedMsg carries the outcome of one catalog fetch session.
// Gen identifies the session so stale results can be dropped.
type CatalogLoadedMsg struct {
	Gen    uint64
	Result domain.CatalogResult
	Err    error
}

// AddTitleMsg asks the app to put a catalog title on the watchlist
type AddTitleMsg struct {
	Title domain.Title
}

// OpenTitleMsg asks the app to open a catalog title's TMDB page
type OpenTitleMsg struct {
	Title domain.Title
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
