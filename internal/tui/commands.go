package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/streamlist/internal/service"
)

// Command factories for async operations

// FetchCatalogCmd fetches all catalog sections under the session context
func FetchCatalogCmd(svc *service.CatalogService, ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		result, err := svc.FetchAll(ctx)
		return CatalogLoadedMsg{Gen: gen, Result: result, Err: err}
	}
}

// OpenURLCmd opens url with opener and reports the outcome on the status line
func OpenURLCmd(opener URLOpener, name, url string) tea.Cmd {
	return func() tea.Msg {
		if opener == nil {
			return StatusMsg{Message: "No browser available", IsError: true}
		}
		if err := opener.Open(url); err != nil {
			return StatusMsg{Message: fmt.Sprintf("Failed to open %s: %v", name, err), IsError: true}
		}
		return StatusMsg{Message: fmt.Sprintf("Opened %s on TMDB", name)}
	}
}

// SetStatusCmd emits a status message
func SetStatusCmd(message string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Message: message, IsError: isError}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
