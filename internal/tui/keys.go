package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Home  key.Binding
	End   key.Binding

	// Tabs
	NextTab      key.Binding
	PrevTab      key.Binding
	WatchlistTab key.Binding
	MoviesTab    key.Binding
	CartTab      key.Binding
	AboutTab     key.Binding

	// Watchlist
	FocusAdd     key.Binding
	Toggle       key.Binding
	Edit         key.Binding
	Delete       key.Binding
	CycleFilter  key.Binding
	FilterAll    key.Binding
	FilterActive key.Binding
	FilterDone   key.Binding

	// Movies
	AddTitle  key.Binding
	OpenTitle key.Binding

	// Shared actions
	Filter    key.Binding
	Refresh   key.Binding
	Submit    key.Binding
	Escape    key.Binding
	Switch    key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),

		// Tabs
		NextTab: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev tab"),
		),
		WatchlistTab: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "watchlist"),
		),
		MoviesTab: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "movies"),
		),
		CartTab: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "cart"),
		),
		AboutTab: key.NewBinding(
			key.WithKeys("f4"),
			key.WithHelp("F4", "about"),
		),

		// Watchlist
		FocusAdd: key.NewBinding(
			key.WithKeys("a", "i"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space/x", "toggle done"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		CycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle filter"),
		),
		FilterAll: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "all"),
		),
		FilterActive: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "active"),
		),
		FilterDone: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "completed"),
		),

		// Movies
		AddTitle: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add to watchlist"),
		),
		OpenTitle: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open on TMDB"),
		),

		// Shared actions
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "find"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch focus"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// Keys is the global key map
var Keys = DefaultKeyMap()

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.PrevTab, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Home, k.End},
		{k.FocusAdd, k.Toggle, k.Edit, k.Delete, k.CycleFilter, k.FilterAll, k.FilterActive, k.FilterDone},
		{k.AddTitle, k.OpenTitle, k.Filter, k.Refresh, k.Submit, k.Escape, k.Switch},
		{k.NextTab, k.PrevTab, k.WatchlistTab, k.MoviesTab, k.CartTab, k.AboutTab, k.Help, k.Quit},
	}
}
