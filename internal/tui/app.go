package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/streamlist/internal/domain"
	"github.com/mmcdole/streamlist/internal/service"
	"github.com/mmcdole/streamlist/internal/tui/styles"
)

// Tab identifies a top-level page
type Tab int

const (
	TabWatchlist Tab = iota
	TabMovies
	TabCart
	TabAbout
)

// Tabs in display order
var Tabs = []Tab{TabWatchlist, TabMovies, TabCart, TabAbout}

func (t Tab) String() string {
	switch t {
	case TabMovies:
		return "Movies"
	case TabCart:
		return "Cart"
	case TabAbout:
		return "About"
	default:
		return "Watchlist"
	}
}

// Layout constants
const (
	// Tab bar (1) + its border (1) + footer (1)
	ChromeHeight = 3

	// PageStyle padding
	pagePadX = 2
	pagePadY = 1

	statusDuration = 3 * time.Second
	tickInterval   = 100 * time.Millisecond
)

// AppInfo is shown on the About page
type AppInfo struct {
	Version    string
	DataPath   string
	ConfigPath string
}

// URLOpener opens a web page outside the terminal
type URLOpener interface {
	Open(url string) error
}

// Options configures a new Model
type Options struct {
	StartTab     Tab
	ImageBaseURL string
	Info         AppInfo
	Opener       URLOpener // nil disables opening TMDB pages
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool
	Tab   Tab

	// Services
	WatchlistSvc *service.WatchlistService
	CatalogSvc   *service.CatalogService

	// Pages
	Watchlist WatchlistView
	Catalog   CatalogView
	Help      help.Model
	Info      AppInfo
	Opener    URLOpener

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
	ShowHelp     bool

	// Command queued by NewModel for Init
	startCmd tea.Cmd
}

// NewModel creates a new application model
func NewModel(
	watchlistSvc *service.WatchlistService,
	catalogSvc *service.CatalogService,
	opts Options,
) Model {
	h := help.New()
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle
	h.Styles.ShortDesc = styles.HelpDescStyle

	m := Model{
		Tab:          TabWatchlist,
		WatchlistSvc: watchlistSvc,
		CatalogSvc:   catalogSvc,
		Watchlist:    NewWatchlistView(watchlistSvc),
		Catalog:      NewCatalogView(catalogSvc, opts.ImageBaseURL),
		Help:         h,
		Info:         opts.Info,
		Opener:       opts.Opener,
	}
	if opts.StartTab == TabMovies {
		m.Tab = TabMovies
		m.startCmd = m.Catalog.Activate()
	} else {
		m.Tab = opts.StartTab
	}
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.startCmd,
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(tickInterval)

	case CatalogLoadedMsg:
		m.Catalog.HandleLoaded(msg)
		return m, nil

	case AddTitleMsg:
		return m.addTitle(msg.Title)

	case OpenTitleMsg:
		return m, OpenURLCmd(m.Opener, msg.Title.Name, msg.Title.PageURL())

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(statusDuration)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// addTitle puts a catalog title on the watchlist
func (m Model) addTitle(t domain.Title) (tea.Model, tea.Cmd) {
	item, ok := m.WatchlistSvc.AddItem(t.WatchlistText())
	if !ok {
		return m, nil
	}
	return m, SetStatusCmd(fmt.Sprintf("Added %q to watchlist", item.Text), false)
}

// handleKeyMsg routes a key press to the shell or the active page
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		return m.quit()
	}

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.WatchlistTab):
		return m.switchTab(TabWatchlist)
	case key.Matches(msg, Keys.MoviesTab):
		return m.switchTab(TabMovies)
	case key.Matches(msg, Keys.CartTab):
		return m.switchTab(TabCart)
	case key.Matches(msg, Keys.AboutTab):
		return m.switchTab(TabAbout)
	}

	if m.InputFocused() {
		return m.forwardKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m.quit()
	case key.Matches(msg, Keys.NextTab):
		return m.switchTab(Tabs[(int(m.Tab)+1)%len(Tabs)])
	case key.Matches(msg, Keys.PrevTab):
		return m.switchTab(Tabs[(int(m.Tab)+len(Tabs)-1)%len(Tabs)])
	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil
	}

	return m.forwardKey(msg)
}

// InputFocused reports whether the active page has a focused text input
func (m Model) InputFocused() bool {
	switch m.Tab {
	case TabWatchlist:
		return m.Watchlist.InputFocused()
	case TabMovies:
		return m.Catalog.InputFocused()
	}
	return false
}

func (m Model) forwardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.Tab {
	case TabWatchlist:
		m.Watchlist, cmd = m.Watchlist.Update(msg)
	case TabMovies:
		m.Catalog, cmd = m.Catalog.Update(msg)
	}
	return m, cmd
}

// switchTab changes page. Leaving Movies cancels its fetch; entering starts a new one.
func (m Model) switchTab(t Tab) (tea.Model, tea.Cmd) {
	if t == m.Tab {
		return m, nil
	}

	if m.Tab == TabMovies {
		m.Catalog.Deactivate()
	}
	m.Tab = t

	if t == TabMovies {
		return m, m.Catalog.Activate()
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.Tab == TabMovies {
		m.Catalog.Deactivate()
	}
	return m, tea.Quit
}

// updateLayout propagates the window size to the pages
func (m *Model) updateLayout() {
	w := m.Width - 2*pagePadX
	h := m.Height - ChromeHeight - 2*pagePadY
	m.Watchlist.SetSize(w, h)
	m.Catalog.SetSize(w, h)
	m.Help.Width = w
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	var content string
	switch {
	case m.ShowHelp:
		content = m.renderHelp()
	case m.Tab == TabMovies:
		content = m.Catalog.View(m.SpinnerFrame)
	case m.Tab == TabCart:
		content = m.renderCart()
	case m.Tab == TabAbout:
		content = m.renderAbout()
	default:
		content = m.Watchlist.View()
	}

	bodyHeight := m.Height - ChromeHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := styles.PageStyle.
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(content)

	return strings.Join([]string{
		m.renderTabBar(),
		body,
		m.renderFooter(),
	}, "\n")
}
