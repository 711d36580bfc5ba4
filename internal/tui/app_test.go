package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/streamlist/internal/domain"
	"github.com/mmcdole/streamlist/internal/log"
	"github.com/mmcdole/streamlist/internal/service"
	"github.com/mmcdole/streamlist/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCatalog serves fixed titles per category, or err for every category
type stubCatalog struct {
	titles map[domain.Category][]domain.Title
	err    error
}

func (s *stubCatalog) GetCategory(ctx context.Context, category domain.Category, page int) ([]domain.Title, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.titles[category], nil
}

func sampleCatalog() *stubCatalog {
	return &stubCatalog{titles: map[domain.Category][]domain.Title{
		domain.CategoryPopular: {
			{ID: 1, Name: "Dune", PosterPath: "/dune.jpg", ReleaseDate: "2021-10-22", Rating: 7.8},
			{ID: 2, Name: "Arrival", ReleaseDate: "2016-11-11", Rating: 7.6},
		},
		domain.CategoryNowPlaying: {{ID: 3, Name: "Heat", ReleaseDate: "1995-12-15", Rating: 8.3}},
		domain.CategoryUpcoming:   {{ID: 4, Name: "Untitled Sequel", Rating: 0}},
		domain.CategoryTopRated:   {{ID: 5, Name: "Alien", ReleaseDate: "1979-05-25", Rating: 8.1}},
	}}
}

func newTestServices(t *testing.T, repo domain.CatalogRepository, configured bool) (*service.WatchlistService, *service.CatalogService) {
	t.Helper()
	st, err := store.NewWatchlistStore("")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return service.NewWatchlistService(st, log.NullLogger()),
		service.NewCatalogService(repo, configured, log.NullLogger())
}

func newTestModel(t *testing.T, repo domain.CatalogRepository, configured bool) Model {
	t.Helper()
	watch, catalog := newTestServices(t, repo, configured)
	m := NewModel(watch, catalog, Options{
		ImageBaseURL: "https://image.tmdb.org/t/p/w500",
		Info:         AppInfo{Version: "v1.2.3"},
	})
	return update(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})
}

// update feeds one message and returns the new model
func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// press feeds one message and also returns the command
func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func space() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}

// typeText sends s one rune at a time
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		if r == ' ' {
			m = update(t, m, space())
			continue
		}
		m = update(t, m, runes(string(r)))
	}
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestStartsOnWatchlist(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)

	assert.Equal(t, TabWatchlist, m.Tab)
	assert.True(t, m.InputFocused(), "empty list focuses the add field")

	view := m.View()
	assert.Contains(t, view, AppName)
	assert.Contains(t, view, EmptyListMessage)
}

func TestViewBeforeResize(t *testing.T) {
	watch, catalog := newTestServices(t, sampleCatalog(), true)
	m := NewModel(watch, catalog, Options{})
	assert.Equal(t, "Loading...", m.View())
}

func TestQuitOnlyWithoutFocusedInput(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)

	m, cmd := press(t, m, runes("q"))
	assert.False(t, isQuit(cmd))
	assert.Equal(t, "q", m.Watchlist.add.Value())

	m = update(t, m, keyOf(tea.KeyEsc))
	require.False(t, m.InputFocused())

	_, cmd = press(t, m, runes("q"))
	assert.True(t, isQuit(cmd))
}

func TestCtrlCQuitsFromInput(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)
	require.True(t, m.InputFocused())

	_, cmd := press(t, m, keyOf(tea.KeyCtrlC))
	assert.True(t, isQuit(cmd))
}

func TestTabCycling(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)
	m = update(t, m, keyOf(tea.KeyEsc))

	m, cmd := press(t, m, runes("]"))
	assert.Equal(t, TabMovies, m.Tab)
	require.NotNil(t, cmd, "entering Movies starts a fetch")

	m = update(t, m, runes("]"))
	assert.Equal(t, TabCart, m.Tab)
	m = update(t, m, runes("]"))
	assert.Equal(t, TabAbout, m.Tab)
	m = update(t, m, runes("]"))
	assert.Equal(t, TabWatchlist, m.Tab)

	m = update(t, m, runes("["))
	assert.Equal(t, TabAbout, m.Tab)
}

func TestFunctionKeysJumpFromInput(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)
	require.True(t, m.InputFocused())

	m = update(t, m, keyOf(tea.KeyF3))
	assert.Equal(t, TabCart, m.Tab)
	assert.Contains(t, m.View(), EmptyCartMessage)

	m = update(t, m, keyOf(tea.KeyF1))
	assert.Equal(t, TabWatchlist, m.Tab)
}

func TestAboutPage(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)
	m = update(t, m, keyOf(tea.KeyF4))

	view := m.View()
	assert.Contains(t, view, "v1.2.3")
	assert.Contains(t, view, "TMDB")
	assert.Contains(t, view, "next tab")
	assert.Contains(t, view, "in memory")
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)
	m = update(t, m, keyOf(tea.KeyF3))

	m = update(t, m, runes("?"))
	require.True(t, m.ShowHelp)
	assert.Contains(t, m.View(), "Press any key to return...")

	m = update(t, m, runes("x"))
	assert.False(t, m.ShowHelp)
	assert.Equal(t, TabCart, m.Tab)
}

func TestStatusMessageLifecycle(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)

	m, cmd := press(t, m, StatusMsg{Message: "Added \"Dune\""})
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Added \"Dune\"")

	m = update(t, m, ClearStatusMsg{})
	assert.Empty(t, m.StatusMsg)
}

func TestStartTabMovies(t *testing.T) {
	watch, catalog := newTestServices(t, sampleCatalog(), true)
	m := NewModel(watch, catalog, Options{StartTab: TabMovies})

	assert.Equal(t, TabMovies, m.Tab)
	assert.True(t, m.Catalog.Loading())
	assert.NotNil(t, m.Init())
}
