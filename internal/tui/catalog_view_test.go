package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/streamlist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openMovies switches to the Movies tab and returns the fetch command unrun
func openMovies(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	m, cmd := press(t, m, keyOf(tea.KeyF2))
	require.Equal(t, TabMovies, m.Tab)
	require.NotNil(t, cmd)
	return m, cmd
}

// loadMovies opens the Movies tab and applies the fetch result
func loadMovies(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := openMovies(t, m)
	return update(t, m, cmd())
}

func TestCatalogLoading(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)
	m, _ = openMovies(t, m)

	assert.True(t, m.Catalog.Loading())
	assert.Contains(t, m.View(), LoadingMessage)
}

func TestCatalogReady(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)
	m = loadMovies(t, m)

	require.False(t, m.Catalog.Loading())
	require.NoError(t, m.Catalog.Err())

	view := m.View()
	for _, c := range domain.Categories {
		assert.Contains(t, view, c.Title())
	}
	assert.Contains(t, view, "Dune")
	assert.Contains(t, view, "★ 7.8")
	assert.Contains(t, view, "2021")
	assert.Contains(t, view, "N/A", "missing release date")
	assert.Contains(t, view, "https://image.tmdb.org/t/p/w500/dune.jpg")
}

func TestCatalogMissingAPIKey(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), false)
	m = loadMovies(t, m)

	assert.ErrorIs(t, m.Catalog.Err(), domain.ErrMissingAPIKey)
	assert.Contains(t, m.View(), "Error: API key not configured")
}

func TestCatalogFetchError(t *testing.T) {
	repo := &stubCatalog{err: fmt.Errorf("%w: status 503", domain.ErrUnexpectedStatus)}
	m := newTestModel(t, repo, true)
	m = loadMovies(t, m)

	view := m.View()
	assert.Contains(t, view, "Error: Failed to fetch movies")
	assert.NotContains(t, view, "Dune")
}

func TestCatalogErrorMessage(t *testing.T) {
	assert.Equal(t, "API key not configured", CatalogErrorMessage(domain.ErrMissingAPIKey))
	assert.Equal(t, "Failed to fetch movies: invalid API key",
		CatalogErrorMessage(fmt.Errorf("fetching popular: %w", domain.ErrAuthFailed)))
	assert.Contains(t, CatalogErrorMessage(domain.ErrCatalogUnavailable), "Failed to fetch movies")
	assert.Empty(t, CatalogErrorMessage(nil))
}

func TestCatalogDropsResultAfterLeaving(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)
	m, cmd := openMovies(t, m)

	m = update(t, m, keyOf(tea.KeyF1))
	msg := cmd()
	m = update(t, m, msg)

	assert.Equal(t, domain.CatalogResult{}, m.Catalog.Result())
	assert.False(t, m.Catalog.Loading())

	// a new session ignores the old generation too
	m, _ = openMovies(t, m)
	m = update(t, m, msg)
	assert.True(t, m.Catalog.Loading())
	assert.Equal(t, domain.CatalogResult{}, m.Catalog.Result())
}

func TestCatalogRefetchesOnEveryVisit(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)
	m = loadMovies(t, m)
	require.Equal(t, 5, m.Catalog.Result().Len())

	m = update(t, m, keyOf(tea.KeyF3))
	assert.Equal(t, 0, m.Catalog.Result().Len())

	m, _ = openMovies(t, m)
	assert.True(t, m.Catalog.Loading())
}

func TestCatalogRefreshKey(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), false)
	m = loadMovies(t, m)
	require.Error(t, m.Catalog.Err())

	m, cmd := press(t, m, runes("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.Catalog.Loading())
}

func TestCatalogNavigation(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)
	m = loadMovies(t, m)

	selected, ok := m.Catalog.Selected()
	require.True(t, ok)
	assert.Equal(t, "Dune", selected.Name)

	m = update(t, m, runes("l"))
	selected, _ = m.Catalog.Selected()
	assert.Equal(t, "Arrival", selected.Name)

	// stops at the end of a row
	m = update(t, m, runes("l"))
	selected, _ = m.Catalog.Selected()
	assert.Equal(t, "Arrival", selected.Name)

	m = update(t, m, runes("j"))
	selected, _ = m.Catalog.Selected()
	assert.Equal(t, "Heat", selected.Name)

	m = update(t, m, runes("k"))
	m = update(t, m, runes("h"))
	selected, _ = m.Catalog.Selected()
	assert.Equal(t, "Dune", selected.Name)
}

func TestCatalogFilter(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)
	m = loadMovies(t, m)

	m = update(t, m, runes("/"))
	require.True(t, m.InputFocused())

	// q is typed into the filter instead of quitting
	m, cmd := press(t, m, runes("q"))
	assert.False(t, isQuit(cmd))
	m = update(t, m, keyOf(tea.KeyBackspace))
	m = typeText(t, m, "ALI")

	// selection jumps to the first section with a match
	selected, ok := m.Catalog.Selected()
	require.True(t, ok)
	assert.Equal(t, "Alien", selected.Name)

	m = update(t, m, keyOf(tea.KeyEnter))
	assert.False(t, m.InputFocused())

	view := m.View()
	assert.Contains(t, view, "Alien")
	assert.NotContains(t, view, "Heat")

	m = update(t, m, keyOf(tea.KeyEsc))
	assert.Contains(t, m.View(), "Heat")
}

type fakeOpener struct {
	urls []string
	err  error
}

func (f *fakeOpener) Open(url string) error {
	f.urls = append(f.urls, url)
	return f.err
}

func TestCatalogAddTitleToWatchlist(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)
	m = loadMovies(t, m)

	m, cmd := press(t, m, runes("a"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(AddTitleMsg)
	require.True(t, ok)
	assert.Equal(t, "Dune", msg.Title.Name)

	m, cmd = press(t, m, msg)
	require.NotNil(t, cmd)
	m = update(t, m, cmd())

	items := m.WatchlistSvc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Dune (2021)", items[0].Text)
	assert.Contains(t, m.StatusMsg, "Dune (2021)")
	assert.Equal(t, TabMovies, m.Tab, "adding stays on the Movies tab")
}

func TestCatalogOpenTitle(t *testing.T) {
	watch, catalog := newTestServices(t, sampleCatalog(), true)
	opener := &fakeOpener{}
	m := NewModel(watch, catalog, Options{Opener: opener})
	m = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})
	m = loadMovies(t, m)

	m, cmd := press(t, m, runes("o"))
	require.NotNil(t, cmd)
	m, cmd = press(t, m, cmd())
	require.NotNil(t, cmd)
	m = update(t, m, cmd())

	require.Len(t, opener.urls, 1)
	assert.Equal(t, "https://www.themoviedb.org/movie/1", opener.urls[0])
	assert.Equal(t, "Opened Dune on TMDB", m.StatusMsg)
	assert.False(t, m.StatusIsErr)
}

func TestCatalogOpenTitleFailure(t *testing.T) {
	msg := OpenURLCmd(&fakeOpener{err: fmt.Errorf("no display")}, "Dune", "https://example.com")()
	status, ok := msg.(StatusMsg)
	require.True(t, ok)
	assert.True(t, status.IsError)
	assert.Contains(t, status.Message, "no display")

	status = OpenURLCmd(nil, "Dune", "https://example.com")().(StatusMsg)
	assert.True(t, status.IsError)
}

func TestCatalogActionsNeedLoadedCatalog(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)
	m, _ = openMovies(t, m)

	_, cmd := press(t, m, runes("a"))
	assert.Nil(t, cmd)
	_, cmd = press(t, m, runes("o"))
	assert.Nil(t, cmd)
}
