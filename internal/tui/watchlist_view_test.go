package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/streamlist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withItems adds each title through the add field and leaves focus on the list
func withItems(t *testing.T, m Model, titles ...string) Model {
	t.Helper()
	if !m.Watchlist.InputFocused() {
		m = update(t, m, runes("a"))
	}
	for _, title := range titles {
		m = typeText(t, m, title)
		m = update(t, m, keyOf(tea.KeyEnter))
	}
	return update(t, m, keyOf(tea.KeyEsc))
}

func itemTexts(items []domain.WatchlistItem) []string {
	texts := make([]string, 0, len(items))
	for _, item := range items {
		texts = append(texts, item.Text)
	}
	return texts
}

func TestAddThroughField(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)

	m = typeText(t, m, "Dune")
	m, cmd := press(t, m, keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, StatusMsg{Message: `Added "Dune"`}, cmd())
	assert.Empty(t, m.Watchlist.add.Value(), "field clears after add")

	// blank input adds nothing
	m = typeText(t, m, "   ")
	m = update(t, m, keyOf(tea.KeyEnter))

	assert.Equal(t, []string{"Dune"}, itemTexts(m.WatchlistSvc.Items()))
	assert.Contains(t, m.View(), "Dune")
}

func TestToggleAndFilterKeys(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)
	m = withItems(t, m, "Dune", "Arrival")

	m = update(t, m, runes("g"))
	m = update(t, m, space())

	items := m.WatchlistSvc.Items()
	require.Len(t, items, 2)
	assert.True(t, items[0].Completed)
	assert.False(t, items[1].Completed)

	m = update(t, m, runes("2"))
	assert.Equal(t, domain.FilterActive, m.WatchlistSvc.Filter())
	assert.Equal(t, []string{"Arrival"}, itemTexts(m.Watchlist.rows()))

	m = update(t, m, runes("3"))
	assert.Equal(t, []string{"Dune"}, itemTexts(m.Watchlist.rows()))

	m = update(t, m, runes("f"))
	assert.Equal(t, domain.FilterAll, m.WatchlistSvc.Filter())

	view := m.View()
	assert.Contains(t, view, "2 items · 1 active · 1 completed")
	assert.Contains(t, view, "✓")
	assert.Contains(t, view, "●")
}

func TestEmptyFilterMessage(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)
	m = withItems(t, m, "Dune")

	m = update(t, m, runes("x"))
	m = update(t, m, runes("2"))

	assert.Contains(t, m.View(), "No active items.")
}

func TestEmptyListMessageWins(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)
	m = withItems(t, m, "Dune")

	m = update(t, m, runes("x"))
	m = update(t, m, runes("3"))
	m = update(t, m, runes("d"))

	view := m.View()
	assert.Contains(t, view, EmptyListMessage)
	assert.NotContains(t, view, "No completed items.")
}

func TestDeleteKey(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)
	m = withItems(t, m, "Dune", "Arrival", "Heat")

	m = update(t, m, runes("g"))
	m = update(t, m, runes("j"))
	m, cmd := press(t, m, runes("d"))
	require.NotNil(t, cmd)

	assert.Equal(t, []string{"Dune", "Heat"}, itemTexts(m.WatchlistSvc.Items()))
	assert.Equal(t, 1, m.Watchlist.Cursor())

	// cursor stays in range after deleting the last row
	m = update(t, m, runes("d"))
	assert.Equal(t, 0, m.Watchlist.Cursor())
}

func TestInlineEdit(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)
	m = withItems(t, m, "Dune")
	m = update(t, m, runes("g"))

	m = update(t, m, runes("e"))
	session, open := m.WatchlistSvc.EditSession()
	require.True(t, open)
	assert.Equal(t, "Dune", session.Draft)
	assert.True(t, m.InputFocused())

	m = typeText(t, m, " Part Two")
	session, _ = m.WatchlistSvc.EditSession()
	assert.Equal(t, "Dune Part Two", session.Draft)

	// the draft is not applied until saved
	assert.Equal(t, "Dune", m.WatchlistSvc.Items()[0].Text)

	m = update(t, m, keyOf(tea.KeyEnter))
	_, open = m.WatchlistSvc.EditSession()
	assert.False(t, open)
	assert.False(t, m.InputFocused())
	assert.Equal(t, "Dune Part Two", m.WatchlistSvc.Items()[0].Text)
}

func TestInlineEditBlankDraftStaysOpen(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)
	m = withItems(t, m, "Dune")
	m = update(t, m, runes("g"))
	m = update(t, m, runes("e"))

	m = update(t, m, keyOf(tea.KeyCtrlU))
	m = update(t, m, keyOf(tea.KeyEnter))

	session, open := m.WatchlistSvc.EditSession()
	require.True(t, open)
	assert.Empty(t, session.Draft)
	assert.True(t, m.InputFocused())

	m = update(t, m, keyOf(tea.KeyEsc))
	_, open = m.WatchlistSvc.EditSession()
	assert.False(t, open)
	assert.Equal(t, "Dune", m.WatchlistSvc.Items()[0].Text)
}

func TestQuickFind(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)
	m = withItems(t, m, "Dune", "Arrival", "Heat")

	m = update(t, m, runes("/"))
	require.True(t, m.InputFocused())
	m = typeText(t, m, "arr")
	assert.Equal(t, []string{"Arrival"}, itemTexts(m.Watchlist.rows()))

	m = update(t, m, keyOf(tea.KeyEnter))
	assert.False(t, m.InputFocused())
	assert.Equal(t, "arr", m.Watchlist.Query())

	// actions apply to the narrowed rows
	m = update(t, m, runes("x"))
	item, ok := m.WatchlistSvc.Find(m.WatchlistSvc.Items()[1].ID)
	require.True(t, ok)
	assert.True(t, item.Completed)

	m = update(t, m, keyOf(tea.KeyEsc))
	assert.Empty(t, m.Watchlist.Query())
	assert.Len(t, m.Watchlist.rows(), 3)
}

func TestQuickFindNoMatches(t *testing.T) {
	m := newTestModel(t, sampleCatalog(), true)
	m = withItems(t, m, "Dune")

	m = update(t, m, runes("/"))
	m = typeText(t, m, "zzz")

	assert.Contains(t, m.View(), `No matches for "zzz".`)
}
