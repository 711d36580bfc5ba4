package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/streamlist/internal/domain"
	"github.com/mmcdole/streamlist/internal/service"
	"github.com/mmcdole/streamlist/internal/tui/components"
	"github.com/mmcdole/streamlist/internal/tui/styles"
)

// Empty-state messages
const (
	EmptyListMessage = "Your list is empty. Add a movie or show above."
	addPlaceholder   = "Enter a movie or show..."
)

// watchFocus is the part of the watchlist tab receiving keys
type watchFocus int

const (
	focusList watchFocus = iota
	focusAdd
	focusEdit
	focusFind
)

// Lines used around the list: add field (3), gap, find line, gap, footer
const watchlistChromeLines = 7

// WatchlistView renders the watchlist and routes keys to the service
type WatchlistView struct {
	svc *service.WatchlistService

	add  components.TextField
	edit components.TextField
	find components.TextField

	focus  watchFocus
	query  string
	cursor int
	offset int

	width  int
	height int
}

// NewWatchlistView creates the view. An empty list starts with the add field focused.
func NewWatchlistView(svc *service.WatchlistService) WatchlistView {
	v := WatchlistView{
		svc:  svc,
		add:  components.NewTextField(addPlaceholder, 200),
		edit: components.NewTextField("", 200),
		find: components.NewFilterField("find in list..."),
	}
	if svc.Len() == 0 {
		v.focus = focusAdd
		v.add.Focus()
	}
	return v
}

// SetSize updates the view dimensions
func (v *WatchlistView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.add.SetWidth(width)
	v.edit.SetWidth(width - 4)
	v.find.SetWidth(width)
	v.ensureVisible()
}

// InputFocused reports whether keys go to a text input
func (v WatchlistView) InputFocused() bool {
	return v.focus != focusList
}

// Query returns the active quick-find query
func (v WatchlistView) Query() string {
	return v.query
}

// Cursor returns the selected row index
func (v WatchlistView) Cursor() int {
	return v.cursor
}

// rows returns the items currently listed
func (v WatchlistView) rows() []domain.WatchlistItem {
	return v.svc.Search(v.query)
}

// Selected returns the item under the cursor
func (v WatchlistView) Selected() (domain.WatchlistItem, bool) {
	rows := v.rows()
	if v.cursor < 0 || v.cursor >= len(rows) {
		return domain.WatchlistItem{}, false
	}
	return rows[v.cursor], true
}

// Update handles a key press
func (v WatchlistView) Update(msg tea.KeyMsg) (WatchlistView, tea.Cmd) {
	switch v.focus {
	case focusAdd:
		return v.updateAdd(msg)
	case focusEdit:
		return v.updateEdit(msg)
	case focusFind:
		return v.updateFind(msg)
	}
	return v.updateList(msg)
}

func (v WatchlistView) updateAdd(msg tea.KeyMsg) (WatchlistView, tea.Cmd) {
	if key.Matches(msg, Keys.Switch) {
		v.focusOn(focusList)
		return v, nil
	}

	var cmd tea.Cmd
	var event components.FieldEvent
	v.add, cmd, event = v.add.Update(msg)

	switch event {
	case components.FieldSubmitted:
		item, ok := v.svc.AddItem(v.add.Value())
		if !ok {
			return v, nil
		}
		v.add.Reset()
		v.selectID(item.ID)
		return v, SetStatusCmd(fmt.Sprintf("Added %q", item.Text), false)
	case components.FieldCancelled:
		v.focusOn(focusList)
		return v, nil
	}
	return v, cmd
}

func (v WatchlistView) updateEdit(msg tea.KeyMsg) (WatchlistView, tea.Cmd) {
	var cmd tea.Cmd
	var event components.FieldEvent
	v.edit, cmd, event = v.edit.Update(msg)

	switch event {
	case components.FieldSubmitted:
		v.svc.SaveEdit()
		// A blank draft keeps the session open
		if _, open := v.svc.EditSession(); !open {
			v.focusOn(focusList)
			v.clampCursor()
		}
		return v, nil
	case components.FieldCancelled:
		v.svc.CancelEdit()
		v.focusOn(focusList)
		return v, nil
	}

	v.svc.UpdateEditDraft(v.edit.Value())
	return v, cmd
}

func (v WatchlistView) updateFind(msg tea.KeyMsg) (WatchlistView, tea.Cmd) {
	var cmd tea.Cmd
	var event components.FieldEvent
	v.find, cmd, event = v.find.Update(msg)

	switch event {
	case components.FieldSubmitted:
		v.query = strings.TrimSpace(v.find.Value())
		v.focusOn(focusList)
		return v, nil
	case components.FieldCancelled:
		v.query = ""
		v.find.Reset()
		v.focusOn(focusList)
		v.clampCursor()
		return v, nil
	}

	v.query = v.find.Value()
	v.cursor = 0
	v.offset = 0
	return v, cmd
}

func (v WatchlistView) updateList(msg tea.KeyMsg) (WatchlistView, tea.Cmd) {
	rows := v.rows()

	switch {
	case key.Matches(msg, Keys.Switch), key.Matches(msg, Keys.FocusAdd):
		return v, v.focusOn(focusAdd)

	case key.Matches(msg, Keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, Keys.Down):
		if v.cursor < len(rows)-1 {
			v.cursor++
		}
	case key.Matches(msg, Keys.Home):
		v.cursor = 0
	case key.Matches(msg, Keys.End):
		v.cursor = len(rows) - 1

	case key.Matches(msg, Keys.Toggle):
		if item, ok := v.Selected(); ok {
			v.svc.ToggleComplete(item.ID)
		}
	case key.Matches(msg, Keys.Edit), key.Matches(msg, Keys.Submit):
		item, ok := v.Selected()
		if !ok {
			return v, nil
		}
		v.svc.StartEdit(item.ID)
		session, _ := v.svc.EditSession()
		v.edit.SetValue(session.Draft)
		return v, v.focusOn(focusEdit)
	case key.Matches(msg, Keys.Delete):
		item, ok := v.Selected()
		if !ok {
			return v, nil
		}
		v.svc.DeleteItem(item.ID)
		v.clampCursor()
		return v, SetStatusCmd(fmt.Sprintf("Removed %q", item.Text), false)

	case key.Matches(msg, Keys.CycleFilter):
		v.setFilter(v.svc.Filter().Next())
	case key.Matches(msg, Keys.FilterAll):
		v.setFilter(domain.FilterAll)
	case key.Matches(msg, Keys.FilterActive):
		v.setFilter(domain.FilterActive)
	case key.Matches(msg, Keys.FilterDone):
		v.setFilter(domain.FilterCompleted)

	case key.Matches(msg, Keys.Filter):
		v.find.SetValue(v.query)
		return v, v.focusOn(focusFind)
	case key.Matches(msg, Keys.Escape):
		v.query = ""
		v.find.Reset()
	}

	v.clampCursor()
	return v, nil
}

// focusOn moves keyboard focus, blurring every other input
func (v *WatchlistView) focusOn(f watchFocus) tea.Cmd {
	v.focus = f
	v.add.Blur()
	v.edit.Blur()
	v.find.Blur()

	switch f {
	case focusAdd:
		return v.add.Focus()
	case focusEdit:
		return v.edit.Focus()
	case focusFind:
		return v.find.Focus()
	}
	return nil
}

func (v *WatchlistView) setFilter(f domain.Filter) {
	v.svc.SetFilter(f)
	v.cursor = 0
	v.offset = 0
}

// selectID moves the cursor to the row holding id, if listed
func (v *WatchlistView) selectID(id string) {
	for i, item := range v.rows() {
		if item.ID == id {
			v.cursor = i
			v.ensureVisible()
			return
		}
	}
}

func (v *WatchlistView) clampCursor() {
	n := len(v.rows())
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	v.ensureVisible()
}

func (v *WatchlistView) listHeight() int {
	if v.height <= 0 {
		// not sized yet
		return 1 << 16
	}
	h := v.height - watchlistChromeLines
	if h < 1 {
		return 1
	}
	return h
}

func (v *WatchlistView) ensureVisible() {
	h := v.listHeight()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+h {
		v.offset = v.cursor - h + 1
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

// View renders the tab
func (v WatchlistView) View() string {
	var b strings.Builder

	b.WriteString(v.add.View())
	b.WriteString("\n\n")

	if v.focus == focusFind || v.query != "" {
		b.WriteString(v.find.InlineView())
		b.WriteString("\n\n")
	}

	b.WriteString(v.renderList())
	b.WriteString("\n\n")
	b.WriteString(v.renderCounts())

	return b.String()
}

func (v WatchlistView) renderList() string {
	switch v.svc.EmptyState() {
	case service.EmptyList:
		return styles.DimStyle.Render(EmptyListMessage)
	case service.EmptyFilter:
		return styles.DimStyle.Render(EmptyFilterMessage(v.svc.Filter()))
	}

	rows := v.rows()
	if len(rows) == 0 {
		return styles.DimStyle.Render(fmt.Sprintf("No matches for %q.", v.query))
	}

	end := v.offset + v.listHeight()
	if end > len(rows) {
		end = len(rows)
	}

	session, editing := v.svc.EditSession()
	lines := make([]string, 0, end-v.offset+1)
	for i := v.offset; i < end; i++ {
		item := rows[i]
		selected := i == v.cursor && v.focus != focusAdd

		cursor := "  "
		if selected {
			cursor = styles.AccentStyle.Render("› ")
		}

		var text string
		switch {
		case editing && session.ItemID == item.ID:
			text = v.edit.InlineView()
		case item.Completed:
			text = styles.CompletedTextStyle.Render(item.Text)
		case selected:
			text = styles.TitleStyle.Render(item.Text)
		default:
			text = styles.SubtitleStyle.Render(item.Text)
		}

		lines = append(lines, cursor+styles.RenderCompletion(item.Completed)+" "+text)
	}

	if end < len(rows) {
		lines = append(lines, styles.DimStyle.Render(fmt.Sprintf("  ↓ %d more", len(rows)-end)))
	}
	return strings.Join(lines, "\n")
}

func (v WatchlistView) renderCounts() string {
	total, active, completed := v.svc.Counts()
	counts := fmt.Sprintf("%d items · %d active · %d completed", total, active, completed)
	return styles.DimStyle.Render(counts+" · filter: ") +
		styles.AccentStyle.Render(v.svc.Filter().Label())
}

// EmptyFilterMessage is shown when items exist but the filter hides them all
func EmptyFilterMessage(f domain.Filter) string {
	return fmt.Sprintf("No %s items.", strings.ToLower(f.Label()))
}
