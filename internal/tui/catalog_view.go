package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/streamlist/internal/domain"
	"github.com/mmcdole/streamlist/internal/service"
	"github.com/mmcdole/streamlist/internal/tui/components"
	"github.com/mmcdole/streamlist/internal/tui/styles"
)

// LoadingMessage is shown while a fetch is in flight
const LoadingMessage = "Loading movies..."

// catalogState is the phase of the current fetch session
type catalogState int

const (
	catalogIdle catalogState = iota
	catalogLoading
	catalogError
	catalogReady
)

// CatalogView shows the four curated TMDB sections
type CatalogView struct {
	svc       *service.CatalogService
	imageBase string

	state  catalogState
	gen    uint64
	result domain.CatalogResult
	err    error

	filter components.TextField
	query  string

	row     int
	cols    [4]int
	offsets [4]int

	width  int
	height int
}

// NewCatalogView creates the view; nothing is fetched until Activate
func NewCatalogView(svc *service.CatalogService, imageBase string) CatalogView {
	return CatalogView{
		svc:       svc,
		imageBase: imageBase,
		filter:    components.NewFilterField("filter titles..."),
	}
}

// SetSize updates the view dimensions
func (v *CatalogView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.filter.SetWidth(width)
	for i := range v.cols {
		v.ensureVisible(i)
	}
}

// InputFocused reports whether keys go to the filter input
func (v CatalogView) InputFocused() bool {
	return v.filter.Focused()
}

// Loading reports whether a fetch is in flight
func (v CatalogView) Loading() bool {
	return v.state == catalogLoading
}

// Err returns the error of the last finished session
func (v CatalogView) Err() error {
	return v.err
}

// Result returns the loaded catalog
func (v CatalogView) Result() domain.CatalogResult {
	return v.result
}

// Activate starts a fresh fetch session, superseding any previous one
func (v *CatalogView) Activate() tea.Cmd {
	gen, ctx := v.svc.Start(context.Background())
	v.gen = gen
	v.state = catalogLoading
	v.err = nil
	v.result = domain.CatalogResult{}
	v.resetSelection()
	return FetchCatalogCmd(v.svc, ctx, gen)
}

// Deactivate cancels the session and drops everything it loaded
func (v *CatalogView) Deactivate() {
	v.svc.Cancel()
	v.state = catalogIdle
	v.err = nil
	v.result = domain.CatalogResult{}
	v.query = ""
	v.filter.Reset()
	v.filter.Blur()
	v.resetSelection()
}

// HandleLoaded applies a fetch outcome. Results from a superseded or
// cancelled session are ignored and false is returned.
func (v *CatalogView) HandleLoaded(msg CatalogLoadedMsg) bool {
	if v.state != catalogLoading || msg.Gen != v.gen || !v.svc.IsCurrent(msg.Gen) {
		return false
	}

	if msg.Err != nil {
		v.state = catalogError
		v.err = msg.Err
		return true
	}

	v.state = catalogReady
	v.result = msg.Result
	v.resetSelection()
	return true
}

func (v *CatalogView) resetSelection() {
	v.row = 0
	v.cols = [4]int{}
	v.offsets = [4]int{}
}

// Update handles a key press
func (v CatalogView) Update(msg tea.KeyMsg) (CatalogView, tea.Cmd) {
	if v.filter.Focused() {
		return v.updateFilter(msg)
	}

	if key.Matches(msg, Keys.Refresh) {
		return v, v.Activate()
	}
	if v.state != catalogReady {
		return v, nil
	}

	switch {
	case key.Matches(msg, Keys.Up):
		if v.row > 0 {
			v.row--
		}
	case key.Matches(msg, Keys.Down):
		if v.row < len(domain.Categories)-1 {
			v.row++
		}
	case key.Matches(msg, Keys.Left):
		if v.cols[v.row] > 0 {
			v.cols[v.row]--
		}
	case key.Matches(msg, Keys.Right):
		if v.cols[v.row] < len(v.section(v.row))-1 {
			v.cols[v.row]++
		}
	case key.Matches(msg, Keys.Home):
		v.cols[v.row] = 0
	case key.Matches(msg, Keys.End):
		if n := len(v.section(v.row)); n > 0 {
			v.cols[v.row] = n - 1
		}
	case key.Matches(msg, Keys.AddTitle):
		if t, ok := v.Selected(); ok {
			return v, func() tea.Msg { return AddTitleMsg{Title: t} }
		}
	case key.Matches(msg, Keys.OpenTitle):
		if t, ok := v.Selected(); ok {
			return v, func() tea.Msg { return OpenTitleMsg{Title: t} }
		}
	case key.Matches(msg, Keys.Filter):
		v.filter.SetValue(v.query)
		return v, v.filter.Focus()
	case key.Matches(msg, Keys.Escape):
		v.setQuery("")
		v.filter.Reset()
	}

	v.ensureVisible(v.row)
	return v, nil
}

func (v CatalogView) updateFilter(msg tea.KeyMsg) (CatalogView, tea.Cmd) {
	var cmd tea.Cmd
	var event components.FieldEvent
	v.filter, cmd, event = v.filter.Update(msg)

	switch event {
	case components.FieldSubmitted:
		v.filter.Blur()
		return v, nil
	case components.FieldCancelled:
		v.filter.Reset()
		v.filter.Blur()
		v.setQuery("")
		return v, nil
	}

	v.setQuery(v.filter.Value())
	return v, cmd
}

func (v *CatalogView) setQuery(q string) {
	q = strings.TrimSpace(q)
	if q == v.query {
		return
	}
	v.query = q
	v.cols = [4]int{}
	v.offsets = [4]int{}

	if len(v.section(v.row)) > 0 {
		return
	}
	for i := range domain.Categories {
		if len(v.section(i)) > 0 {
			v.row = i
			return
		}
	}
}

// section returns the titles of section i that match the filter
func (v CatalogView) section(i int) []domain.Title {
	titles := v.result.Section(domain.Categories[i])
	if v.query == "" {
		return titles
	}

	matched := make([]domain.Title, 0, len(titles))
	for _, t := range titles {
		if fuzzy.MatchFold(v.query, t.Name) {
			matched = append(matched, t)
		}
	}
	return matched
}

// Selected returns the title under the cursor
func (v CatalogView) Selected() (domain.Title, bool) {
	if v.state != catalogReady {
		return domain.Title{}, false
	}
	titles := v.section(v.row)
	col := v.cols[v.row]
	if col < 0 || col >= len(titles) {
		return domain.Title{}, false
	}
	return titles[col], true
}

func (v *CatalogView) ensureVisible(i int) {
	n := components.CardsPerRow(v.width)
	if v.cols[i] < v.offsets[i] {
		v.offsets[i] = v.cols[i]
	}
	if v.cols[i] >= v.offsets[i]+n {
		v.offsets[i] = v.cols[i] - n + 1
	}
}

// View renders the tab. frame drives the loading spinner.
func (v CatalogView) View(frame int) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Movies"))
	b.WriteString("\n\n")

	switch v.state {
	case catalogIdle, catalogLoading:
		b.WriteString(RenderSpinner(frame) + " " + styles.DimStyle.Render(LoadingMessage))
		return b.String()
	case catalogError:
		b.WriteString(RenderError(CatalogErrorMessage(v.err), v.width))
		if errors.Is(v.err, domain.ErrMissingAPIKey) {
			b.WriteString("\n\n")
			b.WriteString(styles.DimStyle.Render("Run `streamlist setup` or set TMDB_API_KEY, then press r."))
		} else {
			b.WriteString("\n\n")
			b.WriteString(styles.DimStyle.Render("Press r to try again."))
		}
		return b.String()
	}

	if v.filter.Focused() || v.query != "" {
		b.WriteString(v.filter.InlineView())
		b.WriteString("\n")
	}

	perRow := components.CardsPerRow(v.width)
	for i, category := range domain.Categories {
		heading := category.Title()
		if i == v.row {
			heading = styles.AccentStyle.Render("› ") + styles.SectionTitleStyle.Render(heading)
		} else {
			heading = "  " + styles.SectionTitleStyle.Render(heading)
		}
		b.WriteString(heading)
		b.WriteString("\n")

		titles := v.section(i)
		if len(titles) == 0 {
			b.WriteString(styles.DimStyle.Render("  No titles"))
			b.WriteString("\n")
			continue
		}

		selected := -1
		if i == v.row {
			selected = v.cols[i]
		}
		b.WriteString(components.RenderCardRow(titles, v.offsets[i], perRow, selected))
		b.WriteString("\n")
	}

	if t, ok := v.Selected(); ok {
		b.WriteString("\n")
		b.WriteString(v.renderDetail(t))
	}

	return b.String()
}

func (v CatalogView) renderDetail(t domain.Title) string {
	line := styles.TitleStyle.Render(t.Name) + styles.DimStyle.Render(" ("+t.Year()+")") +
		"  " + styles.RatingStyle.Render("★ "+t.FormattedRating())

	poster := styles.DimStyle.Render("No poster")
	if u := t.PosterURL(v.imageBase); u != "" {
		poster = styles.DimStyle.Render("Poster: " + u)
	}
	hint := styles.DimStyle.Render("a add to watchlist · o open on TMDB")
	return line + "\n" + poster + "\n" + hint
}

// CatalogErrorMessage turns a fetch error into the text shown after "Error: "
func CatalogErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrMissingAPIKey):
		return domain.ErrMissingAPIKey.Error()
	case errors.Is(err, domain.ErrAuthFailed):
		return "Failed to fetch movies: invalid API key"
	default:
		return fmt.Sprintf("Failed to fetch movies (%v)", err)
	}
}
