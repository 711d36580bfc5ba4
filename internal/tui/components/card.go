package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mmcdole/streamlist/internal/domain"
	"github.com/mmcdole/streamlist/internal/tui/styles"
)

// Card layout
const (
	CardWidth = 22
	CardGap   = 1

	// border (2) + padding (2)
	cardChrome = 4
)

// Poster indicators
const (
	PosterChar   = "▣"
	NoPosterChar = "□"
)

// CardContentWidth is the text width available inside a card
func CardContentWidth() int {
	return CardWidth - cardChrome
}

// RenderCard renders one movie card: poster mark, title, year and rating
func RenderCard(t domain.Title, selected bool) string {
	width := CardContentWidth()

	poster := styles.DimStyle.Render(NoPosterChar + " no poster")
	if t.PosterPath != "" {
		poster = styles.AccentStyle.Render(PosterChar + " poster")
	}

	name := ansi.Truncate(t.Name, width, "…")
	if selected {
		name = styles.TitleStyle.Render(name)
	} else {
		name = styles.SubtitleStyle.Render(name)
	}

	lines := []string{
		poster,
		name,
		styles.DimStyle.Render(t.Year()),
		styles.RatingStyle.Render("★ " + t.FormattedRating()),
	}

	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}
	return style.Width(CardWidth - 2).Render(strings.Join(lines, "\n"))
}

// CardsPerRow returns how many cards fit in width, at least one
func CardsPerRow(width int) int {
	n := (width + CardGap) / (CardWidth + CardGap)
	if n < 1 {
		return 1
	}
	return n
}

// RenderCardRow renders titles[offset:offset+n] side by side, marking
// selected (an index into titles) when it is visible.
func RenderCardRow(titles []domain.Title, offset, n, selected int) string {
	end := offset + n
	if end > len(titles) {
		end = len(titles)
	}

	cards := make([]string, 0, end-offset)
	gap := strings.Repeat(" ", CardGap)
	for i := offset; i < end; i++ {
		if len(cards) > 0 {
			cards = append(cards, gap)
		}
		cards = append(cards, RenderCard(titles[i], i == selected))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
