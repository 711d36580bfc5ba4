package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/streamlist/internal/tui/styles"
)

// Static page text
const (
	AppName          = "StreamList"
	EmptyCartMessage = "Your cart is empty."
	Attribution      = "This product uses the TMDB API but is not endorsed or certified by TMDB."
)

// renderTabBar renders the brand followed by the tab names
func (m Model) renderTabBar() string {
	parts := []string{styles.BrandStyle.Render(AppName)}
	for _, t := range Tabs {
		if t == m.Tab {
			parts = append(parts, styles.ActiveTabStyle.Render(t.String()))
		} else {
			parts = append(parts, styles.TabStyle.Render(t.String()))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return styles.TabBarStyle.Width(m.Width).Render(bar)
}

// renderFooter renders the status line
func (m Model) renderFooter() string {
	var left string
	if m.Tab == TabMovies && m.Catalog.Loading() {
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render(LoadingMessage)
	} else if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the full key reference
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Keys"))
	b.WriteString("\n\n")
	b.WriteString(m.Help.FullHelpView(Keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("Press any key to return..."))
	return b.String()
}

// renderCart renders the cart placeholder page
func (m Model) renderCart() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Cart"))
	b.WriteString("\n\n")
	b.WriteString(styles.SubtitleStyle.Render(EmptyCartMessage))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("Browse the Movies tab to find something to watch."))
	return b.String()
}

// renderAbout renders the about page
func (m Model) renderAbout() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(AppName))
	if m.Info.Version != "" {
		b.WriteString(styles.DimStyle.Render(" " + m.Info.Version))
	}
	b.WriteString("\n\n")
	b.WriteString(wordWrap("Keep a watchlist of movies and shows, and browse what is popular, now playing, upcoming and top rated.", m.Width-4))
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render(wordWrap(Attribution, m.Width-4)))
	b.WriteString("\n\n")

	if m.Info.DataPath != "" {
		b.WriteString(styles.DimStyle.Render("Data:   ") + m.Info.DataPath + "\n")
	} else {
		b.WriteString(styles.DimStyle.Render("Data:   ") + "in memory (not saved)\n")
	}
	if m.Info.ConfigPath != "" {
		b.WriteString(styles.DimStyle.Render("Config: ") + m.Info.ConfigPath + "\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.TitleStyle.Render("Keys"))
	b.WriteString("\n\n")
	b.WriteString(m.Help.FullHelpView(Keys.FullHelp()))
	return b.String()
}

// wordWrap wraps text to fit within the given width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wordLen := lipgloss.Width(word)

		if lineLen+wordLen+1 > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}

		if i > 0 && lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}

// RenderError renders an error message
func RenderError(msg string, width int) string {
	return styles.ErrorStyle.Render(wordWrap("Error: "+msg, width-4))
}
