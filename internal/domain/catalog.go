package domain

import (
	"fmt"
	"strings"
	"time"
)

// Category is one of the curated TMDB movie listings
type Category string

const (
	CategoryPopular    Category = "popular"
	CategoryNowPlaying Category = "now_playing"
	CategoryUpcoming   Category = "upcoming"
	CategoryTopRated   Category = "top_rated"
)

// Categories is the fixed display order of catalog sections
var Categories = []Category{
	CategoryPopular,
	CategoryNowPlaying,
	CategoryUpcoming,
	CategoryTopRated,
}

// Title returns the section heading for the category
func (c Category) Title() string {
	switch c {
	case CategoryPopular:
		return "Popular Movies"
	case CategoryNowPlaying:
		return "Now Playing Movies"
	case CategoryUpcoming:
		return "Upcoming Movies"
	case CategoryTopRated:
		return "Top Rated Movies"
	default:
		return string(c)
	}
}

// Title is a movie record from the catalog
type Title struct {
	ID          int     // TMDB movie ID
	Name        string  // Display title
	PosterPath  string  // Relative poster path, e.g. "/abc.jpg" (optional)
	ReleaseDate string  // YYYY-MM-DD (optional)
	Rating      float64 // Vote average, 0-10
}

// Year returns the release year, or "N/A" when the date is missing or malformed
func (t Title) Year() string {
	if t.ReleaseDate == "" {
		return "N/A"
	}
	date, err := time.Parse(time.DateOnly, t.ReleaseDate)
	if err != nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", date.Year())
}

// FormattedRating returns the rating with one decimal place
func (t Title) FormattedRating() string {
	return fmt.Sprintf("%.1f", t.Rating)
}

// PosterURL joins the image base with the poster path
func (t Title) PosterURL(imageBase string) string {
	if t.PosterPath == "" {
		return ""
	}
	return strings.TrimRight(imageBase, "/") + "/" + strings.TrimLeft(t.PosterPath, "/")
}

// TMDBPageBase is the public movie page prefix on themoviedb.org
const TMDBPageBase = "https://www.themoviedb.org/movie/"

// PageURL returns the title's TMDB web page
func (t Title) PageURL() string {
	return fmt.Sprintf("%s%d", TMDBPageBase, t.ID)
}

// WatchlistText is the text used when the title is added to the watchlist
func (t Title) WatchlistText() string {
	if year := t.Year(); year != "N/A" {
		return fmt.Sprintf("%s (%s)", t.Name, year)
	}
	return t.Name
}

// CatalogResult holds all four category listings. It is only ever built
// complete; a partial fetch never produces one.
type CatalogResult struct {
	Popular    []Title
	NowPlaying []Title
	Upcoming   []Title
	TopRated   []Title
}

// Section returns the titles for a category
func (r CatalogResult) Section(c Category) []Title {
	switch c {
	case CategoryPopular:
		return r.Popular
	case CategoryNowPlaying:
		return r.NowPlaying
	case CategoryUpcoming:
		return r.Upcoming
	case CategoryTopRated:
		return r.TopRated
	default:
		return nil
	}
}

// Len returns the total number of titles across sections
func (r CatalogResult) Len() int {
	return len(r.Popular) + len(r.NowPlaying) + len(r.Upcoming) + len(r.TopRated)
}
