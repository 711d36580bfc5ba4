package tmdb

import (
	"strings"

	"github.com/mmcdole/streamlist/internal/domain"
)

// MapMovies converts a listing page to domain titles, preserving order
func MapMovies(movies []Movie) []domain.Title {
	titles := make([]domain.Title, 0, len(movies))
	for _, m := range movies {
		titles = append(titles, MapMovie(m))
	}
	return titles
}

// MapMovie converts a single TMDB movie to a domain title
func MapMovie(m Movie) domain.Title {
	t := domain.Title{
		ID:          m.ID,
		Name:        strings.TrimSpace(m.Title),
		ReleaseDate: strings.TrimSpace(m.ReleaseDate),
		Rating:      m.VoteAverage,
	}
	if m.PosterPath != nil {
		t.PosterPath = *m.PosterPath
	}
	return t
}
