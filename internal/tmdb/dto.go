package tmdb

// ListResponse is the envelope for /movie/{category} listings
type ListResponse struct {
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages,omitempty"`
	TotalResults int     `json:"total_results,omitempty"`
	Results      []Movie `json:"results"`
}

// Movie represents a movie record in a listing
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  *string `json:"poster_path,omitempty"`  // null when TMDB has no poster
	ReleaseDate string  `json:"release_date,omitempty"` // "" for unannounced titles
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview,omitempty"`
}

// ErrorResponse is TMDB's error body
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}
