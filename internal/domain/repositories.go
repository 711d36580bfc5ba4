package domain

import (
	"context"
)

// CatalogRepository provides read access to curated movie listings
type CatalogRepository interface {
	// GetCategory returns one page of titles for a category
	GetCategory(ctx context.Context, category Category, page int) ([]Title, error)
}
