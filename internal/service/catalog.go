package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/streamlist/internal/domain"
	"golang.org/x/sync/errgroup"
)

// catalogPage is the only page the catalog view shows
const catalogPage = 1

// CatalogService fetches the four curated categories as one unit and
// tracks the fetch belonging to the currently active view.
type CatalogService struct {
	repo       domain.CatalogRepository
	configured bool
	logger     *slog.Logger

	mu     sync.Mutex
	gen    uint64
	active bool
	cancel context.CancelFunc
}

// NewCatalogService creates a catalog service. configured=false means no API
// key exists; fetches then fail fast with domain.ErrMissingAPIKey.
func NewCatalogService(repo domain.CatalogRepository, configured bool, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		repo:       repo,
		configured: configured,
		logger:     logger,
	}
}

// FetchAll requests every category in parallel. The first failure cancels
// the others and is returned alone; no partial result is ever returned.
func (s *CatalogService) FetchAll(ctx context.Context) (domain.CatalogResult, error) {
	if !s.configured {
		return domain.CatalogResult{}, domain.ErrMissingAPIKey
	}

	start := time.Now()
	sections := make([][]domain.Title, len(domain.Categories))

	g, gctx := errgroup.WithContext(ctx)
	for i, category := range domain.Categories {
		g.Go(func() error {
			titles, err := s.repo.GetCategory(gctx, category, catalogPage)
			if err != nil {
				return fmt.Errorf("fetching %s: %w", category, err)
			}
			sections[i] = titles
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			s.logger.Debug("catalog fetch cancelled")
			return domain.CatalogResult{}, ctx.Err()
		}
		s.logger.Error("catalog fetch failed", "error", err)
		return domain.CatalogResult{}, err
	}

	result := domain.CatalogResult{
		Popular:    sections[0],
		NowPlaying: sections[1],
		Upcoming:   sections[2],
		TopRated:   sections[3],
	}
	s.logger.Info("catalog fetched", "titles", result.Len(), "elapsed", time.Since(start))
	return result, nil
}

// Start begins a new fetch generation for an activated view, cancelling any
// previous one. The returned context is cancelled by Cancel or the next Start.
func (s *CatalogService) Start(parent context.Context) (uint64, context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	s.gen++
	s.active = true
	s.cancel = cancel
	return s.gen, ctx
}

// Cancel stops the in-flight fetch for a deactivated view. Safe to call
// repeatedly or with nothing in flight.
func (s *CatalogService) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.active = false
}

// IsCurrent reports whether results from generation gen may still be applied
func (s *CatalogService) IsCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active && gen == s.gen
}
