package service

import (
	"context"

	"github.com/catalog-ingest-api/internal/models"
	"github.com/catalog-ingest-api/internal/repository"
	"github.com/rs/zerolog"
)

// catalogService is the read surface over the catalog store
type catalogService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newCatalogService(repos *repository.Repositories, log zerolog.Logger) *catalogService {
	return &catalogService{
		repos: repos,
		log:   log.With().Str("service", "catalog").Logger(),
	}
}

// List returns approved items only. The public surface never shows
// unmoderated inventory regardless of the filter.
func (s *catalogService) List(ctx context.Context, filter models.CatalogFilter) ([]*models.CatalogItem, error) {
	filter.Status = models.StatusApproved
	return s.repos.Catalog.List(ctx, filter)
}

// ListForAdmin returns items in any status for the moderation screen
func (s *catalogService) ListForAdmin(ctx context.Context, filter models.CatalogFilter) ([]*models.CatalogItem, error) {
	return s.repos.Catalog.List(ctx, filter)
}

// Get returns one item and counts the view
func (s *catalogService) Get(ctx context.Context, id string) (*models.CatalogItem, error) {
	item, err := s.repos.Catalog.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}

	if err := s.repos.Catalog.IncrementViews(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("item_id", id).Msg("View count failed")
	}
	return item, nil
}

// Click counts an outbound click and returns the affiliate URL to redirect to
func (s *catalogService) Click(ctx context.Context, id string) (string, error) {
	url, err := s.repos.Catalog.IncrementClicks(ctx, id)
	if err != nil {
		return "", err
	}
	if url == "" {
		return "", ErrNotFound
	}
	return url, nil
}

// Categories returns the active category tree, parents first
func (s *catalogService) Categories(ctx context.Context) ([]*models.CategoryNode, error) {
	return s.repos.Category.List(ctx)
}
