package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/catalog-ingest-api/internal/models"
	"github.com/catalog-ingest-api/internal/repository"
	"github.com/rs/zerolog"
)

var (
	// ErrNotFound marks an operation against a missing catalog item
	ErrNotFound = errors.New("catalog item not found")
	// ErrUnknownCategory marks a lock request against a path with no node
	ErrUnknownCategory = errors.New("unknown category path")
)

// moderationService is the concrete implementation of ModerationService.
// Operator decisions flow through here; ingestion never does.
type moderationService struct {
	catalog  repository.CatalogRepository
	category repository.CategoryRepository
	log      zerolog.Logger
}

func newModerationService(catalog repository.CatalogRepository, category repository.CategoryRepository, log zerolog.Logger) *moderationService {
	return &moderationService{
		catalog:  catalog,
		category: category,
		log:      log.With().Str("service", "moderation").Logger(),
	}
}

// SetStatus applies a moderation decision. Idempotent: re-applying the
// current status succeeds without effect.
func (s *moderationService) SetStatus(ctx context.Context, id string, status models.Status) error {
	if !models.ValidStatuses[status] {
		return fmt.Errorf("invalid status %q", status)
	}

	found, err := s.catalog.SetStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}

	s.log.Info().Str("item_id", id).Str("status", string(status)).Msg("Status changed")
	return nil
}

// ApproveBulk approves many items at once and returns how many were found
func (s *moderationService) ApproveBulk(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	n, err := s.catalog.SetStatusBulk(ctx, ids, models.StatusApproved)
	if err != nil {
		return 0, err
	}

	s.log.Info().Int("requested", len(ids)).Int64("approved", n).Msg("Bulk approve")
	return n, nil
}

// Delete removes an item permanently
func (s *moderationService) Delete(ctx context.Context, id string) error {
	found, err := s.catalog.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}

	s.log.Info().Str("item_id", id).Msg("Item deleted")
	return nil
}

// LockCategory pins an item to an operator-chosen category so ingestion stops
// reassigning it. An empty path unlocks the item.
func (s *moderationService) LockCategory(ctx context.Context, id string, path []string) error {
	var categoryID *string
	if len(path) > 0 {
		var err error
		categoryID, err = s.category.IDByPath(ctx, path)
		if err != nil {
			return err
		}
		if categoryID == nil {
			return ErrUnknownCategory
		}
	}

	found, err := s.catalog.LockCategory(ctx, id, categoryID, path)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}

	s.log.Info().Str("item_id", id).Strs("path", path).Msg("Category locked")
	return nil
}
