package service

import (
	"context"

	"github.com/catalog-ingest-api/internal/models"
	"github.com/catalog-ingest-api/internal/repository"
	"github.com/rs/zerolog"
)

// enrichService is the post-ingest enrichment stage. The current local-market
// check is a placeholder: every unchecked item is marked as not found locally.
// TODO: replace with a real availability lookup against local retailers.
type enrichService struct {
	catalog repository.CatalogRepository
	log     zerolog.Logger
}

func newEnrichService(catalog repository.CatalogRepository, log zerolog.Logger) *enrichService {
	return &enrichService{
		catalog: catalog,
		log:     log.With().Str("service", "enrich").Logger(),
	}
}

// Run flips every unchecked item to "no" and returns how many changed.
// Failure here never affects the ingestion that preceded it.
func (s *enrichService) Run(ctx context.Context) (int64, error) {
	n, err := s.catalog.BulkSetLocalCheck(ctx, models.LocalCheckUnknown, models.LocalCheckNo)
	if err != nil {
		s.log.Error().Err(err).Msg("Local check update failed")
		return 0, err
	}

	s.log.Info().Int64("modified", n).Msg("Local check completed")
	return n, nil
}
