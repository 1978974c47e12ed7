package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/catalog-ingest-api/internal/categorize"
	"github.com/catalog-ingest-api/internal/feed"
	"github.com/catalog-ingest-api/internal/models"
	"github.com/catalog-ingest-api/internal/normalize"
	"github.com/catalog-ingest-api/internal/repository"
	"github.com/catalog-ingest-api/internal/resolve"
	"github.com/catalog-ingest-api/internal/scoring"
	"github.com/catalog-ingest-api/internal/tabular"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrRunInProgress is returned when a pipeline cycle is already executing.
// Overlapping triggers are dropped, not queued.
var ErrRunInProgress = errors.New("ingest: run already in progress")

// ingestService is the concrete implementation of IngestService
type ingestService struct {
	repos       *repository.Repositories
	source      feed.Source
	resolver    *resolve.Resolver
	normalizer  *normalize.Normalizer
	categorizer *categorize.Categorizer
	policy      scoring.Policy
	maxRows     int
	log         zerolog.Logger

	mu      sync.Mutex
	running bool
}

func newIngestService(
	repos *repository.Repositories,
	source feed.Source,
	resolver *resolve.Resolver,
	normalizer *normalize.Normalizer,
	categorizer *categorize.Categorizer,
	policy scoring.Policy,
	maxRows int,
	log zerolog.Logger,
) *ingestService {
	return &ingestService{
		repos:       repos,
		source:      source,
		resolver:    resolver,
		normalizer:  normalizer,
		categorizer: categorizer,
		policy:      policy,
		maxRows:     maxRows,
		log:         log.With().Str("service", "ingest").Logger(),
	}
}

// Running reports whether a cycle is currently executing
func (s *ingestService) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Run executes one pipeline cycle: fetch, parse, per-row resolve, normalize,
// categorize, score, upsert. Row failures are counted and skipped; only a
// fetch or parse failure fails the whole run. Every cycle leaves a persisted
// run record regardless of outcome.
func (s *ingestService) Run(ctx context.Context) (*models.IngestRun, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrRunInProgress
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	start := time.Now()
	run := &models.IngestRun{
		Status:    models.RunStatusCompleted,
		StartedAt: start,
	}

	if s.source == nil {
		run.Status = models.RunStatusSkipped
		run.Error = "no feed url configured"
		s.log.Warn().Msg("No feed URL configured, skipping cycle")
		s.persist(ctx, run, start)
		return run, nil
	}

	if err := s.repos.Run.Create(ctx, run); err != nil {
		return nil, err
	}

	s.log.Info().Msg("Ingestion cycle started")

	table, err := s.source.FetchTable(ctx)
	if err != nil {
		run.Status = models.RunStatusFailed
		run.Error = err.Error()
		s.log.Error().Err(err).Msg("Feed fetch failed")
		s.finish(ctx, run, start)
		return run, err
	}

	rows := table.Rows
	run.Summary.Fetched = len(rows)
	if s.maxRows > 0 && len(rows) > s.maxRows {
		rows = rows[:s.maxRows]
	}
	run.Summary.Parsed = len(rows)

	for _, row := range rows {
		s.processRow(ctx, table.Header, row, &run.Summary)
	}

	s.finish(ctx, run, start)

	s.log.Info().
		Int("fetched", run.Summary.Fetched).
		Int("parsed", run.Summary.Parsed).
		Int("upserted", run.Summary.Upserted).
		Int("updated", run.Summary.Updated).
		Int("skipped", run.Summary.Skipped).
		Int("errors", run.Summary.Errors).
		Int64("duration_ms", run.Summary.DurationMs).
		Msg("Ingestion cycle completed")

	return run, nil
}

// processRow pushes a single raw row through the per-row stages, updating the
// cycle counters in place.
func (s *ingestService) processRow(ctx context.Context, header []string, row tabular.Row, sum *models.RunSummary) {
	fields := s.resolver.Resolve(header, row)

	rec, err := s.normalizer.Normalize(fields)
	if err != nil {
		sum.Skipped++
		s.log.Debug().Err(err).Msg("Row skipped")
		return
	}

	match := s.categorizer.Categorize(categorize.Input{
		Title:        rec.Title,
		CategoryText: rec.CategoryText,
		Description:  rec.Description,
		Brand:        rec.Brand,
	})

	var categoryID *string
	if len(match.Path) > 0 {
		categoryID, err = s.repos.Category.IDByPath(ctx, match.Path)
		if err != nil {
			sum.Errors++
			s.log.Warn().Err(err).Str("source_url", rec.SourceURL).
				Msg("Category lookup failed")
			return
		}
	}

	score, profitScore := s.policy.Score(rec, match.Path)

	item := &models.CatalogItem{
		SourceURL:      rec.SourceURL,
		Title:          rec.Title,
		Description:    rec.Description,
		LegacyCategory: match.Legacy,
		CategoryID:     categoryID,
		CategoryPath:   match.Path,
		Source:         rec.Advertiser,
		Brand:          rec.Brand,
		ProductCode:    rec.ProductCode,
		AffiliateURL:   rec.AffiliateURL,
		ImageURL:       rec.ImageURL,
		Price:          decimal.NullDecimal{Decimal: rec.Price, Valid: true},
		SalePrice:      rec.SalePrice,
		Currency:       rec.Currency,
		FreeShipping:   rec.FreeShipping,
		HasGift:        rec.HasGift,
		Score:          score,
		ProfitScore:    profitScore,
	}

	created, err := s.repos.Catalog.Upsert(ctx, item)
	if err != nil {
		sum.Errors++
		s.log.Warn().Err(err).Str("source_url", rec.SourceURL).Msg("Upsert failed")
		return
	}
	if created {
		sum.Upserted++
	} else {
		sum.Updated++
	}
}

// persist records a run that never got past its preconditions
func (s *ingestService) persist(ctx context.Context, run *models.IngestRun, start time.Time) {
	if err := s.repos.Run.Create(ctx, run); err != nil {
		s.log.Error().Err(err).Msg("Run record create failed")
		return
	}
	s.finish(ctx, run, start)
}

func (s *ingestService) finish(ctx context.Context, run *models.IngestRun, start time.Time) {
	run.Summary.DurationMs = time.Since(start).Milliseconds()
	now := time.Now()
	run.CompletedAt = &now
	if err := s.repos.Run.Finish(ctx, run); err != nil {
		s.log.Error().Err(err).Str("run_id", run.ID).Msg("Run record update failed")
	}
}

// RecentRuns returns the latest cycle records, newest first
func (s *ingestService) RecentRuns(ctx context.Context, limit int) ([]*models.IngestRun, error) {
	return s.repos.Run.ListRecent(ctx, limit)
}
