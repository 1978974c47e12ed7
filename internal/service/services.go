package service

import (
	"context"

	"github.com/catalog-ingest-api/internal/categorize"
	"github.com/catalog-ingest-api/internal/config"
	"github.com/catalog-ingest-api/internal/feed"
	"github.com/catalog-ingest-api/internal/models"
	"github.com/catalog-ingest-api/internal/normalize"
	"github.com/catalog-ingest-api/internal/repository"
	"github.com/catalog-ingest-api/internal/resolve"
	"github.com/catalog-ingest-api/internal/scoring"
	"github.com/rs/zerolog"
)

// IngestService runs the feed-to-store pipeline
type IngestService interface {
	// Run executes one full pipeline cycle and returns its persisted record.
	// Returns ErrRunInProgress when a cycle is already executing.
	Run(ctx context.Context) (*models.IngestRun, error)
	Running() bool
	RecentRuns(ctx context.Context, limit int) ([]*models.IngestRun, error)
}

// EnrichService is the post-ingest enrichment stage
type EnrichService interface {
	Run(ctx context.Context) (int64, error)
}

// ModerationService applies operator decisions to catalog items
type ModerationService interface {
	SetStatus(ctx context.Context, id string, status models.Status) error
	ApproveBulk(ctx context.Context, ids []string) (int64, error)
	Delete(ctx context.Context, id string) error
	LockCategory(ctx context.Context, id string, path []string) error
}

// CatalogService is the public read surface
type CatalogService interface {
	List(ctx context.Context, filter models.CatalogFilter) ([]*models.CatalogItem, error)
	ListForAdmin(ctx context.Context, filter models.CatalogFilter) ([]*models.CatalogItem, error)
	Get(ctx context.Context, id string) (*models.CatalogItem, error)
	Click(ctx context.Context, id string) (string, error)
	Categories(ctx context.Context) ([]*models.CategoryNode, error)
}

// Services holds all service interfaces
type Services struct {
	Ingest     IngestService
	Enrich     EnrichService
	Moderation ModerationService
	Catalog    CatalogService
}

// NewServices creates all services. A missing feed URL leaves the ingest
// service without a source; runs are then recorded as skipped instead of
// failing the process.
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	var source feed.Source
	if cfg.Feed.URL != "" {
		client := feed.NewClient(cfg.Feed.RequestTimeout)
		source = feed.NewCSVSource(client, cfg.Feed.URL)
	}

	aliases := resolve.DefaultAliases()
	if cfg.Feed.AliasFile != "" {
		loaded, err := resolve.LoadAliases(cfg.Feed.AliasFile)
		if err != nil {
			log.Warn().Err(err).Str("file", cfg.Feed.AliasFile).
				Msg("Alias file unreadable, using defaults")
		} else {
			aliases = loaded
		}
	}

	rules := categorize.DefaultRules()
	if cfg.Feed.RulesFile != "" {
		loaded, err := categorize.LoadRules(cfg.Feed.RulesFile)
		if err != nil {
			log.Warn().Err(err).Str("file", cfg.Feed.RulesFile).
				Msg("Rules file unreadable, using defaults")
		} else {
			rules = loaded
		}
	}

	ingest := newIngestService(
		repos,
		source,
		resolve.New(aliases),
		normalize.New(cfg.Feed.DefaultCurrency, cfg.Feed.AffirmativeTokens),
		categorize.New(rules),
		scoring.NewStandardPolicy(),
		cfg.Feed.MaxRows,
		log,
	)

	return &Services{
		Ingest:     ingest,
		Enrich:     newEnrichService(repos.Catalog, log),
		Moderation: newModerationService(repos.Catalog, repos.Category, log),
		Catalog:    newCatalogService(repos, log),
	}
}
