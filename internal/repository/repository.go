package repository

import (
	"context"

	"github.com/catalog-ingest-api/internal/database"
	"github.com/catalog-ingest-api/internal/models"
)

// CatalogRepository defines the store operations for catalog items
type CatalogRepository interface {
	// Upsert merges a computed item by source URL in a single atomic
	// statement and reports whether the row was created.
	Upsert(ctx context.Context, item *models.CatalogItem) (created bool, err error)
	GetByID(ctx context.Context, id string) (*models.CatalogItem, error)
	GetBySourceURL(ctx context.Context, sourceURL string) (*models.CatalogItem, error)
	List(ctx context.Context, filter models.CatalogFilter) ([]*models.CatalogItem, error)
	Count(ctx context.Context, status models.Status) (int, error)
	SetStatus(ctx context.Context, id string, status models.Status) (bool, error)
	SetStatusBulk(ctx context.Context, ids []string, status models.Status) (int64, error)
	LockCategory(ctx context.Context, id string, categoryID *string, path []string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	IncrementViews(ctx context.Context, id string) error
	IncrementClicks(ctx context.Context, id string) (string, error)
	BulkSetLocalCheck(ctx context.Context, from, to models.LocalCheck) (int64, error)
}

// CategoryRepository defines the store operations for the category tree
type CategoryRepository interface {
	IDByPath(ctx context.Context, path []string) (*string, error)
	List(ctx context.Context) ([]*models.CategoryNode, error)
	Upsert(ctx context.Context, node *models.CategoryNode) error
	Count(ctx context.Context) (int, error)
}

// RunRepository persists per-cycle ingestion summaries
type RunRepository interface {
	Create(ctx context.Context, run *models.IngestRun) error
	Finish(ctx context.Context, run *models.IngestRun) error
	ListRecent(ctx context.Context, limit int) ([]*models.IngestRun, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Catalog  CatalogRepository
	Category CategoryRepository
	Run      RunRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Catalog:  NewCatalogRepo(db),
		Category: NewCategoryRepo(db),
		Run:      NewRunRepo(db),
	}
}
