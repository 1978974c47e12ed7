package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/catalog-ingest-api/internal/database"
	"github.com/catalog-ingest-api/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// StickyStatuses lists the moderation states ingestion must never overwrite.
// Re-ingestion resets every other state back to "new" (re-review on feed
// update); widening the sticky set to preserve rejected/blacklisted items
// means editing this list only.
var StickyStatuses = pq.StringArray{string(models.StatusApproved)}

// catalogRepo is the concrete implementation of CatalogRepository
type catalogRepo struct {
	db  *database.DB
	sql sq.StatementBuilderType
}

// NewCatalogRepo creates a new catalog repository
func NewCatalogRepo(db *database.DB) CatalogRepository {
	return &catalogRepo{
		db:  db,
		sql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const catalogColumns = `
	id, source_url, title, description, legacy_category, category_id,
	category_path, category_locked, source, brand, product_code,
	affiliate_url, image_url, price, sale_price, currency, free_shipping,
	has_gift, score, profit_score, status, local_check, views, clicks,
	created_at, updated_at`

// Upsert merges the computed item keyed by source_url as one conditional
// atomic statement. Read-then-write is deliberately avoided: the status
// branch lives inside the statement so two racing runs cannot lose an
// operator's approval. Counters, product_code and created_at are only ever
// written on insert; a locked category survives updates.
func (r *catalogRepo) Upsert(ctx context.Context, item *models.CatalogItem) (bool, error) {
	query := `
		INSERT INTO catalog_items (
			id, source_url, title, description, legacy_category, category_id,
			category_path, source, brand, product_code, affiliate_url,
			image_url, price, sale_price, currency, free_shipping, has_gift,
			score, profit_score, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, 'new', $20, $20)
		ON CONFLICT (source_url) DO UPDATE SET
			title           = EXCLUDED.title,
			description     = EXCLUDED.description,
			legacy_category = CASE WHEN catalog_items.category_locked
			                       THEN catalog_items.legacy_category
			                       ELSE EXCLUDED.legacy_category END,
			category_id     = CASE WHEN catalog_items.category_locked
			                       THEN catalog_items.category_id
			                       ELSE EXCLUDED.category_id END,
			category_path   = CASE WHEN catalog_items.category_locked
			                       THEN catalog_items.category_path
			                       ELSE EXCLUDED.category_path END,
			source          = EXCLUDED.source,
			brand           = EXCLUDED.brand,
			affiliate_url   = EXCLUDED.affiliate_url,
			image_url       = EXCLUDED.image_url,
			price           = EXCLUDED.price,
			sale_price      = EXCLUDED.sale_price,
			currency        = EXCLUDED.currency,
			free_shipping   = EXCLUDED.free_shipping,
			has_gift        = EXCLUDED.has_gift,
			score           = EXCLUDED.score,
			profit_score    = EXCLUDED.profit_score,
			status          = CASE WHEN catalog_items.status = ANY($21)
			                       THEN catalog_items.status
			                       ELSE 'new' END,
			updated_at      = EXCLUDED.updated_at
		RETURNING (xmax = 0)
	`

	id := item.ID
	if id == "" {
		id = uuid.New().String()
	}

	var created bool
	err := r.db.QueryRowContext(ctx, query,
		id, item.SourceURL, item.Title, item.Description, item.LegacyCategory,
		item.CategoryID, pq.Array(item.CategoryPath), item.Source, item.Brand,
		item.ProductCode, item.AffiliateURL, item.ImageURL, item.Price,
		item.SalePrice, item.Currency, item.FreeShipping, item.HasGift,
		item.Score, item.ProfitScore, time.Now(), StickyStatuses,
	).Scan(&created)
	if err != nil {
		return false, err
	}
	return created, nil
}

// GetByID retrieves an item by ID
func (r *catalogRepo) GetByID(ctx context.Context, id string) (*models.CatalogItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+catalogColumns+` FROM catalog_items WHERE id = $1`, id)
	return scanItem(row)
}

// GetBySourceURL retrieves an item by its identity key
func (r *catalogRepo) GetBySourceURL(ctx context.Context, sourceURL string) (*models.CatalogItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+catalogColumns+` FROM catalog_items WHERE source_url = $1`, sourceURL)
	return scanItem(row)
}

// List returns items matching the filter, best score first
func (r *catalogRepo) List(ctx context.Context, filter models.CatalogFilter) ([]*models.CatalogItem, error) {
	builder := r.sql.Select(
		"id", "source_url", "title", "description", "legacy_category",
		"category_id", "category_path", "category_locked", "source", "brand",
		"product_code", "affiliate_url", "image_url", "price", "sale_price",
		"currency", "free_shipping", "has_gift", "score", "profit_score",
		"status", "local_check", "views", "clicks", "created_at", "updated_at",
	).From("catalog_items").OrderBy("score DESC, created_at DESC")

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": string(filter.Status)})
	}
	if n := len(filter.PathPrefix); n > 0 {
		// prefix match against the materialized path
		builder = builder.Where(sq.Expr(
			fmt.Sprintf("category_path[1:%d] = ?", n), pq.Array(filter.PathPrefix)))
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.CatalogItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Count returns the number of items with the given status ("" counts all)
func (r *catalogRepo) Count(ctx context.Context, status models.Status) (int, error) {
	builder := r.sql.Select("COUNT(*)").From("catalog_items")
	if status != "" {
		builder = builder.Where(sq.Eq{"status": string(status)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// SetStatus applies a moderation decision. Re-applying the same status is a
// no-op at the data level but still reports the row as found.
func (r *catalogRepo) SetStatus(ctx context.Context, id string, status models.Status) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE catalog_items SET status = $1, updated_at = now() WHERE id = $2`,
		string(status), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// SetStatusBulk applies a moderation decision to many items at once
func (r *catalogRepo) SetStatusBulk(ctx context.Context, ids []string, status models.Status) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE catalog_items SET status = $1, updated_at = now() WHERE id = ANY($2)`,
		string(status), pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// LockCategory pins an operator-chosen category so ingestion stops
// reassigning it. A nil categoryID with an empty path unlocks.
func (r *catalogRepo) LockCategory(ctx context.Context, id string, categoryID *string, path []string) (bool, error) {
	locked := categoryID != nil || len(path) > 0
	res, err := r.db.ExecContext(ctx, `
		UPDATE catalog_items
		SET category_id = $1, category_path = $2, category_locked = $3, updated_at = now()
		WHERE id = $4`,
		categoryID, pq.Array(path), locked, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Delete removes an item permanently (operator action only)
func (r *catalogRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM catalog_items WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// IncrementViews bumps the view counter
func (r *catalogRepo) IncrementViews(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE catalog_items SET views = views + 1 WHERE id = $1`, id)
	return err
}

// IncrementClicks bumps the click counter and returns the affiliate URL
func (r *catalogRepo) IncrementClicks(ctx context.Context, id string) (string, error) {
	var affiliateURL string
	err := r.db.QueryRowContext(ctx, `
		UPDATE catalog_items SET clicks = clicks + 1
		WHERE id = $1
		RETURNING affiliate_url`, id).Scan(&affiliateURL)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return affiliateURL, err
}

// BulkSetLocalCheck flips the local-market flag for every item currently in
// the "from" state. Used by the enrichment stage.
func (r *catalogRepo) BulkSetLocalCheck(ctx context.Context, from, to models.LocalCheck) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE catalog_items SET local_check = $1, updated_at = now() WHERE local_check = $2`,
		string(to), string(from))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// scanner abstracts sql.Row / sql.Rows for scanItem
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(s scanner) (*models.CatalogItem, error) {
	var item models.CatalogItem
	var categoryID sql.NullString

	err := s.Scan(
		&item.ID, &item.SourceURL, &item.Title, &item.Description,
		&item.LegacyCategory, &categoryID, pq.Array(&item.CategoryPath),
		&item.CategoryLocked, &item.Source, &item.Brand, &item.ProductCode,
		&item.AffiliateURL, &item.ImageURL, &item.Price, &item.SalePrice,
		&item.Currency, &item.FreeShipping, &item.HasGift, &item.Score,
		&item.ProfitScore, &item.Status, &item.LocalCheck, &item.Views,
		&item.Clicks, &item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		item.CategoryID = &categoryID.String
	}
	return &item, nil
}
