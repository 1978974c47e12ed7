package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/catalog-ingest-api/internal/database"
	"github.com/catalog-ingest-api/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// categoryRepo is the concrete implementation of CategoryRepository
type categoryRepo struct {
	db *database.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *database.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

// IDByPath resolves a materialized slug path to a category ID. An unknown or
// inactive path yields a nil ID, not an error.
func (r *categoryRepo) IDByPath(ctx context.Context, path []string) (*string, error) {
	if len(path) == 0 {
		return nil, nil
	}

	var id string
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM categories WHERE path = $1 AND is_active = TRUE`,
		pq.Array(path)).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// List returns the full tree, parents before children
func (r *categoryRepo) List(ctx context.Context) ([]*models.CategoryNode, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, slug, parent_id, path, level, sort_order, is_active,
		       created_at, updated_at
		FROM categories
		ORDER BY level, sort_order, slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []*models.CategoryNode
	for rows.Next() {
		var node models.CategoryNode
		var parentID sql.NullString
		err := rows.Scan(
			&node.ID, &node.Name, &node.Slug, &parentID,
			pq.Array(&node.Path), &node.Level, &node.SortOrder,
			&node.IsActive, &node.CreatedAt, &node.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if parentID.Valid {
			node.ParentID = &parentID.String
		}
		nodes = append(nodes, &node)
	}
	return nodes, rows.Err()
}

// Upsert inserts or refreshes a node keyed by its path. Used by the startup
// seeder; the node's ID is filled in when the row already exists.
func (r *categoryRepo) Upsert(ctx context.Context, node *models.CategoryNode) error {
	if node.ID == "" {
		node.ID = uuid.New().String()
	}

	return r.db.QueryRowContext(ctx, `
		INSERT INTO categories (id, name, slug, parent_id, path, level,
		                        sort_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (path) DO UPDATE SET
			name       = EXCLUDED.name,
			sort_order = EXCLUDED.sort_order,
			is_active  = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
		RETURNING id`,
		node.ID, node.Name, node.Slug, node.ParentID, pq.Array(node.Path),
		node.Level, node.SortOrder, node.IsActive, time.Now(),
	).Scan(&node.ID)
}

// Count returns the number of category nodes
func (r *categoryRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count)
	return count, err
}
