package repository

import (
	"context"

	"github.com/catalog-ingest-api/internal/database"
	"github.com/catalog-ingest-api/internal/models"
	"github.com/google/uuid"
)

// runRepo is the concrete implementation of RunRepository
type runRepo struct {
	db *database.DB
}

// NewRunRepo creates a new run repository
func NewRunRepo(db *database.DB) RunRepository {
	return &runRepo{db: db}
}

// Create records the start of a pipeline cycle
func (r *runRepo) Create(ctx context.Context, run *models.IngestRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ingest_runs (id, status, started_at)
		VALUES ($1, $2, $3)`,
		run.ID, string(run.Status), run.StartedAt)
	return err
}

// Finish writes the final counters and outcome for a cycle
func (r *runRepo) Finish(ctx context.Context, run *models.IngestRun) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE ingest_runs SET
			status = $1, fetched = $2, parsed = $3, upserted = $4,
			updated = $5, skipped = $6, errors = $7, duration_ms = $8,
			error = $9, completed_at = $10
		WHERE id = $11`,
		string(run.Status), run.Summary.Fetched, run.Summary.Parsed,
		run.Summary.Upserted, run.Summary.Updated, run.Summary.Skipped,
		run.Summary.Errors, run.Summary.DurationMs, run.Error,
		run.CompletedAt, run.ID)
	return err
}

// ListRecent returns the latest cycle summaries, newest first
func (r *runRepo) ListRecent(ctx context.Context, limit int) ([]*models.IngestRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, status, fetched, parsed, upserted, updated, skipped,
		       errors, duration_ms, error, started_at, completed_at
		FROM ingest_runs
		ORDER BY started_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.IngestRun
	for rows.Next() {
		var run models.IngestRun
		err := rows.Scan(
			&run.ID, &run.Status, &run.Summary.Fetched, &run.Summary.Parsed,
			&run.Summary.Upserted, &run.Summary.Updated, &run.Summary.Skipped,
			&run.Summary.Errors, &run.Summary.DurationMs, &run.Error,
			&run.StartedAt, &run.CompletedAt,
		)
		if err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}
