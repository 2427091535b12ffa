package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"enrichprj/internal/model"
)

// RunRepository writes batch audit rows through a pgx pool.
type RunRepository struct {
	DB *pgxpool.Pool
}

func (r *RunRepository) Record(ctx context.Context, run model.IngestRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO ingest_runs
		(id, source, started_at, finished_at, total, created, updated, skipped, failed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, run.ID, run.Source, run.StartedAt.UTC(), run.FinishedAt.UTC(),
		run.Total, run.Created, run.Updated, run.Skipped, run.Failed)
	if err != nil {
		return persistErr("record ingest run", err)
	}
	return nil
}

// Recent returns the latest runs, newest first.
func (r *RunRepository) Recent(ctx context.Context, limit int) ([]model.IngestRun, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, source, started_at, finished_at, total, created, updated, skipped, failed
		FROM ingest_runs
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, persistErr("list ingest runs", err)
	}
	defer rows.Close()

	var runs []model.IngestRun
	for rows.Next() {
		var run model.IngestRun
		if err := rows.Scan(&run.ID, &run.Source, &run.StartedAt, &run.FinishedAt,
			&run.Total, &run.Created, &run.Updated, &run.Skipped, &run.Failed); err != nil {
			return nil, persistErr("scan ingest run", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
