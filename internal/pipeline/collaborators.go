package pipeline

import (
	"context"

	"enrichprj/internal/logger"
	"enrichprj/internal/model"
)

// ImageUploader copies a product image to blob storage and returns the
// reference to store as PrimaryImageRef.
type ImageUploader interface {
	Upload(ctx context.Context, productID, imageURL string) (string, error)
}

// NopUploader keeps the marketplace URL as the image reference.
type NopUploader struct{}

func (NopUploader) Upload(_ context.Context, _ string, imageURL string) (string, error) {
	return imageURL, nil
}

// RunRecorder persists the summary of one batch.
type RunRecorder interface {
	Record(ctx context.Context, run model.IngestRun) error
}

// LogRecorder is used when no run table is available.
type LogRecorder struct {
	Log *logger.Logger
}

func (r LogRecorder) Record(_ context.Context, run model.IngestRun) error {
	logger.OrNop(r.Log).Info("ingest run finished",
		"run_id", run.ID,
		"source", run.Source,
		"total", run.Total,
		"created", run.Created,
		"updated", run.Updated,
		"skipped", run.Skipped,
		"failed", run.Failed,
		"duration", run.FinishedAt.Sub(run.StartedAt).String(),
	)
	return nil
}
