// Package pipeline drives source records through ingestion, extraction and
// enrichment, one record at a time.
package pipeline

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"enrichprj/internal/compose"
	"enrichprj/internal/extractor"
	"enrichprj/internal/features"
	"enrichprj/internal/ingest"
	"enrichprj/internal/logger"
	"enrichprj/internal/model"
	"enrichprj/internal/observability"
	"enrichprj/internal/scoring"
)

type ProductStore interface {
	ingest.ProductStore
	Update(ctx context.Context, p *model.Product) error
}

type FeatureStore interface {
	Replace(ctx context.Context, productID string, features []model.Feature) error
}

type ScoreStore interface {
	Save(ctx context.Context, s model.ScoreSet) error
}

type Pipeline struct {
	Ingest    *ingest.Manager
	Extractor *extractor.Extractor
	Features  *features.Generator
	Scoring   *scoring.Engine

	Products     ProductStore
	FeatureStore FeatureStore
	Scores       ScoreStore
	Images       ImageUploader
	Runs         RunRecorder

	// ProductURL turns a marketplace id into the page to fetch.
	ProductURL func(id string) string

	Log *logger.Logger
	Now func() time.Time
}

// CanonicalProductURL is the default ProductURL.
func CanonicalProductURL(id string) string {
	return "https://www.amazon.com/dp/" + id
}

// Run processes recs sequentially. No per-record error stops the batch.
func (p *Pipeline) Run(ctx context.Context, source string, recs []model.SourceRecord) Stats {
	log := logger.OrNop(p.Log)
	started := p.now()
	var stats Stats

	for _, rec := range recs {
		if ctx.Err() != nil {
			log.Warn("batch cancelled", "processed", stats.Total, "remaining", len(recs)-stats.Total)
			break
		}
		outcome, err := p.Process(ctx, rec)
		if err != nil {
			log.Warn("record failed", "line", rec.Line, "url", rec.URL, "outcome", outcome, "error", err)
		}
		stats.add(outcome)
		observability.RecordsTotal.WithLabelValues(outcome).Inc()
	}

	if p.Runs != nil {
		run := model.IngestRun{
			ID:         uuid.NewString(),
			Source:     source,
			StartedAt:  started,
			FinishedAt: p.now(),
			Total:      stats.Total,
			Created:    stats.Outcomes[OutcomeCreated],
			Updated:    stats.Outcomes[OutcomeUpdated],
			Skipped:    stats.Outcomes[OutcomeSkipped],
			Failed:     stats.Failed(),
		}
		if err := p.Runs.Record(context.WithoutCancel(ctx), run); err != nil {
			log.Error("could not record ingest run", "error", err)
		}
	}
	return stats
}

// Process handles one record and returns its outcome.
func (p *Pipeline) Process(ctx context.Context, rec model.SourceRecord) (string, error) {
	decision, product, err := p.Ingest.Ingest(ctx, rec)
	if err != nil {
		return Classify(err), err
	}
	log := logger.OrNop(p.Log).With("marketplace_id", product.MarketplaceID)

	switch decision {
	case ingest.DecisionSkip:
		return OutcomeSkipped, nil
	case ingest.DecisionLightUpdate:
		if err := p.score(ctx, product); err != nil {
			return Classify(err), err
		}
		return OutcomeUpdated, nil
	}

	res, err := p.Extractor.Run(ctx, p.productURL(product.MarketplaceID))
	if err != nil {
		return Classify(err), err
	}
	observability.ExtractionQuality.Observe(res.Quality())
	log.Debug("extracted", "state", res.State.String(), "quality_score", res.Quality(), "passes", len(res.Attempts))

	extractor.Apply(product, res.Record)
	if err := p.Enrich(ctx, product); err != nil {
		return Classify(err), err
	}
	return OutcomeCreated, nil
}

// Enrich uploads the primary image, composes the title and summary, then
// persists the product, its features and its scores.
func (p *Pipeline) Enrich(ctx context.Context, product *model.Product) error {
	if product.PrimaryImageRef != "" && p.Images != nil {
		ref, err := p.Images.Upload(ctx, product.MarketplaceID, product.PrimaryImageRef)
		if err != nil {
			logger.OrNop(p.Log).Warn("image upload failed, keeping source url",
				"marketplace_id", product.MarketplaceID, "error", err)
		} else {
			product.PrimaryImageRef = ref
		}
	}

	product.PrettyTitle = compose.Title(product)
	product.SummaryText = compose.Summary(product)
	product.LastUpdated = p.now()
	if err := p.Products.Update(ctx, product); err != nil {
		return err
	}
	if err := p.regenerateFeatures(ctx, product); err != nil {
		return err
	}
	return p.score(ctx, product)
}

// Refresh recomputes scores for a stored product. With full set, features
// and the composed title/summary are regenerated too.
func (p *Pipeline) Refresh(ctx context.Context, id string, full bool) (model.ScoreSet, error) {
	product, err := p.Products.Get(ctx, id)
	if err != nil {
		return model.ScoreSet{}, err
	}
	if full {
		product.PrettyTitle = compose.Title(product)
		product.SummaryText = compose.Summary(product)
		if err := p.Products.Update(ctx, product); err != nil {
			return model.ScoreSet{}, err
		}
		if err := p.regenerateFeatures(ctx, product); err != nil {
			return model.ScoreSet{}, err
		}
	}
	set := p.Scoring.Compute(product)
	return set, p.Scores.Save(ctx, set)
}

func (p *Pipeline) regenerateFeatures(ctx context.Context, product *model.Product) error {
	fs := p.Features.Generate(product)
	if err := p.FeatureStore.Replace(ctx, product.MarketplaceID, fs); err != nil {
		return err
	}
	observability.FeaturesGenerated.Add(float64(len(fs)))
	return nil
}

func (p *Pipeline) score(ctx context.Context, product *model.Product) error {
	return p.Scores.Save(ctx, p.Scoring.Compute(product))
}

func (p *Pipeline) productURL(id string) string {
	if p.ProductURL != nil {
		return p.ProductURL(id)
	}
	return CanonicalProductURL(id)
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now().UTC()
	}
	return time.Now().UTC()
}

// CountPasses is an extractor.OnAttempt hook feeding the pass counter.
func CountPasses(a model.ExtractionAttempt) {
	observability.ExtractionPassesTotal.WithLabelValues(strconv.Itoa(a.Pass)).Inc()
}
