package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"enrichprj/internal/attributes"
	"enrichprj/internal/logger"
	"enrichprj/internal/model"
)

// DefaultFreshness is the window inside which a known product is skipped.
const DefaultFreshness = 48 * time.Hour

type Decision int

const (
	DecisionSkip Decision = iota
	DecisionLightUpdate
	DecisionCreate
)

func (d Decision) String() string {
	switch d {
	case DecisionCreate:
		return "create"
	case DecisionLightUpdate:
		return "light_update"
	}
	return "skip"
}

// ProductStore is the subset of the product repository ingestion needs.
type ProductStore interface {
	Get(ctx context.Context, marketplaceID string) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	LightUpdate(ctx context.Context, marketplaceID string, price, discount *float64, at time.Time) error
}

type LinkStore interface {
	Upsert(ctx context.Context, l *model.AffiliateLink) error
}

type Manager struct {
	Products     ProductStore
	Links        LinkStore
	Freshness    time.Duration
	AffiliateTag string
	Log          *logger.Logger

	// Now is overridable in tests.
	Now func() time.Time
}

func NewManager(products ProductStore, links LinkStore, log *logger.Logger) *Manager {
	return &Manager{
		Products:  products,
		Links:     links,
		Freshness: DefaultFreshness,
		Log:       logger.OrNop(log),
		Now:       time.Now,
	}
}

// Ingest decides what happens to rec. The returned product is the stored
// row for Skip and LightUpdate, or the freshly created shell for Create.
// The affiliate link for rec.URL is upserted in every case.
func (m *Manager) Ingest(ctx context.Context, rec model.SourceRecord) (Decision, *model.Product, error) {
	id, err := ExtractMarketplaceID(rec.URL)
	if err != nil {
		return DecisionSkip, nil, fmt.Errorf("line %d: %w", rec.Line, err)
	}
	log := logger.OrNop(m.Log).With("marketplace_id", id, "line", rec.Line)
	now := m.now()

	existing, err := m.Products.Get(ctx, id)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return DecisionSkip, nil, err
	}

	var (
		decision Decision
		product  *model.Product
	)
	switch {
	case existing == nil:
		product = m.shell(id, rec, now)
		if err := m.Products.Create(ctx, product); err != nil {
			return DecisionSkip, nil, err
		}
		decision = DecisionCreate

	case existing.IsFresh(now, m.freshness()):
		log.Debug("recently updated, skipping", "last_updated", existing.LastUpdated)
		product = existing
		decision = DecisionSkip

	default:
		price, discount := ParseAmount(rec.PriceRaw), ParseAmount(rec.DiscountRaw)
		if err := m.Products.LightUpdate(ctx, id, price, discount, now); err != nil {
			return DecisionSkip, nil, err
		}
		if price != nil {
			existing.Price = price
		}
		if discount != nil {
			existing.Discount = discount
		}
		existing.LastUpdated = now
		product = existing
		decision = DecisionLightUpdate
	}

	if err := m.Links.Upsert(ctx, m.link(id, rec, now, log)); err != nil {
		return decision, product, err
	}
	return decision, product, nil
}

func (m *Manager) shell(id string, rec model.SourceRecord, now time.Time) *model.Product {
	p := &model.Product{
		MarketplaceID: id,
		Brand:         attributes.CleanBrand(rec.Brand),
		Price:         ParseAmount(rec.PriceRaw),
		Discount:      ParseAmount(rec.DiscountRaw),
		CreatedAt:     now,
		LastUpdated:   now,
	}
	if c, err := ParseCommission(rec.CommissionRaw); err == nil {
		p.CommissionRate = c
	}
	return p
}

func (m *Manager) link(id string, rec model.SourceRecord, now time.Time, log *logger.Logger) *model.AffiliateLink {
	check := ValidateAffiliateURL(rec.URL)
	if !check.HasAffiliateParams {
		log.Warn("url carries no affiliate parameters", "url", rec.URL)
	}

	l := &model.AffiliateLink{
		ID:                 uuid.NewString(),
		ProductID:          id,
		Platform:           rec.Platform,
		AffiliateType:      check.Type,
		LinkType:           LinkType(rec.URL),
		RawURL:             rec.URL,
		InternalLink:       rec.InternalLink,
		PrettyReferralLink: PrettyReferralLink(id, m.AffiliateTag),
		CreatedAt:          now,
	}
	if l.Platform == "" {
		l.Platform = "amazon"
	}

	var err error
	if l.CommissionRate, err = ParseCommission(rec.CommissionRaw); err != nil {
		log.Warn("ignoring commission", "error", err)
	}
	if l.EndDate, err = ParseEndDate(rec.EndDateRaw); err != nil {
		log.Warn("ignoring end date", "error", err)
	}
	return l
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now().UTC()
	}
	return time.Now().UTC()
}

func (m *Manager) freshness() time.Duration {
	if m.Freshness > 0 {
		return m.Freshness
	}
	return DefaultFreshness
}
