package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enrichprj/internal/db"
	"enrichprj/internal/model"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	url := "file:" + filepath.Join(t.TempDir(), "catalog.db") + "?_pragma=foreign_keys(1)"
	conn, err := db.Open(ctx, db.DriverSQLite, url)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.Migrate(ctx, conn))
	// second run is a no-op
	require.NoError(t, db.Migrate(ctx, conn))
	return conn
}

var t0 = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

func shell(id string) *model.Product {
	return &model.Product{
		MarketplaceID: id,
		Brand:         "Breescape",
		Price:         model.Float(79.99),
		CreatedAt:     t0,
		LastUpdated:   t0,
	}
}

func TestProductRepository_CreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	repo := &ProductRepository{DB: newTestDB(t)}

	_, err := repo.Get(ctx, "B0CZ7KBRPT")
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, repo.Create(ctx, shell("B0CZ7KBRPT")))
	err = repo.Create(ctx, shell("B0CZ7KBRPT"))
	assert.ErrorIs(t, err, model.ErrPersistenceFailure, "marketplace id is unique")

	got, err := repo.Get(ctx, "B0CZ7KBRPT")
	require.NoError(t, err)
	assert.Equal(t, "Breescape", got.Brand)
	assert.InDelta(t, 79.99, *got.Price, 1e-9)
	assert.Nil(t, got.Rating)
	assert.Nil(t, got.ThreadCount)
	assert.Empty(t, got.Images)
	assert.True(t, t0.Equal(got.LastUpdated))

	got.Title = "Breescape King 100% Cotton Sateen Sheet Set 600 Thread Count"
	got.ThreadCount = model.Int(600)
	got.Rating = model.Float(4.6)
	got.Images = []string{"https://img/1.jpg", "https://img/2.jpg"}
	got.Bullets = []string{"Deep pocket"}
	got.ExternalScores = map[string]float64{model.PopularityScore: 4.2}
	got.LastUpdated = t0.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.Get(ctx, "B0CZ7KBRPT")
	require.NoError(t, err)
	assert.Equal(t, got.Title, again.Title)
	assert.Equal(t, 600, *again.ThreadCount)
	assert.Equal(t, got.Images, again.Images)
	assert.Equal(t, got.Bullets, again.Bullets)
	assert.Equal(t, 4.2, again.ExternalScores[model.PopularityScore])
	assert.True(t, t0.Equal(again.CreatedAt))
	assert.True(t, t0.Add(time.Hour).Equal(again.LastUpdated))

	assert.ErrorIs(t, repo.Update(ctx, shell("B000000000")), model.ErrNotFound)
}

func TestProductRepository_LightUpdate(t *testing.T) {
	ctx := context.Background()
	repo := &ProductRepository{DB: newTestDB(t)}
	p := shell("B0CZ7KBRPT")
	p.Discount = model.Float(5)
	require.NoError(t, repo.Create(ctx, p))

	later := t0.Add(72 * time.Hour)
	require.NoError(t, repo.LightUpdate(ctx, "B0CZ7KBRPT", model.Float(69.99), nil, later))

	got, err := repo.Get(ctx, "B0CZ7KBRPT")
	require.NoError(t, err)
	assert.InDelta(t, 69.99, *got.Price, 1e-9)
	assert.InDelta(t, 5, *got.Discount, 1e-9, "nil discount keeps stored value")
	assert.True(t, later.Equal(got.LastUpdated))

	assert.ErrorIs(t, repo.LightUpdate(ctx, "B000000000", nil, nil, later), model.ErrNotFound)
}

func TestProductRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := &ProductRepository{DB: newTestDB(t)}
	for i, id := range []string{"B000000003", "B000000001", "B000000002"} {
		p := shell(id)
		p.Category = "Bed Sheets"
		if i == 0 {
			p.Category = "Pillows"
		}
		require.NoError(t, repo.Create(ctx, p))
	}

	all, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "B000000001", all[0].MarketplaceID)

	sheets, err := repo.List(ctx, ListFilter{Category: "Bed Sheets", Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, "B000000002", sheets[0].MarketplaceID)

	ids, err := repo.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"B000000001", "B000000002", "B000000003"}, ids)
}

func TestFeatureRepository_ReplaceIsFull(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	products := &ProductRepository{DB: conn}
	repo := &FeatureRepository{DB: conn}
	require.NoError(t, products.Create(ctx, shell("B0CZ7KBRPT")))

	first := []model.Feature{
		{ID: "f1", Text: "Natural cotton breathability", Polarity: model.Pro, Category: model.CategoryComfort, Importance: model.ImportanceMedium, ImpactScore: 0.6, DisplayOrder: 1},
		{ID: "f2", Text: "May shrink in first wash", Polarity: model.Con, Category: model.CategoryCare, Importance: model.ImportanceLow, ImpactScore: -0.3, DisplayOrder: 2},
	}
	require.NoError(t, repo.Replace(ctx, "B0CZ7KBRPT", first))

	second := []model.Feature{
		{ID: "f3", Text: "Premium 600 thread count quality", Polarity: model.Pro, Category: model.CategoryQuality, Importance: model.ImportanceMedium, ImpactScore: 0.7, Provenance: "thread_count", DisplayOrder: 1},
	}
	require.NoError(t, repo.Replace(ctx, "B0CZ7KBRPT", second))

	got, err := repo.List(ctx, "B0CZ7KBRPT")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Premium 600 thread count quality", got[0].Text)
	assert.Equal(t, model.Pro, got[0].Polarity)
	assert.Equal(t, "thread_count", got[0].Provenance)
	assert.Equal(t, "B0CZ7KBRPT", got[0].ProductID)
}

func TestFeatureRepository_ReplaceRollsBack(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	require.NoError(t, (&ProductRepository{DB: conn}).Create(ctx, shell("B0CZ7KBRPT")))
	repo := &FeatureRepository{DB: conn}

	ok := []model.Feature{{ID: "f1", Text: "Kept", Polarity: model.Pro, Category: model.CategoryOther, Importance: model.ImportanceLow, DisplayOrder: 1}}
	require.NoError(t, repo.Replace(ctx, "B0CZ7KBRPT", ok))

	dup := []model.Feature{
		{ID: "f2", Text: "Same", Polarity: model.Pro, Category: model.CategoryOther, Importance: model.ImportanceLow, DisplayOrder: 1},
		{ID: "f3", Text: "Same", Polarity: model.Pro, Category: model.CategoryOther, Importance: model.ImportanceLow, DisplayOrder: 2},
	}
	assert.ErrorIs(t, repo.Replace(ctx, "B0CZ7KBRPT", dup), model.ErrPersistenceFailure)

	got, err := repo.List(ctx, "B0CZ7KBRPT")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Kept", got[0].Text)
}

func TestAffiliateRepository_UpsertPerURL(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	require.NoError(t, (&ProductRepository{DB: conn}).Create(ctx, shell("B0CZ7KBRPT")))
	repo := &AffiliateRepository{DB: conn}

	end := time.Date(2025, 10, 1, 9, 59, 0, 0, time.UTC)
	link := &model.AffiliateLink{
		ID: "l1", ProductID: "B0CZ7KBRPT", Platform: "amazon", LinkType: "web",
		RawURL: "https://www.amazon.com/dp/B0CZ7KBRPT?tag=x", CommissionRate: model.Float(0.04),
		EndDate: &end, CreatedAt: t0,
	}
	require.NoError(t, repo.Upsert(ctx, link))

	again := *link
	again.ID = "l2"
	again.CommissionRate = nil
	again.Platform = "Levanta"
	require.NoError(t, repo.Upsert(ctx, &again))

	other := *link
	other.ID = "l3"
	other.RawURL = "https://m.amazon.com/dp/B0CZ7KBRPT"
	other.EndDate = nil
	require.NoError(t, repo.Upsert(ctx, &other))

	links, err := repo.ListByProduct(ctx, "B0CZ7KBRPT")
	require.NoError(t, err)
	require.Len(t, links, 2)

	byURL := map[string]model.AffiliateLink{}
	for _, l := range links {
		byURL[l.RawURL] = l
	}
	first := byURL[link.RawURL]
	assert.Equal(t, "l1", first.ID)
	assert.Equal(t, "Levanta", first.Platform)
	assert.InDelta(t, 0.04, *first.CommissionRate, 1e-9, "null commission keeps stored value")
	require.NotNil(t, first.EndDate)
	assert.True(t, end.Equal(*first.EndDate))
	assert.Nil(t, byURL[other.RawURL].EndDate)
}

func TestScoreRepository_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	require.NoError(t, (&ProductRepository{DB: conn}).Create(ctx, shell("B0CZ7KBRPT")))
	repo := &ScoreRepository{DB: conn}

	_, err := repo.Get(ctx, "B0CZ7KBRPT")
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, repo.Save(ctx, model.ScoreSet{
		ProductID: "B0CZ7KBRPT", Method: "price_based", Overall: 79.99,
		SubScores: map[string]float64{model.TotalScore: 5}, ComputedAt: t0,
	}))
	require.NoError(t, repo.Save(ctx, model.ScoreSet{
		ProductID: "B0CZ7KBRPT", Method: "comprehensive_composite", Overall: 4.8,
		SubScores: map[string]float64{model.PopularityScore: 4}, ComputedAt: t0.Add(time.Hour),
	}))

	got, err := repo.Get(ctx, "B0CZ7KBRPT")
	require.NoError(t, err)
	assert.Equal(t, "comprehensive_composite", got.Method)
	assert.Equal(t, 4.8, got.Overall)
	assert.Equal(t, map[string]float64{model.PopularityScore: 4}, got.SubScores)
}
