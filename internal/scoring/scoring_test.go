package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enrichprj/internal/model"
)

func mustParse(t *testing.T, doc string) *Config {
	t.Helper()
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)
	return cfg
}

func product(price, rating float64, reviews int) *model.Product {
	return &model.Product{
		MarketplaceID: "B000000001",
		Price:         model.Float(price),
		Rating:        model.Float(rating),
		ReviewCount:   model.Int(reviews),
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	assert.Equal(t, MethodPriceBased, cfg.Overall.Method)
	assert.Equal(t, ReviewCountSimplified, cfg.SubScores[model.PopularityScore].FallbackMethod)
	assert.Equal(t, 5000, cfg.ReviewCounts.VeryHigh)
	assert.InDelta(t, 0.10, cfg.CommissionRate, 1e-9)
}

func TestLoadConfig_FallsBackToDefault(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, model.ErrConfigLoadFailure)
	assert.Equal(t, MethodPriceBased, cfg.Overall.Method)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("overall_score: [not, a, map"), 0o644))
	cfg, err = LoadConfig(bad)
	assert.ErrorIs(t, err, model.ErrConfigLoadFailure)
	assert.Equal(t, MethodPriceBased, cfg.Overall.Method)
}

func TestLoadConfig_AcceptsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.json")
	doc := `{"overall_score": {"method": "value_focused", "price_range": [20, 220]}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, MethodValueFocused, cfg.Overall.Method)
	assert.Equal(t, []float64{20, 220}, cfg.Overall.PriceRange)
}

func TestParse_RejectsBadRange(t *testing.T) {
	_, err := Parse([]byte("sub_scores:\n  total_score:\n    range: [5, 2]\n"))
	assert.Error(t, err)
}

func TestFallbacks(t *testing.T) {
	cfg := Default()
	tests := []struct {
		name string
		fn   fallbackFunc
		p    *model.Product
		want float64
	}{
		{"rating 4.6", ratingBased, product(0, 4.6, 0), 5.0},
		{"rating 4.2", ratingBased, product(0, 4.2, 0), 4.5},
		{"rating 2.0", ratingBased, product(0, 2.0, 0), 2.5},
		{"reviews 5000", reviewCountBased, product(0, 0, 5000), 5.0},
		{"reviews 1200", reviewCountBased, product(0, 0, 1200), 4.0},
		{"reviews 10", reviewCountBased, product(0, 0, 10), 2.5},
		{"simplified 1001", reviewCountSimplified, product(0, 0, 1001), 5.0},
		{"simplified 1000", reviewCountSimplified, product(0, 0, 1000), 4.0},
		{"ratio cheap good", priceRatingRatio, product(80, 4.5, 0), 5.0},
		{"ratio mid good", priceRatingRatio, product(120, 4.5, 0), 4.5},
		{"ratio ok", priceRatingRatio, product(180, 3.6, 0), 4.0},
		{"ratio expensive", priceRatingRatio, product(300, 4.9, 0), 3.0},
		{"price luxury", priceBased, product(250, 0, 0), 5.0},
		{"price mid", priceBased, product(60, 0, 0), 3.5},
		{"price budget", priceBased, product(20, 0, 0), 2.5},
		{"commission default", commissionBased, product(0, 0, 0), 4.5},
		{"rating as is", ratingAsIs, product(0, 4.3, 0), 4.3},
		{"rating absent", ratingAsIs, &model.Product{}, 2.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.fn(cfg, tt.p), 1e-9)
		})
	}
}

func TestCommissionFallbacks(t *testing.T) {
	cfg := Default()
	p := product(200, 0, 0)
	p.CommissionRate = model.Float(0.04)
	assert.InDelta(t, 3.0, commissionBased(cfg, p), 1e-9)
	assert.InDelta(t, 2.0, priceCommissionValue(cfg, p), 1e-9) // payout 8

	p.CommissionRate = model.Float(0.16)
	assert.InDelta(t, 5.0, commissionBased(cfg, p), 1e-9)
	assert.InDelta(t, 5.0, priceCommissionValue(cfg, p), 1e-9) // payout 32
}

func TestPriceCommissionValue_LowestTierReachable(t *testing.T) {
	cfg := mustParse(t, "sub_scores:\n  commission_score: {fallback_method: price_commission_value}\n")
	p := product(10, 0, 0)
	p.CommissionRate = model.Float(0.04)
	assert.InDelta(t, 1.0, NewEngine(cfg, nil).SubScores(p)[model.CommissionScore], 1e-9)
}

func TestSubScores_UnknownFallbackAndClamp(t *testing.T) {
	cfg := mustParse(t, `
sub_scores:
  total_score:
    fallback_method: something_new
  commission_score:
    fallback_method: price_commission_value
  popularity_score:
    fallback_method: price_commission_value
    range: [1, 5]
`)
	subs := NewEngine(cfg, nil).SubScores(product(10, 0, 0))
	assert.Equal(t, 3.5, subs[model.TotalScore])
	assert.Equal(t, 1.0, subs[model.CommissionScore], "payout of 0.4 keeps the lowest tier")
	assert.Equal(t, 1.0, subs[model.PopularityScore])
	assert.NotContains(t, subs, model.LuxuryScore)
}

func TestSubScores_ExternalValuesWin(t *testing.T) {
	p := product(80, 4.6, 1200)
	p.ExternalScores = map[string]float64{model.PopularityScore: 3.1, model.TotalScore: 0}

	subs := NewEngine(Default(), nil).SubScores(p)
	assert.Equal(t, 3.1, subs[model.PopularityScore])
	assert.Equal(t, 5.0, subs[model.TotalScore], "zero external value is ignored")
}

func TestSubScores_MaterialBonus(t *testing.T) {
	cfg := mustParse(t, `
sub_scores:
  total_score:
    fallback_method: rating_based
    material_bonus: true
material_bonuses:
  cotton: 0.1
  egyptian_cotton: 0.4
`)
	p := product(0, 4.0, 0)
	p.Material = "Egyptian Cotton"
	assert.InDelta(t, 4.9, NewEngine(cfg, nil).SubScores(p)[model.TotalScore], 1e-9)

	p.Rating = model.Float(4.9)
	assert.InDelta(t, 5.0, NewEngine(cfg, nil).SubScores(p)[model.TotalScore], 1e-9)
}

func TestSubScores_MaterialBonusIsOptIn(t *testing.T) {
	cfg := mustParse(t, `
sub_scores:
  total_score: {fallback_method: rating_as_is, range: [0, 5]}
  luxury_score: {fallback_method: rating_as_is, range: [0, 5], material_bonus: true}
  popularity_score: {fallback_method: review_count_simplified}
material_bonuses:
  egyptian_cotton: 0.3
  linen: 0.2
`)
	e := NewEngine(cfg, nil)

	p := product(0, 1.0, 600)
	plain := e.SubScores(p)
	assert.InDelta(t, 1.0, plain[model.TotalScore], 1e-9)
	assert.InDelta(t, 1.0, plain[model.LuxuryScore], 1e-9)

	p.Material = "Linen"
	subs := e.SubScores(p)
	assert.InDelta(t, 1.0, subs[model.TotalScore], 1e-9, "no bonus without opting in")
	assert.InDelta(t, 1.2, subs[model.LuxuryScore], 1e-9, "bonus stays within the configured range")

	p.Material = "Egyptian Cotton"
	assert.InDelta(t, 4.0, e.SubScores(p)[model.PopularityScore], 1e-9)
}

func TestOverallMethods(t *testing.T) {
	p := product(79.99, 4.6, 1200)

	tests := []struct {
		name string
		doc  string
		want float64
	}{
		{"price based", "overall_score: {method: price_based}", 79.99},
		{
			"weighted composite default weights",
			`
overall_score: {method: comprehensive_composite}
sub_scores:
  popularity_score: {fallback_method: review_count_based}
  brand_reputation_score: {fallback_method: rating_based}
  price_value_score: {fallback_method: price_rating_ratio}
`,
			// 0.2*4.0 + 0.2*5.0 + 0.6*5.0
			4.8,
		},
		{
			"weighted composite configured weights only",
			`
overall_score: {method: weighted_composite}
scoring_weights: {popularity_score: 0.5}
sub_scores:
  popularity_score: {fallback_method: review_count_based}
  brand_reputation_score: {fallback_method: rating_based}
`,
			2.0,
		},
		{"value focused", "overall_score: {method: value_focused}", 3.61},
		{
			"luxury premium",
			`
overall_score: {method: luxury_premium}
sub_scores:
  luxury_score: {fallback_method: price_based}
  brand_reputation_score: {fallback_method: rating_based}
  total_score: {fallback_method: rating_as_is, range: [0, 5]}
`,
			// 3.5*2 + 5*1.5 + 4.6
			19.1,
		},
		{"overall value", "overall_score: {method: overall_value_score}", 5.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(mustParse(t, tt.doc), nil)
			assert.InDelta(t, tt.want, e.Compute(p).Overall, 1e-9)
		})
	}
}

func TestValueFocused_Edges(t *testing.T) {
	m := valueFocused{minPrice: 50, maxPrice: 500}
	assert.Equal(t, 3.0, m.overall(product(0, 4.5, 0), nil))
	assert.Equal(t, 3.0, m.overall(product(100, 0, 0), nil))
	assert.Equal(t, 5.0, m.overall(product(900, 5, 0), nil))
	assert.Equal(t, 3.0, m.overall(product(10, 5, 0), nil))
}

func TestUnknownMethodUsesDefault(t *testing.T) {
	e := NewEngine(mustParse(t, "overall_score: {method: moon_phase}"), nil)
	assert.Equal(t, DefaultMethod, e.Method())
	set := e.Compute(product(42, 4, 10))
	assert.Equal(t, 42.0, set.Overall)
	assert.Equal(t, DefaultMethod, set.Method)
	assert.Equal(t, "B000000001", set.ProductID)
}

func TestSubScoresStayInRange(t *testing.T) {
	cfg := mustParse(t, `
sub_scores:
  popularity_score: {fallback_method: review_count_based}
  brand_reputation_score: {fallback_method: rating_based}
  price_value_score: {fallback_method: price_rating_ratio}
  commission_score: {fallback_method: commission_based}
  luxury_score: {fallback_method: price_based}
  total_score: {fallback_method: rating_as_is, material_bonus: true}
material_bonuses: {linen: 2.0, polyester: -3.0}
`)
	e := NewEngine(cfg, nil)
	for _, price := range []float64{0, 9.99, 49, 99, 149, 199, 260, 1200} {
		for _, rating := range []float64{0, 1, 3.4, 4, 4.5, 5} {
			for _, reviews := range []int{0, 40, 600, 2500, 9000} {
				for _, material := range []string{"", "Linen", "Polyester"} {
					p := product(price, rating, reviews)
					p.Material = material
					for name, v := range e.SubScores(p) {
						assert.GreaterOrEqual(t, v, 0.0, name)
						assert.LessOrEqual(t, v, 5.0, name)
					}
				}
			}
		}
	}
}

func TestRepositoryConfigParses(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "config", "scoring.yaml"))
	require.NoError(t, err)
	assert.Equal(t, MethodComprehensiveComposite, cfg.Overall.Method)
	assert.InDelta(t, 0.6, cfg.Weights[model.PriceValueScore], 1e-9)
}
