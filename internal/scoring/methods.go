package scoring

import (
	"math"

	"enrichprj/internal/model"
)

// Overall method names accepted in overall_score.method.
const (
	MethodPriceBased             = "price_based"
	MethodWeightedComposite      = "weighted_composite"
	MethodComprehensiveComposite = "comprehensive_composite"
	MethodValueFocused           = "value_focused"
	MethodLuxuryPremium          = "luxury_premium"
	MethodOverallValue           = "overall_value_score"

	DefaultMethod = MethodPriceBased
)

var defaultWeights = map[string]float64{
	model.PopularityScore:      0.2,
	model.BrandReputationScore: 0.2,
	model.PriceValueScore:      0.6,
}

// Method computes the overall score from a product and its sub-scores.
// The set is closed: only this package implements it.
type Method interface {
	Name() string
	overall(p *model.Product, subs map[string]float64) float64
}

type priceBasedMethod struct{}

func (priceBasedMethod) Name() string { return MethodPriceBased }

func (priceBasedMethod) overall(p *model.Product, _ map[string]float64) float64 {
	return p.PriceValue()
}

type weightedComposite struct {
	name    string
	weights map[string]float64
}

func (m weightedComposite) Name() string { return m.name }

func (m weightedComposite) overall(_ *model.Product, subs map[string]float64) float64 {
	var sum float64
	for name, w := range m.weights {
		sum += w * subs[name]
	}
	return round2(sum)
}

type valueFocused struct {
	minPrice, maxPrice float64
}

func (valueFocused) Name() string { return MethodValueFocused }

// overall yields 3..5: 3 + rating x normalised price x 2, capped at 5.
func (m valueFocused) overall(p *model.Product, _ map[string]float64) float64 {
	rating, price := p.RatingValue(), p.PriceValue()
	if rating == 0 || price == 0 {
		return 3.0
	}
	norm := 0.5
	if m.maxPrice != m.minPrice {
		norm = clampTo((price-m.minPrice)/(m.maxPrice-m.minPrice), 0, 1)
	}
	return round2(math.Min(3+rating*norm*2, 5))
}

type luxuryPremium struct{}

func (luxuryPremium) Name() string { return MethodLuxuryPremium }

func (luxuryPremium) overall(_ *model.Product, subs map[string]float64) float64 {
	v := subs[model.LuxuryScore]*2 + subs[model.BrandReputationScore]*1.5 + subs[model.TotalScore]
	return round2(math.Min(v, 30))
}

type overallValue struct {
	cfg *Config
}

func (overallValue) Name() string { return MethodOverallValue }

func (m overallValue) overall(p *model.Product, _ map[string]float64) float64 {
	return clampTo(priceRatingRatio(m.cfg, p), 2, 5)
}

// resolveMethod maps a configured name to its Method. ok is false when the
// name is unknown and the default was substituted.
func resolveMethod(c *Config) (m Method, ok bool) {
	switch c.Overall.Method {
	case MethodPriceBased:
		return priceBasedMethod{}, true
	case MethodWeightedComposite, MethodComprehensiveComposite:
		w := c.Weights
		if len(w) == 0 {
			w = defaultWeights
		}
		return weightedComposite{name: c.Overall.Method, weights: w}, true
	case MethodValueFocused:
		lo, hi := 50.0, 500.0
		if len(c.Overall.PriceRange) == 2 {
			lo, hi = c.Overall.PriceRange[0], c.Overall.PriceRange[1]
		}
		return valueFocused{minPrice: lo, maxPrice: hi}, true
	case MethodLuxuryPremium:
		return luxuryPremium{}, true
	case MethodOverallValue:
		return overallValue{cfg: c}, true
	}
	return priceBasedMethod{}, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
