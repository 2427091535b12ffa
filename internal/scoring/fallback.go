package scoring

import (
	"sort"
	"strings"

	"enrichprj/internal/model"
)

// Fallback method names.
const (
	RatingBased           = "rating_based"
	ReviewCountBased      = "review_count_based"
	ReviewCountSimplified = "review_count_simplified"
	PriceRatingRatio      = "price_rating_ratio"
	PriceBasedFallback    = "price_based"
	CommissionBased       = "commission_based"
	PriceCommissionValue  = "price_commission_value"
	RatingAsIs            = "rating_as_is"
)

// unknownFallbackScore is the middle of the default range.
const unknownFallbackScore = 3.5

type fallbackFunc func(c *Config, p *model.Product) float64

var fallbacks = map[string]fallbackFunc{
	RatingBased:           ratingBased,
	ReviewCountBased:      reviewCountBased,
	ReviewCountSimplified: reviewCountSimplified,
	PriceRatingRatio:      priceRatingRatio,
	PriceBasedFallback:    priceBased,
	CommissionBased:       commissionBased,
	PriceCommissionValue:  priceCommissionValue,
	RatingAsIs:            ratingAsIs,
}

func ratingBased(_ *Config, p *model.Product) float64 {
	r := p.RatingValue()
	switch {
	case r >= 4.5:
		return 5.0
	case r >= 4.0:
		return 4.5
	case r >= 3.5:
		return 3.5
	case r >= 3.0:
		return 3.0
	}
	return 2.5
}

func reviewCountBased(c *Config, p *model.Product) float64 {
	n, t := p.ReviewCountValue(), c.ReviewCounts
	switch {
	case n >= t.VeryHigh:
		return 5.0
	case n >= t.High:
		return 4.5
	case n >= t.Moderate:
		return 4.0
	case n >= t.Low:
		return 3.5
	}
	return 2.5
}

func reviewCountSimplified(_ *Config, p *model.Product) float64 {
	n := p.ReviewCountValue()
	switch {
	case n > 1000:
		return 5.0
	case n > 500:
		return 4.0
	}
	return 3.0
}

func priceRatingRatio(_ *Config, p *model.Product) float64 {
	r, price := p.RatingValue(), p.PriceValue()
	switch {
	case r >= 4.0 && price < 100:
		return 5.0
	case r >= 4.0 && price < 150:
		return 4.5
	case r >= 3.5 && price < 200:
		return 4.0
	}
	return 3.0
}

func priceBased(c *Config, p *model.Product) float64 {
	price, t := p.PriceValue(), c.PriceCategories
	switch {
	case price >= t.Luxury.MinPrice:
		return 5.0
	case price >= t.Premium.MinPrice:
		return 4.5
	case price >= t.MidRange.MinPrice:
		return 3.5
	}
	return 2.5
}

func commissionRate(c *Config, p *model.Product) float64 {
	if p.CommissionRate != nil {
		return *p.CommissionRate
	}
	return c.CommissionRate
}

func commissionBased(c *Config, p *model.Product) float64 {
	rate := commissionRate(c, p)
	switch {
	case rate >= 0.15:
		return 5.0
	case rate >= 0.10:
		return 4.5
	case rate >= 0.05:
		return 4.0
	}
	return 3.0
}

// priceCommissionValue scores the expected payout per sale.
func priceCommissionValue(c *Config, p *model.Product) float64 {
	payout := p.PriceValue() * commissionRate(c, p)
	switch {
	case payout >= 20:
		return 5.0
	case payout >= 15:
		return 4.0
	case payout >= 10:
		return 3.0
	case payout >= 5:
		return 2.0
	}
	return 1.0
}

func ratingAsIs(_ *Config, p *model.Product) float64 {
	if p.Rating == nil || *p.Rating == 0 {
		return 2.0
	}
	return *p.Rating
}

// fallbackScore computes one sub-score from product attributes, then applies
// the material bonus where the sub-score opts in, and the configured clamp.
func (c *Config) fallbackScore(name string, p *model.Product) float64 {
	sc := c.SubScores[name]
	v := unknownFallbackScore
	if fn, ok := fallbacks[sc.FallbackMethod]; ok {
		v = fn(c, p)
	}
	if sc.MaterialBonus {
		v += c.materialBonus(p)
	}
	lo, hi := sc.bounds()
	return clampTo(v, lo, hi)
}

// materialBonus returns the first matching bonus; keys match with "_" read
// as a space. Longer keys are tried first so "egyptian_cotton" beats "cotton".
func (c *Config) materialBonus(p *model.Product) float64 {
	if len(c.MaterialBonuses) == 0 || p.Material == "" {
		return 0
	}
	material := strings.ToLower(p.Material)

	keys := make([]string, 0, len(c.MaterialBonuses))
	for k := range c.MaterialBonuses {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		if strings.Contains(material, strings.ReplaceAll(strings.ToLower(k), "_", " ")) {
			return c.MaterialBonuses[k]
		}
	}
	return 0
}

func clampTo(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
