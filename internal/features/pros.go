package features

import (
	"fmt"
	"strings"

	"enrichprj/internal/model"
)

type rule func(f facts, s *sheet)

// Run order matters: earlier groups win dedup and tie ranking.
var proRules = []rule{
	materialPros,
	weavePros,
	threadCountTier,
	brandTier,
	sizePros,
	priceTier,
	ratingTier,
	carePros,
	certificationPros,
	specialFeaturePros,
}

const (
	premiumBrandTier     = "premium"
	establishedBrandTier = "established"
	midBrandTier         = "mid-tier"
	valueBrandTier       = "value"
)

var brandTiers = []struct {
	tier   string
	brands []string
}{
	{premiumBrandTier, []string{"boll & branch", "boll and branch", "frette", "sferra", "buffy", "brooklinen", "parachute", "snowe", "coyuchi"}},
	{establishedBrandTier, []string{"california design den", "chateau", "coop"}},
	{midBrandTier, []string{"threadmill", "breescape", "mellanni", "bamboo bay"}},
}

// BrandTier classifies a brand name; unknown non-empty brands are "value".
func BrandTier(brand string) string {
	b := strings.ToLower(strings.TrimSpace(brand))
	if b == "" {
		return ""
	}
	for _, t := range brandTiers {
		for _, name := range t.brands {
			if strings.Contains(b, name) {
				return t.tier
			}
		}
	}
	return valueBrandTier
}

func materialPros(f facts, s *sheet) {
	const prov = "material"
	switch {
	case strings.Contains(f.material, "bamboo"):
		s.pro(prov, "Natural moisture-wicking bamboo fibers", model.CategoryComfort, model.ImportanceHigh, 0.8)
		s.pro(prov, "Eco-friendly and sustainable material", model.CategorySustainability, model.ImportanceMedium, 0.6)
		s.pro(prov, "Naturally antimicrobial properties", model.CategorySafety, model.ImportanceMedium, 0.5)
	case strings.Contains(f.material, "egyptian"):
		s.pro(prov, "Premium Egyptian cotton long-staple fibers", model.CategoryQuality, model.ImportanceHigh, 0.9)
		s.pro(prov, "Luxurious softness that improves with washing", model.CategoryComfort, model.ImportanceHigh, 0.8)
	case strings.Contains(f.material, "supima"), strings.Contains(f.material, "pima"):
		s.pro(prov, "Long-staple Pima cotton softness", model.CategoryQuality, model.ImportanceHigh, 0.8)
		s.pro(prov, "Natural cotton breathability", model.CategoryComfort, model.ImportanceMedium, 0.6)
	case strings.Contains(f.material, "cotton"):
		s.pro(prov, "Natural cotton breathability", model.CategoryComfort, model.ImportanceMedium, 0.6)
		s.pro(prov, "Easy care and machine washable", model.CategoryCare, model.ImportanceMedium, 0.5)
	case strings.Contains(f.material, "linen"):
		s.pro(prov, "Superior breathability and moisture absorption", model.CategoryComfort, model.ImportanceHigh, 0.8)
		s.pro(prov, "Natural texture that softens over time", model.CategoryComfort, model.ImportanceMedium, 0.6)
	case strings.Contains(f.material, "silk"):
		s.pro(prov, "Smooth silk surface gentle on skin and hair", model.CategoryComfort, model.ImportanceHigh, 0.8)
	case strings.Contains(f.material, "tencel"), strings.Contains(f.material, "eucalyptus"):
		s.pro(prov, "Cool, smooth eucalyptus-based fibers", model.CategoryComfort, model.ImportanceHigh, 0.7)
		s.pro(prov, "Eco-friendly and sustainable material", model.CategorySustainability, model.ImportanceMedium, 0.6)
	case strings.Contains(f.material, "microfiber"):
		s.pro(prov, "Soft, wrinkle-resistant microfiber", model.CategoryCare, model.ImportanceMedium, 0.5)
	}
}

func weavePros(f facts, s *sheet) {
	const prov = "weave"
	switch {
	case strings.Contains(f.weave, "sateen"):
		s.pro(prov, "Luxurious silky smooth finish", model.CategoryComfort, model.ImportanceHigh, 0.8)
		s.pro(prov, "Natural wrinkle resistance", model.CategoryCare, model.ImportanceMedium, 0.6)
	case strings.Contains(f.weave, "percale"):
		s.pro(prov, "Crisp, cool feel perfect for hot sleepers", model.CategoryComfort, model.ImportanceHigh, 0.8)
		s.pro(prov, "Durable one-over-one weave construction", model.CategoryQuality, model.ImportanceMedium, 0.6)
	case strings.Contains(f.weave, "basketweave"), strings.Contains(f.weave, "basket weave"):
		s.pro(prov, "Unique textured appearance", model.CategoryDesign, model.ImportanceMedium, 0.5)
		s.pro(prov, "Enhanced breathability", model.CategoryComfort, model.ImportanceMedium, 0.6)
	case strings.Contains(f.weave, "flannel"):
		s.pro(prov, "Brushed warmth for cold nights", model.CategoryComfort, model.ImportanceMedium, 0.6)
	}
}

func threadCountTier(f facts, s *sheet) {
	const prov = "thread_count"
	switch {
	case f.tc >= 1000:
		s.pro(prov, "Ultra-High Thread Count", model.CategoryQuality, model.ImportanceHigh, 0.9)
		s.pro(prov, "Silky smooth texture", model.CategoryComfort, model.ImportanceHigh, 0.8)
		s.con(prov, "Higher Price Point", model.CategoryValue, model.ImportanceMedium, -0.3)
	case f.tc >= 600:
		s.pro(prov, fmt.Sprintf("Premium %d thread count quality", f.tc), model.CategoryQuality, model.ImportanceMedium, 0.7)
		s.pro(prov, "Durable construction", model.CategoryQuality, model.ImportanceMedium, 0.6)
	case f.tc >= 400:
		s.pro(prov, fmt.Sprintf("Quality %d thread count construction", f.tc), model.CategoryQuality, model.ImportanceMedium, 0.6)
	case f.tc > 0 && f.tc < 200:
		s.con(prov, "Lower thread count may feel less luxurious", model.CategoryQuality, model.ImportanceMedium, -0.4)
	}
}

func brandTier(f facts, s *sheet) {
	const prov = "brand"
	switch BrandTier(f.brand) {
	case premiumBrandTier:
		s.pro(prov, "Premium luxury brand reputation", model.CategoryQuality, model.ImportanceHigh, 0.8)
		s.pro(prov, "Ethical and sustainable manufacturing", model.CategorySustainability, model.ImportanceMedium, 0.6)
	case establishedBrandTier:
		s.pro(prov, "Established brand with proven quality", model.CategoryQuality, model.ImportanceMedium, 0.6)
	case midBrandTier:
		s.pro(prov, "Trusted brand with consistent quality", model.CategoryQuality, model.ImportanceMedium, 0.5)
	case valueBrandTier:
		s.add(model.Info, prov, "Value-focused brand", model.CategoryValue, model.ImportanceLow, 0)
	}
}

func sizePros(f facts, s *sheet) {
	const prov = "size"
	switch {
	case strings.Contains(f.size, "king"):
		s.pro(prov, "Generous king-size dimensions", model.CategoryDesign, model.ImportanceMedium, 0.6)
	case strings.Contains(f.size, "queen"):
		s.pro(prov, "Versatile queen size", model.CategoryDesign, model.ImportanceLow, 0.4)
	case strings.Contains(f.size, "twin"):
		s.pro(prov, "Perfect for kids' rooms and guest beds", model.CategoryDesign, model.ImportanceMedium, 0.5)
	}
}

// PriceTier returns budget, mid-range, premium or luxury; "" without a price.
func PriceTier(price float64) string {
	switch {
	case price <= 0:
		return ""
	case price < 50:
		return "budget"
	case price < 100:
		return "mid-range"
	case price < 200:
		return "premium"
	}
	return "luxury"
}

func priceTier(f facts, s *sheet) {
	const prov = "price"
	switch PriceTier(f.price) {
	case "budget":
		s.pro(prov, "Affordable price", model.CategoryValue, model.ImportanceHigh, 0.7)
	case "mid-range":
		s.pro(prov, "Affordable quality option", model.CategoryValue, model.ImportanceMedium, 0.5)
	case "premium":
		s.pro(prov, "High-End Quality", model.CategoryQuality, model.ImportanceMedium, 0.6)
	case "luxury":
		s.pro(prov, "Luxury Quality", model.CategoryQuality, model.ImportanceHigh, 0.7)
	}
	if f.price > 150 {
		s.con(prov, "Premium Price Point", model.CategoryValue, model.ImportanceMedium, -0.4)
	}
}

func ratingTier(f facts, s *sheet) {
	const prov = "rating"
	switch {
	case f.rating <= 0:
	case f.rating >= 4.5:
		s.pro(prov, "Exceptional customer ratings", model.CategoryQuality, model.ImportanceHigh, 0.8)
	case f.rating >= 4.0:
		s.pro(prov, "Highly rated by customers", model.CategoryQuality, model.ImportanceMedium, 0.6)
	case f.rating >= 3.5:
		s.pro(prov, "Good customer ratings", model.CategoryQuality, model.ImportanceLow, 0.4)
	default:
		s.con(prov, "Lower Customer Rating", model.CategoryQuality, model.ImportanceHigh, -0.6)
	}
	if f.reviews >= 1000 {
		s.pro(prov, "Extensively reviewed by customers", model.CategoryOther, model.ImportanceMedium, 0.5)
	}
}

func carePros(f facts, s *sheet) {
	const prov = "care"
	if f.has("machine wash") {
		s.pro(prov, "Machine washable for easy care", model.CategoryCare, model.ImportanceMedium, 0.5)
	}
	if f.has("wrinkle-free", "wrinkle free", "wrinkle resistant", "wrinkle-resistant") {
		s.pro(prov, "Wrinkle-resistant fabric", model.CategoryCare, model.ImportanceMedium, 0.5)
	}
	if f.has("fade resistant", "fade-resistant") {
		s.pro(prov, "Fade-resistant colors", model.CategoryDesign, model.ImportanceLow, 0.4)
	}
}

func certificationPros(f facts, s *sheet) {
	const prov = "certification"
	if f.has("oeko-tex", "oeko tex", "oekotex") {
		s.pro(prov, "OEKO-TEX certified for safety", model.CategorySafety, model.ImportanceHigh, 0.7)
	}
	if f.has("gots") {
		s.pro(prov, "GOTS certified organic", model.CategorySustainability, model.ImportanceHigh, 0.7)
	}
	if f.has("fair trade") {
		s.pro(prov, "Fair Trade certified production", model.CategorySustainability, model.ImportanceMedium, 0.6)
	}
}

func specialFeaturePros(f facts, s *sheet) {
	const prov = "special_feature"
	if f.has("deep pocket") {
		s.pro(prov, "Deep pocket design for secure fit", model.CategoryDesign, model.ImportanceMedium, 0.6)
	}
	if f.has("cooling", "temperature regulating", "breathable") {
		s.pro(prov, "Advanced cooling technology", model.CategoryComfort, model.ImportanceHigh, 0.8)
	}
	if f.has("organic") {
		s.pro(prov, "Certified organic materials", model.CategorySustainability, model.ImportanceMedium, 0.6)
	}
	if f.has("hypoallergenic") {
		s.pro(prov, "Hypoallergenic properties", model.CategorySafety, model.ImportanceMedium, 0.6)
	}
}
