package features

import (
	"strings"

	"enrichprj/internal/model"
)

var conRules = []rule{
	feedbackCons,
	materialCons,
	weaveCons,
	threadCountCons,
	sizeCons,
	careCons,
	valueCons,
	durabilityCons,
}

var syntheticMaterials = []string{"polyester", "microfiber", "rayon"}

func feedbackCons(f facts, s *sheet) {
	const prov = "feedback"
	switch {
	case f.hasReviews && f.reviews < 50:
		s.con(prov, "Limited customer feedback available", model.CategoryOther, model.ImportanceMedium, -0.5)
	case f.hasReviews && f.reviews < 200 && f.rating > 0 && f.rating < 4.0:
		s.con(prov, "Mixed customer satisfaction", model.CategoryQuality, model.ImportanceHigh, -0.7)
	case f.reviews > 500 && f.rating > 0 && f.rating < 4.2 && f.price > 150:
		s.con(prov, "Premium pricing doesn't match customer satisfaction", model.CategoryValue, model.ImportanceHigh, -0.8)
	}
}

func materialCons(f facts, s *sheet) {
	const prov = "material"
	switch {
	case strings.Contains(f.material, "bamboo"):
		s.con(prov, "May require special care instructions", model.CategoryCare, model.ImportanceMedium, -0.4)
		s.con(prov, "Tends to wrinkle more than cotton", model.CategoryCare, model.ImportanceLow, -0.3)
	case strings.Contains(f.material, "cotton"):
		if !strings.Contains(f.material, "egyptian") && !strings.Contains(f.material, "supima") {
			s.con(prov, "May shrink in first wash", model.CategoryCare, model.ImportanceLow, -0.3)
		}
		if !f.has("wrinkle-free", "wrinkle free") && !strings.Contains(f.weave, "percale") {
			s.con(prov, "Requires ironing for crisp appearance", model.CategoryCare, model.ImportanceLow, -0.2)
		}
	case strings.Contains(f.material, "linen"):
		s.con(prov, "Rough texture initially", model.CategoryComfort, model.ImportanceMedium, -0.4)
		s.con(prov, "High maintenance fabric", model.CategoryCare, model.ImportanceMedium, -0.6)
	}
}

func weaveCons(f facts, s *sheet) {
	const prov = "weave"
	switch {
	case strings.Contains(f.weave, "sateen"):
		s.con(prov, "Less breathable than percale", model.CategoryComfort, model.ImportanceMedium, -0.4)
		s.con(prov, "May feel too warm for hot sleepers", model.CategoryComfort, model.ImportanceLow, -0.3)
	case strings.Contains(f.weave, "percale"):
		s.con(prov, "Crisp feel may be too stiff for some", model.CategoryComfort, model.ImportanceLow, -0.2)
	}
}

func threadCountCons(f facts, s *sheet) {
	const prov = "thread_count"
	switch {
	case f.tc > 800 && f.price > 0 && f.price < 100:
		s.con(prov, "Suspiciously high thread count for price", model.CategoryQuality, model.ImportanceHigh, -0.7)
	case f.tc > 1000:
		s.con(prov, "Very high thread count may be too dense", model.CategoryComfort, model.ImportanceLow, -0.3)
	}
}

func sizeCons(f facts, s *sheet) {
	const prov = "size"
	if strings.Contains(f.size, "king") {
		s.con(prov, "Requires larger washing machine", model.CategoryCare, model.ImportanceLow, -0.2)
	}
	if f.size != "" && f.has("sheet") && !f.has("deep pocket") {
		s.con(prov, "May not fit thick mattresses", model.CategoryDesign, model.ImportanceMedium, -0.3)
	}
}

func careCons(f facts, s *sheet) {
	const prov = "care"
	if f.has("dry clean") {
		s.con(prov, "Requires dry cleaning", model.CategoryCare, model.ImportanceHigh, -0.7)
	}
	if f.has("hand wash") {
		s.con(prov, "Hand wash only", model.CategoryCare, model.ImportanceMedium, -0.6)
	}
	if strings.Contains(f.material, "bamboo") && f.has("tumble dry") {
		s.con(prov, "Heat drying may damage bamboo fibers", model.CategoryCare, model.ImportanceMedium, -0.4)
	}
}

func valueCons(f facts, s *sheet) {
	const prov = "value"
	if f.price > 150 && f.tc > 0 && f.tc < 400 {
		s.con(prov, "High price for lower thread count", model.CategoryValue, model.ImportanceMedium, -0.5)
	}
	if f.price > 200 && f.rating > 0 && f.rating < 4.3 {
		s.con(prov, "Premium price with average satisfaction", model.CategoryValue, model.ImportanceHigh, -0.7)
	}
	if f.price > 100 {
		for _, m := range syntheticMaterials {
			if strings.Contains(f.material, m) {
				s.con(prov, "High price for synthetic material", model.CategoryValue, model.ImportanceMedium, -0.4)
				break
			}
		}
	}
	if f.price >= 100 && f.rating > 0 && f.rating < 4.0 {
		s.con(prov, "Premium price without top customer ratings", model.CategoryValue, model.ImportanceHigh, -0.8)
	}
}

func durabilityCons(f facts, s *sheet) {
	const prov = "durability"
	if f.tc > 0 && f.tc < 200 {
		s.con(prov, "Lower thread count may wear faster", model.CategoryQuality, model.ImportanceMedium, -0.4)
	}
	if strings.Contains(f.material, "bamboo") {
		s.con(prov, "Bamboo may lose softness over time", model.CategoryQuality, model.ImportanceLow, -0.3)
	}
	if f.price > 0 && f.price < 50 && f.tc > 600 {
		s.con(prov, "Low price may indicate quality shortcuts", model.CategoryQuality, model.ImportanceHigh, -0.6)
	}
}
