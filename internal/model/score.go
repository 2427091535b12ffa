package model

import "time"

// Sub-score names known to the scoring engine and the store.
const (
	PopularityScore      = "popularity_score"
	BrandReputationScore = "brand_reputation_score"
	PriceValueScore      = "price_value_score"
	CommissionScore      = "commission_score"
	TotalScore           = "total_score"
	LuxuryScore          = "luxury_score"
	OverallValueScore    = "overall_value_score"
)

type ScoreSet struct {
	ProductID  string
	SubScores  map[string]float64
	Overall    float64
	Method     string
	ComputedAt time.Time
}
