package model

import "time"

// Product is the canonical catalog record for one marketplace item.
// Optional numeric attributes are pointers so that "not extracted" and
// "zero" stay distinct.
type Product struct {
	MarketplaceID   string
	Title           string
	Brand           string
	Description     string
	Price           *float64
	Discount        *float64
	CommissionRate  *float64
	Rating          *float64
	ReviewCount     *int
	Material        string
	WeaveType       string
	ThreadCount     *int
	Color           string
	Size            string
	Category        string
	PrettyTitle     string
	SummaryText     string
	PrimaryImageRef string
	Images          []string
	Bullets         []string

	// ExternalScores holds sub-scores supplied by an upstream source
	// (e.g. a partner CSV). Non-zero entries win over computed fallbacks.
	ExternalScores map[string]float64

	CreatedAt   time.Time
	LastUpdated time.Time
}

// PriceValue returns the price or 0 when absent.
func (p *Product) PriceValue() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

func (p *Product) RatingValue() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

func (p *Product) ReviewCountValue() int {
	if p.ReviewCount == nil {
		return 0
	}
	return *p.ReviewCount
}

func (p *Product) ThreadCountValue() int {
	if p.ThreadCount == nil {
		return 0
	}
	return *p.ThreadCount
}

// IsFresh reports whether the product was touched less than window ago.
func (p *Product) IsFresh(now time.Time, window time.Duration) bool {
	if p.LastUpdated.IsZero() {
		return false
	}
	return now.Sub(p.LastUpdated) < window
}

// Float and Int build optional values.
func Float(v float64) *float64 { return &v }
func Int(v int) *int           { return &v }
