package model

import "time"

type AffiliateLink struct {
	ID                 string
	ProductID          string
	Platform           string
	AffiliateType      string
	LinkType           string
	RawURL             string
	CommissionRate     *float64
	EndDate            *time.Time
	InternalLink       string
	PrettyReferralLink string
	CreatedAt          time.Time
}

// SourceRecord is one input row (CSV line or URL list entry).
type SourceRecord struct {
	Line          int
	URL           string
	Platform      string
	Brand         string
	PriceRaw      string
	CommissionRaw string
	EndDateRaw    string
	DiscountRaw   string
	InternalLink  string
}
