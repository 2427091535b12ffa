package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"enrichprj/internal/model"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

type ProductView struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	PrettyTitle     string             `json:"pretty_title,omitempty"`
	Summary         string             `json:"summary,omitempty"`
	Brand           string             `json:"brand,omitempty"`
	Category        string             `json:"category,omitempty"`
	Material        string             `json:"material,omitempty"`
	WeaveType       string             `json:"weave_type,omitempty"`
	ThreadCount     *int               `json:"thread_count,omitempty"`
	Color           string             `json:"color,omitempty"`
	Size            string             `json:"size,omitempty"`
	Price           *float64           `json:"price,omitempty"`
	Discount        *float64           `json:"discount,omitempty"`
	Rating          *float64           `json:"rating,omitempty"`
	ReviewCount     *int               `json:"review_count,omitempty"`
	PrimaryImageRef string             `json:"primary_image,omitempty"`
	Images          []string           `json:"images,omitempty"`
	ExternalScores  map[string]float64 `json:"external_scores,omitempty"`
	LastUpdated     time.Time          `json:"last_updated"`
}

func productView(p *model.Product) ProductView {
	return ProductView{
		ID:              p.MarketplaceID,
		Title:           p.Title,
		PrettyTitle:     p.PrettyTitle,
		Summary:         p.SummaryText,
		Brand:           p.Brand,
		Category:        p.Category,
		Material:        p.Material,
		WeaveType:       p.WeaveType,
		ThreadCount:     p.ThreadCount,
		Color:           p.Color,
		Size:            p.Size,
		Price:           p.Price,
		Discount:        p.Discount,
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
		PrimaryImageRef: p.PrimaryImageRef,
		Images:          p.Images,
		ExternalScores:  p.ExternalScores,
		LastUpdated:     p.LastUpdated,
	}
}

type FeatureView struct {
	ID          string  `json:"id"`
	Text        string  `json:"text"`
	Polarity    string  `json:"polarity"`
	Category    string  `json:"category"`
	Importance  string  `json:"importance"`
	ImpactScore float64 `json:"impact_score"`
	Order       int     `json:"display_order"`
}

func featureViews(fs []model.Feature) []FeatureView {
	out := make([]FeatureView, 0, len(fs))
	for _, f := range fs {
		out = append(out, FeatureView{
			ID:          f.ID,
			Text:        f.Text,
			Polarity:    f.Polarity.String(),
			Category:    string(f.Category),
			Importance:  string(f.Importance),
			ImpactScore: f.ImpactScore,
			Order:       f.DisplayOrder,
		})
	}
	return out
}

type ScoreView struct {
	Method     string             `json:"method"`
	Overall    float64            `json:"overall"`
	SubScores  map[string]float64 `json:"sub_scores"`
	ComputedAt time.Time          `json:"computed_at"`
}

type LinkView struct {
	Platform       string     `json:"platform"`
	AffiliateType  string     `json:"affiliate_type"`
	LinkType       string     `json:"link_type"`
	URL            string     `json:"url"`
	ReferralLink   string     `json:"referral_link,omitempty"`
	CommissionRate *float64   `json:"commission_rate,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
}

func linkViews(ls []model.AffiliateLink) []LinkView {
	out := make([]LinkView, 0, len(ls))
	for _, l := range ls {
		out = append(out, LinkView{
			Platform:       l.Platform,
			AffiliateType:  l.AffiliateType,
			LinkType:       l.LinkType,
			URL:            l.RawURL,
			ReferralLink:   l.PrettyReferralLink,
			CommissionRate: l.CommissionRate,
			EndDate:        l.EndDate,
		})
	}
	return out
}

type ProductDetail struct {
	Product ProductView `json:"product"`
	Score   *ScoreView  `json:"score,omitempty"`
	Links   []LinkView  `json:"links"`
}
