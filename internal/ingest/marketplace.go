// Package ingest normalises source rows into marketplace ids and decides
// whether each one is created, lightly updated or skipped.
package ingest

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"enrichprj/internal/model"
)

var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)/dp/([A-Z0-9]{10})(?:[/?#]|$)`),
	regexp.MustCompile(`(?i)/gp/product/([A-Z0-9]{10})(?:[/?#]|$)`),
	regexp.MustCompile(`(?i)/product/([A-Z0-9]{10})(?:[/?#]|$)`),
	regexp.MustCompile(`(?i)[?&]asin=([A-Z0-9]{10})(?:&|#|$)`),
	regexp.MustCompile(`(?i)[?&]id=([A-Z0-9]{10})(?:&|#|$)`),
}

var bareIDRe = regexp.MustCompile(`^[A-Za-z0-9]{10}$`)

// ExtractMarketplaceID returns the upper-cased 10-char product id embedded in
// raw, or model.ErrInvalidSourceRecord.
func ExtractMarketplaceID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if bareIDRe.MatchString(raw) {
		return strings.ToUpper(raw), nil
	}
	for _, re := range idPatterns {
		if m := re.FindStringSubmatch(raw); m != nil {
			return strings.ToUpper(m[1]), nil
		}
	}
	return "", fmt.Errorf("%w: no marketplace id in %q", model.ErrInvalidSourceRecord, raw)
}

// Affiliate types recorded on a link.
const (
	AffiliateLevana       = "levana"
	AffiliateAmazonDirect = "amazon_direct"
	AffiliateOther        = "other"
	AffiliateNone         = "none"
)

type AffiliateCheck struct {
	Type               string
	HasAffiliateParams bool
}

// ValidateAffiliateURL classifies the tracking parameters carried by raw.
func ValidateAffiliateURL(raw string) AffiliateCheck {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.RawQuery == "" {
		return AffiliateCheck{Type: AffiliateNone}
	}
	q := u.Query()
	switch {
	case q.Has("maas"):
		return AffiliateCheck{Type: AffiliateLevana, HasAffiliateParams: true}
	case q.Has("ref") || q.Has("tag"):
		return AffiliateCheck{Type: AffiliateAmazonDirect, HasAffiliateParams: true}
	case q.Has("linkCode") || q.Has("creative") || q.Has("ascsubtag"):
		return AffiliateCheck{Type: AffiliateOther, HasAffiliateParams: true}
	}
	return AffiliateCheck{Type: AffiliateNone}
}

// LinkType returns mobile, desktop or web.
func LinkType(raw string) string {
	lower := strings.ToLower(raw)
	if u, err := url.Parse(lower); err == nil && strings.HasPrefix(u.Hostname(), "m.") {
		return "mobile"
	}
	switch {
	case strings.Contains(lower, "mobile"):
		return "mobile"
	case strings.Contains(lower, "desktop"):
		return "desktop"
	}
	return "web"
}

// PrettyReferralLink builds the short link published on the site.
func PrettyReferralLink(id, tag string) string {
	if tag == "" {
		return "https://amzn.to/" + id
	}
	return "https://amzn.to/" + id + "?tag=" + url.QueryEscape(tag)
}

// ParseCommission accepts "4%", "4" (a percentage) or "0.04" (a rate).
func ParseCommission(raw string) (*float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	pct := strings.HasSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")), 64)
	if err != nil {
		return nil, fmt.Errorf("parse commission %q: %w", raw, err)
	}
	if pct || v > 1 {
		v /= 100
	}
	if math.IsNaN(v) || v < 0 || v > 1 {
		return nil, fmt.Errorf("commission %q out of range", raw)
	}
	return &v, nil
}

var gmtOffsetRe = regexp.MustCompile(`\s*GMT[+-]?\d*\s*$`)

var endDateLayouts = []string{
	"Jan 2, 2006 15:04",
	"01/02/2006 15:04",
	"2006-01-02",
}

// ParseEndDate parses marketplace dates such as "Oct 1, 2025 09:59 GMT+3".
// The GMT offset is dropped; the result is in UTC.
func ParseEndDate(raw string) (*time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	s = gmtOffsetRe.ReplaceAllString(s, "")
	for _, layout := range endDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognised end date %q", raw)
}

// ParseAmount reads a price or discount such as "$1,299.00".
func ParseAmount(raw string) *float64 {
	s := strings.TrimSpace(raw)
	s = strings.TrimLeft(s, "$€£")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
