package crawler

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"enrichprj/internal/attributes"
	"enrichprj/internal/model"
)

const (
	maxImages  = 5
	maxBullets = 10
)

// selectors lists, per field, the CSS selectors tried in order.
type selectors struct {
	title, price, rating, reviews, images, brand, description, bullets, breadcrumbs []string
}

// Pass 1 uses the primary selectors only.
var primarySelectors = selectors{
	title:       []string{"#productTitle", "h1.a-size-large", `h1[data-automation-id="product-title"]`},
	price:       []string{".a-price .a-offscreen", ".a-price-whole"},
	rating:      []string{"#acrPopover .a-icon-alt", ".a-icon-alt"},
	reviews:     []string{"#acrCustomerReviewText"},
	images:      []string{"#landingImage"},
	brand:       []string{"#bylineInfo"},
	description: []string{"#productDescription"},
	bullets:     []string{"#feature-bullets ul li"},
	breadcrumbs: []string{"#wayfinding-breadcrumbs_feature_div a"},
}

// Pass 2 widens every list with fallbacks.
var fallbackSelectors = selectors{
	title: append(append([]string{}, primarySelectors.title...),
		".product-title", `[data-automation-id="product-title"]`, ".a-size-large.product-title-word-break", "h1"),
	price: append(append([]string{}, primarySelectors.price...),
		"#corePrice_feature_div .a-offscreen", "#priceblock_ourprice", "#priceblock_dealprice",
		`[data-automation-id="product-price"]`, `[itemprop="price"]`, ".price"),
	rating: append(append([]string{}, primarySelectors.rating...),
		`[data-automation-id="product-rating"]`, `[itemprop="ratingValue"]`, ".rating"),
	reviews: append(append([]string{}, primarySelectors.reviews...),
		`[data-automation-id="product-review-count"]`, `[itemprop="reviewCount"]`, ".review-count"),
	images: append(append([]string{}, primarySelectors.images...),
		".a-dynamic-image", "img[data-old-hires]", ".product-image img", `[itemprop="image"]`),
	brand: append(append([]string{}, primarySelectors.brand...),
		"tr.po-brand td.po-break-word", ".brand", `[data-automation-id="product-brand"]`, `[itemprop="brand"]`),
	description: append(append([]string{}, primarySelectors.description...),
		"#feature-bullets ul", ".product-description", `[data-hook="description"]`, `[itemprop="description"]`),
	bullets: append(append([]string{}, primarySelectors.bullets...),
		".a-unordered-list li", ".product-features li", `[data-hook="feature"]`),
	breadcrumbs: append(append([]string{}, primarySelectors.breadcrumbs...),
		"nav.breadcrumb a", ".breadcrumbs a"),
}

func selectorsFor(pass int) selectors {
	if pass >= 2 {
		return fallbackSelectors
	}
	return primarySelectors
}

// ParseProduct extracts the raw field bag from a product page. Pass 2 uses
// the wider selector lists and, when no description is found, falls back to
// the page's headline and paragraph text.
func ParseProduct(html string, pass int) (model.RawRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return model.RawRecord{}, err
	}
	sel := selectorsFor(pass)

	var rec model.RawRecord
	rec.Title = firstText(doc, sel.title, func(s string) bool { return len(s) > 5 })
	rec.Brand = firstText(doc, sel.brand, nil)
	rec.Description = firstText(doc, sel.description, nil)

	if s := firstText(doc, sel.price, func(s string) bool { _, ok := attributes.ParsePrice(s); return ok }); s != "" {
		if v, ok := attributes.ParsePrice(s); ok && v > 0 {
			rec.Price = &v
		}
	}
	if s := firstText(doc, sel.rating, func(s string) bool { _, ok := attributes.ParseRating(s); return ok }); s != "" {
		if v, ok := attributes.ParseRating(s); ok {
			rec.Rating = &v
		}
	}
	if s := firstText(doc, sel.reviews, func(s string) bool { _, ok := attributes.ParseCount(s); return ok }); s != "" {
		if v, ok := attributes.ParseCount(s); ok {
			rec.ReviewCount = &v
		}
	}

	rec.Images = images(doc, sel.images)
	rec.Bullets = allText(doc, sel.bullets, func(s string) bool { return len(s) > 10 }, maxBullets)
	rec.Breadcrumbs = allText(doc, sel.breadcrumbs, nil, 0)

	if pass >= 2 && rec.Description == "" {
		var content []string
		doc.Find("h1, h2, p, li").Each(func(_ int, s *goquery.Selection) {
			if t := clean(s.Text()); t != "" {
				content = append(content, t)
			}
		})
		rec.Description = strings.Join(content, "\n")
	}
	return rec, nil
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// firstText returns the first non-empty text (or content attribute) of the
// first selector whose match passes ok.
func firstText(doc *goquery.Document, list []string, ok func(string) bool) string {
	for _, q := range list {
		var found string
		doc.Find(q).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			t := clean(s.Text())
			if t == "" {
				t, _ = s.Attr("content")
				t = clean(t)
			}
			if t != "" && (ok == nil || ok(t)) {
				found = t
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

func allText(doc *goquery.Document, list []string, ok func(string) bool, limit int) []string {
	seen := map[string]bool{}
	var out []string
	for _, q := range list {
		doc.Find(q).Each(func(_ int, s *goquery.Selection) {
			t := clean(s.Text())
			if t == "" || seen[t] || (ok != nil && !ok(t)) {
				return
			}
			seen[t] = true
			out = append(out, t)
		})
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func images(doc *goquery.Document, list []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, q := range list {
		doc.Find(q).Each(func(_ int, s *goquery.Selection) {
			for _, attr := range []string{"data-old-hires", "src", "data-src", "content"} {
				v, _ := s.Attr(attr)
				if strings.HasPrefix(v, "http") && !seen[v] {
					seen[v] = true
					out = append(out, v)
					return
				}
			}
		})
	}
	if len(out) > maxImages {
		out = out[:maxImages]
	}
	return out
}
