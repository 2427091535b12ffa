package compose

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"

	"enrichprj/internal/attributes"
	"enrichprj/internal/model"
)

var openings = []string{
	"A simply divine",
	"An absolutely exquisite",
	"A perfectly elegant",
	"A beautifully crafted",
	"A wonderfully luxurious",
	"A delightfully soft",
	"A truly exceptional",
	"A magnificently designed",
}

var endings = []string{
	"that will transform your bedroom into a sanctuary of comfort.",
	"perfect for creating that magazine-worthy bedroom aesthetic.",
	"that brings both style and substance to your home.",
	"ideal for those who appreciate the finer things in life.",
	"that elevates your sleep experience to new heights.",
	"perfect for the discerning homeowner who values quality.",
	"that combines timeless elegance with modern comfort.",
	"ideal for creating a sophisticated bedroom retreat.",
}

var materialPhrases = map[string]string{
	"cotton":          "premium cotton",
	"egyptian cotton": "fine Egyptian cotton",
	"organic cotton":  "organic cotton",
	"bamboo":          "silky bamboo",
	"linen":           "crisp linen",
	"silk":            "lustrous silk",
	"microfiber":      "ultra-soft microfiber",
}

var featurePhrases = map[string]string{
	"cooling":           "temperature-regulating",
	"moisture wicking":  "moisture-wicking",
	"wrinkle resistant": "wrinkle-resistant",
	"deep pocket":       "deep-pocket",
	"hypoallergenic":    "hypoallergenic",
	"organic":           "organic",
	"antimicrobial":     "naturally antimicrobial",
}

var (
	idTokenRe     = regexp.MustCompile(`\b[A-Z0-9]{10}\b`)
	amazonTokenRe = regexp.MustCompile(`(?i)\bamazon product\b`)
	spacesRe      = regexp.MustCompile(`\s+`)
)

// Summary returns two sentences describing p. Template choices depend only
// on the marketplace id, so re-running never changes the text.
func Summary(p *model.Product) string {
	material := strings.ToLower(p.Material)
	blob := attributes.Blob(append([]string{p.Title, p.Description}, p.Bullets...)...)
	noun := strings.ToLower(attributes.ProductType(p.Title))
	if noun == "" {
		noun = strings.ToLower(attributes.ProductType(blob))
	}
	keyFeatures := attributes.KeyFeatures(blob)

	if material == "" && noun == "" && p.Size == "" && p.ThreadCountValue() == 0 && len(keyFeatures) == 0 {
		return FallbackSummary(p.Title)
	}

	h := stableHash(p.MarketplaceID)
	opening := openings[h%uint32(len(openings))]
	ending := endings[(h/uint32(len(openings)))%uint32(len(endings))]

	first := []string{opening}
	switch {
	case material == "":
		first = append(first, "premium")
	case materialPhrases[material] != "":
		first = append(first, materialPhrases[material])
	default:
		first = append(first, material)
	}
	if len(keyFeatures) > 0 {
		first = append(first, featurePhrases[strings.ToLower(keyFeatures[0])])
	}
	if noun == "" {
		noun = "bedding"
	}
	first = append(first, noun)
	if p.Size != "" {
		first = append(first, "in "+p.Size)
	}
	if tc := p.ThreadCountValue(); tc > 0 {
		first = append(first, fmt.Sprintf("with a luxurious %d-thread count", tc))
	}

	var second []string
	if p.Color != "" {
		second = append(second, "Available in a lovely "+strings.ToLower(p.Color))
	}
	if b := attributes.CleanBrand(p.Brand); b != "" && len(b) < 30 {
		second = append(second, "from "+b)
	}
	switch r := p.RatingValue(); {
	case r >= 4.5:
		second = append(second, "with outstanding reviews,")
	case r >= 4.0:
		second = append(second, "with excellent reviews,")
	}
	if len(second) == 0 {
		second = append(second, "A choice")
	} else {
		last := second[len(second)-1]
		if !strings.HasSuffix(last, ",") {
			second[len(second)-1] = last + ","
		}
	}
	second = append(second, ending)

	return sentence(first) + " " + sentence(second)
}

// FallbackSummary is used when too little is known to fill the templates.
func FallbackSummary(title string) string {
	t := idTokenRe.ReplaceAllString(title, "")
	t = amazonTokenRe.ReplaceAllString(t, "")
	t = strings.TrimSpace(spacesRe.ReplaceAllString(t, " "))
	if t == "" {
		t = "bedding product"
	}
	return "A quality " + t + " perfect for your home."
}

func sentence(parts []string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	s := strings.Join(kept, " ")
	if s == "" {
		return ""
	}
	s = strings.ToUpper(s[:1]) + s[1:]
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}

func stableHash(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
