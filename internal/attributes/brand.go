package attributes

import (
	"regexp"
	"strings"
)

// knownBrands is checked when no "by/from <Brand>" phrase is present.
// Longer names come first so "Coop Home Goods" beats "Coop".
var knownBrands = []string{
	"California Design Den",
	"Coop Home Goods",
	"Boll & Branch",
	"Bamboo Bay",
	"Brooklinen",
	"Breescape",
	"Threadmill",
	"Parachute",
	"Mellanni",
	"Coyuchi",
	"Chateau",
	"Sferra",
	"Frette",
	"Buffy",
	"Snowe",
}

var (
	byBrandRe = regexp.MustCompile(`\b(?:[Bb]y|[Ff]rom)\s+((?:[A-Z][\w&'.-]*)(?:\s+(?:&\s+)?[A-Z][\w&'.-]*){0,2})`)

	// Trailing words that are attributes, not part of a brand name.
	brandStopWords = map[string]bool{
		"king": true, "queen": true, "twin": true, "full": true, "california": true,
		"cotton": true, "bamboo": true, "linen": true, "sheet": true, "sheets": true,
		"set": true, "sets": true, "bedding": true, "store": true, "the": true,
		"size": true, "piece": true, "pack": true,
	}

	placeholderBrands = map[string]bool{
		"":          true,
		"unknown":   true,
		"visit the": true,
		"generic":   true,
		"n/a":       true,
		"amazon":    true,
		"premium":   true,
	}

	bylineRe = regexp.MustCompile(`(?i)^\s*(?:visit the\s+|brand:\s*)?(.*?)(?:\s+store)?\s*$`)

	brandDisplay = map[string]string{
		"coop home goods":       "Coop Home Goods",
		"coop":                  "Coop Home Goods",
		"boll and branch":       "Boll & Branch",
		"boll & branch":         "Boll & Branch",
		"california design den": "California Design Den",
		"cdd":                   "California Design Den",
	}
)

// Brand extracts a brand from text with its original casing preserved.
func Brand(text string) string {
	if m := byBrandRe.FindStringSubmatch(text); m != nil {
		words := strings.Fields(m[1])
		for len(words) > 0 && brandStopWords[strings.ToLower(words[len(words)-1])] {
			words = words[:len(words)-1]
		}
		if len(words) > 0 && !brandStopWords[strings.ToLower(words[0])] {
			return strings.Join(words, " ")
		}
	}
	lower := strings.ToLower(text)
	for _, b := range knownBrands {
		if strings.Contains(lower, strings.ToLower(b)) {
			return b
		}
	}
	return ""
}

// CleanBrand normalises a scraped byline ("Visit the Breescape Store")
// into a display name. Placeholders come back as "".
func CleanBrand(raw string) string {
	m := bylineRe.FindStringSubmatch(raw)
	name := strings.TrimSpace(raw)
	if m != nil {
		name = strings.TrimSpace(m[1])
	}
	if IsPlaceholderBrand(name) {
		return ""
	}
	if d, ok := brandDisplay[strings.ToLower(name)]; ok {
		return d
	}
	if name == strings.ToLower(name) || name == strings.ToUpper(name) {
		return titleCase(name)
	}
	return name
}

// IsPlaceholderBrand reports whether brand carries no information.
func IsPlaceholderBrand(brand string) bool {
	return placeholderBrands[strings.ToLower(strings.TrimSpace(brand))]
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		if w == "&" || w == "and" && i > 0 {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
