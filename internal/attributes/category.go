package attributes

import (
	"regexp"
	"strings"
)

// DefaultCategory is returned when no keyword scores.
const DefaultCategory = "General Bedding"

type categoryKeywords struct {
	name     string
	keywords []*regexp.Regexp
}

func keywords(words ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		out[i] = regexp.MustCompile(`\b(?:` + w + `)\b`)
	}
	return out
}

// Declaration order breaks ties.
var categoryTable = []categoryKeywords{
	{"Bed Sheets", keywords(`sheets?`, `sheet sets?`, `fitted`, `flat sheets?`, `pillow ?cases?`, `deep pockets?`)},
	{"Comforters & Duvets", keywords(`comforters?`, `duvets?`, `quilts?`, `bedspreads?`, `coverlets?`, `down alternative`)},
	{"Pillows", keywords(`pillows?`, `pillow inserts?`, `shredded memory foam`, `side sleepers?`)},
	{"Blankets & Throws", keywords(`blankets?`, `throws?`, `weighted`, `fleece`)},
	{"Mattress Accessories", keywords(`mattress`, `protectors?`, `toppers?`, `mattress pads?`, `waterproof`)},
	{"Bath Towels", keywords(`towels?`, `bath`, `washcloths?`, `terry`)},
	{"Sleepwear", keywords(`pajamas?`, `sleepwear`, `robes?`, `nightgowns?`)},
}

// Category scores text against the keyword table; the highest score wins.
func Category(text string) string {
	lower := strings.ToLower(text)
	best, bestScore := DefaultCategory, 0
	for _, c := range categoryTable {
		score := 0
		for _, kw := range c.keywords {
			score += len(kw.FindAllStringIndex(lower, -1))
		}
		if score > bestScore {
			best, bestScore = c.name, score
		}
	}
	return best
}

// Marketplace breadcrumb -> catalog category.
var breadcrumbCategories = map[string]string{
	"sheet & pillowcase sets": "Bed Sheets",
	"sheets & pillowcases":    "Bed Sheets",
	"bed sheets":              "Bed Sheets",
	"fitted sheets":           "Bed Sheets",
	"flat sheets":             "Bed Sheets",
	"pillowcases":             "Bed Sheets",
	"bed pillows":             "Pillows",
	"pillows":                 "Pillows",
	"pillow protectors":       "Pillows",
	"comforters":              "Comforters & Duvets",
	"duvet covers":            "Comforters & Duvets",
	"duvet inserts":           "Comforters & Duvets",
	"quilts":                  "Comforters & Duvets",
	"bedspreads":              "Comforters & Duvets",
	"blankets":                "Blankets & Throws",
	"throws":                  "Blankets & Throws",
	"weighted blankets":       "Blankets & Throws",
	"mattress protectors":     "Mattress Accessories",
	"mattress pads":           "Mattress Accessories",
	"mattress toppers":        "Mattress Accessories",
	"bath towels":             "Bath Towels",
	"bath sheets":             "Bath Towels",
	"hand towels":             "Bath Towels",
	"washcloths":              "Bath Towels",
	"sleepwear":               "Sleepwear",
	"pajamas":                 "Sleepwear",
}

// CategoryFromBreadcrumbs maps the most specific known crumb to a category.
func CategoryFromBreadcrumbs(crumbs []string) string {
	for i := len(crumbs) - 1; i >= 0; i-- {
		if c, ok := breadcrumbCategories[strings.ToLower(strings.TrimSpace(crumbs[i]))]; ok {
			return c
		}
	}
	return ""
}
