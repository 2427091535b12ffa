package attributes

import (
	"regexp"
	"strconv"
	"strings"
)

// Plausible thread count range; matches outside it are ignored.
const (
	MinThreadCount = 50
	MaxThreadCount = 2000
)

// Captures are bounded by non-digits so "12000" never reads as "2000".
var threadCountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:^|\D)(\d{2,4})\s*[- ]?\s*thread\s*count`),
	regexp.MustCompile(`(?:^|\D)(\d{2,4})\s*tc\b`),
	regexp.MustCompile(`(?:^|\D)(\d{2,4})\s*[- ]?\s*threads?\b`),
	regexp.MustCompile(`thread\s*count[:\s]*(\d{2,4})(?:\D|$)`),
	regexp.MustCompile(`\btc[:\s]*(\d{2,4})(?:\D|$)`),
}

// ThreadCount returns the first plausible thread count in text.
func ThreadCount(text string) (int, bool) {
	lower := strings.ToLower(strings.ReplaceAll(text, ",", ""))
	for _, re := range threadCountPatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if n >= MinThreadCount && n <= MaxThreadCount {
				return n, true
			}
		}
	}
	return 0, false
}

var (
	priceRe  = regexp.MustCompile(`\d+(?:\.\d+)?`)
	ratingRe = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	countRe  = regexp.MustCompile(`(\d+)`)
)

// ParsePrice reads the first decimal number in s ("$1,299.99" -> 1299.99).
func ParsePrice(s string) (float64, bool) {
	m := priceRe.FindString(strings.ReplaceAll(s, ",", ""))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseRating reads a rating such as "4.6 out of 5 stars"; values above 5 are rejected.
func ParseRating(s string) (float64, bool) {
	m := ratingRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v < 0 || v > 5 {
		return 0, false
	}
	return v, true
}

// ParseCount reads an integer such as "1,234 ratings".
func ParseCount(s string) (int, bool) {
	m := countRe.FindStringSubmatch(strings.ReplaceAll(s, ",", ""))
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}
