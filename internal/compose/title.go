// Package compose builds the display title and the two-sentence summary
// for a product.
package compose

import (
	"fmt"
	"strings"

	"enrichprj/internal/attributes"
	"enrichprj/internal/model"
)

const (
	MaxTitleWords = 10
	MaxTitleChars = 50

	// Below this thread count the number is not worth a title slot.
	MinTitleThreadCount = 400
)

// Title assembles brand, material, thread count, weave, product type, size
// and one key feature, in that order, for as long as the budget allows.
// It stops at the first component that would overflow.
func Title(p *model.Product) string {
	var (
		words []string
		chars int
	)
	for _, c := range titleComponents(p) {
		cw := strings.Fields(c)
		n := len(c)
		if len(words) > 0 {
			n++
		}
		if len(words)+len(cw) > MaxTitleWords || chars+n > MaxTitleChars {
			break
		}
		words = append(words, cw...)
		chars += n
	}

	if len(words) < 2 {
		if p.Size != "" {
			return p.Size + " Sheet Set"
		}
		return "Bedding Set"
	}
	return strings.Join(words, " ")
}

func titleComponents(p *model.Product) []string {
	blob := attributes.Blob(append([]string{p.Title, p.Description}, p.Bullets...)...)
	var out []string

	if b := attributes.CleanBrand(p.Brand); b != "" && len(b) < 30 {
		out = append(out, b)
	}
	if p.Material != "" {
		out = append(out, p.Material)
	}
	if tc := p.ThreadCountValue(); tc >= MinTitleThreadCount {
		out = append(out, fmt.Sprintf("%d Thread", tc))
	}
	if w := p.WeaveType; w != "" && !strings.Contains(strings.ToLower(p.Material), strings.ToLower(w)) {
		out = append(out, w)
	}
	if t := attributes.ProductType(p.Title); t != "" {
		out = append(out, t)
	} else if t := attributes.ProductType(blob); t != "" {
		out = append(out, t)
	}
	if p.Size != "" {
		out = append(out, p.Size)
	}
	for _, f := range attributes.KeyFeatures(blob) {
		if !containsFold(out, f) {
			out = append(out, f)
			break
		}
	}
	return out
}

func containsFold(parts []string, s string) bool {
	for _, p := range parts {
		if strings.Contains(strings.ToLower(p), strings.ToLower(s)) {
			return true
		}
	}
	return false
}
