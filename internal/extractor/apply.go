package extractor

import (
	"strings"

	"enrichprj/internal/attributes"
	"enrichprj/internal/model"
)

// Apply projects a merged record onto p and derives the text attributes.
// Values already on p are only replaced by non-empty extracted ones.
func Apply(p *model.Product, rec model.RawRecord) {
	if rec.Title != "" {
		p.Title = rec.Title
	}
	if rec.Description != "" {
		p.Description = rec.Description
	} else if p.Description == "" && len(rec.Bullets) > 0 {
		p.Description = strings.Join(rec.Bullets, " ")
	}
	if len(rec.Bullets) > 0 {
		p.Bullets = rec.Bullets
	}
	if rec.Price != nil && *rec.Price > 0 {
		p.Price = rec.Price
	}
	if rec.Rating != nil {
		p.Rating = rec.Rating
	}
	if rec.ReviewCount != nil {
		p.ReviewCount = rec.ReviewCount
	}
	if len(rec.Images) > 0 {
		p.Images = rec.Images
		p.PrimaryImageRef = rec.Images[0]
	}

	blob := attributes.Blob(append([]string{p.Title, p.Description}, p.Bullets...)...)

	if b := attributes.CleanBrand(rec.Brand); b != "" {
		p.Brand = b
	} else if b := attributes.Brand(p.Title + " " + p.Description); b != "" && p.Brand == "" {
		p.Brand = b
	}

	setIfFound(&p.Material, titleFirst(attributes.Material, p.Title, blob))
	setIfFound(&p.WeaveType, titleFirst(attributes.Weave, p.Title, blob))
	setIfFound(&p.Color, titleFirst(attributes.Color, p.Title, blob))
	setIfFound(&p.Size, titleFirst(attributes.Size, p.Title, blob))

	if tc, ok := attributes.ThreadCount(p.Title); ok {
		p.ThreadCount = model.Int(tc)
	} else if tc, ok := attributes.ThreadCount(blob); ok {
		p.ThreadCount = model.Int(tc)
	}

	if c := attributes.CategoryFromBreadcrumbs(rec.Breadcrumbs); c != "" {
		p.Category = c
	} else {
		p.Category = attributes.Category(blob)
	}
}

// titleFirst prefers a match in the title; bullets often mention
// compatible sizes or alternative materials.
func titleFirst(fn func(string) string, title, blob string) string {
	if v := fn(title); v != "" {
		return v
	}
	return fn(blob)
}

func setIfFound(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
