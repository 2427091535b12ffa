package extractor

import "enrichprj/internal/model"

// Merge combines two passes field by field. Pass 1 wins every tie.
//
//   - title, description: the longer string
//   - images: the list with more entries
//   - price: a positive value over an absent/non-positive one; of two
//     positives the larger (a pass may catch a sale strikethrough price)
//   - rating, review count: the larger value
//   - everything else: the non-empty value
func Merge(p1, p2 model.RawRecord) model.RawRecord {
	out := p1

	if len(p2.Title) > len(p1.Title) {
		out.Title = p2.Title
	}
	if len(p2.Description) > len(p1.Description) {
		out.Description = p2.Description
	}
	if len(p2.Images) > len(p1.Images) {
		out.Images = p2.Images
	}
	out.Price = betterPrice(p1.Price, p2.Price)
	out.Rating = largerFloat(p1.Rating, p2.Rating)
	out.ReviewCount = largerInt(p1.ReviewCount, p2.ReviewCount)

	if out.Brand == "" {
		out.Brand = p2.Brand
	}
	if len(out.Bullets) == 0 {
		out.Bullets = p2.Bullets
	}
	if len(out.Breadcrumbs) == 0 {
		out.Breadcrumbs = p2.Breadcrumbs
	}
	return out
}

func betterPrice(a, b *float64) *float64 {
	aOK := a != nil && *a > 0
	bOK := b != nil && *b > 0
	switch {
	case aOK && bOK:
		if *b > *a {
			return b
		}
		return a
	case bOK:
		return b
	case a != nil:
		return a
	}
	return b
}

func largerFloat(a, b *float64) *float64 {
	if a == nil {
		return b
	}
	if b != nil && *b > *a {
		return b
	}
	return a
}

func largerInt(a, b *int) *int {
	if a == nil {
		return b
	}
	if b != nil && *b > *a {
		return b
	}
	return a
}
