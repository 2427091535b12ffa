package model

// RawRecord is the unstructured field bag returned by the fetch collaborator.
// Any field may be empty.
type RawRecord struct {
	Title       string
	Brand       string
	Description string
	Bullets     []string
	Breadcrumbs []string
	Images      []string
	Price       *float64
	Rating      *float64
	ReviewCount *int
}

// Empty reports whether nothing at all was extracted.
func (r *RawRecord) Empty() bool {
	if r == nil {
		return true
	}
	return r.Title == "" && r.Brand == "" && r.Description == "" &&
		len(r.Bullets) == 0 && len(r.Images) == 0 && len(r.Breadcrumbs) == 0 &&
		r.Price == nil && r.Rating == nil && r.ReviewCount == nil
}

// ExtractionAttempt is one pass over a source. It is never persisted.
type ExtractionAttempt struct {
	Pass         int
	Fields       RawRecord
	QualityScore float64
	Issues       []string
}
