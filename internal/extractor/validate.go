package extractor

import (
	"strings"

	"enrichprj/internal/model"
)

// Each failed check costs CheckPenalty points; a score below
// QualityThreshold requests a second pass.
const (
	CheckPenalty     = 25.0
	QualityThreshold = 75.0
	MinTitleLength   = 10
	MinDescLength    = 50
	MinImages        = 2
)

// Issue names reported on an ExtractionAttempt.
const (
	IssueMissingTitle       = "missing_title"
	IssuePoorTitle          = "poor_title"
	IssueMissingPrice       = "missing_price"
	IssueInvalidPrice       = "invalid_price"
	IssueMissingImages      = "missing_images"
	IssueInsufficientImages = "insufficient_images"
	IssuePoorDescription    = "poor_description"
)

var placeholderTitleTokens = []string{
	"unknown product",
	"amazon product",
	"robot check",
	"page not found",
	"untitled",
}

// Validation is the outcome of scoring one pass.
type Validation struct {
	QualityScore float64
	Issues       []string
	NeedsPass2   bool
}

// Validate scores rec with four equally weighted checks: title, price,
// images and description. A missing essential field (title, price, images)
// always requests a second pass.
func Validate(rec model.RawRecord) Validation {
	var issues []string
	essentialMissing := false

	switch {
	case strings.TrimSpace(rec.Title) == "":
		issues = append(issues, IssueMissingTitle)
		essentialMissing = true
	case len(rec.Title) < MinTitleLength || hasPlaceholder(rec.Title):
		issues = append(issues, IssuePoorTitle)
	}

	switch {
	case rec.Price == nil:
		issues = append(issues, IssueMissingPrice)
		essentialMissing = true
	case *rec.Price <= 0:
		issues = append(issues, IssueInvalidPrice)
	}

	switch {
	case len(rec.Images) == 0:
		issues = append(issues, IssueMissingImages)
		essentialMissing = true
	case len(rec.Images) < MinImages:
		issues = append(issues, IssueInsufficientImages)
	}

	if len(rec.Description) < MinDescLength {
		issues = append(issues, IssuePoorDescription)
	}

	score := 100 - CheckPenalty*float64(len(issues))
	return Validation{
		QualityScore: score,
		Issues:       issues,
		NeedsPass2:   score < QualityThreshold || essentialMissing,
	}
}

func hasPlaceholder(title string) bool {
	lower := strings.ToLower(title)
	for _, tok := range placeholderTitleTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}
