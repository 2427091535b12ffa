package model

import "fmt"

type Polarity int

const (
	Pro Polarity = iota
	Con
	Info
)

func (p Polarity) String() string {
	switch p {
	case Pro:
		return "pro"
	case Con:
		return "con"
	default:
		return "info"
	}
}

// ParsePolarity is the inverse of Polarity.String.
func ParsePolarity(s string) (Polarity, error) {
	switch s {
	case "pro":
		return Pro, nil
	case "con":
		return Con, nil
	case "info":
		return Info, nil
	}
	return Info, fmt.Errorf("unknown polarity %q", s)
}

type Category string

const (
	CategoryQuality        Category = "quality"
	CategoryComfort        Category = "comfort"
	CategoryCare           Category = "care"
	CategoryDesign         Category = "design"
	CategoryValue          Category = "value"
	CategorySustainability Category = "sustainability"
	CategorySafety         Category = "safety"
	CategoryOther          Category = "other"
)

type Importance string

const (
	ImportanceCritical Importance = "critical"
	ImportanceHigh     Importance = "high"
	ImportanceMedium   Importance = "medium"
	ImportanceLow      Importance = "low"
	ImportanceMinor    Importance = "minor"
)

// Impact bounds for Feature.ImpactScore.
const (
	MinImpact = -1.2
	MaxImpact = 1.2
)

// Feature is one generated claim about a product.
type Feature struct {
	ID           string
	ProductID    string
	Text         string
	Polarity     Polarity
	Category     Category
	Importance   Importance
	ImpactScore  float64
	Provenance   string
	DisplayOrder int
}
