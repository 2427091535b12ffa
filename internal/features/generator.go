// Package features turns a product's attributes into ranked, deduplicated
// pro/con claims.
package features

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"enrichprj/internal/attributes"
	"enrichprj/internal/model"
)

// Limits caps the number of claims kept per polarity.
type Limits struct {
	MaxPros  int
	MaxCons  int
	MaxInfos int
}

var DefaultLimits = Limits{MaxPros: 10, MaxCons: 6, MaxInfos: 3}

type Generator struct {
	Limits Limits
}

func New(l Limits) *Generator {
	if l.MaxPros <= 0 {
		l.MaxPros = DefaultLimits.MaxPros
	}
	if l.MaxCons <= 0 {
		l.MaxCons = DefaultLimits.MaxCons
	}
	if l.MaxInfos <= 0 {
		l.MaxInfos = DefaultLimits.MaxInfos
	}
	return &Generator{Limits: l}
}

// facts is the normalised view of a product the rules read.
type facts struct {
	text     string
	material string
	weave    string
	size     string
	brand    string
	tc       int
	price    float64
	rating   float64
	reviews  int

	hasReviews bool
}

func newFacts(p *model.Product) facts {
	return facts{
		text:       attributes.Blob(append([]string{p.Title, p.Description}, p.Bullets...)...),
		material:   strings.ToLower(p.Material),
		weave:      strings.ToLower(p.WeaveType),
		size:       strings.ToLower(p.Size),
		brand:      strings.ToLower(p.Brand),
		tc:         p.ThreadCountValue(),
		price:      p.PriceValue(),
		rating:     p.RatingValue(),
		reviews:    p.ReviewCountValue(),
		hasReviews: p.ReviewCount != nil,
	}
}

func (f facts) has(words ...string) bool {
	for _, w := range words {
		if strings.Contains(f.text, w) {
			return true
		}
	}
	return false
}

// sheet collects claims in rule order and drops repeated text.
type sheet struct {
	pros, cons, infos []model.Feature
	seen              map[string]bool
}

func (s *sheet) add(pol model.Polarity, prov, text string, cat model.Category, imp model.Importance, impact float64) {
	if s.seen[text] {
		return
	}
	s.seen[text] = true

	f := model.Feature{
		Text:        text,
		Polarity:    pol,
		Category:    cat,
		Importance:  imp,
		ImpactScore: clamp(impact),
		Provenance:  prov,
	}
	switch pol {
	case model.Pro:
		s.pros = append(s.pros, f)
	case model.Con:
		s.cons = append(s.cons, f)
	default:
		s.infos = append(s.infos, f)
	}
}

func (s *sheet) pro(prov, text string, cat model.Category, imp model.Importance, impact float64) {
	s.add(model.Pro, prov, text, cat, imp, impact)
}

func (s *sheet) con(prov, text string, cat model.Category, imp model.Importance, impact float64) {
	s.add(model.Con, prov, text, cat, imp, impact)
}

// Generate returns the full claim set for p. The same product always yields
// the same features, ids included.
func (g *Generator) Generate(p *model.Product) []model.Feature {
	f := newFacts(p)
	s := &sheet{seen: map[string]bool{}}

	for _, rule := range proRules {
		rule(f, s)
	}
	for _, rule := range conRules {
		rule(f, s)
	}

	// caps keep rule priority; kept claims are then shown strongest first
	pros := head(s.pros, g.Limits.MaxPros)
	cons := head(s.cons, g.Limits.MaxCons)
	sort.SliceStable(pros, func(i, j int) bool { return pros[i].ImpactScore > pros[j].ImpactScore })
	sort.SliceStable(cons, func(i, j int) bool { return cons[i].ImpactScore < cons[j].ImpactScore })

	out := make([]model.Feature, 0, g.Limits.MaxPros+g.Limits.MaxCons+g.Limits.MaxInfos)
	out = append(out, pros...)
	out = append(out, cons...)
	out = append(out, head(s.infos, g.Limits.MaxInfos)...)

	for i := range out {
		out[i].ProductID = p.MarketplaceID
		out[i].ID = FeatureID(p.MarketplaceID, out[i].Text)
		out[i].DisplayOrder = i + 1
	}
	return out
}

// FeatureID is stable for a (product, text) pair.
func FeatureID(productID, text string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(productID+"|"+text)).String()
}

// Split partitions features by polarity, keeping order.
func Split(fs []model.Feature) (pros, cons, infos []model.Feature) {
	for _, f := range fs {
		switch f.Polarity {
		case model.Pro:
			pros = append(pros, f)
		case model.Con:
			cons = append(cons, f)
		default:
			infos = append(infos, f)
		}
	}
	return pros, cons, infos
}

func head(fs []model.Feature, n int) []model.Feature {
	if len(fs) > n {
		return fs[:n]
	}
	return fs
}

func clamp(v float64) float64 {
	switch {
	case v < model.MinImpact:
		return model.MinImpact
	case v > model.MaxImpact:
		return model.MaxImpact
	}
	return v
}
