package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"enrichprj/internal/model"
)

func breescape() *model.Product {
	return &model.Product{
		MarketplaceID: "B0CZ7KBRPT",
		Title:         "Breescape King 100% Cotton Sateen Sheet Set 600 Thread Count",
		Brand:         "Breescape",
		Material:      "Cotton",
		WeaveType:     "Sateen",
		ThreadCount:   model.Int(600),
		Size:          "King",
		Color:         "White",
		Rating:        model.Float(4.6),
	}
}

func TestTitle_Breescape(t *testing.T) {
	got := Title(breescape())
	assert.Equal(t, "Breescape Cotton 600 Thread Sateen Sheet Set King", got)
	assert.True(t, strings.HasPrefix(got, "Breescape"))
	assert.Contains(t, got, "600 Thread")
}

func TestTitle_SkipsPlaceholdersAndDuplicates(t *testing.T) {
	p := &model.Product{
		Title:       "Percale Sheets Queen",
		Brand:       "Visit the",
		Material:    "Cotton",
		WeaveType:   "Percale",
		ThreadCount: model.Int(300),
		Size:        "Queen",
	}
	assert.Equal(t, "Cotton Percale Bed Sheet Queen", Title(p))

	p = &model.Product{Material: "Bamboo Viscose", WeaveType: "Bamboo"}
	assert.Equal(t, "Bamboo Viscose", Title(p))
}

func TestTitle_Fallbacks(t *testing.T) {
	assert.Equal(t, "Queen Sheet Set", Title(&model.Product{Size: "Queen"}))
	assert.Equal(t, "Bedding Set", Title(&model.Product{}))
	assert.Equal(t, "Bedding Set", Title(&model.Product{Brand: "Amazon"}))
}

func TestTitle_Budget(t *testing.T) {
	products := []*model.Product{
		breescape(),
		{
			Title:       "California Design Den Egyptian Cotton Percale Duvet Cover Set, Cooling, Deep Pocket",
			Brand:       "california design den",
			Material:    "Egyptian Cotton",
			WeaveType:   "Percale",
			ThreadCount: model.Int(1000),
			Size:        "California King",
		},
		{
			Brand:       "An Extraordinarily Long Brand Name Inc",
			Material:    "Organic Cotton",
			ThreadCount: model.Int(800),
			WeaveType:   "Sateen",
			Size:        "Twin XL",
			Title:       "organic hypoallergenic sheet set",
		},
	}
	for _, p := range products {
		got := Title(p)
		assert.LessOrEqual(t, len(got), MaxTitleChars, got)
		assert.LessOrEqual(t, len(strings.Fields(got)), MaxTitleWords, got)
		assert.Equal(t, strings.TrimSpace(got), got)
	}
}

func TestSummary(t *testing.T) {
	p := breescape()
	s := Summary(p)

	assert.Equal(t, s, Summary(p), "same product, same text")
	assert.True(t, strings.HasSuffix(s, "."))
	assert.Equal(t, 2, strings.Count(s, ". ")+1)
	assert.Contains(t, s, "premium cotton")
	assert.Contains(t, s, "600-thread count")
	assert.Contains(t, s, "from Breescape with outstanding reviews,")
	assert.Contains(t, s, "Available in a lovely white")

	var opened bool
	for _, o := range openings {
		if strings.HasPrefix(s, o) {
			opened = true
		}
	}
	assert.True(t, opened)
}

func TestSummary_WithoutSecondSentenceDetails(t *testing.T) {
	s := Summary(&model.Product{MarketplaceID: "B000000001", Material: "Linen", Size: "Full"})
	assert.Contains(t, s, "crisp linen bedding in Full.")
	assert.Contains(t, s, " A choice ")
}

func TestFallbackSummary(t *testing.T) {
	assert.Equal(t, "A quality bedding product perfect for your home.", Summary(&model.Product{Title: "Amazon Product B0CZ7KBRPT"}))
	assert.Equal(t, "A quality Plush Throw perfect for your home.", FallbackSummary("Plush Throw B0CZ7KBRPT"))
}
