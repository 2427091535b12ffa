package attributes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const breescapeTitle = "Breescape King 100% Cotton Sateen Sheet Set 600 Thread Count"

func TestMaterial_SpecificBeforeGeneral(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Luxury Egyptian Cotton Sheets", "Egyptian Cotton"},
		{"100% cotton sateen sheet set", "Cotton"},
		{"Viscose from Bamboo cooling sheets", "Bamboo Viscose"},
		{"bamboo sheets queen", "Bamboo"},
		{"Stonewashed French Linen", "Linen"},
		{"brushed microfiber sheet set", "Microfiber"},
		{"Poly-cotton blend sheets", "Cotton Blend"},
		{"plain sheet set", ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Material(tt.text))
		})
	}
}

func TestWeave(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"cotton sateen sheets", "Sateen"},
		{"satin pillowcase", "Sateen"},
		{"crisp percale", "Percale"},
		{"knit jersey sheets", "Jersey"},
		{"basket weave blanket", "Basketweave"},
		{"bath towel set", "Terry"},
		{"bamboo viscose sheets", "Bamboo Viscose"},
		{"cotton sheets", ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Weave(tt.text))
		})
	}
}

func TestSize(t *testing.T) {
	assert.Equal(t, "California King", Size("California King sheet set"))
	assert.Equal(t, "King", Size(breescapeTitle))
	assert.Equal(t, "Twin XL", Size("twin xl dorm sheets"))
	assert.Equal(t, "Queen", Size("QUEEN size"))
	assert.Equal(t, "", Size("sheets"))
}

func TestColor(t *testing.T) {
	assert.Equal(t, "Navy", Color("Navy Blue sheets"))
	assert.Equal(t, "Light Grey", Color("light gray percale"))
	assert.Equal(t, "White", Color("bright white"))
	assert.Equal(t, "", Color("fitted sheet"))
}

func TestThreadCount(t *testing.T) {
	tests := []struct {
		text   string
		want   int
		wantOK bool
	}{
		{breescapeTitle, 600, true},
		{"1000 thread count sheets", 1000, true},
		{"400TC percale", 400, true},
		{"Thread Count: 800", 800, true},
		{"1,200 thread count", 1200, true},
		{"20 thread count", 0, false},
		{"5000 thread count", 0, false},
		{"12000 thread count sheets", 0, false},
		{"tc 12345", 0, false},
		{"Thread Count: 80000", 0, false},
		{"TC: 1500", 1500, true},
		{"queen sheets", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ThreadCount(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBrand(t *testing.T) {
	assert.Equal(t, "Breescape", Brand(breescapeTitle))
	assert.Equal(t, "Mellanni", Brand("Sheets by Mellanni Queen Size"))
	assert.Equal(t, "Boll & Branch", Brand("Signature Hemmed Sheets from Boll & Branch"))
	assert.Equal(t, "Coop Home Goods", Brand("Coop Home Goods Original Pillow"))
	assert.Equal(t, "", Brand("queen sheet set"))
}

func TestCleanBrand(t *testing.T) {
	assert.Equal(t, "Breescape", CleanBrand("Visit the Breescape Store"))
	assert.Equal(t, "Threadmill", CleanBrand("Brand: Threadmill"))
	assert.Equal(t, "Coop Home Goods", CleanBrand("coop home goods"))
	assert.Equal(t, "", CleanBrand("Unknown"))
	assert.Equal(t, "", CleanBrand("Visit the"))
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "Bed Sheets", Category(breescapeTitle))
	assert.Equal(t, "Comforters & Duvets", Category("down alternative comforter"))
	assert.Equal(t, "Bath Towels", Category("cotton bath towels"))
	assert.Equal(t, DefaultCategory, Category("something else entirely"))
	// one keyword each: declaration order decides
	assert.Equal(t, "Bed Sheets", Category("sheet blanket"))
}

func TestCategoryFromBreadcrumbs(t *testing.T) {
	assert.Equal(t, "Bed Sheets", CategoryFromBreadcrumbs([]string{"Home & Kitchen", "Bedding", "Sheets & Pillowcases"}))
	assert.Equal(t, "", CategoryFromBreadcrumbs([]string{"Home & Kitchen"}))
}

func TestProductTypeAndKeyFeatures(t *testing.T) {
	assert.Equal(t, "Sheet Set", ProductType(breescapeTitle))
	assert.Equal(t, "Duvet Cover", ProductType("linen duvet cover"))
	assert.Equal(t, []string{"Cooling", "Deep Pocket"}, KeyFeatures("cooling sheets with 16 inch deep pocket"))
}

func TestExtractorsArePure(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, "Cotton", Material(breescapeTitle))
		assert.Equal(t, "Sateen", Weave(breescapeTitle))
	}
}

func TestParseHelpers(t *testing.T) {
	p, ok := ParsePrice("$1,299.99")
	assert.True(t, ok)
	assert.InDelta(t, 1299.99, p, 1e-9)

	r, ok := ParseRating("4.6 out of 5 stars")
	assert.True(t, ok)
	assert.InDelta(t, 4.6, r, 1e-9)

	_, ok = ParseRating("12 stars")
	assert.False(t, ok)

	c, ok := ParseCount("1,234 ratings")
	assert.True(t, ok)
	assert.Equal(t, 1234, c)
}
