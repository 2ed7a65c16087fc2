package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/storefront/internal/core/domain"
)

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApply_NoFilterKeepsCatalogOrder(t *testing.T) {
	products := Default().Products()

	got := Apply(products, Filter{})

	assert.Equal(t, ids(products), ids(got))
}

func TestApply_CategoryAllMatchesUnfiltered(t *testing.T) {
	products := Default().Products()

	got := Apply(products, Filter{Category: All, Brand: All, Price: PriceAll, Sort: SortFeatured})

	assert.Len(t, got, len(products))
}

func TestApply_SpecificCategory(t *testing.T) {
	got := Default().Filter(Filter{Category: "Running"})

	require.NotEmpty(t, got)
	for _, p := range got {
		assert.Equal(t, "Running", p.Category)
	}
}

func TestApply_BrandIsExactMatch(t *testing.T) {
	got := Default().Filter(Filter{Brand: "nike"})
	assert.Empty(t, got)

	got = Default().Filter(Filter{Brand: "Nike"})
	assert.Equal(t, []string{"1", "5", "9"}, ids(got))
}

func TestApply_QueryIsCaseInsensitiveOverNameBrandCategory(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{"4", "11"}, ids(c.Filter(Filter{Query: "VANS"})))
	assert.Equal(t, []string{"8", "9"}, ids(c.Filter(Filter{Query: "basket"})))
	assert.Equal(t, []string{"5"}, ids(c.Filter(Filter{Query: "force"})))
	assert.Empty(t, c.Filter(Filter{Query: "sandal"}))
}

func TestApply_PriceBuckets(t *testing.T) {
	c := Default()
	tests := []struct {
		bucket PriceBucket
		want   []string
	}{
		{PriceUnder50, []string{"7", "11"}},
		{Price50To100, []string{"3", "4", "8", "10"}},
		{Price100To150, []string{"1", "5"}},
		{PriceOver150, []string{"2", "6", "9", "12"}},
	}

	total := 0
	for _, tt := range tests {
		t.Run(string(tt.bucket), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(c.Filter(Filter{Price: tt.bucket})))
		})
		total += len(tt.want)
	}
	assert.Equal(t, c.Len(), total)
}

func TestPriceBucket_Boundaries(t *testing.T) {
	d := decimal.RequireFromString

	assert.True(t, PriceUnder50.Contains(d("49.99")))
	assert.False(t, PriceUnder50.Contains(d("50")))
	assert.True(t, Price50To100.Contains(d("50")))
	assert.False(t, Price50To100.Contains(d("100")))
	assert.True(t, Price100To150.Contains(d("100")))
	assert.False(t, Price100To150.Contains(d("150")))
	assert.True(t, PriceOver150.Contains(d("150")))
	assert.True(t, PriceBucket("bogus").Contains(d("1")))
}

func TestApply_FiltersComposeByAnd(t *testing.T) {
	got := Default().Filter(Filter{Query: "nike", Category: "Casual", Price: Price100To150})

	assert.Equal(t, []string{"5"}, ids(got))
}

func TestApply_SortOrders(t *testing.T) {
	products := Default().Products()

	low := Apply(products, Filter{Sort: SortPriceLow})
	for i := 1; i < len(low); i++ {
		assert.False(t, low[i].Price.LessThan(low[i-1].Price), "price-low not non-decreasing at %d", i)
	}

	high := Apply(products, Filter{Sort: SortPriceHigh})
	for i := 1; i < len(high); i++ {
		assert.False(t, high[i].Price.GreaterThan(high[i-1].Price), "price-high not non-increasing at %d", i)
	}

	rated := Apply(products, Filter{Sort: SortRating})
	for i := 1; i < len(rated); i++ {
		assert.LessOrEqual(t, rated[i].Rating, rated[i-1].Rating)
	}
}

func TestApply_RatingSortIsStable(t *testing.T) {
	got := Default().Filter(Filter{Sort: SortRating})

	// 2 and 5 share the top rating; catalog order breaks the tie.
	assert.Equal(t, []string{"2", "5"}, ids(got[:2]))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	products := Default().Products()
	before := ids(products)

	_ = Apply(products, Filter{Sort: SortPriceHigh})
	_ = Apply(products, Filter{Sort: SortRating})

	assert.Equal(t, before, ids(products))
}

func TestParseSortKeyAndBucket(t *testing.T) {
	k, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortFeatured, k)

	_, err = ParseSortKey("newest")
	assert.ErrorIs(t, err, ErrUnknownSortKey)

	b, err := ParsePriceBucket("100-150")
	require.NoError(t, err)
	assert.Equal(t, Price100To150, b)

	_, err = ParsePriceBucket("cheap")
	assert.ErrorIs(t, err, ErrUnknownPriceBucket)
}
