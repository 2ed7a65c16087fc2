package catalog

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rl1809/storefront/internal/core/domain"
)

var (
	ErrUnknownPriceBucket = errors.New("unknown price bucket")
	ErrUnknownSortKey     = errors.New("unknown sort key")
)

type PriceBucket string

const (
	PriceAll      PriceBucket = "All"
	PriceUnder50  PriceBucket = "under50"
	Price50To100  PriceBucket = "50-100"
	Price100To150 PriceBucket = "100-150"
	PriceOver150  PriceBucket = "over150"
)

var (
	fifty           = decimal.NewFromInt(50)
	oneHundred      = decimal.NewFromInt(100)
	oneHundredFifty = decimal.NewFromInt(150)
)

// Contains reports whether price falls in the bucket. Unknown buckets pass.
func (b PriceBucket) Contains(price decimal.Decimal) bool {
	switch b {
	case PriceUnder50:
		return price.LessThan(fifty)
	case Price50To100:
		return price.GreaterThanOrEqual(fifty) && price.LessThan(oneHundred)
	case Price100To150:
		return price.GreaterThanOrEqual(oneHundred) && price.LessThan(oneHundredFifty)
	case PriceOver150:
		return price.GreaterThanOrEqual(oneHundredFifty)
	}
	return true
}

func ParsePriceBucket(s string) (PriceBucket, error) {
	switch b := PriceBucket(s); b {
	case "", PriceAll:
		return PriceAll, nil
	case PriceUnder50, Price50To100, Price100To150, PriceOver150:
		return b, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPriceBucket, s)
}

type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
)

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case "", SortFeatured:
		return SortFeatured, nil
	case SortPriceLow, SortPriceHigh, SortRating:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

// Filter is the full filter state of the product list. Zero values pass
// everything through and keep catalog order.
type Filter struct {
	Query    string
	Category string
	Brand    string
	Price    PriceBucket
	Sort     SortKey
}

// Apply derives a new list from products. All predicates compose by AND.
// products is never modified.
func Apply(products []domain.Product, f Filter) []domain.Product {
	query := strings.ToLower(f.Query)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if !selected(f.Category, p.Category) || !selected(f.Brand, p.Brand) {
			continue
		}
		if !f.Price.Contains(p.Price) {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortPriceLow:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return a.Price.Cmp(b.Price) })
	case SortPriceHigh:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return b.Price.Cmp(a.Price) })
	case SortRating:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return cmp.Compare(b.Rating, a.Rating) })
	}
	return out
}

func matchesQuery(p domain.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Brand), query) ||
		strings.Contains(strings.ToLower(p.Category), query)
}

func selected(want, got string) bool {
	return want == "" || want == All || want == got
}
