package domain

import (
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

var ErrInvalidProduct = errors.New("invalid product")

type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Brand         string           `json:"brand"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Image         string           `json:"image"`
	Category      string           `json:"category"`
	Sizes         []float64        `json:"sizes"`
	Colors        []string         `json:"colors"`
	Description   string           `json:"description"`
	Rating        float64          `json:"rating"`
	Reviews       int              `json:"reviews"`
}

func (p Product) HasSize(size float64) bool {
	return slices.Contains(p.Sizes, size)
}

func (p Product) HasColor(color string) bool {
	return slices.Contains(p.Colors, color)
}

// DefaultColor is the color preselected on the detail view.
func (p Product) DefaultColor() string {
	if len(p.Colors) == 0 {
		return ""
	}
	return p.Colors[0]
}

// DiscountPercent reports the rounded markdown from OriginalPrice, if any.
func (p Product) DiscountPercent() (int, bool) {
	if p.OriginalPrice == nil || !p.OriginalPrice.GreaterThan(p.Price) {
		return 0, false
	}
	off := p.OriginalPrice.Sub(p.Price).Div(*p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(off.Round(0).IntPart()), true
}

func (p Product) Validate() error {
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidProduct)
	case p.Name == "":
		return fmt.Errorf("%w: %s: missing name", ErrInvalidProduct, p.ID)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: %s: negative price", ErrInvalidProduct, p.ID)
	case p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("%w: %s: rating %v out of range", ErrInvalidProduct, p.ID, p.Rating)
	case p.Reviews < 0:
		return fmt.Errorf("%w: %s: negative review count", ErrInvalidProduct, p.ID)
	}
	return nil
}
