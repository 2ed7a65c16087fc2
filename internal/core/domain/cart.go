package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidCartItem = errors.New("invalid cart item")

type CartItem struct {
	Product  Product `json:"product"`
	Size     float64 `json:"size"`
	Color    string  `json:"color"`
	Quantity int     `json:"quantity"`
}

// LineKey identifies a line item; a cart holds at most one item per key.
type LineKey struct {
	ProductID string
	Size      float64
	Color     string
}

func NewLineKey(productID string, size float64, color string) LineKey {
	return LineKey{ProductID: productID, Size: size, Color: color}
}

func (c CartItem) Key() LineKey {
	return NewLineKey(c.Product.ID, c.Size, c.Color)
}

func (c CartItem) LineTotal() decimal.Decimal {
	return c.Product.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

func (c CartItem) Validate() error {
	if c.Product.ID == "" {
		return fmt.Errorf("%w: missing product id", ErrInvalidCartItem)
	}
	if c.Quantity < 1 {
		return fmt.Errorf("%w: %s: quantity %d", ErrInvalidCartItem, c.Product.ID, c.Quantity)
	}
	if c.Product.Price.IsNegative() {
		return fmt.Errorf("%w: %s: negative price", ErrInvalidCartItem, c.Product.ID)
	}
	return nil
}

// Subtotal sums price x quantity over items, before shipping and tax.
func Subtotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Units is the number of pairs across items.
func Units(items []CartItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}

// ValidateCart checks every item and the one-item-per-key invariant.
func ValidateCart(items []CartItem) error {
	seen := make(map[LineKey]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, dup := seen[item.Key()]; dup {
			return fmt.Errorf("%w: duplicate line %s/%v/%s", ErrInvalidCartItem, item.Product.ID, item.Size, item.Color)
		}
		seen[item.Key()] = struct{}{}
	}
	return nil
}
