package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidOrder = errors.New("invalid order")

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

type ShippingAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
	Phone   string `json:"phone"`
}

func (a ShippingAddress) Complete() bool {
	return a.Name != "" && a.Address != "" && a.City != "" && a.ZipCode != "" && a.Phone != ""
}

// Order is immutable once placed. Items is a snapshot of the cart at checkout.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []CartItem      `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"date"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

func (o Order) ItemCount() int {
	return Units(o.Items)
}

func (o Order) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidOrder)
	}
	if o.UserID == "" {
		return fmt.Errorf("%w: %s: missing user id", ErrInvalidOrder, o.ID)
	}
	if !o.Status.Valid() {
		return fmt.Errorf("%w: %s: unknown status %q", ErrInvalidOrder, o.ID, o.Status)
	}
	if o.Total.IsNegative() {
		return fmt.Errorf("%w: %s: negative total", ErrInvalidOrder, o.ID)
	}
	for _, item := range o.Items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidOrder, o.ID, err)
		}
	}
	return nil
}

// FilterOrdersByUser keeps the orders owned by userID, preserving order.
func FilterOrdersByUser(orders []Order, userID string) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}
