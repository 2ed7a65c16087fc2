// Package events publishes order lifecycle events.
package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rl1809/storefront/internal/core/domain"
)

const TypeOrderPlaced = "order.placed"

type OrderPlaced struct {
	Type      string             `json:"type"`
	OrderID   string             `json:"orderId"`
	UserID    string             `json:"userId"`
	Total     decimal.Decimal    `json:"total"`
	Status    domain.OrderStatus `json:"status"`
	ItemCount int                `json:"itemCount"`
	PlacedAt  time.Time          `json:"placedAt"`
}

func NewOrderPlaced(order domain.Order) OrderPlaced {
	return OrderPlaced{
		Type:      TypeOrderPlaced,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Total:     order.Total,
		Status:    order.Status,
		ItemCount: order.ItemCount(),
		PlacedAt:  order.CreatedAt,
	}
}
