package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/port"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrIncompleteAddress = errors.New("shipping address is incomplete")
	ErrIncompletePayment = errors.New("payment details are incomplete")
)

// Pricing turns a cart subtotal into shipping, tax and a grand total.
type Pricing struct {
	// Orders strictly above the threshold ship free.
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	TaxRate               decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: decimal.NewFromInt(100),
		ShippingFee:           decimal.RequireFromString("9.99"),
		TaxRate:               decimal.RequireFromString("0.08"),
	}
}

type Quote struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Shipping   decimal.Decimal `json:"shipping"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
	// FreeShippingRemaining is how much more would waive shipping, zero once free.
	FreeShippingRemaining decimal.Decimal `json:"freeShippingRemaining"`
}

func (p Pricing) Quote(subtotal decimal.Decimal) Quote {
	q := Quote{
		Subtotal: subtotal,
		Shipping: decimal.Zero,
		Tax:      subtotal.Mul(p.TaxRate).Round(2),
	}
	if !subtotal.GreaterThan(p.FreeShippingThreshold) {
		q.Shipping = p.ShippingFee
		q.FreeShippingRemaining = p.FreeShippingThreshold.Sub(subtotal)
	}
	q.GrandTotal = subtotal.Add(q.Shipping).Add(q.Tax)
	return q
}

// CheckoutService moves the cart into an order: Cart -> form -> submitted.
type CheckoutService struct {
	cart    *CartService
	orders  *OrderService
	auth    *AuthService
	pricing Pricing
	events  port.OrderEventPublisher
	ids     *orderIDs
	now     func() time.Time
	logger  zerolog.Logger
}

func NewCheckoutService(cart *CartService, orders *OrderService, auth *AuthService, pricing Pricing, events port.OrderEventPublisher, logger zerolog.Logger) *CheckoutService {
	return &CheckoutService{
		cart:    cart,
		orders:  orders,
		auth:    auth,
		pricing: pricing,
		events:  events,
		ids:     seedOrderIDs(orders.All()),
		now:     time.Now,
		logger:  logger,
	}
}

// Begin applies the checkout entry guard and prices the current cart.
func (s *CheckoutService) Begin() (Quote, error) {
	if _, err := s.auth.RequireUser(); err != nil {
		return Quote{}, err
	}
	if s.cart.IsEmpty() {
		return Quote{}, ErrEmptyCart
	}
	return s.pricing.Quote(s.cart.Total()), nil
}

// PlaceOrder snapshots the cart into a processing order, stores it and
// clears the cart. Payment details are required but never charged.
func (s *CheckoutService) PlaceOrder(ctx context.Context, addr domain.ShippingAddress, payment domain.PaymentDetails) (domain.Order, error) {
	user, err := s.auth.RequireUser()
	if err != nil {
		return domain.Order{}, err
	}
	if addr.Name == "" {
		addr.Name = user.Name
	}
	if !addr.Complete() {
		return domain.Order{}, ErrIncompleteAddress
	}
	if !payment.Complete() {
		return domain.Order{}, ErrIncompletePayment
	}

	var order domain.Order
	err = s.cart.Settle(ctx, func(items []domain.CartItem) error {
		if len(items) == 0 {
			return ErrEmptyCart
		}
		now := s.now()
		order = domain.Order{
			ID:              s.ids.next(now),
			UserID:          user.ID,
			Items:           items,
			Total:           s.pricing.Quote(domain.Subtotal(items)).GrandTotal,
			Status:          domain.OrderStatusProcessing,
			CreatedAt:       now.UTC(),
			ShippingAddress: addr,
		}
		if err := s.orders.Add(ctx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Str("user_id", order.UserID).
		Str("total", order.Total.StringFixed(2)).
		Int("items", order.ItemCount()).
		Msg("order placed")

	if s.events != nil {
		if err := s.events.PublishOrderPlaced(ctx, order); err != nil {
			s.logger.Warn().Err(err).Str("order_id", order.ID).Msg("publish order placed failed")
		}
	}
	return order, nil
}

// orderIDs derives ids from the wall clock in milliseconds, bumping past the
// last id when two orders land in the same millisecond.
type orderIDs struct {
	mu   sync.Mutex
	last int64
}

// seedOrderIDs starts the generator past every numeric id already stored, so
// a clock that moved backwards across a restart cannot reuse one.
func seedOrderIDs(orders []domain.Order) *orderIDs {
	g := &orderIDs{}
	for _, o := range orders {
		if id, err := strconv.ParseInt(o.ID, 10, 64); err == nil && id > g.last {
			g.last = id
		}
	}
	return g
}

func (g *orderIDs) next(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := now.UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return strconv.FormatInt(id, 10)
}
