package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rl1809/storefront/internal/core/catalog"
	"github.com/rl1809/storefront/internal/core/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSizeRequired    = errors.New("please select a size")
	ErrInvalidSize     = errors.New("size not available")
	ErrInvalidColor    = errors.New("color not available")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// AddToCartRequest is what the product detail view submits. A zero Size
// means no size was selected.
type AddToCartRequest struct {
	ProductID string
	Size      float64
	Color     string
	Quantity  int
}

// CartSummary is the cart view: items, unit count and quote taken from one
// read of the cart.
type CartSummary struct {
	Items []domain.CartItem `json:"items"`
	Count int               `json:"count"`
	Quote Quote             `json:"quote"`
}

// Storefront is the session-gated surface shared by every transport.
type Storefront struct {
	Catalog  *catalog.Catalog
	Cart     *CartService
	Orders   *OrderService
	Auth     *AuthService
	Checkout *CheckoutService
}

func NewStorefront(cat *catalog.Catalog, cart *CartService, orders *OrderService, auth *AuthService, checkout *CheckoutService) *Storefront {
	return &Storefront{
		Catalog:  cat,
		Cart:     cart,
		Orders:   orders,
		Auth:     auth,
		Checkout: checkout,
	}
}

func (s *Storefront) Products(f catalog.Filter) []domain.Product {
	return s.Catalog.Filter(f)
}

func (s *Storefront) Product(id string) (domain.Product, error) {
	p, ok := s.Catalog.Get(id)
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return p, nil
}

// AddToCart resolves the product and variant and merges it into the cart.
// Nothing changes on error.
func (s *Storefront) AddToCart(ctx context.Context, req AddToCartRequest) (domain.CartItem, error) {
	if _, err := s.Auth.RequireUser(); err != nil {
		return domain.CartItem{}, err
	}
	if req.Size == 0 {
		return domain.CartItem{}, ErrSizeRequired
	}
	product, err := s.Product(req.ProductID)
	if err != nil {
		return domain.CartItem{}, err
	}
	if !product.HasSize(req.Size) {
		return domain.CartItem{}, fmt.Errorf("%w: %s size %v", ErrInvalidSize, product.ID, req.Size)
	}

	color := req.Color
	if color == "" {
		color = product.DefaultColor()
	}
	if !product.HasColor(color) {
		return domain.CartItem{}, fmt.Errorf("%w: %s %q", ErrInvalidColor, product.ID, color)
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return domain.CartItem{}, ErrInvalidQuantity
	}

	item := domain.CartItem{Product: product, Size: req.Size, Color: color, Quantity: quantity}
	if err := s.Cart.Add(ctx, item); err != nil {
		return domain.CartItem{}, err
	}
	return item, nil
}

func (s *Storefront) RemoveFromCart(ctx context.Context, key domain.LineKey) error {
	if _, err := s.Auth.RequireUser(); err != nil {
		return err
	}
	s.Cart.Remove(ctx, key)
	return nil
}

func (s *Storefront) UpdateQuantity(ctx context.Context, key domain.LineKey, quantity int) error {
	if _, err := s.Auth.RequireUser(); err != nil {
		return err
	}
	s.Cart.UpdateQuantity(ctx, key, quantity)
	return nil
}

// CartSummary reads the cart once and prices that copy, so a concurrent add
// cannot split the items from the totals. Unlike Checkout.Begin an empty
// cart is not an error.
func (s *Storefront) CartSummary() (CartSummary, error) {
	if _, err := s.Auth.RequireUser(); err != nil {
		return CartSummary{}, err
	}
	items := s.Cart.Items()
	return CartSummary{
		Items: items,
		Count: domain.Units(items),
		Quote: s.Checkout.pricing.Quote(domain.Subtotal(items)),
	}, nil
}

func (s *Storefront) PlaceOrder(ctx context.Context, addr domain.ShippingAddress, payment domain.PaymentDetails) (domain.Order, error) {
	return s.Checkout.PlaceOrder(ctx, addr, payment)
}

// MyOrders lists the current user's orders, most recent first.
func (s *Storefront) MyOrders() ([]domain.Order, error) {
	user, err := s.Auth.RequireUser()
	if err != nil {
		return nil, err
	}
	return s.Orders.ForUser(user.ID), nil
}
