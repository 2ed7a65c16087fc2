package service

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/port"
)

// CartService owns the cart's line items and mirrors them to the "cart" key
// after every mutation.
type CartService struct {
	mu    sync.Mutex
	items []domain.CartItem
	state snapshot[[]domain.CartItem]
}

// NewCartService loads the last persisted cart before returning.
func NewCartService(ctx context.Context, repo port.StateRepository, logger zerolog.Logger) *CartService {
	s := &CartService{
		state: newSnapshot[[]domain.CartItem](repo, port.CartKey, logger),
	}
	s.items = s.state.load(ctx, domain.ValidateCart)
	return s
}

// Add merges item into the line with the same product, size and color, or
// appends it as a new line.
func (s *CartService) Add(ctx context.Context, item domain.CartItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(item.Key()); i >= 0 {
		s.items[i].Quantity += item.Quantity
	} else {
		s.items = append(s.items, item)
	}
	s.state.save(ctx, s.items)
	return nil
}

// Remove deletes the matching line. Missing lines are ignored.
func (s *CartService) Remove(ctx context.Context, key domain.LineKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(ctx, key)
}

// UpdateQuantity replaces a line's quantity; quantity <= 0 removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, key domain.LineKey, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(ctx, key)
		return
	}
	i := s.indexOf(key)
	if i < 0 {
		return
	}
	s.items[i].Quantity = quantity
	s.state.save(ctx, s.items)
}

func (s *CartService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.state.save(ctx, []domain.CartItem{})
}

// Settle hands a copy of the cart to place and clears the cart if place
// succeeds. The cart is locked for the duration.
func (s *CartService) Settle(ctx context.Context, place func([]domain.CartItem) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := place(slices.Clone(s.items)); err != nil {
		return err
	}
	s.items = nil
	s.state.save(ctx, []domain.CartItem{})
	return nil
}

// Total is the subtotal of the cart, without shipping or tax.
func (s *CartService) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Subtotal(s.items)
}

func (s *CartService) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Count is the number of units in the cart.
func (s *CartService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Units(s.items)
}

func (s *CartService) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

func (s *CartService) removeLocked(ctx context.Context, key domain.LineKey) {
	i := s.indexOf(key)
	if i < 0 {
		return
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.state.save(ctx, s.items)
}

func (s *CartService) indexOf(key domain.LineKey) int {
	return slices.IndexFunc(s.items, func(item domain.CartItem) bool {
		return item.Key() == key
	})
}
