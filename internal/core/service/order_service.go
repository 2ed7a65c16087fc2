package service

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/port"
)

// OrderService is the append-only order history, most recent first.
type OrderService struct {
	mu     sync.Mutex
	orders []domain.Order
	state  snapshot[[]domain.Order]
}

func NewOrderService(ctx context.Context, repo port.StateRepository, logger zerolog.Logger) *OrderService {
	s := &OrderService{
		state: newSnapshot[[]domain.Order](repo, port.OrdersKey, logger),
	}
	s.orders = s.state.load(ctx, validateOrders)
	return s
}

// Add prepends order and persists the history.
func (s *OrderService) Add(ctx context.Context, order domain.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = slices.Insert(s.orders, 0, order)
	s.state.save(ctx, s.orders)
	return nil
}

func (s *OrderService) All() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.orders)
}

// ForUser lists userID's orders, most recent first.
func (s *OrderService) ForUser(userID string) []domain.Order {
	return domain.FilterOrdersByUser(s.All(), userID)
}

func validateOrders(orders []domain.Order) error {
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}
	}
	return nil
}
