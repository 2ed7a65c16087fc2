package port

import (
	"context"

	"github.com/rl1809/storefront/internal/core/domain"
)

type OrderEventPublisher interface {
	// PublishOrderPlaced announces a newly stored order
	PublishOrderPlaced(ctx context.Context, order domain.Order) error
}
