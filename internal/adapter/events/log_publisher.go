package events

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rl1809/storefront/internal/core/domain"
)

// LogPublisher records events in the log when no broker is configured.
type LogPublisher struct {
	logger zerolog.Logger
}

func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With().Str("component", "events").Logger()}
}

func (p *LogPublisher) PublishOrderPlaced(ctx context.Context, order domain.Order) error {
	ev := NewOrderPlaced(order)
	p.logger.Info().
		Str("type", ev.Type).
		Str("order_id", ev.OrderID).
		Str("user_id", ev.UserID).
		Str("total", ev.Total.StringFixed(2)).
		Int("item_count", ev.ItemCount).
		Msg("event")
	return nil
}
