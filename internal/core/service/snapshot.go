package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/rl1809/storefront/internal/port"
)

// snapshot mirrors one collection to a single key of a StateRepository.
type snapshot[T any] struct {
	repo   port.StateRepository
	key    string
	logger zerolog.Logger
}

func newSnapshot[T any](repo port.StateRepository, key string, logger zerolog.Logger) snapshot[T] {
	return snapshot[T]{
		repo:   repo,
		key:    key,
		logger: logger.With().Str("key", key).Logger(),
	}
}

// load returns the stored value, or the zero value if the key is absent,
// unreadable, undecodable or rejected by validate.
func (s snapshot[T]) load(ctx context.Context, validate func(T) error) T {
	var zero T

	data, ok, err := s.repo.Load(ctx, s.key)
	if err != nil {
		s.logger.Warn().Err(err).Msg("snapshot load failed, starting empty")
		return zero
	}
	if !ok {
		return zero
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		s.logger.Warn().Err(err).Msg("snapshot malformed, starting empty")
		return zero
	}
	if err := validate(v); err != nil {
		s.logger.Warn().Err(err).Msg("snapshot rejected, starting empty")
		return zero
	}
	return v
}

// save is fire-and-forget: failures are logged and the in-memory state stays
// authoritative.
func (s snapshot[T]) save(ctx context.Context, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error().Err(err).Msg("snapshot encode failed")
		return
	}
	if err := s.repo.Save(ctx, s.key, data); err != nil {
		s.logger.Error().Err(err).Msg("snapshot save failed")
	}
}
