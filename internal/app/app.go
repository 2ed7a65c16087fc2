// Package app wires configuration, storage and services into a runnable
// storefront.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"github.com/rl1809/storefront/internal/adapter/auth"
	"github.com/rl1809/storefront/internal/adapter/events"
	"github.com/rl1809/storefront/internal/adapter/handler"
	"github.com/rl1809/storefront/internal/adapter/handler/pb"
	"github.com/rl1809/storefront/internal/adapter/storage"
	"github.com/rl1809/storefront/internal/config"
	"github.com/rl1809/storefront/internal/core/catalog"
	"github.com/rl1809/storefront/internal/core/navigation"
	"github.com/rl1809/storefront/internal/core/service"
	"github.com/rl1809/storefront/internal/port"
)

type App struct {
	Store     *service.Storefront
	Navigator *navigation.Navigator

	logger  zerolog.Logger
	closers []func() error
}

// Build opens the configured backends and assembles the services. Call Close
// when done, also after an error.
func Build(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	a := &App{logger: logger}

	repo, err := a.openStateRepository(ctx, cfg)
	if err != nil {
		return a, err
	}

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		if cat, err = catalog.LoadFile(cfg.CatalogPath); err != nil {
			return a, err
		}
	}

	pricing, err := cfg.Pricing()
	if err != nil {
		return a, err
	}

	cart := service.NewCartService(ctx, repo, logger)
	orders := service.NewOrderService(ctx, repo, logger)
	authService := service.NewAuthService(auth.NewTrustAll(), logger)
	checkout := service.NewCheckoutService(cart, orders, authService, pricing, a.publisher(cfg), logger)

	a.Store = service.NewStorefront(cat, cart, orders, authService, checkout)
	a.Navigator = navigation.NewNavigator(authService, cart)

	logger.Info().
		Str("storage", cfg.StorageDriver).
		Int("products", cat.Len()).
		Int("cart_lines", len(cart.Items())).
		Int("orders", len(orders.All())).
		Msg("storefront ready")
	return a, nil
}

func (a *App) HTTPHandler() http.Handler {
	return handler.NewHTTPHandler(a.Store, a.Navigator, a.logger).Routes()
}

func (a *App) RegisterGRPC(s *grpc.Server) {
	pb.RegisterStorefrontServer(s, handler.NewGRPCHandler(a.Store, a.logger))
}

// Close releases backends in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) openStateRepository(ctx context.Context, cfg *config.Config) (port.StateRepository, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return storage.NewMemoryAdapter(), nil

	case config.DriverSQLite:
		db, err := storage.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		repo := storage.NewSQLiteAdapter(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return repo, nil

	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			PoolSize: 10,
		})
		a.closers = append(a.closers, rdb.Close)
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return storage.NewRedisAdapter(rdb, cfg.RedisKeyPrefix), nil

	case config.DriverMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		a.closers = append(a.closers, db.Close)
		if err := db.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
		repo := storage.NewMySQLAdapter(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	}
	return nil, fmt.Errorf("%w: unknown STORAGE_DRIVER %q", config.ErrInvalidConfig, cfg.StorageDriver)
}

func (a *App) publisher(cfg *config.Config) port.OrderEventPublisher {
	brokers := cfg.Brokers()
	if len(brokers) == 0 {
		return events.NewLogPublisher(a.logger)
	}
	p := events.NewKafkaPublisher(brokers, cfg.KafkaTopic)
	a.closers = append(a.closers, p.Close)
	a.logger.Info().Strs("brokers", brokers).Str("topic", cfg.KafkaTopic).Msg("publishing order events to kafka")
	return p
}
