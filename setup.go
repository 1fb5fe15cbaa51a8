package storefront

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"gofalre.io/storefront/cart"
	"gofalre.io/storefront/checkout"
	"gofalre.io/storefront/config"
	"gofalre.io/storefront/driver"
	"gofalre.io/storefront/order"
)

// NewServiceFromConfig composes the full service from environment config:
// snapshot repository (postgres when a DSN is set, redis otherwise), order
// client, checkout options and the event bus. NATS being down is not fatal;
// the service runs with lifecycle events disabled.
func NewServiceFromConfig(cfg *config.Config, logger *zap.Logger) (Service, error) {
	var repo cart.Repository

	if cfg.PostgresDSN != "" {
		db, err := driver.ConnectSQL(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		repo = cart.NewPostgresRepository(db.Pool, cfg.CartKey, logger)
	} else {
		client, err := driver.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		repo = cart.NewRedisRepository(client, cfg.CartKey, logger)
	}

	var natsConn *nats.Conn
	if cfg.NatsURL != "" {
		nc, err := nats.Connect(cfg.NatsURL)
		if err != nil {
			logger.Warn("NATS unavailable, lifecycle events disabled", zap.Error(err))
		} else {
			natsConn = nc
		}
	}

	return NewService(
		cart.NewStore(repo, logger),
		order.NewClient(cfg.OrderAPIBaseURL, logger),
		checkout.DefaultPromoTable,
		checkout.Options{ClampTotal: cfg.ClampTotal},
		natsConn,
		logger,
	), nil
}
