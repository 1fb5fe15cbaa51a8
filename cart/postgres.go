package cart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gofalre.io/storefront/driver"
	"gofalre.io/storefront/models"
)

var _ Repository = (*postgresRepository)(nil)

// postgresRepository keeps the cart snapshot in a single jsonb row per cart
// key. It satisfies the same Repository contract as the redis mirror so the
// backend can be swapped without touching the store.
type postgresRepository struct {
	conn   driver.PostgresPool
	key    string
	logger *zap.Logger
}

func NewPostgresRepository(conn driver.PostgresPool, key string, logger *zap.Logger) Repository {
	if key == "" {
		key = DefaultKey
	}
	return &postgresRepository{
		conn:   conn,
		key:    key,
		logger: logger,
	}
}

func (r *postgresRepository) Save(ctx context.Context, lines []models.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		r.logger.Error("Failed to marshal cart snapshot", zap.Error(err))
		return err
	}

	_, err = r.conn.Exec(ctx, `
		INSERT INTO cart_snapshots (cart_key, lines, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (cart_key)
		DO UPDATE SET lines = EXCLUDED.lines, updated_at = now()`,
		r.key, data)
	if err != nil {
		r.logger.Warn("Failed to write cart snapshot", zap.Error(err))
		return err
	}

	return nil
}

func (r *postgresRepository) Load(ctx context.Context) ([]models.CartLine, error) {
	var data []byte
	err := r.conn.QueryRow(ctx,
		`SELECT lines FROM cart_snapshots WHERE cart_key = $1`, r.key).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to read cart snapshot", zap.Error(err))
		return nil, err
	}

	return decodeSnapshot(data, r.logger), nil
}

func (r *postgresRepository) Delete(ctx context.Context) error {
	if _, err := r.conn.Exec(ctx,
		`DELETE FROM cart_snapshots WHERE cart_key = $1`, r.key); err != nil {
		r.logger.Warn("Failed to delete cart snapshot", zap.Error(err))
		return err
	}
	return nil
}
