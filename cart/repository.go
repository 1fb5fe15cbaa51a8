package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gofalre.io/storefront/models"
)

// DefaultKey is the key the persisted cart snapshot lives under. Absence of
// the key is equivalent to an empty cart.
const DefaultKey = "cart"

// snapshotTTL bounds how long an untouched cart survives in the mirror.
const snapshotTTL = 7 * 24 * time.Hour

var _ Repository = (*redisRepository)(nil)

// Repository mirrors the in-session cart to a persistent key-value store.
// Implementations are best-effort: the store treats a failed write as
// non-fatal and keeps serving the in-memory state.
type Repository interface {
	Save(ctx context.Context, lines []models.CartLine) error
	Load(ctx context.Context) ([]models.CartLine, error)
	Delete(ctx context.Context) error
}

type redisRepository struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

func NewRedisRepository(client *redis.Client, key string, logger *zap.Logger) Repository {
	if key == "" {
		key = DefaultKey
	}
	return &redisRepository{
		client: client,
		key:    key,
		logger: logger,
	}
}

func (r *redisRepository) Save(ctx context.Context, lines []models.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		r.logger.Error("Failed to marshal cart snapshot", zap.Error(err))
		return err
	}

	if err = r.client.Set(ctx, r.key, data, snapshotTTL).Err(); err != nil {
		r.logger.Warn("Failed to write cart snapshot", zap.Error(err))
		return err
	}

	return nil
}

func (r *redisRepository) Load(ctx context.Context) ([]models.CartLine, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// 沒有快照，視為空購物車
			return nil, nil
		}
		r.logger.Error("Failed to read cart snapshot", zap.Error(err))
		return nil, err
	}

	return decodeSnapshot(data, r.logger), nil
}

func (r *redisRepository) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		r.logger.Warn("Failed to delete cart snapshot", zap.Error(err))
		return err
	}
	return nil
}

// decodeSnapshot unmarshals a persisted snapshot. Corrupt data falls back to
// an empty cart instead of propagating a parse error.
func decodeSnapshot(data []byte, logger *zap.Logger) []models.CartLine {
	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		logger.Warn("Corrupt cart snapshot, falling back to empty cart", zap.Error(err))
		return nil
	}
	return lines
}
