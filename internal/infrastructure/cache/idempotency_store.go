package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/yuyitos-api/internal/domain/repository"
)

const idempotencyPrefix = "idempotency:"

type idempotencyStore struct {
	rdb redis.Cmdable
}

// NewIdempotencyStore keeps idempotency keys in Redis; expiry is left to key TTLs
func NewIdempotencyStore(rdb redis.Cmdable) domainRepo.IdempotencyRepository {
	return &idempotencyStore{rdb: rdb}
}

func idempotencyKey(key string, userID uuid.UUID) string {
	return idempotencyPrefix + userID.String() + ":" + key
}

func (s *idempotencyStore) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	raw, err := s.rdb.Get(ctx, idempotencyKey(key, userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ikey entity.IdempotencyKey
	if err := json.Unmarshal(raw, &ikey); err != nil {
		return nil, err
	}
	return &ikey, nil
}

// Reserve uses SETNX, so exactly one request owns a key until its TTL runs out
func (s *idempotencyStore) Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (bool, error) {
	raw, ttl, err := encodeKey(ikey)
	if err != nil || ttl <= 0 {
		return false, err
	}
	return s.rdb.SetNX(ctx, idempotencyKey(ikey.Key, ikey.UserID), raw, ttl).Result()
}

func (s *idempotencyStore) Complete(ctx context.Context, ikey *entity.IdempotencyKey) error {
	raw, ttl, err := encodeKey(ikey)
	if err != nil || ttl <= 0 {
		return err
	}
	return s.rdb.Set(ctx, idempotencyKey(ikey.Key, ikey.UserID), raw, ttl).Err()
}

func (s *idempotencyStore) Delete(ctx context.Context, key string, userID uuid.UUID) error {
	return s.rdb.Del(ctx, idempotencyKey(key, userID)).Err()
}

func (s *idempotencyStore) DeleteExpired(context.Context) error {
	return nil
}

func encodeKey(ikey *entity.IdempotencyKey) ([]byte, time.Duration, error) {
	if ikey.CreatedAt.IsZero() {
		ikey.CreatedAt = time.Now()
	}
	raw, err := json.Marshal(ikey)
	return raw, time.Until(ikey.ExpiresAt), err
}
