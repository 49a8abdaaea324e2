package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and user ID
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	// Reserve stores ikey as a placeholder unless a live entry already holds
	// the key. It reports whether this caller now owns the key.
	Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (bool, error)
	// Complete replaces the placeholder with the final response
	Complete(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Delete releases a key so the request can be retried
	Delete(ctx context.Context, key string, userID uuid.UUID) error
	// DeleteExpired removes expired idempotency keys (for cleanup)
	DeleteExpired(ctx context.Context) error
}
