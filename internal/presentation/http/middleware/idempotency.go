package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/internal/domain/repository"
	"github.com/sangkips/yuyitos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/yuyitos-api/pkg/apperror"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
	// IdempotencyLockTTL bounds how long an unfinished request holds its key
	IdempotencyLockTTL = 2 * time.Minute
	// ReplayedHeader marks a response served from the idempotency store
	ReplayedHeader = "X-Idempotency-Replayed"
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	// Required rejects writes that carry no Idempotency-Key
	Required bool
}

type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response of a write already processed
// under the same key. The key is reserved before the handler runs, so a
// second request arriving meanwhile gets 409 instead of running twice. A key
// reused with a different body is a conflict. Server errors release the key
// so the client may retry them.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			if cfg.Required {
				response.Abort(c, apperror.NewBadRequestError("Idempotency-Key header is required for this request"))
				return
			}
			c.Next()
			return
		}

		raw, _ := c.Get(UserIDKey)
		userID, ok := raw.(uuid.UUID)
		if !ok {
			response.Abort(c, apperror.ErrUnauthorized)
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.Abort(c, apperror.NewBadRequestError("Could not read request body"))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		ikey := &entity.IdempotencyKey{
			Key:         key,
			UserID:      userID,
			Endpoint:    c.Request.Method + " " + c.FullPath(),
			RequestHash: requestHash(c.Request.Method, c.FullPath(), body),
			ExpiresAt:   time.Now().Add(IdempotencyLockTTL),
		}

		ctx := c.Request.Context()
		reserved, err := cfg.Repo.Reserve(ctx, ikey)
		if err != nil {
			response.Abort(c, err)
			return
		}
		if !reserved {
			replay(c, cfg.Repo, ikey)
			return
		}

		// Storage outlives the request context so a client disconnect
		// cannot leave the placeholder behind.
		storeCtx := context.WithoutCancel(ctx)
		completed := false
		defer func() {
			if completed {
				return
			}
			if err := cfg.Repo.Delete(storeCtx, key, userID); err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("idempotency key not released")
			}
		}()

		recorder := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = recorder

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			return
		}
		ikey.ResponseCode = status
		ikey.ResponseBody = recorder.body.String()
		ikey.ExpiresAt = time.Now().Add(IdempotencyKeyTTL)
		if err := cfg.Repo.Complete(storeCtx, ikey); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("idempotency key not stored")
			return
		}
		completed = true
	}
}

// replay answers a request whose key is already held by another one
func replay(c *gin.Context, repo repository.IdempotencyRepository, want *entity.IdempotencyKey) {
	existing, err := repo.GetByKey(c.Request.Context(), want.Key, want.UserID)
	if err != nil {
		response.Abort(c, err)
		return
	}
	switch {
	case existing == nil || existing.IsExpired() || existing.InProgress():
		response.Abort(c, apperror.NewConflictError("A request with this Idempotency-Key is in progress"))
	case existing.RequestHash != "" && existing.RequestHash != want.RequestHash:
		response.Abort(c, apperror.NewConflictError("Idempotency-Key was already used with a different request"))
	default:
		c.Header(ReplayedHeader, "true")
		c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
		c.Abort()
	}
}

func requestHash(method, route string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method + " " + route + "\n"))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
