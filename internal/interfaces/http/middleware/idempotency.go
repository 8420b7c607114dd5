package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/foodhub/backend/internal/domain/shared"
	"github.com/foodhub/backend/internal/infrastructure/cache"
	"github.com/foodhub/backend/internal/infrastructure/logger"
	"github.com/foodhub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MaxIdempotencyKeyLength bounds the Idempotency-Key header
const MaxIdempotencyKeyLength = 128

// ReplayedHeader is set on responses served from the idempotency store
const ReplayedHeader = "Idempotent-Replayed"

// Idempotency replays the first response for a repeated Idempotency-Key.
// Keys are scoped to the caller and route, so it must run after RequireAuth.
// Requests without the header pass through. 5xx outcomes and handler panics
// release the key so the client may retry.
func Idempotency(store *cache.IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || store == nil {
			c.Next()
			return
		}
		if len(key) > MaxIdempotencyKeyLength {
			abortWithError(c, shared.NewValidationError("Idempotency-Key is too long"))
			return
		}

		scoped := scopeKey(c, key)
		ctx := c.Request.Context()
		log := logger.L(ctx)

		stored, err := store.Reserve(ctx, scoped)
		switch {
		case errors.Is(err, cache.ErrRequestInFlight):
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponse(
				dto.ErrCodeRequestInProgress,
				"A request with this Idempotency-Key is still being processed",
				GetRequestID(c),
			))
			return
		case err != nil:
			// Serve the request rather than fail it on a cache outage
			log.Warn("Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		case stored != nil:
			c.Header(ReplayedHeader, "true")
			c.Data(stored.StatusCode, stored.ContentType, stored.Body)
			c.Abort()
			return
		}

		// The request context may already be cancelled by a disconnecting client
		bg := context.WithoutCancel(ctx)
		defer func() {
			if r := recover(); r != nil {
				if err := store.Release(bg, scoped); err != nil {
					log.Warn("Failed to release idempotency key", zap.Error(err))
				}
				panic(r)
			}
		}()

		rec := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		status := rec.Status()
		if status >= http.StatusInternalServerError {
			if err := store.Release(bg, scoped); err != nil {
				log.Warn("Failed to release idempotency key", zap.Error(err))
			}
			return
		}
		err = store.Complete(bg, scoped, cache.StoredResponse{
			StatusCode:  status,
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		})
		if err != nil {
			log.Warn("Failed to store idempotent response", zap.Error(err))
		}
	}
}

func scopeKey(c *gin.Context, key string) string {
	userID := ""
	if p, ok := GetPrincipal(c); ok {
		userID = p.UserID
	}
	return userID + ":" + c.Request.Method + ":" + c.FullPath() + ":" + key
}

// recordingWriter keeps a copy of the response body
type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
