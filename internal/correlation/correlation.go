package correlation

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Header is the correlation id header, read case-insensitively on inbound
// requests and mirrored on every outbound call and response.
const Header = "x-correlation-id"

type ctxKey struct{}

// EnsureID returns the inbound id unchanged when non-empty, otherwise a
// freshly minted one.
func EnsureID(inbound string) string {
	if inbound != "" {
		return inbound
	}
	return uuid.New().String()
}

// WithID stores the correlation id on the context.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the correlation id carried by ctx, or "" when the
// request never passed through Middleware.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}

// Logger returns lg pre-tagged with the correlation id from ctx.
func Logger(ctx context.Context, lg *zap.Logger) *zap.Logger {
	if id := FromContext(ctx); id != "" {
		return lg.With(zap.String("correlation_id", id))
	}
	return lg
}

// Middleware reads the correlation header, generates an id when absent,
// threads it through the request context and echoes it on the response.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := EnsureID(c.GetHeader(Header))
		c.Request = c.Request.WithContext(WithID(c.Request.Context(), id))
		c.Writer.Header().Set(Header, id)
		c.Next()
	}
}
