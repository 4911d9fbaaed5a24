package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context values to prevent collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	actorIDKey   = contextKey("actorID")
)

// GetActorIDFromContext retrieves the authenticated actor ID from the Gin
// context, falling back to the request context.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	if actorIDVal, exists := c.Get(string(actorIDKey)); exists {
		if actorID, ok := actorIDVal.(string); ok {
			return actorID, true
		}
		return "", false
	}
	if actorIDVal := c.Request.Context().Value(actorIDKey); actorIDVal != nil {
		if actorID, ok := actorIDVal.(string); ok {
			return actorID, true
		}
	}
	return "", false
}

// ContextWithActorID returns a context carrying the actor ID. Used by the
// auth middleware and by tests.
func ContextWithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorIDKey, actorID)
}
