package middleware

import "github.com/gin-gonic/gin"

// userIDKey carries the authenticated user's ID. The auth middleware sets it
// on both the gin context and the request context, so handlers and plain
// context consumers can read it.
const userIDKey = contextKey("userID")

// GetUserIDFromContext returns the authenticated user ID, falling back to the
// request context when the gin context has no entry. The second return is
// false when no user is attached.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		id, ok := v.(string)
		return id, ok
	}
	if v := c.Request.Context().Value(userIDKey); v != nil {
		id, ok := v.(string)
		return id, ok
	}
	return "", false
}
