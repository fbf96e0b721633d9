package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/studyhub/internal/result"
)

// Context keys for user data
const (
	ContextKeyUserID = "auth_user_id"
	ContextKeyEmail  = "auth_email"
)

// Middleware guards routes with bearer tokens.
type Middleware struct {
	guard *TokenGuard
	log   logrus.FieldLogger
}

func NewMiddleware(guard *TokenGuard, log logrus.FieldLogger) *Middleware {
	return &Middleware{guard: guard, log: log}
}

// RequireToken rejects requests without a valid token with a 401 envelope.
// Nothing downstream runs for a rejected request.
func (m *Middleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.guard.Verify(c.GetHeader("Authorization"))
		if err != nil {
			m.log.WithFields(logrus.Fields{
				"path":   c.Request.URL.Path,
				"reason": err.Error(),
			}).Debug("Rejected unauthenticated request")

			env := result.Unauthorized[any]().Envelope()
			c.AbortWithStatusJSON(env.StatusCode, env)
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Next()
	}
}

// GetUserID retrieves the authenticated user's ID from the context.
// Returns 0 if the request did not pass RequireToken.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}
