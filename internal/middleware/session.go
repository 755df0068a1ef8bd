package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/services"
)

const sessionKeyContextKey = "sessionKey"

type SessionMiddleware struct {
	log        *logger.Logger
	sessionSvc services.SessionService
}

func NewSessionMiddleware(log *logger.Logger, sessionSvc services.SessionService) *SessionMiddleware {
	return &SessionMiddleware{
		log:        log.With("middleware", "SessionMiddleware"),
		sessionSvc: sessionSvc,
	}
}

// RequireSession extracts and validates X-Session-Key, registers the key on
// first use, and stores it on the gin context for handlers.
func (sm *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := sm.sessionSvc.ValidateKey(extractSessionKey(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid session key"})
			return
		}
		if err := sm.sessionSvc.Ensure(c.Request.Context(), key); err != nil {
			sm.log.Error("Session ensure failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session registration failed"})
			return
		}
		c.Set(sessionKeyContextKey, key)
		c.Next()
	}
}

// SessionKey returns the validated key set by RequireSession; empty on
// routes outside the middleware.
func SessionKey(c *gin.Context) string {
	return c.GetString(sessionKeyContextKey)
}

func extractSessionKey(c *gin.Context) string {
	if key := c.GetHeader("X-Session-Key"); key != "" {
		return key
	}
	return c.Query("sessionKey")
}
