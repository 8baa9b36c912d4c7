package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/tourbook/internal/auth"
	"github.com/nurpe/tourbook/internal/model"
)

const principalKey = "principal"

type SessionValidator interface {
	GetSession(token string) auth.Session
}

// Auth rejects requests without a valid session.
func Auth(sessions SessionValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.GetSession(sessionToken(c, cookieName))
		if !session.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(principalKey, session.Principal)
		c.Next()
	}
}

// OptionalAuth attaches the principal when a valid session is present and
// lets anonymous requests through.
func OptionalAuth(sessions SessionValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := sessionToken(c, cookieName); token != "" {
			if session := sessions.GetSession(token); session.Valid {
				c.Set(principalKey, session.Principal)
			}
		}
		c.Next()
	}
}

func MustPrincipal(c *gin.Context) (model.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return model.Principal{}, false
	}
	principal, ok := value.(model.Principal)
	return principal, ok
}

func sessionToken(c *gin.Context, cookieName string) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		}
		return ""
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}
