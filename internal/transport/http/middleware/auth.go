package middleware

import (
	"net/http"
	"strings"

	"github.com/ErlanBelekov/todo-app/internal/domain"
	ctxlog "github.com/ErlanBelekov/todo-app/internal/log"
	"github.com/gin-gonic/gin"
)

const errUnauthorized = "Unauthorized"

// Context keys set by Auth.
const (
	UserIDKey = "userID"
	EmailKey  = "email"
)

// TokenVerifier is satisfied by *token.Issuer.
type TokenVerifier interface {
	Verify(raw string) (*domain.Claims, error)
}

// Auth validates a Bearer JWT and sets UserIDKey and EmailKey in the gin
// context. Requests without a valid token never reach the handler.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		claims, err := verifier.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		c.Request = c.Request.WithContext(ctxlog.WithUserID(c.Request.Context(), claims.UserID))
		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}
