package middleware

import (
	"net/http"
	"strings"

	"carrental-service/internal/pkg/response"
	"carrental-service/internal/pkg/session"
	"carrental-service/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	verifier *token.Verifier
	sessions *session.Manager
}

func NewAuthMiddleware(verifier *token.Verifier, sessions *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, sessions: sessions}
}

// Auth validates the bearer token and checks that its session has not been
// revoked, then puts the caller's identity on the request context.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization token", nil)
			return
		}

		claims, err := m.verifier.Verify(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token", err)
			return
		}

		if _, err := m.sessions.Get(c.Request.Context(), claims.UserID, claims.ID); err != nil {
			response.Error(c, http.StatusUnauthorized, "session revoked or expired", err)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Set("jti", claims.ID)

		c.Next()
	}
}

// RequireRole allows only callers holding one of the given roles. Must run
// after Auth().
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			response.Forbidden(c, "authentication required")
			return
		}

		for _, required := range roles {
			if role == required {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "insufficient permissions")
	}
}

// AdminOnly is Auth plus an admin role check.
func (m *AuthMiddleware) AdminOnly() []gin.HandlerFunc {
	return []gin.HandlerFunc{m.Auth(), m.RequireRole("admin")}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	// Query fallback for websocket clients that cannot set headers.
	return c.Query("token")
}
