package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by a staff access token.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// VerifyAudience checks whether the expected audience is present.
func (c *Claims) VerifyAudience(expected string, required bool) bool {
	if len(c.Audience) == 0 {
		return !required
	}
	for _, aud := range c.Audience {
		if aud == expected {
			return true
		}
	}
	return false
}
