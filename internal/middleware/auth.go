package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayhub/internal/security"
)

const claimsContextKey = "session_claims"

// RequireAuth refuses requests that do not carry a valid session cookie.
// A missing cookie and an invalid token both answer 401; neither aborts
// request handling beyond the refusal response.
func RequireAuth(cookieName string, tokens *security.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(cookieName)
		if err != nil || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication_required"})
			return
		}

		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// OptionalAuth authenticates when a cookie is present but lets anonymous
// requests through. A present-but-invalid token is still refused: silently
// downgrading a bad credential to anonymous would mask forgery attempts.
func OptionalAuth(cookieName string, tokens *security.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(cookieName)
		if err != nil || tokenStr == "" {
			c.Next()
			return
		}

		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the authenticated identity's claims, or nil for an
// anonymous request.
func ClaimsFrom(c *gin.Context) *security.SessionClaims {
	val, exists := c.Get(claimsContextKey)
	if !exists {
		return nil
	}
	claims, ok := val.(*security.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}
