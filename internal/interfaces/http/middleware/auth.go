// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pressart/storefront-api/internal/pkg/auth"
)

const (
	contextUserID = "user_id"
	contextEmail  = "user_email"
	contextClaims = "token_claims"
)

// AuthMiddleware requires a valid, unrevoked bearer token
func AuthMiddleware(jwtManager *auth.JWTManager, denylist *auth.Denylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			return
		}

		claims, err := authenticate(c, jwtManager, denylist, tokenString)
		if err != nil {
			msg := "Invalid or expired token"
			if errors.Is(err, auth.ErrTokenRevoked) {
				msg = "Token has been revoked"
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": msg,
			})
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the user when a valid token is present
func OptionalAuthMiddleware(jwtManager *auth.JWTManager, denylist *auth.Denylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.Next()
			return
		}

		if claims, err := authenticate(c, jwtManager, denylist, tokenString); err == nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, jwtManager *auth.JWTManager, denylist *auth.Denylist, tokenString string) (*auth.Claims, error) {
	claims, err := jwtManager.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if err := denylist.Check(c.Request.Context(), claims.ID); err != nil {
		return nil, err
	}
	return claims, nil
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(contextUserID, claims.UserID)
	c.Set(contextEmail, claims.Email)
	c.Set(contextClaims, claims)
}

// GetUserIDFromContext extracts user ID from gin context
func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(contextUserID)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetUserEmailFromContext extracts user email from gin context
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(contextEmail)
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok
}

// GetClaimsFromContext returns the validated token claims
func GetClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	claims, exists := c.Get(contextClaims)
	if !exists {
		return nil, false
	}
	cl, ok := claims.(*auth.Claims)
	return cl, ok
}
