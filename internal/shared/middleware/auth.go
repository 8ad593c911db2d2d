package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"itemize/internal/shared/response"
	"itemize/pkg/jwt"
)

const (
	ContextUserID   = "userID"
	ContextUsername = "username"
)

// Auth requires a valid bearer token and stores the caller's identity
// in the request context.
func Auth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, manager)
		if !ok {
			response.Unauthorized(c, "Could not validate credentials")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "Could not validate credentials")
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// OptionalAuth stores the caller's identity when a valid bearer token is
// present, and continues anonymously otherwise. Read endpoints use this to
// let owners see private itemizes while anyone can see public ones.
func OptionalAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c, manager); ok {
			if userID, err := uuid.Parse(claims.UserID); err == nil {
				c.Set(ContextUserID, userID)
				c.Set(ContextUsername, claims.Username)
			}
		}
		c.Next()
	}
}

// RequireOwner aborts unless the authenticated username matches the
// {username} path segment.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUsername) != c.Param("username") {
			response.Forbidden(c, "You do not have permission to access this resource!")
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerClaims(c *gin.Context, manager *jwt.Manager) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := manager.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}
