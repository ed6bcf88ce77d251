package middleware

import (
	"strings"

	"github.com/eventhub-id/eventhub-api/models"
	"github.com/eventhub-id/eventhub-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserKey is the context key holding the authenticated models.User
const UserKey = "user"

// AuthMiddleware authenticates the bearer token and loads the user from db
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.LogDebug("Missing Authorization header on %s", c.Request.URL.Path)
			utils.Unauthorized(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			utils.LogDebug("Invalid token: %v", err)
			utils.Unauthorized(c, utils.ErrInvalidToken)
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			utils.LogWarn("Token for missing user %d: %v", claims.UserID, err)
			utils.Unauthorized(c, "User not found")
			c.Abort()
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// RoleMiddleware lets through only users holding one of roles.
// It must run after AuthMiddleware.
func RoleMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.Unauthorized(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		if !user.HasRole(roles...) {
			utils.LogWarn("User %d with role %s denied access to %s", user.ID, user.Role, c.Request.URL.Path)
			utils.Forbidden(c, utils.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user set by AuthMiddleware
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, exists := c.Get(UserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
