package middleware

import (
	"github.com/eventhub-id/eventhub-api/utils"
	"github.com/gin-gonic/gin"
)

// CheckMinimumPoints rejects users whose point balance is below min
func CheckMinimumPoints(min int) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.Unauthorized(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		if user.ReferralPoints < min {
			utils.BadRequest(c, utils.ErrInsufficientPoints, gin.H{
				"required":  min,
				"available": user.ReferralPoints,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
