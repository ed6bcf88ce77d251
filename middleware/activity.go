package middleware

import (
	"github.com/eventhub-id/eventhub-api/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LogReferralActivity records a successful referral action of the current user
func LogReferralActivity(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		fields := []zap.Field{
			zap.String("action", action),
			zap.String("ip", c.ClientIP()),
			zap.Int("status", status),
		}
		if user, ok := CurrentUser(c); ok {
			fields = append(fields, zap.Uint("user_id", user.ID))
		}
		utils.Logger().Info("referral activity", fields...)
	}
}
