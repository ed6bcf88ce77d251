package controllers

import (
	"github.com/eventhub-id/eventhub-api/middleware"
	"github.com/eventhub-id/eventhub-api/utils"
	"github.com/gin-gonic/gin"
)

// MyAccount returns the account summary of the current user
func MyAccount(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(utils.UnauthorizedError(utils.ErrUnauthorized, nil))
		return
	}

	// reload so the balance reflects redemptions made with this token
	user, err := utils.GetUserByID(deps.DB, current.ID)
	if err != nil {
		if utils.IsRecordNotFound(err) {
			_ = c.Error(utils.NotFoundError("User not found", err))
			return
		}
		_ = c.Error(utils.InternalError("Failed to load account", err))
		return
	}

	utils.Success(c, "Account retrieved successfully", gin.H{
		"fullname":       user.Fullname,
		"email":          user.Email,
		"role":           user.Role,
		"referralCode":   user.ReferralCode,
		"referralPoints": user.ReferralPoints,
	})
}
