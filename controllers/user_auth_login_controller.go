package controllers

import (
	"github.com/eventhub-id/eventhub-api/middleware"
	"github.com/eventhub-id/eventhub-api/utils"
	"github.com/gin-gonic/gin"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login checks credentials and returns a session token
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(utils.ValidationFailed(err))
		return
	}

	user, token, err := authService.Login(req.Email, req.Password)
	if err != nil {
		utils.LogWarn("Login failed for %s: %v", req.Email, err)
		_ = c.Error(err)
		return
	}

	utils.LogInfo("Login successful for user %d", user.ID)
	c.Header("Authorization", "Bearer "+token)
	utils.Success(c, utils.MsgLoginSuccess, newSessionResponse(user, token))
}

// SessionLogin refreshes the token of an authenticated user
func SessionLogin(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(utils.UnauthorizedError(utils.ErrUnauthorized, nil))
		return
	}

	user, token, err := authService.RefreshSession(current.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("Authorization", "Bearer "+token)
	utils.Success(c, "Session refreshed", newSessionResponse(user, token))
}
