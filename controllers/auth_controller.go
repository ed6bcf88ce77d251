package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/eventhub-id/eventhub-api/services"
	"github.com/eventhub-id/eventhub-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	oauthStateTTL     = 10 * time.Minute
)

type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func oauthStateKey(state string) string {
	return "oauth:state:" + state
}

// GoogleLogin redirects to the Google consent screen
func GoogleLogin(c *gin.Context) {
	if deps.OAuth == nil || deps.OAuth.ClientID == "" {
		_ = c.Error(utils.ServiceUnavailableError("Google sign-in is not configured", nil))
		return
	}
	if deps.Redis == nil {
		_ = c.Error(utils.ServiceUnavailableError("Google sign-in is unavailable", nil))
		return
	}

	state := uuid.New().String()
	if err := deps.Redis.Set(c.Request.Context(), oauthStateKey(state), "1", oauthStateTTL).Err(); err != nil {
		_ = c.Error(utils.ServiceUnavailableError("Google sign-in is unavailable", err))
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, deps.OAuth.AuthCodeURL(state))
}

// GoogleCallback completes Google sign-in and issues a session token
func GoogleCallback(c *gin.Context) {
	if deps.OAuth == nil || deps.Redis == nil {
		_ = c.Error(utils.ServiceUnavailableError("Google sign-in is unavailable", nil))
		return
	}

	state := c.Query("state")
	if state == "" {
		_ = c.Error(utils.BadRequestError("Missing OAuth state", nil))
		return
	}
	n, err := deps.Redis.Del(c.Request.Context(), oauthStateKey(state)).Result()
	if err != nil {
		_ = c.Error(utils.ServiceUnavailableError("Google sign-in is unavailable", err))
		return
	}
	if n == 0 {
		_ = c.Error(utils.BadRequestError("Invalid or expired OAuth state", nil))
		return
	}

	code := c.Query("code")
	if code == "" {
		_ = c.Error(utils.BadRequestError("No code provided", nil))
		return
	}

	token, err := deps.OAuth.Exchange(c.Request.Context(), code)
	if err != nil {
		_ = c.Error(utils.UnauthorizedError("Failed to exchange token", err))
		return
	}

	resp, err := deps.OAuth.Client(c.Request.Context(), token).Get(googleUserInfoURL)
	if err != nil {
		_ = c.Error(utils.InternalError("Failed to get user info", err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_ = c.Error(utils.InternalError(fmt.Sprintf("Google user info returned %d", resp.StatusCode), nil))
		return
	}

	var googleUser GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		_ = c.Error(utils.InternalError("Failed to parse user info", err))
		return
	}
	if !googleUser.VerifiedEmail {
		_ = c.Error(utils.ForbiddenError("Google account email is not verified", nil))
		return
	}

	user, jwtToken, err := authService.LoginWithGoogle(services.GoogleProfile{
		ID:            googleUser.ID,
		Email:         googleUser.Email,
		Name:          googleUser.Name,
		VerifiedEmail: googleUser.VerifiedEmail,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.LogInfo("Google sign-in for user %d", user.ID)

	if deps.FrontendURL != "" {
		redirectURL := fmt.Sprintf("%s/auth/callback?token=%s", deps.FrontendURL, url.QueryEscape(jwtToken))
		c.Redirect(http.StatusTemporaryRedirect, redirectURL)
		return
	}
	c.Header("Authorization", "Bearer "+jwtToken)
	utils.Success(c, utils.MsgLoginSuccess, newSessionResponse(user, jwtToken))
}
