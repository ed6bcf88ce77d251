package controllers

import (
	"encoding/json"
	"strings"

	"github.com/eventhub-id/eventhub-api/services"
	"github.com/eventhub-id/eventhub-api/utils"
	"github.com/gin-gonic/gin"
)

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Fullname         string `json:"fullname" binding:"required,min=2,max=100"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,strongpassword"`
	Role             string `json:"role" binding:"omitempty,oneof=USER EVENT_ORGANIZER"`
	UsedReferralCode string `json:"usedReferralCode" binding:"omitempty,referralcode"`
}

// ResendVerificationRequest represents the resend verification body
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Register creates an account and sends the activation email
func Register(c *gin.Context) {
	var req RegisterRequest
	// decoded first so the referral code can be upper-cased before validation
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		_ = c.Error(utils.BadRequestError("Invalid request body", err).WithDetails(err.Error()))
		return
	}
	req.Fullname = strings.TrimSpace(req.Fullname)
	req.Email = strings.TrimSpace(req.Email)
	req.UsedReferralCode = strings.ToUpper(strings.TrimSpace(req.UsedReferralCode))

	if err := utils.ValidateStruct(&req); err != nil {
		_ = c.Error(utils.ValidationFailed(err))
		return
	}

	result, err := authService.Register(c.Request.Context(), services.RegisterInput{
		Fullname:     req.Fullname,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		ReferralCode: req.UsedReferralCode,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	data := gin.H{"user": newUserResponse(result.User)}
	if result.WelcomeBonus != nil {
		data["welcomeBonus"] = result.WelcomeBonus
	}
	utils.Created(c, utils.MsgRegisterSuccess, data)
}

// VerifyEmail activates the account owning the token query parameter
func VerifyEmail(c *gin.Context) {
	user, err := authService.VerifyEmail(c.Query("token"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.Success(c, utils.MsgVerifySuccess, gin.H{"user": newUserResponse(user)})
}

// ResendVerification issues a new activation link
func ResendVerification(c *gin.Context) {
	var req ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(utils.ValidationFailed(err))
		return
	}

	if err := authService.ResendVerification(c.Request.Context(), req.Email); err != nil {
		_ = c.Error(err)
		return
	}
	utils.Success(c, utils.MsgVerificationResent, nil)
}
