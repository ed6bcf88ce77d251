package controllers

import (
	"strings"

	"github.com/eventhub-id/eventhub-api/middleware"
	"github.com/eventhub-id/eventhub-api/services"
	"github.com/eventhub-id/eventhub-api/utils"
	"github.com/gin-gonic/gin"
)

// ReferralCodeParam is the path parameter of the validate endpoint
type ReferralCodeParam struct {
	ReferralCode string `uri:"referralCode" binding:"required,referralcode"`
}

// RedeemPointsRequest represents the redemption request body
type RedeemPointsRequest struct {
	PointsToRedeem int `json:"pointsToRedeem" binding:"required,min=100,max=5000"`
}

// ValidateReferralCode reports who owns a referral code
func ValidateReferralCode(c *gin.Context) {
	param := ReferralCodeParam{ReferralCode: strings.ToUpper(strings.TrimSpace(c.Param("referralCode")))}
	if err := utils.ValidateStruct(&param); err != nil {
		_ = c.Error(utils.ValidationFailed(err))
		return
	}

	info, err := services.ValidateReferralCode(deps.DB, param.ReferralCode)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.Success(c, "Referral code is valid", info)
}

// GetReferralStats returns the referral dashboard of the current user
func GetReferralStats(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(utils.UnauthorizedError(utils.ErrUnauthorized, nil))
		return
	}

	stats, err := services.GetReferralStats(deps.DB, user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.Success(c, utils.MsgReferralStatsLoaded, stats)
}

// RedeemPoints exchanges referral points for a discount coupon
func RedeemPoints(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(utils.UnauthorizedError(utils.ErrUnauthorized, nil))
		return
	}

	var req RedeemPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(utils.ValidationFailed(err))
		return
	}

	result, err := services.RedeemPoints(deps.DB, user.ID, req.PointsToRedeem)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.Created(c, utils.MsgPointsRedeemed, result)
}
