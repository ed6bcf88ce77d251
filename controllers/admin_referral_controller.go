package controllers

import (
	"time"

	"github.com/eventhub-id/eventhub-api/models"
	"github.com/eventhub-id/eventhub-api/utils"
	"github.com/gin-gonic/gin"
)

// ReferralRecord is one row of the admin referral listing
type ReferralRecord struct {
	ID                 uint      `json:"id"`
	ReferrerID         uint      `json:"referrerId"`
	ReferrerName       string    `json:"referrerName"`
	ReferrerEmail      string    `json:"referrerEmail"`
	ReferredID         uint      `json:"referredId"`
	ReferredName       string    `json:"referredName"`
	ReferredEmail      string    `json:"referredEmail"`
	PointsEarned       int       `json:"pointsEarned"`
	DiscountPercentage int       `json:"discountPercentage"`
	ExpiresAt          time.Time `json:"expiresAt"`
	CreatedAt          time.Time `json:"createdAt"`
}

func newReferralRecord(r *models.ReferralTransaction) ReferralRecord {
	return ReferralRecord{
		ID:                 r.ID,
		ReferrerID:         r.ReferrerID,
		ReferrerName:       r.Referrer.Fullname,
		ReferrerEmail:      r.Referrer.Email,
		ReferredID:         r.ReferredID,
		ReferredName:       r.Referred.Fullname,
		ReferredEmail:      r.Referred.Email,
		PointsEarned:       r.PointsEarned,
		DiscountPercentage: r.DiscountPercentage,
		ExpiresAt:          r.ExpiresAt,
		CreatedAt:          r.CreatedAt,
	}
}

// GetAllReferrals lists referral transactions, newest first
func GetAllReferrals(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c)

	var total int64
	if err := deps.DB.Model(&models.ReferralTransaction{}).Count(&total).Error; err != nil {
		_ = c.Error(utils.InternalError("Failed to count referrals", err))
		return
	}

	var referrals []models.ReferralTransaction
	if err := deps.DB.Preload("Referrer").
		Preload("Referred").
		Order("created_at DESC, id DESC").
		Offset(utils.Offset(page, limit)).
		Limit(limit).
		Find(&referrals).Error; err != nil {
		_ = c.Error(utils.InternalError("Failed to fetch referrals", err))
		return
	}

	records := make([]ReferralRecord, 0, len(referrals))
	for i := range referrals {
		records = append(records, newReferralRecord(&referrals[i]))
	}
	utils.SuccessWithPagination(c, "Referrals retrieved successfully", records, total, page, limit)
}
