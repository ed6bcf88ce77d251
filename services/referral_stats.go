package services

import (
	"time"

	"github.com/eventhub-id/eventhub-api/models"
	"github.com/eventhub-id/eventhub-api/utils"
	"gorm.io/gorm"
)

// ReferrerInfo is the public view of a referral code owner
type ReferrerInfo struct {
	ReferrerName   string `json:"referrerName"`
	ReferralCode   string `json:"referralCode"`
	TotalReferrals int64  `json:"totalReferrals"`
}

// ReferralHistoryEntry is one referred registration
type ReferralHistoryEntry struct {
	ReferredUser  string    `json:"referredUser"`
	PointsEarned  int       `json:"pointsEarned"`
	DiscountGiven int       `json:"discountGiven"`
	Date          time.Time `json:"date"`
}

// AvailableCoupon is an unused coupon held by the user
type AvailableCoupon struct {
	CouponID      uint      `json:"couponId"`
	DiscountType  string    `json:"discountType"`
	DiscountValue float64   `json:"discountValue"`
	ExpiresAt     time.Time `json:"expiresAt"`
	Type          string    `json:"type"`
}

// ReferralStats summarizes a user's referral activity
type ReferralStats struct {
	MyReferralCode      string                 `json:"myReferralCode"`
	TotalReferralPoints int                    `json:"totalReferralPoints"`
	TotalReferrals      int                    `json:"totalReferrals"`
	TotalEarnings       int                    `json:"totalEarnings"`
	ReferralHistory     []ReferralHistoryEntry `json:"referralHistory"`
	ReferredBy          *string                `json:"referredBy"`
	AvailableCoupons    []AvailableCoupon      `json:"availableCoupons"`
}

// ValidateReferralCode looks up the owner of code
func ValidateReferralCode(db *gorm.DB, code string) (*ReferrerInfo, error) {
	referrer, err := utils.GetUserByReferralCode(db, code)
	if err != nil {
		if utils.IsRecordNotFound(err) {
			return nil, utils.NotFoundError("Referral code not found", err)
		}
		return nil, utils.InternalError("Failed to validate referral code", err)
	}

	var total int64
	if err := db.Model(&models.ReferralTransaction{}).Where("referrer_id = ?", referrer.ID).Count(&total).Error; err != nil {
		return nil, utils.InternalError("Failed to count referrals", err)
	}

	return &ReferrerInfo{
		ReferrerName:   referrer.Fullname,
		ReferralCode:   referrer.ReferralCode,
		TotalReferrals: total,
	}, nil
}

// GetReferralStats collects the referral dashboard of userID
func GetReferralStats(db *gorm.DB, userID uint) (*ReferralStats, error) {
	user, err := utils.GetUserByID(db, userID)
	if err != nil {
		if utils.IsRecordNotFound(err) {
			return nil, utils.NotFoundError("User not found", err)
		}
		return nil, utils.InternalError("Failed to load user", err)
	}

	var made []models.ReferralTransaction
	if err := db.Preload("Referred").
		Where("referrer_id = ?", userID).
		Order("created_at DESC").
		Find(&made).Error; err != nil {
		return nil, utils.InternalError("Failed to load referrals", err)
	}

	stats := &ReferralStats{
		MyReferralCode:      user.ReferralCode,
		TotalReferralPoints: user.ReferralPoints,
		TotalReferrals:      len(made),
		ReferralHistory:     make([]ReferralHistoryEntry, 0, len(made)),
		AvailableCoupons:    []AvailableCoupon{},
	}
	for _, ref := range made {
		stats.TotalEarnings += ref.PointsEarned
		stats.ReferralHistory = append(stats.ReferralHistory, ReferralHistoryEntry{
			ReferredUser:  ref.Referred.Fullname,
			PointsEarned:  ref.PointsEarned,
			DiscountGiven: ref.DiscountPercentage,
			Date:          ref.CreatedAt,
		})
	}

	var got models.ReferralTransaction
	err = db.Preload("Referrer").Where("referred_id = ?", userID).First(&got).Error
	switch {
	case err == nil:
		name := got.Referrer.Fullname
		stats.ReferredBy = &name
	case !utils.IsRecordNotFound(err):
		return nil, utils.InternalError("Failed to load referrer", err)
	}

	var coupons []models.UserCoupon
	if err := db.Preload("Promotion").
		Where("user_id = ? AND is_used = ?", userID, false).
		Order("created_at DESC").
		Find(&coupons).Error; err != nil {
		return nil, utils.InternalError("Failed to load coupons", err)
	}
	for _, c := range coupons {
		// promotions swept after expiry are not preloaded
		if c.Promotion.ID == 0 {
			continue
		}
		stats.AvailableCoupons = append(stats.AvailableCoupons, AvailableCoupon{
			CouponID:      c.ID,
			DiscountType:  c.Promotion.DiscountType,
			DiscountValue: c.Promotion.DiscountValue,
			ExpiresAt:     c.Promotion.EndDate,
			Type:          c.Promotion.PromoType,
		})
	}

	return stats, nil
}
