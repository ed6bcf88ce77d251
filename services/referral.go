package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/eventhub-id/eventhub-api/models"
	"github.com/eventhub-id/eventhub-api/utils"
	"gorm.io/gorm"
)

// Referral reward policy
const (
	ReferralRewardPoints    = 10000
	ReferralDiscountPercent = 10
	ReferralRewardValidity  = 90 * 24 * time.Hour

	referralCodeBytes = 4
)

// GenerateReferralCode returns an 8 character upper-case hex code that no
// user holds yet. It keeps drawing until it finds a free code.
func GenerateReferralCode(tx *gorm.DB) (string, error) {
	for {
		code, err := randomReferralCode()
		if err != nil {
			return "", fmt.Errorf("generate referral code: %w", err)
		}

		var count int64
		if err := tx.Unscoped().Model(&models.User{}).Where("referral_code = ?", code).Count(&count).Error; err != nil {
			return "", fmt.Errorf("check referral code: %w", err)
		}
		if count == 0 {
			return code, nil
		}
	}
}

func randomReferralCode() (string, error) {
	code, err := utils.RandomHex(referralCodeBytes)
	return strings.ToUpper(code), err
}

// RecordReferralReward writes the ledger row for one referred registration
// and credits the referrer. Each call credits again, so it must run once
// per registration and inside the registration transaction.
func RecordReferralReward(tx *gorm.DB, referrerID, referredID uint, points, discountPercent int) (*models.ReferralTransaction, error) {
	entry := models.ReferralTransaction{
		ReferrerID:         referrerID,
		ReferredID:         referredID,
		PointsEarned:       points,
		DiscountPercentage: discountPercent,
		ExpiresAt:          time.Now().Add(ReferralRewardValidity),
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create referral transaction: %w", err)
	}

	res := tx.Model(&models.User{}).
		Where("id = ?", referrerID).
		UpdateColumn("referral_points", gorm.Expr("referral_points + ?", points))
	if res.Error != nil {
		return nil, fmt.Errorf("credit referrer points: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("credit referrer points: user %d not found", referrerID)
	}
	return &entry, nil
}
