package services

import (
	"time"

	"github.com/eventhub-id/eventhub-api/models"
	"github.com/eventhub-id/eventhub-api/utils"
	"gorm.io/gorm"
)

// Redemption policy
const (
	MinRedeemPoints   = 100
	MaxRedeemPoints   = 5000
	RedeemPointsStep  = 100
	PointsPerPercent  = 100
	MaxRedeemDiscount = 50
)

// RedemptionResult describes the coupon bought with points
type RedemptionResult struct {
	DiscountType    string    `json:"discountType"`
	DiscountValue   float64   `json:"discountValue"`
	ExpiryDate      time.Time `json:"expiryDate"`
	PointsUsed      int       `json:"pointsUsed"`
	RemainingPoints int       `json:"remainingPoints"`
	CouponID        uint      `json:"couponId"`
}

// RedemptionDiscount converts points to a discount percentage,
// one percent per hundred points, capped at MaxRedeemDiscount
func RedemptionDiscount(points int) int {
	discount := points / PointsPerPercent
	if discount > MaxRedeemDiscount {
		return MaxRedeemDiscount
	}
	return discount
}

// ValidateRedeemAmount checks the requested amount against the redemption policy
func ValidateRedeemAmount(points int) error {
	var errs utils.FieldValidationErrors
	switch {
	case points < MinRedeemPoints:
		errs.Add("pointsToRedeem", "must be at least 100")
	case points > MaxRedeemPoints:
		errs.Add("pointsToRedeem", "must be at most 5000")
	case points%RedeemPointsStep != 0:
		errs.Add("pointsToRedeem", "must be a multiple of 100")
	}
	if len(errs) > 0 {
		return utils.BadRequestError("Validation failed", errs).WithDetails(errs)
	}
	return nil
}

// RedeemPoints debits points from the user and grants a matching discount
// coupon. The debit is a conditional update so concurrent redemptions can
// never take the balance below zero; everything runs in one transaction.
func RedeemPoints(db *gorm.DB, userID uint, points int) (*RedemptionResult, error) {
	if err := ValidateRedeemAmount(points); err != nil {
		return nil, err
	}
	discount := RedemptionDiscount(points)

	var result *RedemptionResult
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND referral_points >= ?", userID, points).
			UpdateColumn("referral_points", gorm.Expr("referral_points - ?", points))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return utils.NotFoundError("User not found", nil)
			}
			return utils.BadRequestError(utils.ErrInsufficientPoints, nil).
				WithDetails("You do not have enough points to redeem this reward")
		}

		promo, err := ResolvePromotion(tx, RedemptionPromotionKey(discount), RedemptionPromotionDefaults)
		if err != nil {
			return err
		}
		coupon, err := IssueCoupon(tx, userID, promo)
		if err != nil {
			return err
		}

		var remaining []int
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Pluck("referral_points", &remaining).Error; err != nil {
			return err
		}
		left := 0
		if len(remaining) > 0 {
			left = remaining[0]
		}

		result = &RedemptionResult{
			DiscountType:    promo.DiscountType,
			DiscountValue:   promo.DiscountValue,
			ExpiryDate:      promo.EndDate,
			PointsUsed:      points,
			RemainingPoints: left,
			CouponID:        coupon.ID,
		}
		return nil
	})
	if err != nil {
		if utils.IsAppError(err) {
			return nil, err
		}
		return nil, utils.InternalError("Failed to redeem points", err)
	}

	utils.LogInfo("User %d redeemed %d points for %d%% coupon", userID, points, discount)
	return result, nil
}
