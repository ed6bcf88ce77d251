package services

import (
	"fmt"
	"time"

	"github.com/eventhub-id/eventhub-api/models"
	"github.com/eventhub-id/eventhub-api/utils"
	"gorm.io/gorm"
)

// PromotionKey identifies a platform promotion by its shape. A stored
// promotion matches when type, discount kind and value are equal and it
// is active now and stays active for at least MinRemaining.
type PromotionKey struct {
	PromoType     string
	DiscountType  string
	DiscountValue float64
	MinRemaining  time.Duration
}

func (k PromotionKey) lockKey() string {
	return fmt.Sprintf("promotion:%s:%s:%g", k.PromoType, k.DiscountType, k.DiscountValue)
}

// PromotionDefaults configures promotions created by ResolvePromotion
type PromotionDefaults struct {
	Quota    int
	Validity time.Duration
}

var (
	// WelcomePromotionDefaults applies to the coupon granted on a referred registration
	WelcomePromotionDefaults = PromotionDefaults{Quota: 10000, Validity: 3 * 365 * 24 * time.Hour}
	// RedemptionPromotionDefaults applies to coupons bought with points
	RedemptionPromotionDefaults = PromotionDefaults{Quota: 100, Validity: 90 * 24 * time.Hour}
)

// WelcomePromotionKey is the shape of the referral welcome coupon
func WelcomePromotionKey() PromotionKey {
	return PromotionKey{
		PromoType:     models.PromoReferralBased,
		DiscountType:  models.DiscountPercentage,
		DiscountValue: ReferralDiscountPercent,
	}
}

// RedemptionPromotionKey is the shape of a coupon bought with points
func RedemptionPromotionKey(discountPercent int) PromotionKey {
	return PromotionKey{
		PromoType:     models.PromoReferralBased,
		DiscountType:  models.DiscountPercentage,
		DiscountValue: float64(discountPercent),
		MinRemaining:  30 * 24 * time.Hour,
	}
}

// ResolvePromotion returns a live platform promotion matching key, creating
// one from defaults when none exists. On Postgres concurrent callers with
// the same key are serialized by an advisory lock held until commit.
func ResolvePromotion(tx *gorm.DB, key PromotionKey, defaults PromotionDefaults) (*models.Promotion, error) {
	if err := utils.AdvisoryXactLock(tx, key.lockKey()); err != nil {
		return nil, fmt.Errorf("lock promotion key: %w", err)
	}

	now := time.Now()
	var promo models.Promotion
	err := tx.Where("promo_type = ? AND discount_type = ? AND discount_value = ?", key.PromoType, key.DiscountType, key.DiscountValue).
		Where("event_id IS NULL AND start_date <= ? AND end_date >= ?", now, now.Add(key.MinRemaining)).
		Order("end_date DESC").
		First(&promo).Error
	if err == nil {
		return &promo, nil
	}
	if !utils.IsRecordNotFound(err) {
		return nil, fmt.Errorf("find promotion: %w", err)
	}

	promo = models.Promotion{
		PromoType:     key.PromoType,
		DiscountType:  key.DiscountType,
		DiscountValue: key.DiscountValue,
		Quota:         defaults.Quota,
		StartDate:     now,
		EndDate:       now.Add(defaults.Validity),
	}
	if err := tx.Create(&promo).Error; err != nil {
		return nil, fmt.Errorf("create promotion: %w", err)
	}
	utils.LogInfo("Created %s promotion %d (%s %g)", promo.PromoType, promo.ID, promo.DiscountType, promo.DiscountValue)
	return &promo, nil
}

// IssueCoupon grants promotion to user as an unused coupon
func IssueCoupon(tx *gorm.DB, userID uint, promo *models.Promotion) (*models.UserCoupon, error) {
	coupon := models.UserCoupon{
		UserID:      userID,
		PromotionID: promo.ID,
		IsUsed:      false,
	}
	if err := tx.Create(&coupon).Error; err != nil {
		return nil, fmt.Errorf("issue coupon: %w", err)
	}
	coupon.Promotion = *promo
	return &coupon, nil
}

// SweepExpiredPromotions soft-deletes platform promotions that ended before now
func SweepExpiredPromotions(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Where("event_id IS NULL AND end_date < ?", now).Delete(&models.Promotion{})
	return res.RowsAffected, res.Error
}
