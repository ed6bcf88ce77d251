package models

import (
	"time"

	"gorm.io/gorm"
)

// Promotion types
const (
	PromoEarlyBird     = "EARLY_BIRD"
	PromoFlashSale     = "FLASH_SALE"
	PromoBundle        = "BUNDLE"
	PromoReferral      = "REFERRAL"
	PromoVoucher       = "VOUCHER"
	PromoReferralBased = "REFERRAL_BASED"
)

// Discount types
const (
	DiscountPercentage  = "PERCENTAGE"
	DiscountFixedAmount = "FIXED_AMOUNT"
)

// Promotion is a reusable discount definition. EventID is nil for
// platform-wide promotions such as referral rewards.
type Promotion struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	EventID           *uint          `gorm:"index" json:"event_id,omitempty"`
	PromoType         string         `gorm:"index:idx_promotions_shape;not null" json:"promo_type"`
	DiscountType      string         `gorm:"index:idx_promotions_shape;not null" json:"discount_type"`
	DiscountValue     float64        `gorm:"index:idx_promotions_shape;not null" json:"discount_value"`
	Code              *string        `gorm:"uniqueIndex" json:"code,omitempty"`
	MinPurchaseAmount *float64       `json:"min_purchase_amount,omitempty"`
	MaxDiscountAmount *float64       `json:"max_discount_amount,omitempty"`
	Quota             int            `gorm:"not null" json:"quota"`
	UsedCount         int            `gorm:"default:0" json:"used_count"`
	StartDate         time.Time      `gorm:"not null" json:"start_date"`
	EndDate           time.Time      `gorm:"index;not null" json:"end_date"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
