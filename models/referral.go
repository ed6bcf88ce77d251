package models

import (
	"time"
)

// ReferralTransaction records one successful referred registration.
// Rows are written once and never updated.
type ReferralTransaction struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	ReferrerID         uint      `gorm:"index;not null" json:"referrer_id"`
	Referrer           User      `gorm:"foreignKey:ReferrerID" json:"referrer,omitempty"`
	ReferredID         uint      `gorm:"index;not null" json:"referred_id"`
	Referred           User      `gorm:"foreignKey:ReferredID" json:"referred,omitempty"`
	PointsEarned       int       `gorm:"not null" json:"points_earned"`
	DiscountPercentage int       `gorm:"not null" json:"discount_percentage"`
	ExpiresAt          time.Time `json:"expires_at"`
	CreatedAt          time.Time `json:"created_at"`
}
