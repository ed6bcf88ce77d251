package models

import (
	"time"

	"gorm.io/gorm"
)

// UserCoupon grants one promotion to one user
type UserCoupon struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"index;not null" json:"user_id"`
	PromotionID uint           `gorm:"index;not null" json:"promotion_id"`
	Promotion   Promotion      `gorm:"foreignKey:PromotionID" json:"promotion,omitempty"`
	IsUsed      bool           `gorm:"default:false" json:"is_used"`
	UsedAt      *time.Time     `json:"used_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
