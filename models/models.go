package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleUser           = "USER"
	RoleEventOrganizer = "EVENT_ORGANIZER"
	RoleAdmin          = "ADMIN"
)

// User represents an account on the platform
type User struct {
	gorm.Model
	Fullname              string     `gorm:"not null" json:"fullname"`
	Email                 string     `gorm:"uniqueIndex;not null" json:"email"`
	Password              string     `json:"-"`
	Role                  string     `gorm:"not null;default:USER" json:"role"`
	IsVerified            bool       `gorm:"default:false" json:"is_verified"`
	VerificationToken     *string    `gorm:"uniqueIndex" json:"-"`
	VerificationExpiresAt *time.Time `json:"-"`
	ReferralCode          string     `gorm:"uniqueIndex;size:8;not null" json:"referral_code"`
	ReferralPoints        int        `gorm:"not null;default:0;check:chk_users_referral_points,referral_points >= 0" json:"referral_points"`
	ReferredByID          *uint      `gorm:"index" json:"referred_by_id,omitempty"`
	GoogleID              *string    `gorm:"uniqueIndex" json:"-"`
	LastLoginAt           *time.Time `json:"last_login_at,omitempty"`

	Coupons []UserCoupon `gorm:"foreignKey:UserID" json:"coupons,omitempty"`
}

// IsValidRole reports whether role can be chosen at registration
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleEventOrganizer
}

// HasRole reports whether the user holds one of roles
func (u *User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
