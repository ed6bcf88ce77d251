package utils

import (
	"strings"

	"github.com/eventhub-id/eventhub-api/models"
	"gorm.io/gorm"
)

// GetUserByID retrieves a user by ID
func GetUserByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email, case-insensitively
func GetUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByReferralCode retrieves the owner of a referral code
func GetUserByReferralCode(db *gorm.DB, code string) (*models.User, error) {
	var user models.User
	if err := db.Where("referral_code = ?", strings.ToUpper(strings.TrimSpace(code))).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AdvisoryXactLock takes a transaction-scoped advisory lock on key.
// Only Postgres supports it; other dialects are left unlocked.
func AdvisoryXactLock(tx *gorm.DB, key string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error
}
