package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/eventhub-id/eventhub-api/models"
	"github.com/eventhub-id/eventhub-api/utils"
	"gorm.io/gorm"
)

// AuthService owns registration, verification and login
type AuthService struct {
	DB              *gorm.DB
	Notifier        VerificationNotifier
	VerificationTTL time.Duration
}

// RegisterInput is a validated registration request
type RegisterInput struct {
	Fullname     string
	Email        string
	Password     string
	Role         string
	ReferralCode string
}

// WelcomeBonus describes the coupon granted to a referred user
type WelcomeBonus struct {
	DiscountType  string    `json:"discountType"`
	DiscountValue float64   `json:"discountValue"`
	ExpiresAt     time.Time `json:"expiresAt"`
	Message       string    `json:"message"`
}

// RegisterResult is the outcome of a registration
type RegisterResult struct {
	User         *models.User
	WelcomeBonus *WelcomeBonus
}

// GoogleProfile is the identity returned by Google sign-in
type GoogleProfile struct {
	ID            string
	Email         string
	Name          string
	VerifiedEmail bool
}

func (s *AuthService) ttl() time.Duration {
	if s.VerificationTTL > 0 {
		return s.VerificationTTL
	}
	return 2 * time.Hour
}

// Register creates an unverified account. With a referral code it also
// credits the referrer and grants the new user a welcome coupon, all in
// the same transaction. The verification email goes out after commit.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	email := utils.NormalizeEmail(in.Email)
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.IsValidRole(role) {
		return nil, utils.BadRequestError("Invalid role", nil)
	}

	var existing int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, utils.InternalError("Failed to check email", err)
	}
	if existing > 0 {
		return nil, utils.ConflictError("Email already registered", nil)
	}

	var referrer *models.User
	if code := strings.ToUpper(strings.TrimSpace(in.ReferralCode)); code != "" {
		found, err := utils.GetUserByReferralCode(s.DB, code)
		if err != nil {
			if utils.IsRecordNotFound(err) {
				return nil, utils.BadRequestError(utils.ErrInvalidReferral, err)
			}
			return nil, utils.InternalError("Failed to check referral code", err)
		}
		referrer = found
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, utils.InternalError("Failed to process password", err)
	}
	token, err := utils.GenerateVerificationToken()
	if err != nil {
		return nil, utils.InternalError("Failed to generate verification token", err)
	}
	expires := time.Now().Add(s.ttl())

	user := models.User{
		Fullname:              strings.TrimSpace(in.Fullname),
		Email:                 email,
		Password:              hash,
		Role:                  role,
		VerificationToken:     &token,
		VerificationExpiresAt: &expires,
	}
	var bonus *WelcomeBonus

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		code, err := GenerateReferralCode(tx)
		if err != nil {
			return err
		}
		user.ReferralCode = code
		if referrer != nil {
			user.ReferredByID = &referrer.ID
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		if referrer == nil {
			return nil
		}

		entry, err := RecordReferralReward(tx, referrer.ID, user.ID, ReferralRewardPoints, ReferralDiscountPercent)
		if err != nil {
			return err
		}
		promo, err := ResolvePromotion(tx, WelcomePromotionKey(), WelcomePromotionDefaults)
		if err != nil {
			return err
		}
		if _, err := IssueCoupon(tx, user.ID, promo); err != nil {
			return err
		}
		bonus = &WelcomeBonus{
			DiscountType:  promo.DiscountType,
			DiscountValue: promo.DiscountValue,
			ExpiresAt:     promo.EndDate,
			Message:       fmt.Sprintf("You received a %d%% discount coupon for joining with a referral code", entry.DiscountPercentage),
		}
		return nil
	})
	if err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.ConflictError("Email already registered", err)
		}
		return nil, utils.InternalError("Failed to create account", err)
	}

	if referrer != nil {
		utils.LogInfo("User %d registered with referral from user %d", user.ID, referrer.ID)
	} else {
		utils.LogInfo("User %d registered", user.ID)
	}

	// The account is committed at this point; a lost email is recovered
	// through the queue or the resend endpoint.
	if err := s.Notifier.SendVerification(ctx, &user, token, referrer != nil); err != nil {
		utils.LogError("Verification email for user %d not delivered: %v", user.ID, err)
	}

	return &RegisterResult{User: &user, WelcomeBonus: bonus}, nil
}

// VerifyEmail marks the owner of token as verified and clears the token
func (s *AuthService) VerifyEmail(token string) (*models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, utils.BadRequestError("Verification token is required", nil)
	}

	var user models.User
	if err := s.DB.Where("verification_token = ?", token).First(&user).Error; err != nil {
		if utils.IsRecordNotFound(err) {
			return nil, utils.BadRequestError("Invalid or expired verification token", err)
		}
		return nil, utils.InternalError("Failed to verify email", err)
	}
	if user.IsVerified {
		return nil, utils.ConflictError("Email already verified", nil)
	}
	if user.VerificationExpiresAt == nil || time.Now().After(*user.VerificationExpiresAt) {
		return nil, utils.BadRequestError("Verification token has expired", nil)
	}

	res := s.DB.Model(&models.User{}).
		Where("id = ? AND verification_token = ?", user.ID, token).
		Updates(map[string]interface{}{
			"is_verified":             true,
			"verification_token":      nil,
			"verification_expires_at": nil,
		})
	if res.Error != nil {
		return nil, utils.InternalError("Failed to verify email", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, utils.BadRequestError("Invalid or expired verification token", nil)
	}

	user.IsVerified = true
	user.VerificationToken = nil
	user.VerificationExpiresAt = nil
	utils.LogInfo("User %d verified email", user.ID)
	return &user, nil
}

// ResendVerification issues a fresh verification token and emails it
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	user, err := utils.GetUserByEmail(s.DB, email)
	if err != nil {
		if utils.IsRecordNotFound(err) {
			return utils.NotFoundError("User not found", err)
		}
		return utils.InternalError("Failed to find user", err)
	}
	if user.IsVerified {
		return utils.BadRequestError("Email already verified", nil)
	}

	token, err := utils.GenerateVerificationToken()
	if err != nil {
		return utils.InternalError("Failed to generate verification token", err)
	}
	expires := time.Now().Add(s.ttl())
	if err := s.DB.Model(user).Updates(map[string]interface{}{
		"verification_token":      token,
		"verification_expires_at": expires,
	}).Error; err != nil {
		return utils.InternalError("Failed to update verification token", err)
	}

	if err := s.Notifier.SendVerification(ctx, user, token, user.ReferredByID != nil); err != nil {
		return utils.ServiceUnavailableError("Failed to send verification email", err)
	}
	return nil
}

// Login checks credentials and returns a session token
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := utils.GetUserByEmail(s.DB, email)
	if err != nil {
		if utils.IsRecordNotFound(err) {
			return nil, "", utils.NotFoundError("User not found", err)
		}
		return nil, "", utils.InternalError("Failed to find user", err)
	}
	if !utils.CheckPassword(password, user.Password) {
		return nil, "", utils.UnauthorizedError(utils.ErrInvalidCredentials, nil)
	}
	if !user.IsVerified {
		return nil, "", utils.UnauthorizedError(utils.ErrEmailNotVerified, nil)
	}

	now := time.Now()
	if err := s.DB.Model(user).UpdateColumn("last_login_at", now).Error; err != nil {
		utils.LogError("Failed to update last login for user %d: %v", user.ID, err)
	}
	user.LastLoginAt = &now

	token, err := utils.GenerateToken(user)
	if err != nil {
		return nil, "", utils.InternalError("Failed to generate token", err)
	}
	return user, token, nil
}

// RefreshSession issues a new token for an authenticated user
func (s *AuthService) RefreshSession(userID uint) (*models.User, string, error) {
	user, err := utils.GetUserByID(s.DB, userID)
	if err != nil {
		if utils.IsRecordNotFound(err) {
			return nil, "", utils.NotFoundError("User not found", err)
		}
		return nil, "", utils.InternalError("Failed to find user", err)
	}
	token, err := utils.GenerateToken(user)
	if err != nil {
		return nil, "", utils.InternalError("Failed to generate token", err)
	}
	return user, token, nil
}

// LoginWithGoogle finds or creates the account for a Google identity
func (s *AuthService) LoginWithGoogle(profile GoogleProfile) (*models.User, string, error) {
	if profile.Email == "" || profile.ID == "" {
		return nil, "", utils.BadRequestError("Google account has no email", nil)
	}
	email := utils.NormalizeEmail(profile.Email)

	var user models.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("google_id = ?", profile.ID).Or("email = ?", email).First(&user).Error
		if err == nil {
			updates := map[string]interface{}{"is_verified": true}
			if user.GoogleID == nil {
				updates["google_id"] = profile.ID
			}
			if err := tx.Model(&user).Updates(updates).Error; err != nil {
				return err
			}
			user.IsVerified = true
			if user.GoogleID == nil {
				googleID := profile.ID
				user.GoogleID = &googleID
			}
			return nil
		}
		if !utils.IsRecordNotFound(err) {
			return err
		}

		secret, err := utils.RandomHex(16)
		if err != nil {
			return err
		}
		hash, err := utils.HashPassword(secret)
		if err != nil {
			return err
		}
		code, err := GenerateReferralCode(tx)
		if err != nil {
			return err
		}
		googleID := profile.ID
		name := strings.TrimSpace(profile.Name)
		if name == "" {
			name = strings.Split(email, "@")[0]
		}
		user = models.User{
			Fullname:     name,
			Email:        email,
			Password:     hash,
			Role:         models.RoleUser,
			IsVerified:   true,
			ReferralCode: code,
			GoogleID:     &googleID,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, "", utils.InternalError("Failed to sign in with Google", err)
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		return nil, "", utils.InternalError("Failed to generate token", err)
	}
	return &user, token, nil
}
