package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/eventhub-id/eventhub-api/models"
	"github.com/eventhub-id/eventhub-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReferralCode(t *testing.T) {
	svc, _ := newAuthService(t)
	referrer := utils.CreateTestUser(t, svc.DB, models.RoleUser, 0)

	in := registerInput("joined@example.com")
	in.ReferralCode = referrer.ReferralCode
	_, err := svc.Register(context.Background(), in)
	require.NoError(t, err)

	info, err := ValidateReferralCode(svc.DB, referrer.ReferralCode)
	require.NoError(t, err)
	assert.Equal(t, referrer.Fullname, info.ReferrerName)
	assert.Equal(t, referrer.ReferralCode, info.ReferralCode)
	assert.Equal(t, int64(1), info.TotalReferrals)

	_, err = ValidateReferralCode(svc.DB, "00000000")
	assert.True(t, utils.HasCode(err, http.StatusNotFound))
}

func TestGetReferralStats(t *testing.T) {
	svc, _ := newAuthService(t)
	referrer := utils.CreateTestUser(t, svc.DB, models.RoleUser, 0)

	in := registerInput("child@example.com")
	in.ReferralCode = referrer.ReferralCode
	child, err := svc.Register(context.Background(), in)
	require.NoError(t, err)

	stats, err := GetReferralStats(svc.DB, referrer.ID)
	require.NoError(t, err)
	assert.Equal(t, referrer.ReferralCode, stats.MyReferralCode)
	assert.Equal(t, ReferralRewardPoints, stats.TotalReferralPoints)
	assert.Equal(t, 1, stats.TotalReferrals)
	assert.Equal(t, ReferralRewardPoints, stats.TotalEarnings)
	require.Len(t, stats.ReferralHistory, 1)
	assert.Equal(t, "Jane Doe", stats.ReferralHistory[0].ReferredUser)
	assert.Nil(t, stats.ReferredBy)
	assert.Empty(t, stats.AvailableCoupons)

	childStats, err := GetReferralStats(svc.DB, child.User.ID)
	require.NoError(t, err)
	require.NotNil(t, childStats.ReferredBy)
	assert.Equal(t, referrer.Fullname, *childStats.ReferredBy)
	require.Len(t, childStats.AvailableCoupons, 1)
	assert.Equal(t, float64(ReferralDiscountPercent), childStats.AvailableCoupons[0].DiscountValue)
	assert.Equal(t, models.PromoReferralBased, childStats.AvailableCoupons[0].Type)
}

func TestGetReferralStats_HidesUsedAndSweptCoupons(t *testing.T) {
	db := utils.SetupTestDB(t)
	user := utils.CreateTestUser(t, db, models.RoleUser, 1000)

	kept, err := RedeemPoints(db, user.ID, 100)
	require.NoError(t, err)
	used, err := RedeemPoints(db, user.ID, 200)
	require.NoError(t, err)
	swept, err := RedeemPoints(db, user.ID, 300)
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, db.Model(&models.UserCoupon{}).Where("id = ?", used.CouponID).
		Updates(map[string]interface{}{"is_used": true, "used_at": now}).Error)

	var sweptCoupon models.UserCoupon
	require.NoError(t, db.First(&sweptCoupon, swept.CouponID).Error)
	require.NoError(t, db.Delete(&models.Promotion{}, sweptCoupon.PromotionID).Error)

	stats, err := GetReferralStats(db, user.ID)
	require.NoError(t, err)
	require.Len(t, stats.AvailableCoupons, 1)
	assert.Equal(t, kept.CouponID, stats.AvailableCoupons[0].CouponID)
}

func TestGetReferralStats_UnknownUser(t *testing.T) {
	db := utils.SetupTestDB(t)

	_, err := GetReferralStats(db, 77)
	assert.True(t, utils.HasCode(err, http.StatusNotFound))
}
