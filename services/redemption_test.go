package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/eventhub-id/eventhub-api/models"
	"github.com/eventhub-id/eventhub-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedemptionDiscount(t *testing.T) {
	cases := map[int]int{
		100:  1,
		500:  5,
		2500: 25,
		5000: 50,
	}
	for points, want := range cases {
		assert.Equal(t, want, RedemptionDiscount(points), "points %d", points)
	}
	assert.Equal(t, MaxRedeemDiscount, RedemptionDiscount(9900))
}

func TestValidateRedeemAmount(t *testing.T) {
	for _, ok := range []int{100, 200, 5000} {
		assert.NoError(t, ValidateRedeemAmount(ok), "points %d", ok)
	}
	for _, bad := range []int{0, 50, 150, 5100, -100} {
		err := ValidateRedeemAmount(bad)
		assert.True(t, utils.HasCode(err, http.StatusBadRequest), "points %d", bad)
	}
}

func TestRedeemPoints(t *testing.T) {
	db := utils.SetupTestDB(t)
	user := utils.CreateTestUser(t, db, models.RoleUser, 10000)

	result, err := RedeemPoints(db, user.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, models.DiscountPercentage, result.DiscountType)
	assert.Equal(t, float64(1), result.DiscountValue)
	assert.Equal(t, 100, result.PointsUsed)
	assert.Equal(t, 9900, result.RemainingPoints)
	assert.True(t, result.ExpiryDate.After(time.Now().Add(30*24*time.Hour)))

	result, err = RedeemPoints(db, user.ID, 5000)
	require.NoError(t, err)
	assert.Equal(t, float64(50), result.DiscountValue)
	assert.Equal(t, 4900, result.RemainingPoints)

	got, err := utils.GetUserByID(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 4900, got.ReferralPoints)

	var coupons int64
	require.NoError(t, db.Model(&models.UserCoupon{}).Where("user_id = ?", user.ID).Count(&coupons).Error)
	assert.Equal(t, int64(2), coupons)
}

func TestRedeemPoints_ReusesPromotion(t *testing.T) {
	db := utils.SetupTestDB(t)
	a := utils.CreateTestUser(t, db, models.RoleUser, 1000)
	b := utils.CreateTestUser(t, db, models.RoleUser, 1000)

	first, err := RedeemPoints(db, a.ID, 300)
	require.NoError(t, err)
	second, err := RedeemPoints(db, b.ID, 300)
	require.NoError(t, err)

	var promoIDs []uint
	require.NoError(t, db.Model(&models.UserCoupon{}).
		Where("id IN ?", []uint{first.CouponID, second.CouponID}).
		Pluck("promotion_id", &promoIDs).Error)
	require.Len(t, promoIDs, 2)
	assert.Equal(t, promoIDs[0], promoIDs[1])
}

func TestRedeemPoints_InsufficientBalance(t *testing.T) {
	db := utils.SetupTestDB(t)
	user := utils.CreateTestUser(t, db, models.RoleUser, 300)

	_, err := RedeemPoints(db, user.ID, 400)
	require.Error(t, err)
	assert.True(t, utils.HasCode(err, http.StatusBadRequest))

	got, err := utils.GetUserByID(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 300, got.ReferralPoints)

	var coupons, promos int64
	require.NoError(t, db.Model(&models.UserCoupon{}).Count(&coupons).Error)
	require.NoError(t, db.Model(&models.Promotion{}).Count(&promos).Error)
	assert.Zero(t, coupons)
	assert.Zero(t, promos)
}

func TestRedeemPoints_ExactBalance(t *testing.T) {
	db := utils.SetupTestDB(t)
	user := utils.CreateTestUser(t, db, models.RoleUser, 700)

	result, err := RedeemPoints(db, user.ID, 700)
	require.NoError(t, err)
	assert.Equal(t, 0, result.RemainingPoints)
}

func TestRedeemPoints_InvalidStep(t *testing.T) {
	db := utils.SetupTestDB(t)
	user := utils.CreateTestUser(t, db, models.RoleUser, 1000)

	_, err := RedeemPoints(db, user.ID, 150)
	assert.True(t, utils.HasCode(err, http.StatusBadRequest))

	got, err := utils.GetUserByID(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000, got.ReferralPoints)
}

func TestRedeemPoints_UnknownUser(t *testing.T) {
	db := utils.SetupTestDB(t)

	_, err := RedeemPoints(db, 4242, 100)
	assert.True(t, utils.HasCode(err, http.StatusNotFound))
}

func TestRedeemPoints_SequentialNeverOverdraws(t *testing.T) {
	db := utils.SetupTestDB(t)
	user := utils.CreateTestUser(t, db, models.RoleUser, 1000)

	succeeded := 0
	for i := 0; i < 5; i++ {
		if _, err := RedeemPoints(db, user.ID, 300); err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 3, succeeded)

	got, err := utils.GetUserByID(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.ReferralPoints)
}
