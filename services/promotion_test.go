package services

import (
	"testing"
	"time"

	"github.com/eventhub-id/eventhub-api/models"
	"github.com/eventhub-id/eventhub-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePromotion_CreatesThenReuses(t *testing.T) {
	db := utils.SetupTestDB(t)

	first, err := ResolvePromotion(db, WelcomePromotionKey(), WelcomePromotionDefaults)
	require.NoError(t, err)
	assert.Equal(t, models.PromoReferralBased, first.PromoType)
	assert.Equal(t, models.DiscountPercentage, first.DiscountType)
	assert.Equal(t, float64(ReferralDiscountPercent), first.DiscountValue)
	assert.Equal(t, WelcomePromotionDefaults.Quota, first.Quota)
	assert.Nil(t, first.EventID)

	second, err := ResolvePromotion(db, WelcomePromotionKey(), WelcomePromotionDefaults)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Promotion{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestResolvePromotion_DistinctShapes(t *testing.T) {
	db := utils.SetupTestDB(t)

	five, err := ResolvePromotion(db, RedemptionPromotionKey(5), RedemptionPromotionDefaults)
	require.NoError(t, err)
	ten, err := ResolvePromotion(db, RedemptionPromotionKey(10), RedemptionPromotionDefaults)
	require.NoError(t, err)

	assert.NotEqual(t, five.ID, ten.ID)
	assert.Equal(t, float64(5), five.DiscountValue)
	assert.Equal(t, float64(10), ten.DiscountValue)
}

func TestResolvePromotion_SkipsExpiredAndSoftDeleted(t *testing.T) {
	db := utils.SetupTestDB(t)
	now := time.Now()

	expired := models.Promotion{
		PromoType:     models.PromoReferralBased,
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 10,
		Quota:         10,
		StartDate:     now.AddDate(0, 0, -30),
		EndDate:       now.AddDate(0, 0, -1),
	}
	require.NoError(t, db.Create(&expired).Error)

	deleted := models.Promotion{
		PromoType:     models.PromoReferralBased,
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 10,
		Quota:         10,
		StartDate:     now.AddDate(0, 0, -1),
		EndDate:       now.AddDate(1, 0, 0),
	}
	require.NoError(t, db.Create(&deleted).Error)
	require.NoError(t, db.Delete(&deleted).Error)

	got, err := ResolvePromotion(db, WelcomePromotionKey(), WelcomePromotionDefaults)
	require.NoError(t, err)
	assert.NotEqual(t, expired.ID, got.ID)
	assert.NotEqual(t, deleted.ID, got.ID)
	assert.True(t, got.EndDate.After(now))
}

func TestResolvePromotion_RedemptionNeedsRemainingValidity(t *testing.T) {
	db := utils.SetupTestDB(t)
	now := time.Now()

	// active, but ends before the 30 day window redemption coupons need
	ending := models.Promotion{
		PromoType:     models.PromoReferralBased,
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 20,
		Quota:         100,
		StartDate:     now.AddDate(0, 0, -60),
		EndDate:       now.AddDate(0, 0, 10),
	}
	require.NoError(t, db.Create(&ending).Error)

	got, err := ResolvePromotion(db, RedemptionPromotionKey(20), RedemptionPromotionDefaults)
	require.NoError(t, err)
	assert.NotEqual(t, ending.ID, got.ID)
	assert.WithinDuration(t, now.Add(RedemptionPromotionDefaults.Validity), got.EndDate, time.Minute)
}

func TestResolvePromotion_IgnoresEventPromotions(t *testing.T) {
	db := utils.SetupTestDB(t)
	organizer := utils.CreateTestUser(t, db, models.RoleEventOrganizer, 0)
	event := models.Event{OrganizerID: organizer.ID, Title: "Gig", Slug: "gig-1", Status: models.EventStatusPublished}
	require.NoError(t, db.Create(&event).Error)

	now := time.Now()
	eventPromo := models.Promotion{
		EventID:       &event.ID,
		PromoType:     models.PromoReferralBased,
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 10,
		Quota:         5,
		StartDate:     now.AddDate(0, 0, -1),
		EndDate:       now.AddDate(1, 0, 0),
	}
	require.NoError(t, db.Create(&eventPromo).Error)

	got, err := ResolvePromotion(db, WelcomePromotionKey(), WelcomePromotionDefaults)
	require.NoError(t, err)
	assert.NotEqual(t, eventPromo.ID, got.ID)
	assert.Nil(t, got.EventID)
}

func TestIssueCoupon(t *testing.T) {
	db := utils.SetupTestDB(t)
	user := utils.CreateTestUser(t, db, models.RoleUser, 0)
	promo, err := ResolvePromotion(db, WelcomePromotionKey(), WelcomePromotionDefaults)
	require.NoError(t, err)

	coupon, err := IssueCoupon(db, user.ID, promo)
	require.NoError(t, err)
	assert.NotZero(t, coupon.ID)
	assert.False(t, coupon.IsUsed)
	assert.Equal(t, promo.ID, coupon.Promotion.ID)
}

func TestSweepExpiredPromotions(t *testing.T) {
	db := utils.SetupTestDB(t)
	now := time.Now()

	old := models.Promotion{
		PromoType:     models.PromoReferralBased,
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 10,
		Quota:         10,
		StartDate:     now.AddDate(0, -3, 0),
		EndDate:       now.AddDate(0, 0, -1),
	}
	require.NoError(t, db.Create(&old).Error)
	live, err := ResolvePromotion(db, WelcomePromotionKey(), WelcomePromotionDefaults)
	require.NoError(t, err)

	n, err := SweepExpiredPromotions(db, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var remaining []models.Promotion
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, live.ID, remaining[0].ID)
}
