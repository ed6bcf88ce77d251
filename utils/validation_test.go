package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStrongPassword(t *testing.T) {
	valid := []string{"Passw0rd", "abc12345", "12345abc", "A1b2C3d4e5"}
	invalid := []string{"short1", "allletters", "12345678", "Passw0rd!", "pass word1", ""}

	for _, p := range valid {
		assert.True(t, IsStrongPassword(p), p)
	}
	for _, p := range invalid {
		assert.False(t, IsStrongPassword(p), p)
	}
}

func TestIsReferralCode(t *testing.T) {
	assert.True(t, IsReferralCode("A1B2C3D4"))
	assert.True(t, IsReferralCode("00000000"))
	assert.False(t, IsReferralCode("a1b2c3d4"))
	assert.False(t, IsReferralCode("A1B2C3D"))
	assert.False(t, IsReferralCode("A1B2C3D4E"))
	assert.False(t, IsReferralCode("G1B2C3D4"))
}

func TestIsClockTime(t *testing.T) {
	for _, s := range []string{"9:00", "09:00", "23:59", "0:05"} {
		assert.True(t, IsClockTime(s), s)
	}
	for _, s := range []string{"24:00", "12:60", "1200", "12:5", ""} {
		assert.False(t, IsClockTime(s), s)
	}
}

func TestIsPromoCode(t *testing.T) {
	assert.True(t, IsPromoCode("EARLY_BIRD_20"))
	assert.False(t, IsPromoCode("early"))
	assert.False(t, IsPromoCode("EARLY-20"))
}

type signupForm struct {
	Fullname string `json:"fullname" binding:"required,min=2"`
	Password string `json:"password" binding:"required,strongpassword"`
	Code     string `json:"code" binding:"omitempty,referralcode"`
	Items    []item `json:"items" binding:"required,min=1,dive"`
}

type item struct {
	Name string `json:"name" binding:"required"`
}

func TestValidateStruct(t *testing.T) {
	ok := signupForm{Fullname: "Jo", Password: "abc12345", Items: []item{{Name: "x"}}}
	require.NoError(t, ValidateStruct(&ok))

	bad := signupForm{Fullname: "J", Password: "password", Code: "xyz", Items: []item{{}}}
	err := ValidateStruct(&bad)
	require.Error(t, err)

	fields := map[string]string{}
	for _, fe := range FormatValidationErrors(err) {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "must be at least 2 characters", fields["fullname"])
	assert.Contains(t, fields["password"], "letters and numbers")
	assert.Equal(t, "must be 8 characters of 0-9 and A-F", fields["code"])
	assert.Equal(t, "is required", fields["items[0].name"])
}

func TestValidationFailed(t *testing.T) {
	err := ValidateStruct(&signupForm{})
	require.Error(t, err)

	appErr := ValidationFailed(err)
	assert.Equal(t, 400, appErr.Code)
	details, ok := appErr.Details.(FieldValidationErrors)
	require.True(t, ok)
	assert.NotEmpty(t, details)
}

func TestFieldValidationErrors(t *testing.T) {
	var errs FieldValidationErrors
	errs.Add("startDate", "must be in the future")
	errs.Add("tags", "must contain between 1 and 10 tags")

	assert.Len(t, errs, 2)
	assert.Equal(t, "startDate: must be in the future; tags: must contain between 1 and 10 tags", errs.Error())
	assert.Equal(t, errs, FormatValidationErrors(errs))
}
