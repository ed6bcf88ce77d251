package utils

import (
	"testing"
	"time"

	"github.com/eventhub-id/eventhub-api/models"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Passw0rd123")
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd123", hash)
	assert.True(t, CheckPassword("Passw0rd123", hash))
	assert.False(t, CheckPassword("passw0rd123", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	ConfigureJWT("unit-secret", time.Hour)
	user := &models.User{Email: "jo@example.com", Role: models.RoleAdmin}
	user.ID = 42

	token, err := GenerateToken(user)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "jo@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestValidateToken_Rejects(t *testing.T) {
	ConfigureJWT("unit-secret", time.Hour)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte("unit-secret"))
	require.NoError(t, err)
	_, err = ValidateToken(signed)
	assert.Error(t, err)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err = foreign.SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = ValidateToken(signed)
	assert.Error(t, err)

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err = noUser.SignedString([]byte("unit-secret"))
	require.NoError(t, err)
	_, err = ValidateToken(signed)
	assert.Error(t, err)

	_, err = ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestGenerateVerificationToken(t *testing.T) {
	a, err := GenerateVerificationToken()
	require.NoError(t, err)
	b, err := GenerateVerificationToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
