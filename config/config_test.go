package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "JWT_EXPIRY", "VERIFICATION_TTL", "SMTP_PORT", "RATE_LIMIT_AUTH", "RATE_LIMIT_REFERRAL_WINDOW", "S3_BUCKET"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "2000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, 2*time.Hour, cfg.Verification.TTL)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 5, cfg.RateLimit.AuthLimit)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.ReferralWindow)
	assert.Empty(t, cfg.S3.Bucket)
	assert.Same(t, cfg, AppConfig)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("VERIFICATION_TTL", "30m")
	t.Setenv("RATE_LIMIT_REDEEM", "2")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("JWT_EXPIRY", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.Verification.TTL)
	assert.Equal(t, 2, cfg.RateLimit.RedeemLimit)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
}

func TestInitGoogleOAuth(t *testing.T) {
	InitGoogleOAuth(&Config{Google: GoogleConfig{ClientID: "id", ClientSecret: "secret", RedirectURL: "http://localhost/cb"}})

	require.NotNil(t, GoogleOAuthConfig)
	assert.Equal(t, "id", GoogleOAuthConfig.ClientID)
	assert.Len(t, GoogleOAuthConfig.Scopes, 2)
	assert.Contains(t, GoogleOAuthConfig.AuthCodeURL("state"), "accounts.google.com")
}
