package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderActivationEmail(t *testing.T) {
	data := NewActivationEmail("Jane", "https://app.example.com/auth/verify-email", "tok123", 2*time.Hour, true)
	assert.Equal(t, "https://app.example.com/auth/verify-email?token=tok123", data.ActivateLink)
	assert.Equal(t, "2 hours", data.ExpiryHours)

	body, err := RenderActivationEmail(data)
	require.NoError(t, err)
	assert.Contains(t, body, "Welcome to EventHub, Jane!")
	assert.Contains(t, body, "token=tok123")
	assert.Contains(t, body, "expires in 2 hours")
	assert.Contains(t, body, "referral code")
}

func TestRenderActivationEmail_EscapesName(t *testing.T) {
	data := NewActivationEmail("<script>", "https://app.example.com/verify", "t", 15*time.Minute, false)
	assert.Equal(t, "15 minutes", data.ExpiryHours)

	body, err := RenderActivationEmail(data)
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "referral code")
}

func TestFormatTTL(t *testing.T) {
	assert.Equal(t, "1 hour", formatTTL(time.Hour))
	assert.Equal(t, "24 hours", formatTTL(24*time.Hour))
	assert.Equal(t, "90 minutes", formatTTL(90*time.Minute))
}
