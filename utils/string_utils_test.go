package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventSlug(t *testing.T) {
	a := EventSlug("Jazz Night: Live!")
	b := EventSlug("Jazz Night: Live!")

	assert.True(t, strings.HasPrefix(a, "jazz-night-live-"), a)
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(EventSlug("!!!"), "event-"))
	assert.LessOrEqual(t, len(EventSlug(strings.Repeat("long title ", 30))), 89)
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" music ", "Music", "", "live", "jazz", "live"})
	assert.Equal(t, []string{"music", "live", "jazz"}, got)
	assert.Empty(t, NormalizeTags(nil))
}
