package utils

import (
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// EventSlug builds a URL slug for title with a short random suffix so
// events sharing a title still get distinct slugs
func EventSlug(title string) string {
	base := slug.Make(title)
	if len(base) > 80 {
		base = strings.TrimRight(base[:80], "-")
	}
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	if base == "" {
		return "event-" + suffix
	}
	return base + "-" + suffix
}

// NormalizeTags trims tags and drops empty or repeated entries, keeping order
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}
