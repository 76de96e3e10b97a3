package api

import (
	"strings"
	"testing"
)

func TestOpportunityCacheKey(t *testing.T) {
	key := opportunityCacheKey(42)

	// Stable per user, so cached feeds are found again
	if key != opportunityCacheKey(42) {
		t.Errorf("opportunityCacheKey(42) is not stable: %q vs %q", key, opportunityCacheKey(42))
	}

	// The prefix is the invalidation pattern PostService deletes on
	if !strings.HasPrefix(key, "opportunities:") {
		t.Errorf("opportunityCacheKey(42) = %q, want opportunities: prefix", key)
	}

	// Distinct users must never share a feed
	if key == opportunityCacheKey(43) {
		t.Errorf("opportunityCacheKey collides for users 42 and 43: %q", key)
	}
}
