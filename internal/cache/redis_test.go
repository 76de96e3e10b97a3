package cache

import (
	"testing"
)

func TestHashKey(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
	}{
		{
			name:  "single part",
			parts: []string{"test"},
		},
		{
			name:  "multiple parts",
			parts: []string{"test", "key", "with", "many", "parts"},
		},
		{
			name:  "empty parts",
			parts: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed1 := HashKey(tt.parts...)
			hashed2 := HashKey(tt.parts...)

			// Hash should be consistent
			if hashed1 != hashed2 {
				t.Errorf("HashKey() should be consistent, got %s and %s", hashed1, hashed2)
			}

			// Hash should be 32 characters (MD5 hex)
			if len(hashed1) != 32 {
				t.Errorf("HashKey() should return 32 character hex string, got length %d", len(hashed1))
			}
		})
	}
}

func TestCache_NamespaceKey(t *testing.T) {
	cache := &Cache{}

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "simple key",
			key:      "test",
			expected: "forum:test",
		},
		{
			name:     "key with colon",
			key:      "opportunities:42",
			expected: "forum:opportunities:42",
		},
		{
			name:     "empty key",
			key:      "",
			expected: "forum:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cache.namespaceKey(tt.key)
			if result != tt.expected {
				t.Errorf("namespaceKey() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestCache_DisabledIsSafe(t *testing.T) {
	// A nil cache is what New returns when Redis is not configured;
	// every operation must answer ErrCacheDisabled instead of panicking.
	var c *Cache

	if _, err := c.Get(nil, "key"); err != ErrCacheDisabled {
		t.Errorf("Get() on disabled cache = %v, want ErrCacheDisabled", err)
	}
	if err := c.Set(nil, "key", "value", 0); err != ErrCacheDisabled {
		t.Errorf("Set() on disabled cache = %v, want ErrCacheDisabled", err)
	}
	if err := c.DeletePattern(nil, "key:*"); err != ErrCacheDisabled {
		t.Errorf("DeletePattern() on disabled cache = %v, want ErrCacheDisabled", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() on disabled cache = %v, want nil", err)
	}
}
