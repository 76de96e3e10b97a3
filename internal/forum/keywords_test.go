package forum

import (
	"testing"
)

func TestConvertKeywordsToQuerytext(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		expected string
	}{
		{
			name:     "single keyword",
			keywords: []string{"divorce"},
			expected: "'divorce'",
		},
		{
			name:     "multiple keywords",
			keywords: []string{"divorce", "custody"},
			expected: "'divorce' | 'custody'",
		},
		{
			name:     "multi-word keyword stays one phrase",
			keywords: []string{"child custody", "alimony"},
			expected: "'child custody' | 'alimony'",
		},
		{
			name:     "blank keywords dropped",
			keywords: []string{" ", "divorce", ""},
			expected: "'divorce'",
		},
		{
			name:     "surrounding whitespace trimmed",
			keywords: []string{"  divorce  "},
			expected: "'divorce'",
		},
		{
			name:     "embedded quote escaped",
			keywords: []string{"attorney's fees"},
			expected: "'attorney''s fees'",
		},
		{
			name:     "empty list",
			keywords: []string{},
			expected: "",
		},
		{
			name:     "nil list",
			keywords: nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertKeywordsToQuerytext(tt.keywords)
			if result != tt.expected {
				t.Errorf("ConvertKeywordsToQuerytext(%v) = %q, want %q", tt.keywords, result, tt.expected)
			}
		})
	}
}
