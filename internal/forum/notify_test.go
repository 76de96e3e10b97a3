package forum

import (
	"testing"

	"github.com/juslaw/forum/internal/models"
)

func TestNotifyTypeName(t *testing.T) {
	tests := []struct {
		name     string
		typeID   int16
		expected string
	}{
		{"new_comment", models.NotifyTypeNewComment, "new_comment"},
		{"new_post", models.NotifyTypeNewPost, "new_post"},
		{"attorney_comment", models.NotifyTypeAttorneyComment, "attorney_comment"},
		{"opportunity", models.NotifyTypeOpportunity, "opportunity"},
		{"unknown", 999, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := notifyTypeName(tt.typeID)
			if result != tt.expected {
				t.Errorf("notifyTypeName(%d) = %v, want %v", tt.typeID, result, tt.expected)
			}
		})
	}
}
