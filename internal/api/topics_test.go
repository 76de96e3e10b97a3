package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/juslaw/forum/pkg/config"
)

func TestPageParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.ForumConfig{PageSize: 20, MaxPageSize: 100}

	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 20, 0},
		{"explicit limit", "limit=50", 50, 0},
		{"limit capped", "limit=500", 100, 0},
		{"offset", "limit=10&offset=30", 10, 30},
		{"garbage ignored", "limit=abc&offset=-5", 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/v1/topics?"+tt.query, nil)

			limit, offset := pageParams(c, cfg)
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("pageParams(%q) = (%d, %d), want (%d, %d)",
					tt.query, limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}
