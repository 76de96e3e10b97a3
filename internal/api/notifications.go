package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juslaw/forum/internal/db"
	"github.com/juslaw/forum/pkg/config"
)

// NotifyAPI serves notification endpoints
type NotifyAPI struct {
	repo *db.Repository
	cfg  *config.ForumConfig
}

// NewNotifyAPI creates a new notification API
func NewNotifyAPI(repo *db.Repository, cfg *config.ForumConfig) *NotifyAPI {
	return &NotifyAPI{repo: repo, cfg: cfg}
}

// Unread handles GET /v1/notifications
func (a *NotifyAPI) Unread(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, _ := pageParams(c, a.cfg)

	notifs, err := db.NewNotificationRepository(a.repo).ListUnreadByDst(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": notificationObjects(notifs)})
}

// MarkRead handles POST /v1/notifications/read
func (a *NotifyAPI) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := db.NewNotificationRepository(a.repo).MarkRead(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}
