package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/juslaw/forum/internal/forum"
	"github.com/juslaw/forum/pkg/logging"
)

// respondError maps a domain error onto an HTTP response. Anything
// outside the known domain errors is treated as internal and logged.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, forum.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, forum.ErrNotAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": "only the author may do that"})
	case errors.Is(err, forum.ErrAlreadyFollowing):
		c.JSON(http.StatusBadRequest, gin.H{"error": "already following this post"})
	case errors.Is(err, forum.ErrFirstComment):
		c.JSON(http.StatusBadRequest, gin.H{"error": "the comment that opened a post cannot be deleted"})
	default:
		logging.GetLogger().Error("Request failed", zap.Error(err),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(requestIDKey)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// currentUserID reads the authenticated user set by the upstream
// gateway. Authentication itself lives outside this service.
func currentUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.GetHeader("X-User-ID"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return 0, false
	}
	return id, true
}

// pathID parses a numeric path parameter, answering 400 when malformed
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
