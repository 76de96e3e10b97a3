package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juslaw/forum/internal/forum"
)

// FollowAPI serves post-follow endpoints: subscribing, unsubscribing,
// the follower's reading position and the followed-post list with its
// unread counters.
type FollowAPI struct {
	follows *forum.FollowService
}

// NewFollowAPI creates a new follow API
func NewFollowAPI(follows *forum.FollowService) *FollowAPI {
	return &FollowAPI{follows: follows}
}

// FollowPost handles POST /v1/posts/:id/follow
func (a *FollowAPI) FollowPost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	follow, err := a.follows.FollowPost(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, followedPostObject(follow))
}

// UnfollowPost handles POST /v1/posts/:id/unfollow
func (a *FollowAPI) UnfollowPost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := a.follows.UnfollowPost(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unfollowed"})
}

// List handles GET /v1/followed-posts
func (a *FollowAPI) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	follows, err := a.follows.ListFollowedPosts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": followedPostObjects(follows)})
}

type markReadRequest struct {
	CommentID int64 `json:"comment_id" binding:"required"`
}

// MarkRead handles POST /v1/followed-posts/:id/read, where :id is the
// post ID. Records the last comment read and clears the unread counter.
func (a *FollowAPI) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req markReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := a.follows.MarkRead(c.Request.Context(), userID, id, req.CommentID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}
