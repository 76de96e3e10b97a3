package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/juslaw/forum/internal/db"
	"github.com/juslaw/forum/internal/forum"
	"github.com/juslaw/forum/internal/models"
	"github.com/juslaw/forum/pkg/config"
)

// TopicAPI serves topic listing, browsing and follow endpoints
type TopicAPI struct {
	repo    *db.Repository
	follows *forum.FollowService
	cfg     *config.ForumConfig
}

// NewTopicAPI creates a new topic API
func NewTopicAPI(repo *db.Repository, follows *forum.FollowService, cfg *config.ForumConfig) *TopicAPI {
	return &TopicAPI{repo: repo, follows: follows, cfg: cfg}
}

// List handles GET /v1/topics
func (a *TopicAPI) List(c *gin.Context) {
	limit, offset := pageParams(c, a.cfg)

	topics, err := db.NewTopicRepository(a.repo).List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": topicObjects(topics)})
}

// Get handles GET /v1/topics/:id
func (a *TopicAPI) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	topic, err := db.NewTopicRepository(a.repo).GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if topic == nil {
		respondError(c, forum.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, topicObject(topic))
}

type createTopicRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	PracticeAreaID *int64 `json:"practice_area_id"`
	Featured       *bool  `json:"featured"`
}

// Create handles POST /v1/topics
func (a *TopicAPI) Create(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var req createTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	topic := &models.Topic{
		Title:      req.Title,
		Featured:   true,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	if req.Description != "" {
		topic.Description = sql.NullString{String: req.Description, Valid: true}
	}
	if req.PracticeAreaID != nil {
		topic.PracticeAreaID = sql.NullInt64{Int64: *req.PracticeAreaID, Valid: true}
	}
	if req.Featured != nil {
		topic.Featured = *req.Featured
	}

	if err := db.NewTopicRepository(a.repo).Create(c.Request.Context(), topic); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, topicObject(topic))
}

// Posts handles GET /v1/topics/:id/posts
func (a *TopicAPI) Posts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	limit, offset := pageParams(c, a.cfg)

	topic, err := db.NewTopicRepository(a.repo).GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if topic == nil {
		respondError(c, forum.ErrNotFound)
		return
	}

	posts, err := db.NewPostRepository(a.repo).ListByTopic(c.Request.Context(), id, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": postObjects(posts)})
}

// Follow handles POST /v1/topics/:id/follow
func (a *TopicAPI) Follow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := a.follows.FollowTopic(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "following"})
}

// Unfollow handles POST /v1/topics/:id/unfollow
func (a *TopicAPI) Unfollow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := a.follows.UnfollowTopic(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unfollowed"})
}

// Followed handles GET /v1/topics/followed
func (a *TopicAPI) Followed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	topics, err := a.follows.ListFollowedTopics(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": topicObjects(topics)})
}

// pageParams reads limit/offset query parameters, bounded by the
// configured page sizes
func pageParams(c *gin.Context, cfg *config.ForumConfig) (limit, offset int) {
	limit = cfg.PageSize
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > cfg.MaxPageSize {
		limit = cfg.MaxPageSize
	}
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}
