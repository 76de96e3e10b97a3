package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/juslaw/forum/internal/cache"
	"github.com/juslaw/forum/internal/db"
	"github.com/juslaw/forum/internal/forum"
	"github.com/juslaw/forum/internal/models"
	"github.com/juslaw/forum/pkg/config"
	"github.com/juslaw/forum/pkg/logging"
)

// PostAPI serves post CRUD and the attorney opportunity feed
type PostAPI struct {
	repo    *db.Repository
	posts   *forum.PostService
	matcher *forum.Matcher
	cache   *cache.Cache
	cfg     *config.ForumConfig
	logger  *zap.Logger
}

// NewPostAPI creates a new post API
func NewPostAPI(repo *db.Repository, posts *forum.PostService, matcher *forum.Matcher, c *cache.Cache, cfg *config.ForumConfig) *PostAPI {
	return &PostAPI{
		repo:    repo,
		posts:   posts,
		matcher: matcher,
		cache:   c,
		cfg:     cfg,
		logger:  logging.GetLogger().With(zap.String("component", "post-api")),
	}
}

type createPostRequest struct {
	TopicID *int64 `json:"topic_id"`
	Title   string `json:"title" binding:"required"`
	Text    string `json:"text" binding:"required"`
}

// Create handles POST /v1/posts. The request carries the text of the
// opening comment; post and comment are created together.
func (a *PostAPI) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := &models.Post{
		Title:    req.Title,
		AuthorID: userID,
	}
	if req.TopicID != nil {
		post.TopicID = sql.NullInt64{Int64: *req.TopicID, Valid: true}
	}

	if err := a.posts.Create(c.Request.Context(), post, req.Text); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, postObject(post))
}

// Get handles GET /v1/posts/:id
func (a *PostAPI) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	post, err := db.NewPostRepository(a.repo).GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if post == nil {
		respondError(c, forum.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, postObject(post))
}

type updatePostRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// Update handles PUT /v1/posts/:id
func (a *PostAPI) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := a.posts.Update(c.Request.Context(), id, userID, req.Title, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, postObject(post))
}

// Delete handles DELETE /v1/posts/:id
func (a *PostAPI) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := a.posts.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Comments handles GET /v1/posts/:id/comments
func (a *PostAPI) Comments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	limit, offset := pageParams(c, a.cfg)

	post, err := db.NewPostRepository(a.repo).GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if post == nil {
		respondError(c, forum.ErrNotFound)
		return
	}

	comments, err := db.NewCommentRepository(a.repo).ListByPost(c.Request.Context(), id, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": commentObjects(comments)})
}

// Opportunities handles GET /v1/posts/opportunities. The current feed
// is cached per user; period-scoped requests bypass the cache since
// every period makes a distinct result set.
func (a *PostAPI) Opportunities(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rawStart, rawEnd := c.Query("start"), c.Query("end")
	if (rawStart == "") != (rawEnd == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end must be given together"})
		return
	}

	ctx := c.Request.Context()

	if rawStart != "" {
		start, err := time.Parse(time.RFC3339, rawStart)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start"})
			return
		}
		end, err := time.Parse(time.RFC3339, rawEnd)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end"})
			return
		}

		posts, err := a.matcher.OpportunitiesForPeriod(ctx, userID, start, end)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": postObjects(posts)})
		return
	}

	key := opportunityCacheKey(userID)
	var cached []*PostObject
	if err := a.cache.GetJSON(ctx, key, &cached); err == nil {
		c.JSON(http.StatusOK, gin.H{"results": cached})
		return
	}

	posts, err := a.matcher.Opportunities(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	results := postObjects(posts)

	if err := a.cache.SetJSON(ctx, key, results, a.cfg.OpportunityCacheTTL); err != nil && err != cache.ErrCacheDisabled {
		a.logger.Warn("Failed to cache opportunities", zap.Error(err), zap.Int64("user_id", userID))
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// opportunityCacheKey derives the per-user key for the cached current
// feed. The "opportunities:" prefix is what PostService invalidates
// after post mutations.
func opportunityCacheKey(userID int64) string {
	return "opportunities:" + cache.HashKey("user", strconv.FormatInt(userID, 10))
}
