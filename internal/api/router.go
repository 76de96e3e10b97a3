package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/juslaw/forum/internal/cache"
	"github.com/juslaw/forum/internal/db"
	"github.com/juslaw/forum/internal/forum"
	"github.com/juslaw/forum/pkg/config"
	"github.com/juslaw/forum/pkg/logging"
)

// Router wires the forum services onto HTTP routes
type Router struct {
	db     *db.DB
	cache  *cache.Cache
	cfg    *config.Config
	logger *zap.Logger

	topics        *TopicAPI
	posts         *PostAPI
	comments      *CommentAPI
	follows       *FollowAPI
	notifications *NotifyAPI
}

// NewRouter creates a new API router with all services assembled
func NewRouter(database *db.DB, redisCache *cache.Cache, cfg *config.Config) *Router {
	repo := db.NewRepository(database.DB)

	maintainer := forum.NewMaintainer(repo)
	notifier := forum.NewNotifier(repo)
	matcher := forum.NewMatcher(repo)
	followService := forum.NewFollowService(repo)
	postService := forum.NewPostService(repo, maintainer, notifier, redisCache)
	commentService := forum.NewCommentService(repo, maintainer, notifier)

	return &Router{
		db:     database,
		cache:  redisCache,
		cfg:    cfg,
		logger: logging.GetLogger().With(zap.String("component", "api-router")),

		topics:        NewTopicAPI(repo, followService, &cfg.Forum),
		posts:         NewPostAPI(repo, postService, matcher, redisCache, &cfg.Forum),
		comments:      NewCommentAPI(repo, commentService),
		follows:       NewFollowAPI(followService),
		notifications: NewNotifyAPI(repo, &cfg.Forum),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	v1 := engine.Group("/v1", RequestID(), Trace())

	v1.GET("/topics", r.topics.List)
	v1.POST("/topics", r.topics.Create)
	v1.GET("/topics/followed", r.topics.Followed)
	v1.GET("/topics/:id", r.topics.Get)
	v1.GET("/topics/:id/posts", r.topics.Posts)
	v1.POST("/topics/:id/follow", r.topics.Follow)
	v1.POST("/topics/:id/unfollow", r.topics.Unfollow)

	v1.POST("/posts", r.posts.Create)
	v1.GET("/posts/opportunities", r.posts.Opportunities)
	v1.GET("/posts/:id", r.posts.Get)
	v1.PUT("/posts/:id", r.posts.Update)
	v1.DELETE("/posts/:id", r.posts.Delete)
	v1.GET("/posts/:id/comments", r.posts.Comments)
	v1.POST("/posts/:id/follow", r.follows.FollowPost)
	v1.POST("/posts/:id/unfollow", r.follows.UnfollowPost)

	v1.POST("/comments", r.comments.Create)
	v1.GET("/comments/:id", r.comments.Get)
	v1.PUT("/comments/:id", r.comments.Update)
	v1.DELETE("/comments/:id", r.comments.Delete)

	v1.GET("/followed-posts", r.follows.List)
	v1.POST("/followed-posts/:id/read", r.follows.MarkRead)

	v1.GET("/practice-areas", r.listPracticeAreas)

	v1.GET("/notifications", r.notifications.Unread)
	v1.POST("/notifications/read", r.notifications.MarkRead)
}

// healthHandler reports the health of the service and its backends
func (r *Router) healthHandler(c *gin.Context) {
	ctx := c.Request.Context()

	if err := r.db.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "FAIL",
			"service": "juslaw-forum",
			"error":   "database unreachable",
		})
		return
	}

	status := gin.H{
		"status":  "OK",
		"service": "juslaw-forum",
	}
	if err := r.cache.Health(ctx); err == nil {
		status["cache"] = "OK"
	}
	c.JSON(http.StatusOK, status)
}

// listPracticeAreas handles GET /v1/practice-areas
func (r *Router) listPracticeAreas(c *gin.Context) {
	repo := db.NewRepository(r.db.DB)
	areas, err := db.NewPracticeAreaRepository(repo).List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": practiceAreaObjects(areas)})
}
