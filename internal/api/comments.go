package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juslaw/forum/internal/db"
	"github.com/juslaw/forum/internal/forum"
	"github.com/juslaw/forum/internal/models"
)

// CommentAPI serves comment endpoints
type CommentAPI struct {
	repo     *db.Repository
	comments *forum.CommentService
}

// NewCommentAPI creates a new comment API
func NewCommentAPI(repo *db.Repository, comments *forum.CommentService) *CommentAPI {
	return &CommentAPI{repo: repo, comments: comments}
}

// Get handles GET /v1/comments/:id
func (a *CommentAPI) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	comment, err := db.NewCommentRepository(a.repo).GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if comment == nil {
		respondError(c, forum.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, commentObject(comment))
}

type createCommentRequest struct {
	PostID int64  `json:"post_id" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// Create handles POST /v1/comments
func (a *CommentAPI) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := &models.Comment{
		PostID:   req.PostID,
		AuthorID: userID,
		Text:     req.Text,
	}
	if err := a.comments.Create(c.Request.Context(), comment); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, commentObject(comment))
}

type updateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// Update handles PUT /v1/comments/:id
func (a *CommentAPI) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := a.comments.Update(c.Request.Context(), id, userID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, commentObject(comment))
}

// Delete handles DELETE /v1/comments/:id
func (a *CommentAPI) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := a.comments.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
