package forum

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/juslaw/forum/internal/db"
	"github.com/juslaw/forum/internal/models"
	"github.com/juslaw/forum/pkg/logging"
)

// CommentService owns the comment write path. It sequences each
// mutation explicitly: persist the comment and apply the statistics
// effects in one transaction, then fan out notifications once the
// transaction has committed.
type CommentService struct {
	repo       *db.Repository
	maintainer *Maintainer
	notifier   *Notifier
	logger     *zap.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(repo *db.Repository, maintainer *Maintainer, notifier *Notifier) *CommentService {
	return &CommentService{
		repo:       repo,
		maintainer: maintainer,
		notifier:   notifier,
		logger:     logging.GetLogger().With(zap.String("component", "comment-service")),
	}
}

// Create persists a new comment and applies its statistics effects
// atomically, then notifies the post's followers and, for attorney
// authors, the attorney's followers.
func (s *CommentService) Create(ctx context.Context, comment *models.Comment) error {
	postRepo := db.NewPostRepository(s.repo)
	post, err := postRepo.GetByID(ctx, comment.PostID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrNotFound
	}

	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.ModifiedAt = now

	err = s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		if err := s.maintainer.OnCommentCreated(ctx, tx, comment); err != nil {
			return err
		}
		// Everyone following the post has one more comment to read
		return tx.Model(&models.FollowedPost{}).
			Where("post_id = ? AND follower_id <> ?", comment.PostID, comment.AuthorID).
			Update("unread_comments_count", gorm.Expr("unread_comments_count + 1")).Error
	})
	if err != nil {
		return err
	}

	s.notifier.NotifyPostFollowers(ctx, comment, post.Title)

	userRepo := db.NewUserRepository(s.repo)
	author, err := userRepo.GetByID(ctx, comment.AuthorID)
	if err != nil {
		s.logger.Error("Failed to load comment author", zap.Error(err),
			zap.Int64("author_id", comment.AuthorID))
		return nil
	}
	if author != nil && author.IsAttorney {
		s.notifier.NotifyAttorneyFollowers(ctx, comment, post.Title)
	}

	return nil
}

// Update edits a comment's text. Only the author may edit, and a
// comment cannot be moved to another post.
func (s *CommentService) Update(ctx context.Context, commentID, userID int64, text string) (*models.Comment, error) {
	commentRepo := db.NewCommentRepository(s.repo)
	comment, err := commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	if comment.AuthorID != userID {
		return nil, ErrNotAuthor
	}

	comment.Text = text
	comment.ModifiedAt = time.Now().UTC()
	if err := s.repo.DB().WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", comment.ID).
		Updates(map[string]interface{}{
			"text":        comment.Text,
			"modified_at": comment.ModifiedAt,
		}).Error; err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

// Delete removes a comment and reconciles the affected statistics in
// one transaction. The comment that opened a post cannot be deleted,
// and only the author may delete.
func (s *CommentService) Delete(ctx context.Context, commentID, userID int64) error {
	commentRepo := db.NewCommentRepository(s.repo)
	comment, err := commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrNotFound
	}
	if comment.AuthorID != userID {
		return ErrNotAuthor
	}

	postRepo := db.NewPostRepository(s.repo)
	post, err := postRepo.GetByID(ctx, comment.PostID)
	if err != nil {
		return err
	}
	if post != nil && post.FirstCommentID.Valid && post.FirstCommentID.Int64 == comment.ID {
		return ErrFirstComment
	}

	return s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Comment{}, comment.ID)
		if res.Error != nil {
			return fmt.Errorf("failed to delete comment: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Already gone; reconciliation below is idempotent anyway
			s.logger.Debug("Comment already deleted", zap.Int64("comment_id", comment.ID))
		}
		return s.maintainer.OnCommentDeleted(ctx, tx, comment)
	})
}
