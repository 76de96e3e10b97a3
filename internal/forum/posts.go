package forum

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/juslaw/forum/internal/cache"
	"github.com/juslaw/forum/internal/db"
	"github.com/juslaw/forum/internal/models"
	"github.com/juslaw/forum/pkg/logging"
)

// PostService owns the post write path. A post is opened by its first
// comment: creating a post inserts the post and that comment together,
// letting the statistics maintainer establish the first/last pointers
// and counters in the same transaction.
type PostService struct {
	repo       *db.Repository
	maintainer *Maintainer
	notifier   *Notifier
	cache      *cache.Cache
	logger     *zap.Logger
}

// NewPostService creates a new post service
func NewPostService(repo *db.Repository, maintainer *Maintainer, notifier *Notifier, c *cache.Cache) *PostService {
	return &PostService{
		repo:       repo,
		maintainer: maintainer,
		notifier:   notifier,
		cache:      c,
		logger:     logging.GetLogger().With(zap.String("component", "post-service")),
	}
}

// Create persists a post together with its opening comment, then
// notifies the topic's followers. New posts can change opportunity
// results, so cached opportunity pages are dropped.
func (s *PostService) Create(ctx context.Context, post *models.Post, firstCommentText string) error {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.ModifiedAt = now

	err := s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		comment := &models.Comment{
			PostID:     post.ID,
			AuthorID:   post.AuthorID,
			Text:       firstCommentText,
			CreatedAt:  now,
			ModifiedAt: now,
		}
		if err := tx.Create(comment).Error; err != nil {
			return fmt.Errorf("failed to create first comment: %w", err)
		}
		return s.maintainer.OnCommentCreated(ctx, tx, comment)
	})
	if err != nil {
		return err
	}

	s.notifier.NotifyTopicFollowers(ctx, post)
	s.invalidateOpportunities(ctx)

	return nil
}

// invalidateOpportunities drops every cached opportunity feed. Called
// after any post mutation, since creation, retitling and deletion can
// all change what the matcher returns.
func (s *PostService) invalidateOpportunities(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "opportunities:*"); err != nil && err != cache.ErrCacheDisabled {
		s.logger.Warn("Failed to invalidate opportunity cache", zap.Error(err))
	}
}

// Update edits a post's title and description. Only the author may edit.
func (s *PostService) Update(ctx context.Context, postID, userID int64, title, description string) (*models.Post, error) {
	postRepo := db.NewPostRepository(s.repo)
	post, err := postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if post.AuthorID != userID {
		return nil, ErrNotAuthor
	}

	post.Title = title
	post.Description = description
	post.ModifiedAt = time.Now().UTC()
	if err := postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	s.invalidateOpportunities(ctx)
	return post, nil
}

// Delete removes a post with its comments and reconciles the topic and
// author statistics. Only the author may delete.
func (s *PostService) Delete(ctx context.Context, postID, userID int64) error {
	postRepo := db.NewPostRepository(s.repo)
	post, err := postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrNotFound
	}
	if post.AuthorID != userID {
		return ErrNotAuthor
	}

	var authorIDs []int64
	if err := s.repo.DB().WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ?", post.ID).
		Distinct("author_id").
		Pluck("author_id", &authorIDs).Error; err != nil {
		return fmt.Errorf("failed to list comment authors: %w", err)
	}

	err = s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete post comments: %w", err)
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.FollowedPost{}).Error; err != nil {
			return fmt.Errorf("failed to delete post follows: %w", err)
		}
		if err := tx.Delete(&models.Post{}, post.ID).Error; err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		if post.TopicID.Valid {
			if err := s.maintainer.recountTopic(ctx, tx, post.TopicID.Int64); err != nil {
				return err
			}
		}
		for _, id := range authorIDs {
			if err := s.maintainer.recountUserStats(ctx, tx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateOpportunities(ctx)
	return nil
}
