package forum

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/juslaw/forum/internal/db"
	"github.com/juslaw/forum/internal/models"
	"github.com/juslaw/forum/pkg/logging"
)

// Maintainer keeps the denormalized counters and comment pointers on
// posts, topics and user stats consistent after comment mutations.
//
// Creation is the hot path and uses cheap in-place increments; deletion
// is rare and recomputes everything by counting, so any prior drift
// converges instead of compounding. Both entry points expect to run
// inside the caller's transaction: the caller invokes them in the same
// transaction as the comment insert or delete, which is also what makes
// the six creation effects atomic and exactly-once.
type Maintainer struct {
	repo   *db.Repository
	logger *zap.Logger
}

// NewMaintainer creates a new statistics maintainer
func NewMaintainer(repo *db.Repository) *Maintainer {
	return &Maintainer{
		repo:   repo,
		logger: logging.GetLogger().With(zap.String("component", "stats-maintainer")),
	}
}

// OnCommentCreated applies the creation effects for a new comment: the
// post's first-comment pointer (set once, never overwritten), the
// last-comment pointers and comment counters on the post and its topic,
// and the author's per-user comment counter.
func (m *Maintainer) OnCommentCreated(ctx context.Context, tx *gorm.DB, comment *models.Comment) error {
	var post models.Post
	if err := tx.WithContext(ctx).First(&post, comment.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("comment %d references missing post %d", comment.ID, comment.PostID)
		}
		return fmt.Errorf("failed to load post: %w", err)
	}

	if err := m.bumpPost(ctx, tx, &post, comment); err != nil {
		return err
	}

	// A post without a topic only gets post-level updates
	if post.TopicID.Valid {
		if err := m.bumpTopic(ctx, tx, post.TopicID.Int64, comment); err != nil {
			return err
		}
	}

	if err := m.bumpUserStats(ctx, tx, comment.AuthorID); err != nil {
		return err
	}

	m.logger.Debug("Applied comment creation stats",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("post_id", comment.PostID),
		zap.Int64("author_id", comment.AuthorID))

	return nil
}

// bumpPost applies the creation effects on the parent post
func (m *Maintainer) bumpPost(ctx context.Context, tx *gorm.DB, post *models.Post, comment *models.Comment) error {
	updates := map[string]interface{}{
		"last_comment_id": comment.ID,
		"comment_count":   gorm.Expr("comment_count + 1"),
		"modified_at":     comment.CreatedAt,
	}
	// First-comment-wins: only the comment that opens the thread ever
	// lands here.
	if !post.FirstCommentID.Valid {
		updates["first_comment_id"] = comment.ID
		post.FirstCommentID = sql.NullInt64{Int64: comment.ID, Valid: true}
	}

	if err := tx.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", post.ID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update post stats: %w", err)
	}
	return nil
}

// bumpTopic applies the creation effects on the parent topic
func (m *Maintainer) bumpTopic(ctx context.Context, tx *gorm.DB, topicID int64, comment *models.Comment) error {
	if err := tx.WithContext(ctx).
		Model(&models.Topic{}).
		Where("id = ?", topicID).
		Updates(map[string]interface{}{
			"last_comment_id": comment.ID,
			"comment_count":   gorm.Expr("comment_count + 1"),
			"modified_at":     comment.CreatedAt,
		}).Error; err != nil {
		return fmt.Errorf("failed to update topic stats: %w", err)
	}
	return nil
}

// bumpUserStats increments the author's comment counter, creating the
// stats row on first use
func (m *Maintainer) bumpUserStats(ctx context.Context, tx *gorm.DB, authorID int64) error {
	var stats models.UserStats
	if err := tx.WithContext(ctx).
		Where(models.UserStats{UserID: authorID}).
		FirstOrCreate(&stats).Error; err != nil {
		return fmt.Errorf("failed to get or create user stats: %w", err)
	}

	if err := tx.WithContext(ctx).
		Model(&models.UserStats{}).
		Where("id = ?", stats.ID).
		Update("comment_count", gorm.Expr("comment_count + 1")).Error; err != nil {
		return fmt.Errorf("failed to update user stats: %w", err)
	}
	return nil
}

// OnCommentDeleted reconciles counters and pointers after a comment has
// been removed. Everything is recomputed by counting the remaining
// comments, never decremented, so repeated invocations are stable.
func (m *Maintainer) OnCommentDeleted(ctx context.Context, tx *gorm.DB, comment *models.Comment) error {
	var post models.Post
	err := tx.WithContext(ctx).First(&post, comment.PostID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Post removed together with its comments; author stats still
		// need reconciling.
		return m.recountUserStats(ctx, tx, comment.AuthorID)
	}
	if err != nil {
		return fmt.Errorf("failed to load post: %w", err)
	}

	if err := m.recountPost(ctx, tx, &post); err != nil {
		return err
	}

	if post.TopicID.Valid {
		if err := m.recountTopic(ctx, tx, post.TopicID.Int64); err != nil {
			return err
		}
	}

	if err := m.recountUserStats(ctx, tx, comment.AuthorID); err != nil {
		return err
	}

	m.logger.Debug("Reconciled comment deletion stats",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("post_id", comment.PostID),
		zap.Int64("author_id", comment.AuthorID))

	return nil
}

// recountPost recomputes a post's counter and comment pointers from the
// comments that remain
func (m *Maintainer) recountPost(ctx context.Context, tx *gorm.DB, post *models.Post) error {
	var count int64
	if err := tx.WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ?", post.ID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count post comments: %w", err)
	}

	last, err := m.lastCommentID(ctx, tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.Comment{}).
		Where("post_id = ?", post.ID))
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"comment_count":   count,
		"last_comment_id": last,
	}

	// The first-comment pointer is normally immutable, but if it now
	// references the removed comment it must not dangle: repoint it at
	// the earliest remaining comment.
	if post.FirstCommentID.Valid {
		var exists int64
		if err := tx.WithContext(ctx).
			Model(&models.Comment{}).
			Where("id = ?", post.FirstCommentID.Int64).
			Count(&exists).Error; err != nil {
			return fmt.Errorf("failed to check first comment: %w", err)
		}
		if exists == 0 {
			var first models.Comment
			err := tx.WithContext(ctx).
				Where("post_id = ?", post.ID).
				Order("created_at ASC").
				First(&first).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				updates["first_comment_id"] = nil
			case err != nil:
				return fmt.Errorf("failed to find first comment: %w", err)
			default:
				updates["first_comment_id"] = first.ID
			}
		}
	}

	if err := tx.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", post.ID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update post stats: %w", err)
	}
	return nil
}

// recountTopic recomputes a topic's counter and last-comment pointer
// across all posts in the topic
func (m *Maintainer) recountTopic(ctx context.Context, tx *gorm.DB, topicID int64) error {
	var count int64
	if err := tx.WithContext(ctx).
		Model(&models.Comment{}).
		Joins("JOIN forum_posts p ON p.id = forum_comments.post_id").
		Where("p.topic_id = ?", topicID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count topic comments: %w", err)
	}

	last, err := m.lastCommentID(ctx, tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.Comment{}).
		Joins("JOIN forum_posts p ON p.id = forum_comments.post_id").
		Where("p.topic_id = ?", topicID))
	if err != nil {
		return err
	}

	if err := tx.WithContext(ctx).
		Model(&models.Topic{}).
		Where("id = ?", topicID).
		Updates(map[string]interface{}{
			"comment_count":   count,
			"last_comment_id": last,
		}).Error; err != nil {
		return fmt.Errorf("failed to update topic stats: %w", err)
	}
	return nil
}

// lastCommentID finds the newest comment in scope; nil when none remain
func (m *Maintainer) lastCommentID(ctx context.Context, scope *gorm.DB) (interface{}, error) {
	var last models.Comment
	err := scope.WithContext(ctx).
		Order("forum_comments.created_at DESC").
		Select("forum_comments.*").
		First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find last comment: %w", err)
	}
	return last.ID, nil
}

// recountUserStats recomputes a user's comment counter by full count
func (m *Maintainer) recountUserStats(ctx context.Context, tx *gorm.DB, authorID int64) error {
	var stats models.UserStats
	if err := tx.WithContext(ctx).
		Where(models.UserStats{UserID: authorID}).
		FirstOrCreate(&stats).Error; err != nil {
		return fmt.Errorf("failed to get or create user stats: %w", err)
	}

	var count int64
	if err := tx.WithContext(ctx).
		Model(&models.Comment{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count author comments: %w", err)
	}

	if err := tx.WithContext(ctx).
		Model(&models.UserStats{}).
		Where("id = ?", stats.ID).
		Update("comment_count", count).Error; err != nil {
		return fmt.Errorf("failed to update user stats: %w", err)
	}
	return nil
}

// RecountAll reconciles every topic, post and commenting user from
// scratch. Used by the offline recount tool after imports or drift.
func (m *Maintainer) RecountAll(ctx context.Context) error {
	gdb := m.repo.DB()

	var postIDs []int64
	if err := gdb.WithContext(ctx).
		Model(&models.Post{}).
		Pluck("id", &postIDs).Error; err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}
	for _, id := range postIDs {
		var post models.Post
		if err := gdb.WithContext(ctx).First(&post, id).Error; err != nil {
			return fmt.Errorf("failed to load post %d: %w", id, err)
		}
		if err := m.recountPost(ctx, gdb, &post); err != nil {
			return err
		}
	}

	var topicIDs []int64
	if err := gdb.WithContext(ctx).
		Model(&models.Topic{}).
		Pluck("id", &topicIDs).Error; err != nil {
		return fmt.Errorf("failed to list topics: %w", err)
	}
	for _, id := range topicIDs {
		if err := m.recountTopic(ctx, gdb, id); err != nil {
			return err
		}
	}

	var authorIDs []int64
	if err := gdb.WithContext(ctx).
		Model(&models.Comment{}).
		Distinct("author_id").
		Pluck("author_id", &authorIDs).Error; err != nil {
		return fmt.Errorf("failed to list comment authors: %w", err)
	}
	for _, id := range authorIDs {
		if err := m.recountUserStats(ctx, gdb, id); err != nil {
			return err
		}
	}

	m.logger.Info("Recounted forum statistics",
		zap.Int("posts", len(postIDs)),
		zap.Int("topics", len(topicIDs)),
		zap.Int("authors", len(authorIDs)))

	return nil
}
