package forum

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/juslaw/forum/internal/db"
	"github.com/juslaw/forum/internal/models"
	"github.com/juslaw/forum/pkg/logging"
)

// FollowService manages post and topic follow relationships. The
// storage layer serializes concurrent follows on the same pair through
// the unique constraint; this service only translates the violation
// into a domain error.
type FollowService struct {
	repo   *db.Repository
	logger *zap.Logger
}

// NewFollowService creates a new follow service
func NewFollowService(repo *db.Repository) *FollowService {
	return &FollowService{
		repo:   repo,
		logger: logging.GetLogger().With(zap.String("component", "follow-service")),
	}
}

// FollowPost subscribes a user to a post. Following a post twice
// returns ErrAlreadyFollowing and leaves the existing row untouched.
func (s *FollowService) FollowPost(ctx context.Context, userID, postID int64) (*models.FollowedPost, error) {
	postRepo := db.NewPostRepository(s.repo)
	post, err := postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	follow := &models.FollowedPost{
		FollowerID: userID,
		PostID:     postID,
		CreatedAt:  time.Now().UTC(),
	}

	followRepo := db.NewFollowRepository(s.repo)
	if err := followRepo.Create(ctx, follow); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFollowing
		}
		return nil, err
	}
	return follow, nil
}

// UnfollowPost removes a user's subscription to a post
func (s *FollowService) UnfollowPost(ctx context.Context, userID, postID int64) error {
	followRepo := db.NewFollowRepository(s.repo)
	return followRepo.Delete(ctx, userID, postID)
}

// MarkRead records the last comment a follower has read on a post and
// clears the unread counter
func (s *FollowService) MarkRead(ctx context.Context, userID, postID, commentID int64) error {
	followRepo := db.NewFollowRepository(s.repo)
	follow, err := followRepo.Get(ctx, userID, postID)
	if err != nil {
		return err
	}
	if follow == nil {
		return ErrNotFound
	}

	return s.repo.DB().WithContext(ctx).
		Model(&models.FollowedPost{}).
		Where("id = ?", follow.ID).
		Updates(map[string]interface{}{
			"last_read_comment_id":  sql.NullInt64{Int64: commentID, Valid: true},
			"unread_comments_count": 0,
		}).Error
}

// ListFollowedPosts retrieves a user's followed posts
func (s *FollowService) ListFollowedPosts(ctx context.Context, userID int64) ([]*models.FollowedPost, error) {
	followRepo := db.NewFollowRepository(s.repo)
	return followRepo.ListByFollower(ctx, userID)
}

// FollowTopic subscribes a user to a topic; following twice is a no-op
func (s *FollowService) FollowTopic(ctx context.Context, userID, topicID int64) error {
	topicRepo := db.NewTopicRepository(s.repo)
	topic, err := topicRepo.GetByID(ctx, topicID)
	if err != nil {
		return err
	}
	if topic == nil {
		return ErrNotFound
	}
	return topicRepo.AddFollower(ctx, topicID, userID)
}

// UnfollowTopic removes a user's subscription to a topic
func (s *FollowService) UnfollowTopic(ctx context.Context, userID, topicID int64) error {
	topicRepo := db.NewTopicRepository(s.repo)
	return topicRepo.RemoveFollower(ctx, topicID, userID)
}

// ListFollowedTopics retrieves topics a user follows
func (s *FollowService) ListFollowedTopics(ctx context.Context, userID int64) ([]*models.Topic, error) {
	topicRepo := db.NewTopicRepository(s.repo)
	return topicRepo.ListFollowedBy(ctx, userID)
}
