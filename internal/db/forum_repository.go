package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/juslaw/forum/internal/models"
)

// TopicRepository provides topic-related database operations
type TopicRepository struct {
	*Repository
}

// NewTopicRepository creates a new topic repository
func NewTopicRepository(repo *Repository) *TopicRepository {
	return &TopicRepository{Repository: repo}
}

// GetByID retrieves a topic by ID
func (r *TopicRepository) GetByID(ctx context.Context, id int64) (*models.Topic, error) {
	var topic models.Topic
	if err := r.db.WithContext(ctx).First(&topic, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &topic, nil
}

// List retrieves topics, featured ones first, newest activity first
func (r *TopicRepository) List(ctx context.Context, limit, offset int) ([]*models.Topic, error) {
	var topics []*models.Topic
	if err := r.db.WithContext(ctx).
		Preload("PracticeArea").
		Preload("LastComment").
		Order("featured DESC, modified_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

// Create creates a new topic
func (r *TopicRepository) Create(ctx context.Context, topic *models.Topic) error {
	return r.db.WithContext(ctx).Create(topic).Error
}

// AddFollower subscribes a user to a topic. Following twice is a no-op,
// matching the m2m add semantics of the API contract.
func (r *TopicRepository) AddFollower(ctx context.Context, topicID, userID int64) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO forum_topic_followers (topic_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		topicID, userID,
	).Error
}

// RemoveFollower unsubscribes a user from a topic
func (r *TopicRepository) RemoveFollower(ctx context.Context, topicID, userID int64) error {
	return r.db.WithContext(ctx).Exec(
		"DELETE FROM forum_topic_followers WHERE topic_id = ? AND user_id = ?",
		topicID, userID,
	).Error
}

// FollowerIDs retrieves the IDs of a topic's followers
func (r *TopicRepository) FollowerIDs(ctx context.Context, topicID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).
		Table("forum_topic_followers").
		Where("topic_id = ?", topicID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ListFollowedBy retrieves topics followed by a user
func (r *TopicRepository) ListFollowedBy(ctx context.Context, userID int64) ([]*models.Topic, error) {
	var topics []*models.Topic
	if err := r.db.WithContext(ctx).
		Joins("JOIN forum_topic_followers tf ON tf.topic_id = forum_topics.id").
		Where("tf.user_id = ?", userID).
		Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

// PostRepository provides post-related database operations, including
// the opportunity query composition used by forum.Matcher.
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// ListByTopic retrieves posts in a topic, newest first
func (r *PostRepository) ListByTopic(ctx context.Context, topicID int64, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("FirstComment").
		Preload("LastComment").
		Where("topic_id = ?", topicID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Update updates a post
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// OpportunityFilter describes the composed opportunity query. StateIDs
// is the base jurisdiction filter; AreaIDs is the specialty filter;
// Querytext, when non-empty, widens the specialty filter with a
// full-text match over post title and first comment text.
type OpportunityFilter struct {
	StateIDs    []int64
	AreaIDs     []int64
	Querytext   string
	PeriodStart *time.Time
	PeriodEnd   *time.Time
}

// Opportunities runs the composed opportunity query. The jurisdiction
// filter keys off the first comment's author's client state, matching
// the thread opener rather than later commenters.
func (r *PostRepository) Opportunities(ctx context.Context, f OpportunityFilter) ([]*models.Post, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Joins("JOIN forum_comments fc ON fc.id = forum_posts.first_comment_id").
		Joins("JOIN forum_clients cl ON cl.user_id = fc.author_id").
		Joins("LEFT JOIN forum_topics t ON t.id = forum_posts.topic_id").
		Where("cl.state_id IN ?", f.StateIDs)

	if f.Querytext == "" {
		q = q.Where("t.practice_area_id IN ?", f.AreaIDs)
	} else {
		q = q.Where(
			"t.practice_area_id IN ? OR to_tsvector('english', coalesce(forum_posts.title, '') || ' ' || coalesce(fc.text, '')) @@ to_tsquery('english', ?)",
			f.AreaIDs, f.Querytext,
		)
	}

	if f.PeriodStart != nil && f.PeriodEnd != nil {
		q = q.Where("forum_posts.created_at BETWEEN ? AND ?", *f.PeriodStart, *f.PeriodEnd)
	}

	var posts []*models.Post
	if err := q.Distinct("forum_posts.*").
		Order("forum_posts.created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CountOpportunities runs the composed opportunity query as a count
func (r *PostRepository) CountOpportunities(ctx context.Context, f OpportunityFilter) (int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Joins("JOIN forum_comments fc ON fc.id = forum_posts.first_comment_id").
		Joins("JOIN forum_clients cl ON cl.user_id = fc.author_id").
		Joins("LEFT JOIN forum_topics t ON t.id = forum_posts.topic_id").
		Where("cl.state_id IN ?", f.StateIDs)

	if f.Querytext == "" {
		q = q.Where("t.practice_area_id IN ?", f.AreaIDs)
	} else {
		q = q.Where(
			"t.practice_area_id IN ? OR to_tsvector('english', coalesce(forum_posts.title, '') || ' ' || coalesce(fc.text, '')) @@ to_tsquery('english', ?)",
			f.AreaIDs, f.Querytext,
		)
	}

	if f.PeriodStart != nil && f.PeriodEnd != nil {
		q = q.Where("forum_posts.created_at BETWEEN ? AND ?", *f.PeriodStart, *f.PeriodEnd)
	}

	var count int64
	if err := q.Distinct("forum_posts.id").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CommentRepository provides comment-related database operations
type CommentRepository struct {
	*Repository
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(repo *Repository) *CommentRepository {
	return &CommentRepository{Repository: repo}
}

// GetByID retrieves a comment by ID
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// ListByPost retrieves a post's comments in creation order, each
// annotated with its position (count of earlier comments on the post)
func (r *CommentRepository) ListByPost(ctx context.Context, postID int64, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	if err := r.db.WithContext(ctx).
		Select("forum_comments.*, (SELECT count(*) FROM forum_comments c2 WHERE c2.post_id = forum_comments.post_id AND c2.created_at < forum_comments.created_at) AS position").
		Where("forum_comments.post_id = ?", postID).
		Order("forum_comments.created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// FollowRepository provides followed-post database operations
type FollowRepository struct {
	*Repository
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(repo *Repository) *FollowRepository {
	return &FollowRepository{Repository: repo}
}

// Create inserts a followed-post row. A duplicate (follower, post) pair
// surfaces as gorm.ErrDuplicatedKey.
func (r *FollowRepository) Create(ctx context.Context, follow *models.FollowedPost) error {
	return r.db.WithContext(ctx).Create(follow).Error
}

// Get retrieves a followed-post row for a (follower, post) pair
func (r *FollowRepository) Get(ctx context.Context, followerID, postID int64) (*models.FollowedPost, error) {
	var follow models.FollowedPost
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND post_id = ?", followerID, postID).
		First(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &follow, nil
}

// Delete removes a followed-post row
func (r *FollowRepository) Delete(ctx context.Context, followerID, postID int64) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND post_id = ?", followerID, postID).
		Delete(&models.FollowedPost{}).Error
}

// ListByFollower retrieves a user's followed posts
func (r *FollowRepository) ListByFollower(ctx context.Context, followerID int64) ([]*models.FollowedPost, error) {
	var follows []*models.FollowedPost
	if err := r.db.WithContext(ctx).
		Preload("Post").
		Preload("Post.FirstComment").
		Preload("Post.LastComment").
		Where("follower_id = ?", followerID).
		Find(&follows).Error; err != nil {
		return nil, err
	}
	return follows, nil
}

// FollowerIDs retrieves the IDs of a post's followers
func (r *FollowRepository) FollowerIDs(ctx context.Context, postID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.FollowedPost{}).
		Where("post_id = ?", postID).
		Pluck("follower_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
