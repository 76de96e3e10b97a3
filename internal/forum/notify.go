package forum

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/juslaw/forum/internal/db"
	"github.com/juslaw/forum/internal/models"
	"github.com/juslaw/forum/pkg/logging"
)

// Notifier creates notification rows for forum events. Fan-out runs
// after the triggering write has committed; a failed notification is
// logged and skipped, it never fails the originating request.
type Notifier struct {
	repo   *db.Repository
	logger *zap.Logger
}

// NewNotifier creates a new notifier
func NewNotifier(repo *db.Repository) *Notifier {
	return &Notifier{
		repo:   repo,
		logger: logging.GetLogger().With(zap.String("component", "notifier")),
	}
}

// Write creates a single notification
func (n *Notifier) Write(ctx context.Context, typeID int16, srcID, dstID, postID *int64, payload *string) error {
	notif := &models.Notification{
		Type:      typeID,
		CreatedAt: time.Now().UTC(),
	}

	if srcID != nil {
		notif.SrcID = sql.NullInt64{Int64: *srcID, Valid: true}
	}
	if dstID != nil {
		notif.DstID = sql.NullInt64{Int64: *dstID, Valid: true}
	}
	if postID != nil {
		notif.PostID = sql.NullInt64{Int64: *postID, Valid: true}
	}
	if payload != nil {
		notif.Payload = sql.NullString{String: *payload, Valid: true}
	}

	notifRepo := db.NewNotificationRepository(n.repo)
	return notifRepo.Create(ctx, notif)
}

// NotifyPostFollowers notifies a post's followers about a new comment,
// excluding the comment author
func (n *Notifier) NotifyPostFollowers(ctx context.Context, comment *models.Comment, postTitle string) {
	followRepo := db.NewFollowRepository(n.repo)
	followerIDs, err := followRepo.FollowerIDs(ctx, comment.PostID)
	if err != nil {
		n.logger.Error("Failed to list post followers", zap.Error(err),
			zap.Int64("post_id", comment.PostID))
		return
	}

	n.fanOut(ctx, models.NotifyTypeNewComment, comment.AuthorID, comment.PostID, postTitle, followerIDs)
}

// NotifyTopicFollowers notifies a topic's followers about a new post
func (n *Notifier) NotifyTopicFollowers(ctx context.Context, post *models.Post) {
	if !post.TopicID.Valid {
		return
	}

	topicRepo := db.NewTopicRepository(n.repo)
	followerIDs, err := topicRepo.FollowerIDs(ctx, post.TopicID.Int64)
	if err != nil {
		n.logger.Error("Failed to list topic followers", zap.Error(err),
			zap.Int64("topic_id", post.TopicID.Int64))
		return
	}

	n.fanOut(ctx, models.NotifyTypeNewPost, post.AuthorID, post.ID, post.Title, followerIDs)
}

// NotifyAttorneyFollowers notifies the followers of an attorney about a
// comment the attorney made
func (n *Notifier) NotifyAttorneyFollowers(ctx context.Context, comment *models.Comment, postTitle string) {
	attorneyRepo := db.NewAttorneyRepository(n.repo)
	followerIDs, err := attorneyRepo.FollowerIDs(ctx, comment.AuthorID)
	if err != nil {
		n.logger.Error("Failed to list attorney followers", zap.Error(err),
			zap.Int64("author_id", comment.AuthorID))
		return
	}

	n.fanOut(ctx, models.NotifyTypeAttorneyComment, comment.AuthorID, comment.PostID, postTitle, followerIDs)
}

// fanOut writes one notification per recipient, skipping the actor
func (n *Notifier) fanOut(ctx context.Context, typeID int16, srcID, postID int64, payload string, recipientIDs []int64) {
	for _, dstID := range recipientIDs {
		if dstID == srcID {
			continue
		}
		dst := dstID
		if err := n.Write(ctx, typeID, &srcID, &dst, &postID, &payload); err != nil {
			n.logger.Error("Failed to write notification", zap.Error(err),
				zap.String("type", notifyTypeName(typeID)),
				zap.Int64("dst_id", dstID))
			continue
		}
	}

	n.logger.Info("[NOTIFY]",
		zap.String("type", notifyTypeName(typeID)),
		zap.Int64("src_id", srcID),
		zap.Int64("post_id", postID),
		zap.Int("recipients", len(recipientIDs)))
}

func notifyTypeName(typeID int16) string {
	names := map[int16]string{
		models.NotifyTypeNewComment:      "new_comment",
		models.NotifyTypeNewPost:         "new_post",
		models.NotifyTypeAttorneyComment: "attorney_comment",
		models.NotifyTypeOpportunity:     "opportunity",
	}
	if name, ok := names[typeID]; ok {
		return name
	}
	return "unknown"
}
