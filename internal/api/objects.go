package api

import (
	"database/sql"
	"time"

	"github.com/juslaw/forum/internal/models"
)

// Wire representations. Models carry storage concerns (null columns,
// relationship fields), so responses go through these objects instead
// of serializing models directly.

// TopicObject is the wire form of a topic
type TopicObject struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	PracticeAreaID *int64    `json:"practice_area_id"`
	CommentCount   int64     `json:"comment_count"`
	LastCommentID  *int64    `json:"last_comment_id"`
	Featured       bool      `json:"featured"`
	CreatedAt      time.Time `json:"created_at"`
	ModifiedAt     time.Time `json:"modified_at"`
}

// PostObject is the wire form of a post
type PostObject struct {
	ID             int64     `json:"id"`
	TopicID        *int64    `json:"topic_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	AuthorID       int64     `json:"author_id"`
	FirstCommentID *int64    `json:"first_comment_id"`
	LastCommentID  *int64    `json:"last_comment_id"`
	CommentCount   int64     `json:"comment_count"`
	CreatedAt      time.Time `json:"created_at"`
	ModifiedAt     time.Time `json:"modified_at"`
}

// CommentObject is the wire form of a comment
type CommentObject struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"post_id"`
	AuthorID   int64     `json:"author_id"`
	Text       string    `json:"text"`
	Position   int64     `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// FollowedPostObject is the wire form of a followed-post subscription
type FollowedPostObject struct {
	ID                  int64       `json:"id"`
	PostID              int64       `json:"post_id"`
	Post                *PostObject `json:"post,omitempty"`
	UnreadCommentsCount int64       `json:"unread_comments_count"`
	LastReadCommentID   *int64      `json:"last_read_comment_id"`
	CreatedAt           time.Time   `json:"created_at"`
}

// NotificationObject is the wire form of a notification
type NotificationObject struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	SrcID     *int64    `json:"src_id"`
	PostID    *int64    `json:"post_id"`
	Payload   *string   `json:"payload"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// PracticeAreaObject is the wire form of a practice area
type PracticeAreaObject struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func nullableID(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}

func topicObject(t *models.Topic) *TopicObject {
	return &TopicObject{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description.String,
		PracticeAreaID: nullableID(t.PracticeAreaID),
		CommentCount:   t.CommentCount,
		LastCommentID:  nullableID(t.LastCommentID),
		Featured:       t.Featured,
		CreatedAt:      t.CreatedAt,
		ModifiedAt:     t.ModifiedAt,
	}
}

func topicObjects(topics []*models.Topic) []*TopicObject {
	out := make([]*TopicObject, 0, len(topics))
	for _, t := range topics {
		out = append(out, topicObject(t))
	}
	return out
}

func postObject(p *models.Post) *PostObject {
	return &PostObject{
		ID:             p.ID,
		TopicID:        nullableID(p.TopicID),
		Title:          p.Title,
		Description:    p.Description,
		AuthorID:       p.AuthorID,
		FirstCommentID: nullableID(p.FirstCommentID),
		LastCommentID:  nullableID(p.LastCommentID),
		CommentCount:   p.CommentCount,
		CreatedAt:      p.CreatedAt,
		ModifiedAt:     p.ModifiedAt,
	}
}

func postObjects(posts []*models.Post) []*PostObject {
	out := make([]*PostObject, 0, len(posts))
	for _, p := range posts {
		out = append(out, postObject(p))
	}
	return out
}

func commentObject(c *models.Comment) *CommentObject {
	return &CommentObject{
		ID:         c.ID,
		PostID:     c.PostID,
		AuthorID:   c.AuthorID,
		Text:       c.Text,
		Position:   c.Position,
		CreatedAt:  c.CreatedAt,
		ModifiedAt: c.ModifiedAt,
	}
}

func commentObjects(comments []*models.Comment) []*CommentObject {
	out := make([]*CommentObject, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentObject(c))
	}
	return out
}

func followedPostObject(f *models.FollowedPost) *FollowedPostObject {
	obj := &FollowedPostObject{
		ID:                  f.ID,
		PostID:              f.PostID,
		UnreadCommentsCount: f.UnreadCommentsCount,
		LastReadCommentID:   nullableID(f.LastReadCommentID),
		CreatedAt:           f.CreatedAt,
	}
	if f.Post != nil {
		obj.Post = postObject(f.Post)
	}
	return obj
}

func followedPostObjects(follows []*models.FollowedPost) []*FollowedPostObject {
	out := make([]*FollowedPostObject, 0, len(follows))
	for _, f := range follows {
		out = append(out, followedPostObject(f))
	}
	return out
}

func notificationObject(n *models.Notification) *NotificationObject {
	obj := &NotificationObject{
		ID:        n.ID,
		Type:      notifyTypeNames[n.Type],
		SrcID:     nullableID(n.SrcID),
		PostID:    nullableID(n.PostID),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if obj.Type == "" {
		obj.Type = "unknown"
	}
	if n.Payload.Valid {
		payload := n.Payload.String
		obj.Payload = &payload
	}
	return obj
}

func notificationObjects(notifs []*models.Notification) []*NotificationObject {
	out := make([]*NotificationObject, 0, len(notifs))
	for _, n := range notifs {
		out = append(out, notificationObject(n))
	}
	return out
}

var notifyTypeNames = map[int16]string{
	models.NotifyTypeNewComment:      "new_comment",
	models.NotifyTypeNewPost:         "new_post",
	models.NotifyTypeAttorneyComment: "attorney_comment",
	models.NotifyTypeOpportunity:     "opportunity",
}

func practiceAreaObjects(areas []*models.PracticeArea) []*PracticeAreaObject {
	out := make([]*PracticeAreaObject, 0, len(areas))
	for _, a := range areas {
		out = append(out, &PracticeAreaObject{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
		})
	}
	return out
}
