package api

import (
	"database/sql"
	"testing"
	"time"

	"github.com/juslaw/forum/internal/models"
)

func TestNullableID(t *testing.T) {
	tests := []struct {
		name     string
		value    sql.NullInt64
		expected *int64
	}{
		{"null", sql.NullInt64{}, nil},
		{"valid", sql.NullInt64{Int64: 42, Valid: true}, int64Ptr(42)},
		{"valid zero", sql.NullInt64{Int64: 0, Valid: true}, int64Ptr(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := nullableID(tt.value)
			if (result == nil) != (tt.expected == nil) {
				t.Fatalf("nullableID() = %v, want %v", result, tt.expected)
			}
			if result != nil && *result != *tt.expected {
				t.Errorf("nullableID() = %d, want %d", *result, *tt.expected)
			}
		})
	}
}

func TestPostObject(t *testing.T) {
	now := time.Now().UTC()
	post := &models.Post{
		ID:             5,
		TopicID:        sql.NullInt64{Int64: 2, Valid: true},
		Title:          "Custody question",
		Description:    "details",
		AuthorID:       9,
		FirstCommentID: sql.NullInt64{Int64: 11, Valid: true},
		CommentCount:   3,
		CreatedAt:      now,
		ModifiedAt:     now,
	}

	obj := postObject(post)

	if obj.ID != 5 || obj.AuthorID != 9 || obj.CommentCount != 3 {
		t.Errorf("postObject() scalar fields wrong: %+v", obj)
	}
	if obj.TopicID == nil || *obj.TopicID != 2 {
		t.Errorf("postObject() TopicID = %v, want 2", obj.TopicID)
	}
	if obj.FirstCommentID == nil || *obj.FirstCommentID != 11 {
		t.Errorf("postObject() FirstCommentID = %v, want 11", obj.FirstCommentID)
	}
	if obj.LastCommentID != nil {
		t.Errorf("postObject() LastCommentID = %v, want nil", obj.LastCommentID)
	}
}

func TestNotificationObject(t *testing.T) {
	tests := []struct {
		name         string
		typeID       int16
		expectedType string
	}{
		{"new_comment", models.NotifyTypeNewComment, "new_comment"},
		{"new_post", models.NotifyTypeNewPost, "new_post"},
		{"attorney_comment", models.NotifyTypeAttorneyComment, "attorney_comment"},
		{"opportunity", models.NotifyTypeOpportunity, "opportunity"},
		{"unknown type", 999, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notif := &models.Notification{
				ID:      1,
				Type:    tt.typeID,
				Payload: sql.NullString{String: "Custody question", Valid: true},
			}

			obj := notificationObject(notif)
			if obj.Type != tt.expectedType {
				t.Errorf("notificationObject() Type = %q, want %q", obj.Type, tt.expectedType)
			}
			if obj.Payload == nil || *obj.Payload != "Custody question" {
				t.Errorf("notificationObject() Payload = %v, want Custody question", obj.Payload)
			}
		})
	}
}

func TestFollowedPostObject(t *testing.T) {
	follow := &models.FollowedPost{
		ID:                  3,
		FollowerID:          7,
		PostID:              5,
		UnreadCommentsCount: 2,
		Post:                &models.Post{ID: 5, Title: "Custody question"},
	}

	obj := followedPostObject(follow)
	if obj.PostID != 5 || obj.UnreadCommentsCount != 2 {
		t.Errorf("followedPostObject() = %+v", obj)
	}
	if obj.Post == nil || obj.Post.Title != "Custody question" {
		t.Errorf("followedPostObject() Post = %+v, want embedded post", obj.Post)
	}
	if obj.LastReadCommentID != nil {
		t.Errorf("followedPostObject() LastReadCommentID = %v, want nil", obj.LastReadCommentID)
	}

	// Post not preloaded
	obj = followedPostObject(&models.FollowedPost{ID: 4, PostID: 6})
	if obj.Post != nil {
		t.Errorf("followedPostObject() Post = %+v, want nil when not preloaded", obj.Post)
	}
}

func int64Ptr(v int64) *int64 {
	return &v
}
