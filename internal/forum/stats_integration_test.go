package forum

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/juslaw/forum/internal/db"
	"github.com/juslaw/forum/internal/models"
	"github.com/juslaw/forum/pkg/config"
)

// testRepo connects to the database named by FORUM_TEST_DATABASE_URL,
// migrating and truncating the tables the maintainer touches. Tests
// using it skip when the variable is unset.
func testRepo(t *testing.T) *db.Repository {
	t.Helper()

	url := os.Getenv("FORUM_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("FORUM_TEST_DATABASE_URL not set, skipping integration test")
	}

	database, err := db.New(&config.DatabaseConfig{URL: url}, "ERROR")
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := database.AutoMigrate(
		&models.State{},
		&models.PracticeArea{},
		&models.User{},
		&models.Client{},
		&models.Attorney{},
		&models.Topic{},
		&models.Post{},
		&models.Comment{},
		&models.FollowedPost{},
		&models.UserStats{},
		&models.OpportunityStat{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}

	if err := database.Exec(
		"TRUNCATE forum_notifications, forum_opportunity_stats, forum_followed_posts, " +
			"forum_comments, forum_posts, forum_topics, forum_attorneys, forum_clients, " +
			"forum_user_stats, forum_users, forum_practice_areas, forum_states " +
			"RESTART IDENTITY CASCADE",
	).Error; err != nil {
		t.Fatalf("Failed to truncate test tables: %v", err)
	}

	return db.NewRepository(database.DB)
}

func TestMaintainerCommentLifecycle(t *testing.T) {
	repo := testRepo(t)
	maintainer := NewMaintainer(repo)
	ctx := context.Background()
	gdb := repo.DB()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	author := &models.User{Email: "client@example.com", CreatedAt: base}
	if err := gdb.Create(author).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	topic := &models.Topic{Title: "Family law", CreatedAt: base, ModifiedAt: base}
	if err := gdb.Create(topic).Error; err != nil {
		t.Fatalf("Failed to create topic: %v", err)
	}
	post := &models.Post{
		TopicID:    sql.NullInt64{Int64: topic.ID, Valid: true},
		Title:      "Custody question",
		AuthorID:   author.ID,
		CreatedAt:  base,
		ModifiedAt: base,
	}
	if err := gdb.Create(post).Error; err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}

	addComment := func(at time.Time) *models.Comment {
		comment := &models.Comment{
			PostID:     post.ID,
			AuthorID:   author.ID,
			Text:       "text",
			CreatedAt:  at,
			ModifiedAt: at,
		}
		err := gdb.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(comment).Error; err != nil {
				return err
			}
			return maintainer.OnCommentCreated(ctx, tx, comment)
		})
		if err != nil {
			t.Fatalf("Failed to add comment: %v", err)
		}
		return comment
	}

	first := addComment(base.Add(time.Minute))
	second := addComment(base.Add(2 * time.Minute))

	var got models.Post
	if err := gdb.First(&got, post.ID).Error; err != nil {
		t.Fatalf("Failed to reload post: %v", err)
	}
	if got.CommentCount != 2 {
		t.Errorf("post comment_count = %d, want 2", got.CommentCount)
	}
	if !got.FirstCommentID.Valid || got.FirstCommentID.Int64 != first.ID {
		t.Errorf("post first_comment_id = %v, want %d", got.FirstCommentID, first.ID)
	}
	if !got.LastCommentID.Valid || got.LastCommentID.Int64 != second.ID {
		t.Errorf("post last_comment_id = %v, want %d", got.LastCommentID, second.ID)
	}

	var gotTopic models.Topic
	if err := gdb.First(&gotTopic, topic.ID).Error; err != nil {
		t.Fatalf("Failed to reload topic: %v", err)
	}
	if gotTopic.CommentCount != 2 {
		t.Errorf("topic comment_count = %d, want 2", gotTopic.CommentCount)
	}

	var stats models.UserStats
	if err := gdb.Where("user_id = ?", author.ID).First(&stats).Error; err != nil {
		t.Fatalf("Failed to load user stats: %v", err)
	}
	if stats.CommentCount != 2 {
		t.Errorf("user comment_count = %d, want 2", stats.CommentCount)
	}

	// Deleting the newest comment must recount, not decrement, and move
	// the last-comment pointer back.
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Comment{}, second.ID).Error; err != nil {
			return err
		}
		return maintainer.OnCommentDeleted(ctx, tx, second)
	})
	if err != nil {
		t.Fatalf("Failed to delete comment: %v", err)
	}

	if err := gdb.First(&got, post.ID).Error; err != nil {
		t.Fatalf("Failed to reload post: %v", err)
	}
	if got.CommentCount != 1 {
		t.Errorf("post comment_count after delete = %d, want 1", got.CommentCount)
	}
	if !got.LastCommentID.Valid || got.LastCommentID.Int64 != first.ID {
		t.Errorf("post last_comment_id after delete = %v, want %d", got.LastCommentID, first.ID)
	}
	if !got.FirstCommentID.Valid || got.FirstCommentID.Int64 != first.ID {
		t.Errorf("post first_comment_id after delete = %v, want %d", got.FirstCommentID, first.ID)
	}

	if err := gdb.Where("user_id = ?", author.ID).First(&stats).Error; err != nil {
		t.Fatalf("Failed to reload user stats: %v", err)
	}
	if stats.CommentCount != 1 {
		t.Errorf("user comment_count after delete = %d, want 1", stats.CommentCount)
	}
}

func TestMaintainerRecountAll(t *testing.T) {
	repo := testRepo(t)
	maintainer := NewMaintainer(repo)
	ctx := context.Background()
	gdb := repo.DB()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	author := &models.User{Email: "client@example.com", CreatedAt: base}
	if err := gdb.Create(author).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	post := &models.Post{Title: "No topic", AuthorID: author.ID, CreatedAt: base, ModifiedAt: base}
	if err := gdb.Create(post).Error; err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	comment := &models.Comment{
		PostID: post.ID, AuthorID: author.ID, Text: "text",
		CreatedAt: base, ModifiedAt: base,
	}
	if err := gdb.Create(comment).Error; err != nil {
		t.Fatalf("Failed to create comment: %v", err)
	}

	// Counters were never maintained; RecountAll must rebuild them.
	if err := maintainer.RecountAll(ctx); err != nil {
		t.Fatalf("RecountAll() error = %v", err)
	}

	var got models.Post
	if err := gdb.First(&got, post.ID).Error; err != nil {
		t.Fatalf("Failed to reload post: %v", err)
	}
	if got.CommentCount != 1 {
		t.Errorf("post comment_count = %d, want 1", got.CommentCount)
	}
	if !got.LastCommentID.Valid || got.LastCommentID.Int64 != comment.ID {
		t.Errorf("post last_comment_id = %v, want %d", got.LastCommentID, comment.ID)
	}

	var stats models.UserStats
	if err := gdb.Where("user_id = ?", author.ID).First(&stats).Error; err != nil {
		t.Fatalf("Failed to load user stats: %v", err)
	}
	if stats.CommentCount != 1 {
		t.Errorf("user comment_count = %d, want 1", stats.CommentCount)
	}
}
