package forum

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/juslaw/forum/internal/cache"
	"github.com/juslaw/forum/internal/models"
	"github.com/juslaw/forum/pkg/config"
)

// testCache connects to the Redis named by FORUM_TEST_REDIS_URL; tests
// using it skip when the variable is unset.
func testCache(t *testing.T) *cache.Cache {
	t.Helper()

	url := os.Getenv("FORUM_TEST_REDIS_URL")
	if url == "" {
		t.Skip("FORUM_TEST_REDIS_URL not set, skipping integration test")
	}

	c, err := cache.New(&config.RedisConfig{URL: url, Enabled: true})
	if err != nil {
		t.Fatalf("Failed to connect to test Redis: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestPostMutationsInvalidateOpportunityCache(t *testing.T) {
	repo := testRepo(t)
	c := testCache(t)
	svc := NewPostService(repo, NewMaintainer(repo), NewNotifier(repo), c)
	ctx := context.Background()
	gdb := repo.DB()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	author := &models.User{Email: "client@example.com", CreatedAt: base}
	if err := gdb.Create(author).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	const key = "opportunities:42"
	seed := func(t *testing.T) {
		t.Helper()
		if err := c.Set(ctx, key, "cached feed", time.Minute); err != nil {
			t.Fatalf("Failed to seed cache: %v", err)
		}
	}
	assertDropped := func(t *testing.T, op string) {
		t.Helper()
		if _, err := c.Get(ctx, key); err != redis.Nil {
			t.Errorf("after %s, cached feed still present (err = %v), want redis.Nil", op, err)
		}
	}

	seed(t)
	post := &models.Post{Title: "Custody question", AuthorID: author.ID}
	if err := svc.Create(ctx, post, "opening comment"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	assertDropped(t, "Create")

	seed(t)
	if _, err := svc.Update(ctx, post.ID, author.ID, "Updated custody question", ""); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	assertDropped(t, "Update")

	seed(t)
	if err := svc.Delete(ctx, post.ID, author.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	assertDropped(t, "Delete")
}
