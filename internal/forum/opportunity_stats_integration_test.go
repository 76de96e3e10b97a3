package forum

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/juslaw/forum/internal/models"
)

func TestOpportunityStatsJobRunOnce(t *testing.T) {
	repo := testRepo(t)
	job := NewOpportunityStatsJob(repo, NewMatcher(repo), NewNotifier(repo))
	ctx := context.Background()
	gdb := repo.DB()

	// Inside the job's [now-24h, now] sampling window
	base := time.Now().UTC().Add(-time.Hour)

	state := &models.State{Name: "California"}
	if err := gdb.Create(state).Error; err != nil {
		t.Fatalf("Failed to create state: %v", err)
	}
	area := &models.PracticeArea{Title: "Family law"}
	if err := gdb.Create(area).Error; err != nil {
		t.Fatalf("Failed to create practice area: %v", err)
	}

	clientUser := &models.User{Email: "client@example.com", CreatedAt: base}
	if err := gdb.Create(clientUser).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	client := &models.Client{
		UserID:  clientUser.ID,
		StateID: sql.NullInt64{Int64: state.ID, Valid: true},
	}
	if err := gdb.Create(client).Error; err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	topic := &models.Topic{
		Title:          "Family law",
		PracticeAreaID: sql.NullInt64{Int64: area.ID, Valid: true},
		CreatedAt:      base,
		ModifiedAt:     base,
	}
	if err := gdb.Create(topic).Error; err != nil {
		t.Fatalf("Failed to create topic: %v", err)
	}
	post := &models.Post{
		TopicID:    sql.NullInt64{Int64: topic.ID, Valid: true},
		Title:      "Custody question",
		AuthorID:   clientUser.ID,
		CreatedAt:  base,
		ModifiedAt: base,
	}
	if err := gdb.Create(post).Error; err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	comment := &models.Comment{
		PostID:     post.ID,
		AuthorID:   clientUser.ID,
		Text:       "My ex-spouse wants to change our custody agreement",
		CreatedAt:  base,
		ModifiedAt: base,
	}
	if err := gdb.Create(comment).Error; err != nil {
		t.Fatalf("Failed to create comment: %v", err)
	}
	if err := gdb.Model(post).Update("first_comment_id", comment.ID).Error; err != nil {
		t.Fatalf("Failed to set first comment: %v", err)
	}

	attorneyUser := &models.User{Email: "attorney@example.com", IsAttorney: true, CreatedAt: base}
	if err := gdb.Create(attorneyUser).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	attorney := &models.Attorney{
		UserID:                attorneyUser.ID,
		Verified:              true,
		PracticeJurisdictions: []models.State{*state},
		Specialties:           []models.PracticeArea{*area},
	}
	if err := gdb.Create(attorney).Error; err != nil {
		t.Fatalf("Failed to create attorney: %v", err)
	}

	if err := job.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}

	var stat models.OpportunityStat
	if err := gdb.Where("user_id = ?", attorneyUser.ID).First(&stat).Error; err != nil {
		t.Fatalf("Failed to load opportunity stat: %v", err)
	}
	if stat.Count != 1 {
		t.Errorf("opportunity stat count = %d, want 1", stat.Count)
	}
	if stat.Tag != models.StatTagOpportunities {
		t.Errorf("opportunity stat tag = %q, want %q", stat.Tag, models.StatTagOpportunities)
	}

	// A day with matches notifies the attorney
	var notif models.Notification
	if err := gdb.Where("dst_id = ? AND type_id = ?",
		attorneyUser.ID, models.NotifyTypeOpportunity).First(&notif).Error; err != nil {
		t.Fatalf("Failed to load opportunity notification: %v", err)
	}
	if !notif.Payload.Valid || notif.Payload.String != "1" {
		t.Errorf("opportunity notification payload = %v, want 1", notif.Payload)
	}
}
