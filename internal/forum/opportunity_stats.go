package forum

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/juslaw/forum/internal/db"
	"github.com/juslaw/forum/internal/models"
	"github.com/juslaw/forum/pkg/logging"
)

// OpportunityStatsJob samples, once a day, how many opportunities were
// posted during the previous day for each verified attorney. Implements
// cron.Job.
type OpportunityStatsJob struct {
	repo     *db.Repository
	matcher  *Matcher
	notifier *Notifier
	logger   *zap.Logger
}

// NewOpportunityStatsJob creates a new daily opportunity stats job
func NewOpportunityStatsJob(repo *db.Repository, matcher *Matcher, notifier *Notifier) *OpportunityStatsJob {
	return &OpportunityStatsJob{
		repo:     repo,
		matcher:  matcher,
		notifier: notifier,
		logger:   logging.GetLogger().With(zap.String("component", "opportunity-stats")),
	}
}

// Run executes one sampling pass. Errors are logged; the job retries on
// its next scheduled run.
func (j *OpportunityStatsJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := j.RunOnce(ctx); err != nil {
		j.logger.Error("Opportunity stats run failed", zap.Error(err))
	}
}

// RunOnce counts yesterday's opportunities for every verified attorney
// and stores one stat row per attorney
func (j *OpportunityStatsJob) RunOnce(ctx context.Context) error {
	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)

	attorneyRepo := db.NewAttorneyRepository(j.repo)
	attorneys, err := attorneyRepo.ListVerified(ctx)
	if err != nil {
		return err
	}

	statRepo := db.NewOpportunityStatRepository(j.repo)
	for _, attorney := range attorneys {
		count, err := j.matcher.CountForPeriod(ctx, attorney, yesterday, now)
		if err != nil {
			j.logger.Error("Failed to count opportunities", zap.Error(err),
				zap.Int64("user_id", attorney.UserID))
			continue
		}

		stat := &models.OpportunityStat{
			UserID:    attorney.UserID,
			Tag:       models.StatTagOpportunities,
			Count:     count,
			CreatedAt: now,
		}
		if err := statRepo.Create(ctx, stat); err != nil {
			j.logger.Error("Failed to store opportunity stat", zap.Error(err),
				zap.Int64("user_id", attorney.UserID))
			continue
		}

		// A day with matches is worth telling the attorney about
		if count > 0 {
			dst := attorney.UserID
			payload := strconv.FormatInt(count, 10)
			if err := j.notifier.Write(ctx, models.NotifyTypeOpportunity, nil, &dst, nil, &payload); err != nil {
				j.logger.Error("Failed to notify attorney of opportunities", zap.Error(err),
					zap.Int64("user_id", attorney.UserID))
			}
		}
	}

	j.logger.Info("Sampled daily opportunity stats", zap.Int("attorneys", len(attorneys)))
	return nil
}
