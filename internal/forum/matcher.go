package forum

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/juslaw/forum/internal/db"
	"github.com/juslaw/forum/internal/models"
	"github.com/juslaw/forum/pkg/logging"
)

// Matcher computes opportunity posts for attorneys.
//
// A post is an opportunity when the thread opener's state is one of the
// attorney's practice jurisdictions AND either the topic's practice
// area matches one of the attorney's specialties or the post's title or
// first comment matches the attorney's keywords. The matcher is
// read-only; it composes filters and never mutates anything.
type Matcher struct {
	repo   *db.Repository
	logger *zap.Logger
}

// NewMatcher creates a new opportunity matcher
func NewMatcher(repo *db.Repository) *Matcher {
	return &Matcher{
		repo:   repo,
		logger: logging.GetLogger().With(zap.String("component", "matcher")),
	}
}

// Opportunities returns the opportunity posts for the given user.
// A user without an attorney profile, or an attorney licensed in no
// jurisdiction, has no opportunities.
func (m *Matcher) Opportunities(ctx context.Context, userID int64) ([]*models.Post, error) {
	return m.opportunities(ctx, userID, nil, nil)
}

// OpportunitiesForPeriod returns opportunities whose post was created
// within [start, end] inclusive.
func (m *Matcher) OpportunitiesForPeriod(ctx context.Context, userID int64, start, end time.Time) ([]*models.Post, error) {
	return m.opportunities(ctx, userID, &start, &end)
}

func (m *Matcher) opportunities(ctx context.Context, userID int64, start, end *time.Time) ([]*models.Post, error) {
	attorneyRepo := db.NewAttorneyRepository(m.repo)
	attorney, err := attorneyRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter, ok := buildOpportunityFilter(attorney, start, end)
	if !ok {
		return []*models.Post{}, nil
	}

	return db.NewPostRepository(m.repo).Opportunities(ctx, filter)
}

// CountForPeriod counts opportunities for an already-loaded attorney
// profile; used by the daily stats job to avoid reloading profiles.
func (m *Matcher) CountForPeriod(ctx context.Context, attorney *models.Attorney, start, end time.Time) (int64, error) {
	filter, ok := buildOpportunityFilter(attorney, &start, &end)
	if !ok {
		return 0, nil
	}
	return db.NewPostRepository(m.repo).CountOpportunities(ctx, filter)
}

// buildOpportunityFilter translates an attorney profile into the
// composed query filter. The second return value is false when the
// profile can never match: no profile at all, or no licensed
// jurisdiction. Empty or missing keywords select the specialty-only
// branch.
func buildOpportunityFilter(attorney *models.Attorney, start, end *time.Time) (db.OpportunityFilter, bool) {
	if attorney == nil || len(attorney.PracticeJurisdictions) == 0 {
		return db.OpportunityFilter{}, false
	}

	stateIDs := make([]int64, 0, len(attorney.PracticeJurisdictions))
	for _, s := range attorney.PracticeJurisdictions {
		stateIDs = append(stateIDs, s.ID)
	}

	areaIDs := make([]int64, 0, len(attorney.Specialties))
	for _, a := range attorney.Specialties {
		areaIDs = append(areaIDs, a.ID)
	}

	return db.OpportunityFilter{
		StateIDs:    stateIDs,
		AreaIDs:     areaIDs,
		Querytext:   ConvertKeywordsToQuerytext(attorney.Keywords),
		PeriodStart: start,
		PeriodEnd:   end,
	}, true
}
