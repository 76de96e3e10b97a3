package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/juslaw/forum/internal/models"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DB returns the underlying gorm handle, for callers that need to open
// a transaction spanning several repository operations.
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// UserRepository provides user-related database operations
type UserRepository struct {
	*Repository
}

// NewUserRepository creates a new user repository
func NewUserRepository(repo *Repository) *UserRepository {
	return &UserRepository{Repository: repo}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// AttorneyRepository provides attorney-profile database operations
type AttorneyRepository struct {
	*Repository
}

// NewAttorneyRepository creates a new attorney repository
func NewAttorneyRepository(repo *Repository) *AttorneyRepository {
	return &AttorneyRepository{Repository: repo}
}

// GetByUserID retrieves an attorney profile with jurisdictions and
// specialties preloaded. Returns (nil, nil) when the user has no
// attorney profile.
func (r *AttorneyRepository) GetByUserID(ctx context.Context, userID int64) (*models.Attorney, error) {
	var attorney models.Attorney
	if err := r.db.WithContext(ctx).
		Preload("PracticeJurisdictions").
		Preload("Specialties").
		Where("user_id = ?", userID).
		First(&attorney).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attorney, nil
}

// ListVerified retrieves all verified attorney profiles with matching
// inputs preloaded, for the daily opportunity stats job.
func (r *AttorneyRepository) ListVerified(ctx context.Context) ([]*models.Attorney, error) {
	var attorneys []*models.Attorney
	if err := r.db.WithContext(ctx).
		Preload("PracticeJurisdictions").
		Preload("Specialties").
		Where("verified = ?", true).
		Find(&attorneys).Error; err != nil {
		return nil, err
	}
	return attorneys, nil
}

// FollowerIDs retrieves the IDs of users following the attorney whose
// user ID is given
func (r *AttorneyRepository) FollowerIDs(ctx context.Context, attorneyUserID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).
		Table("forum_attorney_followers af").
		Joins("JOIN forum_attorneys a ON a.id = af.attorney_id").
		Where("a.user_id = ?", attorneyUserID).
		Pluck("af.user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// UserStatsRepository provides per-user forum statistics operations
type UserStatsRepository struct {
	*Repository
}

// NewUserStatsRepository creates a new user stats repository
func NewUserStatsRepository(repo *Repository) *UserStatsRepository {
	return &UserStatsRepository{Repository: repo}
}

// GetByUserID retrieves the stats row for a user
func (r *UserStatsRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserStats, error) {
	var stats models.UserStats
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stats, nil
}

// PracticeAreaRepository provides practice-area database operations
type PracticeAreaRepository struct {
	*Repository
}

// NewPracticeAreaRepository creates a new practice area repository
func NewPracticeAreaRepository(repo *Repository) *PracticeAreaRepository {
	return &PracticeAreaRepository{Repository: repo}
}

// List retrieves all practice areas ordered by title
func (r *PracticeAreaRepository) List(ctx context.Context) ([]*models.PracticeArea, error) {
	var areas []*models.PracticeArea
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}

// NotificationRepository provides notification database operations
type NotificationRepository struct {
	*Repository
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(repo *Repository) *NotificationRepository {
	return &NotificationRepository{Repository: repo}
}

// Create creates a new notification
func (r *NotificationRepository) Create(ctx context.Context, notif *models.Notification) error {
	return r.db.WithContext(ctx).Create(notif).Error
}

// ListUnreadByDst retrieves unread notifications for a user, newest first
func (r *NotificationRepository) ListUnreadByDst(ctx context.Context, dstID int64, limit int) ([]*models.Notification, error) {
	var notifs []*models.Notification
	if err := r.db.WithContext(ctx).
		Where("dst_id = ? AND is_read = ?", dstID, false).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifs).Error; err != nil {
		return nil, err
	}
	return notifs, nil
}

// MarkRead marks all notifications for a user as read
func (r *NotificationRepository) MarkRead(ctx context.Context, dstID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("dst_id = ?", dstID).
		Update("is_read", true).Error
}

// OpportunityStatRepository provides daily opportunity-stat operations
type OpportunityStatRepository struct {
	*Repository
}

// NewOpportunityStatRepository creates a new opportunity stat repository
func NewOpportunityStatRepository(repo *Repository) *OpportunityStatRepository {
	return &OpportunityStatRepository{Repository: repo}
}

// Create creates a new opportunity stat sample
func (r *OpportunityStatRepository) Create(ctx context.Context, stat *models.OpportunityStat) error {
	return r.db.WithContext(ctx).Create(stat).Error
}
