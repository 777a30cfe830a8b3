package emergencies

import (
	"context"

	"gorm.io/gorm"

	"github.com/simsportal/sims-portal-backend/internal/domain"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type ReviewRepo interface {
	ListByEmergency(ctx context.Context, tx *gorm.DB, emergencyID uint) ([]*domain.Review, error)
}

type reviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	return &reviewRepo{db: db, log: baseLog.With("repo", "ReviewRepo")}
}

func (r *reviewRepo) ListByEmergency(ctx context.Context, tx *gorm.DB, emergencyID uint) ([]*domain.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	out := []*domain.Review{}
	if err := transaction.WithContext(ctx).
		Where("emergency_id = ?", emergencyID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type StoryRepo interface {
	ExistsForEmergency(ctx context.Context, tx *gorm.DB, emergencyID uint) (bool, error)
}

type storyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStoryRepo(db *gorm.DB, baseLog *logger.Logger) StoryRepo {
	return &storyRepo{db: db, log: baseLog.With("repo", "StoryRepo")}
}

func (r *storyRepo) ExistsForEmergency(ctx context.Context, tx *gorm.DB, emergencyID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Story{}).
		Where("emergency_id = ?", emergencyID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
