package learnings

import (
	"context"

	"gorm.io/gorm"

	"github.com/simsportal/sims-portal-backend/internal/domain"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

// Scope narrows Averages to one emergency; a nil EmergencyID means every
// survey on record.
type Scope struct {
	EmergencyID *uint
}

func ForEmergency(id uint) Scope { return Scope{EmergencyID: &id} }

func OrgWide() Scope { return Scope{} }

type LearningRepo interface {
	CountByEmergency(ctx context.Context, tx *gorm.DB, emergencyID uint) (int64, error)
	Averages(ctx context.Context, tx *gorm.DB, scope Scope) (domain.LearningAverageRow, error)
}

type learningRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningRepo(db *gorm.DB, baseLog *logger.Logger) LearningRepo {
	repoLog := baseLog.With("repo", "LearningRepo")
	return &learningRepo{db: db, log: repoLog}
}

func (r *learningRepo) CountByEmergency(ctx context.Context, tx *gorm.DB, emergencyID uint) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var n int64
	if err := transaction.WithContext(ctx).
		Table("learning AS l").
		Joins("JOIN assignment a ON a.id = l.assignment_id").
		Where("a.emergency_id = ?", emergencyID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

const averagesSelect = `
	AVG(l.overall_score) AS overall,
	AVG(l.got_support) AS support,
	AVG(l.internal_resource) AS internal_resources,
	AVG(l.external_resource) AS external_resources,
	AVG(l.clear_tasks) AS task_clarity,
	AVG(l.field_communication) AS field_communication,
	AVG(l.clear_deadlines) AS deadlines,
	AVG(l.coordination_tools) AS coordination_tools,
	COUNT(*) AS samples`

func (r *learningRepo) Averages(ctx context.Context, tx *gorm.DB, scope Scope) (domain.LearningAverageRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).Table("learning AS l").Select(averagesSelect)
	if scope.EmergencyID != nil {
		q = q.Joins("JOIN assignment a ON a.id = l.assignment_id").
			Where("a.emergency_id = ?", *scope.EmergencyID)
	}
	var row domain.LearningAverageRow
	if err := q.Scan(&row).Error; err != nil {
		return domain.LearningAverageRow{}, err
	}
	return row, nil
}
