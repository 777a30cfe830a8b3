package emergencies

import (
	"context"

	"gorm.io/gorm"

	"github.com/simsportal/sims-portal-backend/internal/domain"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type LogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *domain.Log) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uint, limit int) ([]*domain.Log, error)
}

type logRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLogRepo(db *gorm.DB, baseLog *logger.Logger) LogRepo {
	return &logRepo{db: db, log: baseLog.With("repo", "LogRepo")}
}

func (r *logRepo) Create(ctx context.Context, tx *gorm.DB, entry *domain.Log) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if entry.Level == "" {
		entry.Level = domain.LogInfo
	}
	return transaction.WithContext(ctx).Create(entry).Error
}

func (r *logRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uint, limit int) ([]*domain.Log, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []*domain.Log
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
