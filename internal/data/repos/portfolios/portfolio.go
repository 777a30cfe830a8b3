package portfolios

import (
	"context"

	"gorm.io/gorm"

	"github.com/simsportal/sims-portal-backend/internal/domain"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type PortfolioRepo interface {
	CountApproved(ctx context.Context, tx *gorm.DB, emergencyID uint) (int64, error)
	// ListApproved returns approved products in insertion order; limit <= 0
	// means no limit.
	ListApproved(ctx context.Context, tx *gorm.DB, emergencyID uint, limit int) ([]*domain.Portfolio, error)
	ListPending(ctx context.Context, tx *gorm.DB, emergencyID uint) ([]*domain.Portfolio, error)
}

type portfolioRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPortfolioRepo(db *gorm.DB, baseLog *logger.Logger) PortfolioRepo {
	repoLog := baseLog.With("repo", "PortfolioRepo")
	return &portfolioRepo{db: db, log: repoLog}
}

func (r *portfolioRepo) CountApproved(ctx context.Context, tx *gorm.DB, emergencyID uint) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var n int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Portfolio{}).
		Where("emergency_id = ? AND product_status = ?", emergencyID, domain.ProductApproved).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *portfolioRepo) ListApproved(ctx context.Context, tx *gorm.DB, emergencyID uint, limit int) ([]*domain.Portfolio, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).
		Where("emergency_id = ? AND product_status = ?", emergencyID, domain.ProductApproved).
		Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	out := []*domain.Portfolio{}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *portfolioRepo) ListPending(ctx context.Context, tx *gorm.DB, emergencyID uint) ([]*domain.Portfolio, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	out := []*domain.Portfolio{}
	if err := transaction.WithContext(ctx).
		Where("emergency_id = ? AND product_status = ?", emergencyID, domain.ProductPendingApproval).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
