package emergencies

import (
	"context"

	"gorm.io/gorm"

	"github.com/simsportal/sims-portal-backend/internal/domain"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

// ReferenceRepo reads the GO-platform lookup tables that emergencies point at.
type ReferenceRepo interface {
	NationalSocietyExists(ctx context.Context, tx *gorm.DB, nsGoID int) (bool, error)
	EmergencyTypeExists(ctx context.Context, tx *gorm.DB, typeGoID int) (bool, error)
	ListNationalSocieties(ctx context.Context, tx *gorm.DB) ([]*domain.NationalSociety, error)
	ListEmergencyTypes(ctx context.Context, tx *gorm.DB) ([]*domain.EmergencyType, error)
}

type referenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReferenceRepo(db *gorm.DB, baseLog *logger.Logger) ReferenceRepo {
	return &referenceRepo{db: db, log: baseLog.With("repo", "ReferenceRepo")}
}

func (r *referenceRepo) NationalSocietyExists(ctx context.Context, tx *gorm.DB, nsGoID int) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.NationalSociety{}).
		Where("ns_go_id = ?", nsGoID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *referenceRepo) EmergencyTypeExists(ctx context.Context, tx *gorm.DB, typeGoID int) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.EmergencyType{}).
		Where("emergency_type_go_id = ?", typeGoID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *referenceRepo) ListNationalSocieties(ctx context.Context, tx *gorm.DB) ([]*domain.NationalSociety, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.NationalSociety
	if err := transaction.WithContext(ctx).Order("country_name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *referenceRepo) ListEmergencyTypes(ctx context.Context, tx *gorm.DB) ([]*domain.EmergencyType, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.EmergencyType
	if err := transaction.WithContext(ctx).Order("emergency_type_name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
