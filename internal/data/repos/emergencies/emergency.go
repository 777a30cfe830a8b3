package emergencies

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/simsportal/sims-portal-backend/internal/domain"
	"github.com/simsportal/sims-portal-backend/internal/platform/apperr"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type EmergencyRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Emergency, error)
	GetDetail(ctx context.Context, tx *gorm.DB, id uint) (*domain.EmergencyDetail, error)
	ListVisible(ctx context.Context, tx *gorm.DB) ([]*domain.EmergencyDetail, error)
	ListSummaries(ctx context.Context, tx *gorm.DB, filter domain.EmergencySummaryFilter) ([]domain.EmergencySummary, error)
	Create(ctx context.Context, tx *gorm.DB, e *domain.Emergency) (*domain.Emergency, error)
	Update(ctx context.Context, tx *gorm.DB, e *domain.Emergency) error
	SetStatus(ctx context.Context, tx *gorm.DB, id uint, status domain.EmergencyStatus) error
}

type emergencyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmergencyRepo(db *gorm.DB, baseLog *logger.Logger) EmergencyRepo {
	repoLog := baseLog.With("repo", "EmergencyRepo")
	return &emergencyRepo{db: db, log: repoLog}
}

const detailSelect = `
	e.*,
	COALESCE(et.emergency_type_name, '') AS emergency_type_name,
	COALESCE(ns.country_name, '') AS country_name,
	COALESCE(ns.iso3, '') AS iso3`

func (r *emergencyRepo) detailQuery(ctx context.Context, tx *gorm.DB) *gorm.DB {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Table("emergency AS e").
		Select(detailSelect).
		Joins("LEFT JOIN emergency_type et ON et.emergency_type_go_id = e.emergency_type_id").
		Joins("LEFT JOIN nationalsociety ns ON ns.ns_go_id = e.emergency_location_id")
}

func (r *emergencyRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Emergency, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var e domain.Emergency
	if err := transaction.WithContext(ctx).Where("id = ?", id).Take(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("emergency %d: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &e, nil
}

func (r *emergencyRepo) GetDetail(ctx context.Context, tx *gorm.DB, id uint) (*domain.EmergencyDetail, error) {
	var rows []*domain.EmergencyDetail
	if err := r.detailQuery(ctx, tx).Where("e.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("emergency %d: %w", id, apperr.ErrNotFound)
	}
	return rows[0], nil
}

func (r *emergencyRepo) ListVisible(ctx context.Context, tx *gorm.DB) ([]*domain.EmergencyDetail, error) {
	var rows []*domain.EmergencyDetail
	if err := r.detailQuery(ctx, tx).
		Where("e.emergency_status <> ?", domain.EmergencyRemoved).
		Order("e.created_at DESC, e.id DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *emergencyRepo) ListSummaries(ctx context.Context, tx *gorm.DB, filter domain.EmergencySummaryFilter) ([]domain.EmergencySummary, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).
		Table("emergency AS e").
		Select(`
			e.emergency_name,
			e.emergency_go_id AS go_emergency_id,
			e.emergency_status AS status,
			et.emergency_type_name AS emergency_type,
			ns.iso3,
			ns.country_name,
			COALESCE(e.slack_channel, '') AS slack_channel,
			COALESCE(e.activation_details, '') AS activation_details,
			COALESCE(e.emergency_glide, '') AS glide,
			COALESCE(ac.assignment_count, 0) AS assignment_count`).
		Joins(`LEFT JOIN (
			SELECT emergency_id, COUNT(id) AS assignment_count
			FROM assignment
			GROUP BY emergency_id
		) ac ON ac.emergency_id = e.id`).
		Joins("LEFT JOIN emergency_type et ON et.emergency_type_go_id = e.emergency_type_id").
		Joins("LEFT JOIN nationalsociety ns ON ns.ns_go_id = e.emergency_location_id")

	if s := strings.TrimSpace(filter.Status); s != "" {
		q = q.Where("e.emergency_status = ?", s)
	}
	if filter.GoEmergencyID != nil {
		q = q.Where("e.emergency_go_id = ?", *filter.GoEmergencyID)
	}
	if iso := strings.TrimSpace(filter.ISO3); iso != "" {
		q = q.Where("ns.iso3 = ?", iso)
	}

	out := []domain.EmergencySummary{}
	if err := q.Order("e.id ASC").Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *emergencyRepo) Create(ctx context.Context, tx *gorm.DB, e *domain.Emergency) (*domain.Emergency, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if e == nil {
		return nil, fmt.Errorf("create emergency: %w", apperr.ErrInvalidArgument)
	}
	if e.EmergencyStatus == "" {
		e.EmergencyStatus = domain.EmergencyActive
	}
	if err := transaction.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

func (r *emergencyRepo) Update(ctx context.Context, tx *gorm.DB, e *domain.Emergency) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Model(&domain.Emergency{}).
		Where("id = ?", e.ID).
		Updates(map[string]any{
			"emergency_name":        e.EmergencyName,
			"emergency_location_id": e.EmergencyLocationID,
			"emergency_type_id":     e.EmergencyTypeID,
			"emergency_glide":       e.EmergencyGlide,
			"emergency_go_id":       e.EmergencyGoID,
			"activation_details":    e.ActivationDetails,
			"slack_channel":         e.SlackChannel,
			"dropbox_url":           e.DropboxURL,
			"trello_url":            e.TrelloURL,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("emergency %d: %w", e.ID, apperr.ErrNotFound)
	}
	return nil
}

func (r *emergencyRepo) SetStatus(ctx context.Context, tx *gorm.DB, id uint, status domain.EmergencyStatus) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if !status.Valid() {
		return fmt.Errorf("emergency status %q: %w", status, apperr.ErrInvalidArgument)
	}
	res := transaction.WithContext(ctx).
		Model(&domain.Emergency{}).
		Where("id = ?", id).
		Update("emergency_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("emergency %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}
