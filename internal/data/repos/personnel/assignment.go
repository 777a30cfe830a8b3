package personnel

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/simsportal/sims-portal-backend/internal/domain"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type AssignmentRepo interface {
	// ListPersonnel returns active assignments on the emergency whose role is
	// in roles, ordered by first name.
	ListPersonnel(ctx context.Context, tx *gorm.DB, emergencyID uint, roles []domain.Role) ([]domain.Personnel, error)
	// ListUserIDsByRole ignores assignment status.
	ListUserIDsByRole(ctx context.Context, tx *gorm.DB, emergencyID uint, roles []domain.Role) ([]uint, error)
	FindActive(ctx context.Context, tx *gorm.DB, emergencyID, userID uint, role domain.Role) (*domain.Assignment, error)
	// CountDistinctUsers counts users holding an active assignment in role.
	CountDistinctUsers(ctx context.Context, tx *gorm.DB, emergencyID uint, role domain.Role) (int64, error)
	ListTimeline(ctx context.Context, tx *gorm.DB, emergencyID uint, role domain.Role) ([]domain.TimelineEntry, error)
	CountByUser(ctx context.Context, tx *gorm.DB) (map[uint]int64, error)
}

type assignmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) AssignmentRepo {
	repoLog := baseLog.With("repo", "AssignmentRepo")
	return &assignmentRepo{db: db, log: repoLog}
}

func (r *assignmentRepo) ListPersonnel(ctx context.Context, tx *gorm.DB, emergencyID uint, roles []domain.Role) ([]domain.Personnel, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	out := []domain.Personnel{}
	if len(roles) == 0 {
		return out, nil
	}
	err := transaction.WithContext(ctx).
		Table("assignment AS a").
		Select(`
			a.id AS assignment_id,
			u.id AS user_id,
			u.firstname AS first_name,
			u.lastname AS last_name,
			a.role,
			COALESCE(ns.ns_name, '') AS ns_name,
			COALESCE(ns.country_name, '') AS country_name`).
		Joins(`JOIN "user" u ON u.id = a.user_id`).
		Joins("LEFT JOIN nationalsociety ns ON ns.ns_go_id = u.ns_id").
		Where("a.emergency_id = ?", emergencyID).
		Where("a.assignment_status = ?", domain.AssignmentActive).
		Where("a.role IN ?", domain.RoleStrings(roles)).
		Order("u.firstname ASC, a.id ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *assignmentRepo) ListUserIDsByRole(ctx context.Context, tx *gorm.DB, emergencyID uint, roles []domain.Role) ([]uint, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	ids := []uint{}
	if len(roles) == 0 {
		return ids, nil
	}
	if err := transaction.WithContext(ctx).
		Model(&domain.Assignment{}).
		Distinct("user_id").
		Where("emergency_id = ?", emergencyID).
		Where("role IN ?", domain.RoleStrings(roles)).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *assignmentRepo) FindActive(ctx context.Context, tx *gorm.DB, emergencyID, userID uint, role domain.Role) (*domain.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var a domain.Assignment
	err := transaction.WithContext(ctx).
		Where("emergency_id = ? AND user_id = ? AND role = ? AND assignment_status = ?",
			emergencyID, userID, role, domain.AssignmentActive).
		Order("id DESC").
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepo) CountDistinctUsers(ctx context.Context, tx *gorm.DB, emergencyID uint, role domain.Role) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var n int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Assignment{}).
		Where("emergency_id = ? AND role = ? AND assignment_status = ?", emergencyID, role, domain.AssignmentActive).
		Distinct("user_id").
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

type timelineRow struct {
	StartDate *time.Time
	EndDate   *time.Time
	FirstName string
	LastName  string
	Role      domain.Role
}

func (r *assignmentRepo) ListTimeline(ctx context.Context, tx *gorm.DB, emergencyID uint, role domain.Role) ([]domain.TimelineEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []timelineRow
	if err := transaction.WithContext(ctx).
		Table("assignment AS a").
		Select("a.start_date, a.end_date, u.firstname AS first_name, u.lastname AS last_name, a.role").
		Joins(`JOIN "user" u ON u.id = a.user_id`).
		Where("a.emergency_id = ? AND a.role = ? AND a.assignment_status = ?", emergencyID, role, domain.AssignmentActive).
		Where("a.start_date IS NOT NULL AND a.end_date IS NOT NULL").
		Order("a.start_date ASC, a.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.TimelineEntry, 0, len(rows))
	for _, row := range rows {
		u := domain.User{FirstName: row.FirstName, LastName: row.LastName}
		out = append(out, domain.TimelineEntry{
			StartDate: *row.StartDate,
			EndDate:   *row.EndDate,
			FullName:  u.FullName(),
			Role:      row.Role,
		})
	}
	return out, nil
}

func (r *assignmentRepo) CountByUser(ctx context.Context, tx *gorm.DB) (map[uint]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []struct {
		UserID uint
		N      int64
	}
	if err := transaction.WithContext(ctx).
		Model(&domain.Assignment{}).
		Select("user_id, COUNT(*) AS n").
		Where("assignment_status <> ?", domain.AssignmentRemoved).
		Group("user_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]int64, len(rows))
	for _, row := range rows {
		out[row.UserID] = row.N
	}
	return out, nil
}
