package availability

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/simsportal/sims-portal-backend/internal/domain"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type AvailabilityRepo interface {
	// LatestForUser returns nil when the user has no record for the week.
	LatestForUser(ctx context.Context, tx *gorm.DB, emergencyID, userID uint, timeframe string) (*domain.Availability, error)
	// LatestByTimeframe resolves each user to their newest record for the week.
	// Days is left empty; normalization is the caller's concern.
	LatestByTimeframe(ctx context.Context, tx *gorm.DB, emergencyID uint, timeframe string) ([]domain.SupporterAvailability, error)
	Create(ctx context.Context, tx *gorm.DB, a *domain.Availability) error
}

type availabilityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAvailabilityRepo(db *gorm.DB, baseLog *logger.Logger) AvailabilityRepo {
	repoLog := baseLog.With("repo", "AvailabilityRepo")
	return &availabilityRepo{db: db, log: repoLog}
}

func (r *availabilityRepo) LatestForUser(ctx context.Context, tx *gorm.DB, emergencyID, userID uint, timeframe string) (*domain.Availability, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var a domain.Availability
	err := transaction.WithContext(ctx).
		Where("emergency_id = ? AND user_id = ? AND timeframe = ?", emergencyID, userID, timeframe).
		Order("created_at DESC, id DESC").
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

type supporterRow struct {
	AvailabilityID uint
	UserID         uint
	FirstName      string
	LastName       string
	Timeframe      string
	RawDates       string
	CreatedAt      time.Time
}

func (r *availabilityRepo) LatestByTimeframe(ctx context.Context, tx *gorm.DB, emergencyID uint, timeframe string) ([]domain.SupporterAvailability, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []supporterRow
	if err := transaction.WithContext(ctx).
		Table("availability AS av").
		Select(`
			av.id AS availability_id,
			av.user_id,
			u.firstname AS first_name,
			u.lastname AS last_name,
			av.timeframe,
			COALESCE(av.dates, '') AS raw_dates,
			av.created_at`).
		Joins(`JOIN "user" u ON u.id = av.user_id`).
		Where("av.emergency_id = ? AND av.timeframe = ?", emergencyID, timeframe).
		Where(`av.created_at = (
			SELECT MAX(a2.created_at) FROM availability a2
			WHERE a2.emergency_id = av.emergency_id
			  AND a2.user_id = av.user_id
			  AND a2.timeframe = av.timeframe)`).
		Order("u.firstname ASC, av.user_id ASC, av.id DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	// Identical created_at values can survive the subquery; keep the highest id.
	out := make([]domain.SupporterAvailability, 0, len(rows))
	seen := make(map[uint]struct{}, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.UserID]; ok {
			continue
		}
		seen[row.UserID] = struct{}{}
		out = append(out, domain.SupporterAvailability{
			UserID:         row.UserID,
			FirstName:      row.FirstName,
			LastName:       row.LastName,
			AvailabilityID: row.AvailabilityID,
			Timeframe:      row.Timeframe,
			RawDates:       row.RawDates,
			Days:           []string{},
			CreatedAt:      row.CreatedAt,
		})
	}
	return out, nil
}

func (r *availabilityRepo) Create(ctx context.Context, tx *gorm.DB, a *domain.Availability) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(a).Error
}
