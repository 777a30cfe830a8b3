package personnel

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/simsportal/sims-portal-backend/internal/domain"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type BadgeRepo interface {
	// EnsureBadge returns the badge with the given name, creating it if needed.
	EnsureBadge(ctx context.Context, tx *gorm.DB, name, description string) (*domain.Badge, error)
	// AssignIfMissing reports whether a new row was written.
	AssignIfMissing(ctx context.Context, tx *gorm.DB, userID, badgeID uint) (bool, error)
	ListForUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*domain.Badge, error)
}

type badgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBadgeRepo(db *gorm.DB, baseLog *logger.Logger) BadgeRepo {
	return &badgeRepo{db: db, log: baseLog.With("repo", "BadgeRepo")}
}

func (r *badgeRepo) EnsureBadge(ctx context.Context, tx *gorm.DB, name, description string) (*domain.Badge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var b domain.Badge
	err := transaction.WithContext(ctx).Where("name = ?", name).Take(&b).Error
	if err == nil {
		return &b, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	b = domain.Badge{Name: name, Description: description}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&b).Error; err != nil {
		return nil, err
	}
	if b.ID == 0 {
		// lost a race with another writer
		if err := transaction.WithContext(ctx).Where("name = ?", name).Take(&b).Error; err != nil {
			return nil, err
		}
	}
	return &b, nil
}

func (r *badgeRepo) AssignIfMissing(ctx context.Context, tx *gorm.DB, userID, badgeID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.UserBadge{UserID: userID, BadgeID: badgeID, AssignedAt: time.Now().UTC()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *badgeRepo) ListForUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*domain.Badge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.Badge
	if err := transaction.WithContext(ctx).
		Table("badge AS b").
		Select("b.*").
		Joins("JOIN user_badge ub ON ub.badge_id = b.id").
		Where("ub.user_id = ?", userID).
		Order("b.id ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
