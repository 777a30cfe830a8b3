package repos

import (
	"gorm.io/gorm"

	"github.com/simsportal/sims-portal-backend/internal/data/repos/availability"
	"github.com/simsportal/sims-portal-backend/internal/data/repos/emergencies"
	"github.com/simsportal/sims-portal-backend/internal/data/repos/learnings"
	"github.com/simsportal/sims-portal-backend/internal/data/repos/personnel"
	"github.com/simsportal/sims-portal-backend/internal/data/repos/portfolios"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type EmergencyRepo = emergencies.EmergencyRepo
type ReferenceRepo = emergencies.ReferenceRepo
type ReviewRepo = emergencies.ReviewRepo
type StoryRepo = emergencies.StoryRepo
type LogRepo = emergencies.LogRepo

type UserRepo = personnel.UserRepo
type AssignmentRepo = personnel.AssignmentRepo
type BadgeRepo = personnel.BadgeRepo

type AvailabilityRepo = availability.AvailabilityRepo

type LearningRepo = learnings.LearningRepo
type LearningScope = learnings.Scope

type PortfolioRepo = portfolios.PortfolioRepo

func NewEmergencyRepo(db *gorm.DB, baseLog *logger.Logger) EmergencyRepo {
	return emergencies.NewEmergencyRepo(db, baseLog)
}

func NewReferenceRepo(db *gorm.DB, baseLog *logger.Logger) ReferenceRepo {
	return emergencies.NewReferenceRepo(db, baseLog)
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	return emergencies.NewReviewRepo(db, baseLog)
}

func NewStoryRepo(db *gorm.DB, baseLog *logger.Logger) StoryRepo {
	return emergencies.NewStoryRepo(db, baseLog)
}

func NewLogRepo(db *gorm.DB, baseLog *logger.Logger) LogRepo {
	return emergencies.NewLogRepo(db, baseLog)
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return personnel.NewUserRepo(db, baseLog)
}

func NewAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) AssignmentRepo {
	return personnel.NewAssignmentRepo(db, baseLog)
}

func NewBadgeRepo(db *gorm.DB, baseLog *logger.Logger) BadgeRepo {
	return personnel.NewBadgeRepo(db, baseLog)
}

func NewAvailabilityRepo(db *gorm.DB, baseLog *logger.Logger) AvailabilityRepo {
	return availability.NewAvailabilityRepo(db, baseLog)
}

func NewLearningRepo(db *gorm.DB, baseLog *logger.Logger) LearningRepo {
	return learnings.NewLearningRepo(db, baseLog)
}

func NewPortfolioRepo(db *gorm.DB, baseLog *logger.Logger) PortfolioRepo {
	return portfolios.NewPortfolioRepo(db, baseLog)
}
