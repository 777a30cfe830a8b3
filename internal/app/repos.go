package app

import (
	"gorm.io/gorm"

	"github.com/simsportal/sims-portal-backend/internal/data/repos"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type Repos struct {
	Emergency    repos.EmergencyRepo
	Reference    repos.ReferenceRepo
	Review       repos.ReviewRepo
	Story        repos.StoryRepo
	Log          repos.LogRepo
	User         repos.UserRepo
	Assignment   repos.AssignmentRepo
	Badge        repos.BadgeRepo
	Availability repos.AvailabilityRepo
	Learning     repos.LearningRepo
	Portfolio    repos.PortfolioRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Emergency:    repos.NewEmergencyRepo(db, log),
		Reference:    repos.NewReferenceRepo(db, log),
		Review:       repos.NewReviewRepo(db, log),
		Story:        repos.NewStoryRepo(db, log),
		Log:          repos.NewLogRepo(db, log),
		User:         repos.NewUserRepo(db, log),
		Assignment:   repos.NewAssignmentRepo(db, log),
		Badge:        repos.NewBadgeRepo(db, log),
		Availability: repos.NewAvailabilityRepo(db, log),
		Learning:     repos.NewLearningRepo(db, log),
		Portfolio:    repos.NewPortfolioRepo(db, log),
	}
}
