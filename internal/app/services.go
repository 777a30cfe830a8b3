package app

import (
	"time"

	"gorm.io/gorm"

	"github.com/simsportal/sims-portal-backend/internal/data/aggregates"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
	"github.com/simsportal/sims-portal-backend/internal/services"
)

type Services struct {
	Auth          services.AuthService
	Emergency     services.EmergencyService
	Dashboard     services.DashboardService
	Tracker       services.TrackerService
	LearningStats services.LearningStatsService
	Badge         services.BadgeService
	SurgeAlerts   services.SurgeAlertRefresher
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients, loc *time.Location) Services {
	log.Info("Wiring services...")
	txRunner := aggregates.NewGormTxRunner(db)

	// Typed nil pointers must not leak into the interfaces.
	var cards services.CardSource
	if clients.Trello != nil {
		cards = clients.Trello
	}
	var cache services.AggregateCache
	if clients.Cache != nil {
		cache = clients.Cache
	}

	tracker := services.NewTrackerService(log, cards)
	learningStats := services.NewLearningStatsService(log, reposet.Learning, cache, cfg.Redis.TTL)

	return Services{
		Auth: services.NewAuthService(log, reposet.User, cfg.Auth.JWTSecret, cfg.Auth.Issuer),
		Emergency: services.NewEmergencyService(
			log,
			txRunner,
			reposet.Emergency,
			reposet.Reference,
			reposet.User,
			reposet.Assignment,
			reposet.Log,
			services.NewLoggingLearningRequester(log),
		),
		Dashboard: services.NewDashboardService(
			log,
			reposet.Emergency,
			reposet.Assignment,
			reposet.Availability,
			reposet.Portfolio,
			reposet.Learning,
			reposet.Review,
			reposet.Story,
			learningStats,
			tracker,
			loc,
		),
		Tracker:       tracker,
		LearningStats: learningStats,
		Badge:         services.NewBadgeService(log, txRunner, reposet.Assignment, reposet.Badge, nil),
		SurgeAlerts:   services.NewLoggingSurgeAlertRefresher(log),
	}
}
