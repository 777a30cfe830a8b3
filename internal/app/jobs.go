package app

import (
	"fmt"
	"time"

	"github.com/simsportal/sims-portal-backend/internal/jobs/runtime"
	"github.com/simsportal/sims-portal-backend/internal/jobs/scheduler"
	"github.com/simsportal/sims-portal-backend/internal/jobs/tasks"
	"github.com/simsportal/sims-portal-backend/internal/observability"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

func wireScheduler(log *logger.Logger, cfg Config, loc *time.Location, services Services, metrics *observability.Metrics) (*scheduler.Scheduler, error) {
	log.Info("Wiring scheduler...")
	reg := runtime.NewRegistry()
	if err := tasks.Register(reg, tasks.Deps{
		SurgeAlerts:   services.SurgeAlerts,
		Badges:        services.Badge,
		LearningStats: services.LearningStats,
	}); err != nil {
		return nil, fmt.Errorf("register jobs: %w", err)
	}
	sched, err := scheduler.New(log, reg, loc, cfg.Scheduler.Jobs)
	if err != nil {
		return nil, err
	}
	if metrics != nil {
		sched.SetObserver(metrics)
	}
	return sched, nil
}
