// Package tasks holds the portal's scheduled jobs.
package tasks

import (
	"fmt"

	"github.com/simsportal/sims-portal-backend/internal/jobs/runtime"
	"github.com/simsportal/sims-portal-backend/internal/services"
)

const (
	SurgeAlertRefresh    = "surge_alert_refresh"
	AssignBadges         = "assign_badges"
	RefreshLearningStats = "refresh_learning_stats"
)

// DefaultSchedule is the recurrence of each job, in the scheduler timezone.
var DefaultSchedule = map[string]string{
	SurgeAlertRefresh:    "FREQ=DAILY;BYHOUR=1,4,7,10,13,16;BYMINUTE=0;BYSECOND=0",
	AssignBadges:         "FREQ=DAILY;BYHOUR=17;BYMINUTE=0;BYSECOND=0",
	RefreshLearningStats: "FREQ=HOURLY;BYMINUTE=30;BYSECOND=0",
}

type Deps struct {
	SurgeAlerts   services.SurgeAlertRefresher
	Badges        services.BadgeService
	LearningStats services.LearningStatsService
}

// Register adds every job whose dependency is present.
func Register(reg *runtime.Registry, deps Deps) error {
	var handlers []runtime.Handler
	if deps.SurgeAlerts != nil {
		handlers = append(handlers, &surgeAlertRefresh{refresher: deps.SurgeAlerts})
	}
	if deps.Badges != nil {
		handlers = append(handlers, &assignBadges{badges: deps.Badges})
	}
	if deps.LearningStats != nil {
		handlers = append(handlers, &refreshLearningStats{stats: deps.LearningStats})
	}
	for _, h := range handlers {
		if err := reg.Register(h); err != nil {
			return fmt.Errorf("register %s: %w", h.Type(), err)
		}
	}
	return nil
}

type surgeAlertRefresh struct {
	refresher services.SurgeAlertRefresher
}

func (h *surgeAlertRefresh) Type() string { return SurgeAlertRefresh }

func (h *surgeAlertRefresh) Run(jc *runtime.Context) error {
	return h.refresher.RefreshSurgeAlerts(jc.Ctx)
}

type assignBadges struct {
	badges services.BadgeService
}

func (h *assignBadges) Type() string { return AssignBadges }

func (h *assignBadges) Run(jc *runtime.Context) error {
	granted, err := h.badges.AssignAll(jc.Ctx)
	if err != nil {
		return err
	}
	jc.Log.Info("badge assignment complete", "granted", granted)
	return nil
}

type refreshLearningStats struct {
	stats services.LearningStatsService
}

func (h *refreshLearningStats) Type() string { return RefreshLearningStats }

func (h *refreshLearningStats) Run(jc *runtime.Context) error {
	return h.stats.Refresh(jc.Ctx)
}
