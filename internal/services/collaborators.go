package services

import (
	"context"

	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

// LearningRequester asks remote supporters of a closed emergency to file
// their learning surveys.
type LearningRequester interface {
	RequestLearnings(ctx context.Context, emergencyID uint) error
}

// SurgeAlertRefresher pulls new surge alerts from the GO platform.
type SurgeAlertRefresher interface {
	RefreshSurgeAlerts(ctx context.Context) error
}

type loggingLearningRequester struct {
	log *logger.Logger
}

func NewLoggingLearningRequester(log *logger.Logger) LearningRequester {
	return &loggingLearningRequester{log: log.With("collaborator", "LearningRequester")}
}

func (r *loggingLearningRequester) RequestLearnings(ctx context.Context, emergencyID uint) error {
	r.log.Info("learning surveys requested", "emergency_id", emergencyID)
	return nil
}

type loggingSurgeAlertRefresher struct {
	log *logger.Logger
}

func NewLoggingSurgeAlertRefresher(log *logger.Logger) SurgeAlertRefresher {
	return &loggingSurgeAlertRefresher{log: log.With("collaborator", "SurgeAlertRefresher")}
}

func (r *loggingSurgeAlertRefresher) RefreshSurgeAlerts(ctx context.Context) error {
	r.log.Info("surge alert refresh requested")
	return nil
}
