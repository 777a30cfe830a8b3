package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/simsportal/sims-portal-backend/internal/data/repos"
	"github.com/simsportal/sims-portal-backend/internal/data/repos/learnings"
	"github.com/simsportal/sims-portal-backend/internal/domain"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

const orgLearningAveragesKey = "learning:averages:org"

// LearningAverageLabels are the chart labels for LearningAverages.Values.
var LearningAverageLabels = [8]string{
	"Overall",
	"Support",
	"Internal Resources",
	"External Resources",
	"Task Clarity",
	"Field Communication",
	"Deadlines",
	"Coordination Tools",
}

// LearningAverages are survey means rounded to two decimals. A field with
// no data is 0 without affecting the others.
type LearningAverages struct {
	Overall            float64 `json:"overall"`
	Support            float64 `json:"support"`
	InternalResources  float64 `json:"internal_resources"`
	ExternalResources  float64 `json:"external_resources"`
	TaskClarity        float64 `json:"task_clarity"`
	FieldCommunication float64 `json:"field_communication"`
	Deadlines          float64 `json:"deadlines"`
	CoordinationTools  float64 `json:"coordination_tools"`
	Samples            int64   `json:"samples"`
}

func (a LearningAverages) Values() [8]float64 {
	return [8]float64{
		a.Overall,
		a.Support,
		a.InternalResources,
		a.ExternalResources,
		a.TaskClarity,
		a.FieldCommunication,
		a.Deadlines,
		a.CoordinationTools,
	}
}

func AveragesFromRow(row domain.LearningAverageRow) LearningAverages {
	return LearningAverages{
		Overall:            round2(row.Overall),
		Support:            round2(row.Support),
		InternalResources:  round2(row.InternalResources),
		ExternalResources:  round2(row.ExternalResources),
		TaskClarity:        round2(row.TaskClarity),
		FieldCommunication: round2(row.FieldCommunication),
		Deadlines:          round2(row.Deadlines),
		CoordinationTools:  round2(row.CoordinationTools),
		Samples:            row.Samples,
	}
}

func round2(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0
	}
	return math.Round(*v*100) / 100
}

// AggregateCache stores precomputed dashboard aggregates. Implementations
// report a miss as (false, nil).
type AggregateCache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
}

type LearningStatsService interface {
	// OrgAverages reads through the cache; cache failures fall back to the database.
	OrgAverages(ctx context.Context) (LearningAverages, error)
	// Refresh recomputes the organization-wide averages into the cache.
	Refresh(ctx context.Context) error
}

type learningStatsService struct {
	log          *logger.Logger
	learningRepo repos.LearningRepo
	cache        AggregateCache
	ttl          time.Duration
}

func NewLearningStatsService(log *logger.Logger, learningRepo repos.LearningRepo, cache AggregateCache, ttl time.Duration) LearningStatsService {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &learningStatsService{
		log:          log.With("service", "LearningStatsService"),
		learningRepo: learningRepo,
		cache:        cache,
		ttl:          ttl,
	}
}

func (s *learningStatsService) compute(ctx context.Context) (LearningAverages, error) {
	row, err := s.learningRepo.Averages(ctx, nil, learnings.OrgWide())
	if err != nil {
		return LearningAverages{}, fmt.Errorf("org learning averages: %w", err)
	}
	return AveragesFromRow(row), nil
}

func (s *learningStatsService) OrgAverages(ctx context.Context) (LearningAverages, error) {
	if s.cache != nil {
		var cached LearningAverages
		hit, err := s.cache.GetJSON(ctx, orgLearningAveragesKey, &cached)
		switch {
		case err != nil:
			s.log.Warn("learning averages cache read failed", "error", err)
		case hit:
			return cached, nil
		}
	}

	avg, err := s.compute(ctx)
	if err != nil {
		return LearningAverages{}, err
	}
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, orgLearningAveragesKey, avg, s.ttl); err != nil {
			s.log.Warn("learning averages cache write failed", "error", err)
		}
	}
	return avg, nil
}

func (s *learningStatsService) Refresh(ctx context.Context) error {
	avg, err := s.compute(ctx)
	if err != nil {
		return err
	}
	if s.cache == nil {
		s.log.Debug("aggregate cache disabled; skipping learning averages refresh")
		return nil
	}
	if err := s.cache.SetJSON(ctx, orgLearningAveragesKey, avg, s.ttl); err != nil {
		return fmt.Errorf("store learning averages: %w", err)
	}
	s.log.Info("learning averages refreshed", "samples", avg.Samples)
	return nil
}
