package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/simsportal/sims-portal-backend/internal/data/repos"
	"github.com/simsportal/sims-portal-backend/internal/data/repos/learnings"
	"github.com/simsportal/sims-portal-backend/internal/domain"
	"github.com/simsportal/sims-portal-backend/internal/platform/apperr"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

const portfolioPreviewSize = 3

// DashboardView is the aggregate rendered on an emergency's page. Its
// sub-queries run concurrently, so it is not a point-in-time snapshot.
type DashboardView struct {
	Emergency              *domain.EmergencyDetail        `json:"emergency"`
	Coordinators           []domain.Personnel             `json:"coordinators"`
	DeployedIM             []domain.Personnel             `json:"deployed_im"`
	RemoteSupporters       []domain.Personnel             `json:"remote_supporters"`
	UserIsCoordinator      bool                           `json:"user_is_coordinator"`
	QuickAction            bool                           `json:"quick_action"`
	QuickActionAssignment  *domain.Assignment             `json:"quick_action_assignment"`
	AvailabilityChart      AvailabilityChart              `json:"availability_chart"`
	ViewerAvailability     *domain.Availability           `json:"viewer_availability"`
	CurrentWeekSupporters  []domain.SupporterAvailability `json:"current_week_supporters"`
	NextWeekSupporters     []domain.SupporterAvailability `json:"next_week_supporters"`
	PendingProducts        []*domain.Portfolio            `json:"pending_products"`
	PortfolioSize          int64                          `json:"portfolio_size"`
	Portfolio              []*domain.Portfolio            `json:"portfolio"`
	HasStory               bool                           `json:"has_story"`
	LearningCount          int64                          `json:"learning_count"`
	LearningAverages       LearningAverages               `json:"learning_averages"`
	OrgLearningAverages    LearningAverages               `json:"org_learning_averages"`
	Reviews                []*domain.Review               `json:"reviews"`
	DeploymentHistoryCount int64                          `json:"deployment_history_count"`
	Tracker                TrackerResult                  `json:"tracker"`
	CurrentWeekday         int                            `json:"current_weekday"`
	CurrentTimeframe       string                         `json:"current_timeframe"`
	NextTimeframe          string                         `json:"next_timeframe"`
}

type DashboardService interface {
	Build(ctx context.Context, emergencyID uint, viewerID uint) (*DashboardView, error)
}

type dashboardService struct {
	log              *logger.Logger
	emergencyRepo    repos.EmergencyRepo
	assignmentRepo   repos.AssignmentRepo
	availabilityRepo repos.AvailabilityRepo
	portfolioRepo    repos.PortfolioRepo
	learningRepo     repos.LearningRepo
	reviewRepo       repos.ReviewRepo
	storyRepo        repos.StoryRepo
	learningStats    LearningStatsService
	tracker          TrackerService
	now              func() time.Time
}

func NewDashboardService(
	log *logger.Logger,
	emergencyRepo repos.EmergencyRepo,
	assignmentRepo repos.AssignmentRepo,
	availabilityRepo repos.AvailabilityRepo,
	portfolioRepo repos.PortfolioRepo,
	learningRepo repos.LearningRepo,
	reviewRepo repos.ReviewRepo,
	storyRepo repos.StoryRepo,
	learningStats LearningStatsService,
	tracker TrackerService,
	loc *time.Location,
) DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &dashboardService{
		log:              log.With("service", "DashboardService"),
		emergencyRepo:    emergencyRepo,
		assignmentRepo:   assignmentRepo,
		availabilityRepo: availabilityRepo,
		portfolioRepo:    portfolioRepo,
		learningRepo:     learningRepo,
		reviewRepo:       reviewRepo,
		storyRepo:        storyRepo,
		learningStats:    learningStats,
		tracker:          tracker,
		now:              func() time.Time { return time.Now().In(loc) },
	}
}

func (s *dashboardService) Build(ctx context.Context, emergencyID uint, viewerID uint) (*DashboardView, error) {
	detail, err := s.emergencyRepo.GetDetail(ctx, nil, emergencyID)
	if err != nil {
		return nil, err
	}
	if detail.EmergencyStatus == domain.EmergencyRemoved {
		return nil, fmt.Errorf("emergency %d: %w", emergencyID, apperr.ErrNotFound)
	}

	now := s.now()
	view := &DashboardView{
		Emergency:        detail,
		CurrentWeekday:   WeekdayIndex(now),
		CurrentTimeframe: Timeframe(now),
		NextTimeframe:    NextTimeframe(now),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.assignmentRepo.ListPersonnel(gctx, nil, emergencyID, domain.CoordinatorRoles)
		if err != nil {
			return fmt.Errorf("coordinators: %w", err)
		}
		view.Coordinators = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.assignmentRepo.ListPersonnel(gctx, nil, emergencyID, domain.DeployedIMRoles)
		if err != nil {
			return fmt.Errorf("deployed im: %w", err)
		}
		view.DeployedIM = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.assignmentRepo.ListPersonnel(gctx, nil, emergencyID, domain.RemoteSupportRoles)
		if err != nil {
			return fmt.Errorf("remote supporters: %w", err)
		}
		view.RemoteSupporters = rows
		return nil
	})
	g.Go(func() error {
		ids, err := s.assignmentRepo.ListUserIDsByRole(gctx, nil, emergencyID, domain.CoordinatorRoles)
		if err != nil {
			return fmt.Errorf("coordinator ids: %w", err)
		}
		for _, id := range ids {
			if id == viewerID {
				view.UserIsCoordinator = true
				break
			}
		}
		return nil
	})
	g.Go(func() error {
		a, err := s.assignmentRepo.FindActive(gctx, nil, emergencyID, viewerID, domain.RoleRemoteIMSupport)
		if err != nil {
			return fmt.Errorf("quick action: %w", err)
		}
		view.QuickAction = a != nil
		view.QuickActionAssignment = a
		return nil
	})
	g.Go(func() error {
		a, err := s.availabilityRepo.LatestForUser(gctx, nil, emergencyID, viewerID, view.CurrentTimeframe)
		if err != nil {
			return fmt.Errorf("viewer availability: %w", err)
		}
		view.ViewerAvailability = a
		return nil
	})
	g.Go(func() error {
		rows, err := s.availabilityRepo.LatestByTimeframe(gctx, nil, emergencyID, view.CurrentTimeframe)
		if err != nil {
			return fmt.Errorf("current week roster: %w", err)
		}
		view.CurrentWeekSupporters = normalizeRoster(rows)
		view.AvailabilityChart = ChartFromRecords(view.CurrentWeekSupporters, now)
		return nil
	})
	g.Go(func() error {
		rows, err := s.availabilityRepo.LatestByTimeframe(gctx, nil, emergencyID, view.NextTimeframe)
		if err != nil {
			return fmt.Errorf("next week roster: %w", err)
		}
		view.NextWeekSupporters = normalizeRoster(rows)
		return nil
	})
	g.Go(func() error {
		rows, err := s.portfolioRepo.ListPending(gctx, nil, emergencyID)
		if err != nil {
			return fmt.Errorf("pending products: %w", err)
		}
		view.PendingProducts = rows
		return nil
	})
	g.Go(func() error {
		n, err := s.portfolioRepo.CountApproved(gctx, nil, emergencyID)
		if err != nil {
			return fmt.Errorf("portfolio size: %w", err)
		}
		view.PortfolioSize = n
		return nil
	})
	g.Go(func() error {
		rows, err := s.portfolioRepo.ListApproved(gctx, nil, emergencyID, portfolioPreviewSize)
		if err != nil {
			return fmt.Errorf("portfolio: %w", err)
		}
		view.Portfolio = rows
		return nil
	})
	g.Go(func() error {
		ok, err := s.storyRepo.ExistsForEmergency(gctx, nil, emergencyID)
		if err != nil {
			return fmt.Errorf("story: %w", err)
		}
		view.HasStory = ok
		return nil
	})
	g.Go(func() error {
		n, err := s.learningRepo.CountByEmergency(gctx, nil, emergencyID)
		if err != nil {
			return fmt.Errorf("learning count: %w", err)
		}
		view.LearningCount = n
		return nil
	})
	g.Go(func() error {
		row, err := s.learningRepo.Averages(gctx, nil, learnings.ForEmergency(emergencyID))
		if err != nil {
			return fmt.Errorf("learning averages: %w", err)
		}
		view.LearningAverages = AveragesFromRow(row)
		return nil
	})
	g.Go(func() error {
		avg, err := s.learningStats.OrgAverages(gctx)
		if err != nil {
			return err
		}
		view.OrgLearningAverages = avg
		return nil
	})
	g.Go(func() error {
		rows, err := s.reviewRepo.ListByEmergency(gctx, nil, emergencyID)
		if err != nil {
			return fmt.Errorf("reviews: %w", err)
		}
		view.Reviews = rows
		return nil
	})
	g.Go(func() error {
		n, err := s.assignmentRepo.CountDistinctUsers(gctx, nil, emergencyID, domain.RoleRemoteIMSupport)
		if err != nil {
			return fmt.Errorf("deployment history: %w", err)
		}
		view.DeploymentHistoryCount = n
		return nil
	})
	g.Go(func() error {
		view.Tracker = s.tracker.Fetch(gctx, detail.TrelloURL)
		return nil
	})

	if err := g.Wait(); err != nil {
		s.log.Error("dashboard build failed", "emergency_id", emergencyID, "error", err)
		return nil, err
	}
	return view, nil
}
