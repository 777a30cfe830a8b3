package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"github.com/simsportal/sims-portal-backend/internal/data/aggregates"
	"github.com/simsportal/sims-portal-backend/internal/data/repos"
	"github.com/simsportal/sims-portal-backend/internal/domain"
	"github.com/simsportal/sims-portal-backend/internal/platform/apperr"
	"github.com/simsportal/sims-portal-backend/internal/platform/ctxutil"
	"github.com/simsportal/sims-portal-backend/internal/platform/dbctx"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

// EmergencyInput is the editable part of an emergency record.
type EmergencyInput struct {
	EmergencyName       string `json:"emergency_name" validate:"required,max=255"`
	EmergencyLocationID int    `json:"emergency_location_id" validate:"required,gt=0"`
	EmergencyTypeID     int    `json:"emergency_type_id" validate:"required,gt=0"`
	EmergencyGlide      string `json:"emergency_glide" validate:"max=64"`
	EmergencyGoID       *int   `json:"emergency_go_id" validate:"omitempty,gt=0"`
	ActivationDetails   string `json:"activation_details" validate:"max=10000"`
	SlackChannel        string `json:"slack_channel" validate:"max=64"`
	DropboxURL          string `json:"dropbox_url" validate:"omitempty,url,max=512"`
	TrelloURL           string `json:"trello_url" validate:"omitempty,url,max=512"`
}

// ForbiddenError is returned to non-admins attempting an admin-only
// mutation; it carries the admins they can ask instead.
type ForbiddenError struct {
	Admins []domain.AdminContact
}

func (e *ForbiddenError) Error() string { return "admin privileges required" }

func (e *ForbiddenError) Unwrap() error { return apperr.ErrForbidden }

// GanttView is the coordinator timeline of an emergency.
type GanttView struct {
	Emergency *domain.Emergency      `json:"emergency"`
	Entries   []domain.TimelineEntry `json:"entries"`
	MinDate   string                 `json:"min_date"`
}

type EmergencyService interface {
	ListAll(ctx context.Context) ([]*domain.EmergencyDetail, error)
	Summaries(ctx context.Context, filter domain.EmergencySummaryFilter) ([]domain.EmergencySummary, error)
	Create(ctx context.Context, in EmergencyInput) (*domain.Emergency, error)
	Update(ctx context.Context, id uint, in EmergencyInput) (*domain.Emergency, error)
	Closeout(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	Timeline(ctx context.Context, id uint) (*GanttView, error)
}

type emergencyService struct {
	log               *logger.Logger
	tx                aggregates.TxRunner
	emergencyRepo     repos.EmergencyRepo
	referenceRepo     repos.ReferenceRepo
	userRepo          repos.UserRepo
	assignmentRepo    repos.AssignmentRepo
	logRepo           repos.LogRepo
	learningRequester LearningRequester
	validate          *validator.Validate
	strict            *bluemonday.Policy
	rich              *bluemonday.Policy
}

func NewEmergencyService(
	log *logger.Logger,
	tx aggregates.TxRunner,
	emergencyRepo repos.EmergencyRepo,
	referenceRepo repos.ReferenceRepo,
	userRepo repos.UserRepo,
	assignmentRepo repos.AssignmentRepo,
	logRepo repos.LogRepo,
	learningRequester LearningRequester,
) EmergencyService {
	return &emergencyService{
		log:               log.With("service", "EmergencyService"),
		tx:                tx,
		emergencyRepo:     emergencyRepo,
		referenceRepo:     referenceRepo,
		userRepo:          userRepo,
		assignmentRepo:    assignmentRepo,
		logRepo:           logRepo,
		learningRequester: learningRequester,
		validate:          validator.New(validator.WithRequiredStructEnabled()),
		strict:            bluemonday.StrictPolicy(),
		rich:              bluemonday.UGCPolicy(),
	}
}

func (s *emergencyService) ListAll(ctx context.Context) ([]*domain.EmergencyDetail, error) {
	return s.emergencyRepo.ListVisible(ctx, nil)
}

func (s *emergencyService) Summaries(ctx context.Context, filter domain.EmergencySummaryFilter) ([]domain.EmergencySummary, error) {
	return s.emergencyRepo.ListSummaries(ctx, nil, filter)
}

func (s *emergencyService) clean(in EmergencyInput) (EmergencyInput, error) {
	in.EmergencyName = strings.TrimSpace(s.strict.Sanitize(in.EmergencyName))
	in.EmergencyGlide = strings.TrimSpace(s.strict.Sanitize(in.EmergencyGlide))
	in.SlackChannel = strings.TrimSpace(s.strict.Sanitize(in.SlackChannel))
	in.ActivationDetails = strings.TrimSpace(s.rich.Sanitize(in.ActivationDetails))
	in.DropboxURL = strings.TrimSpace(in.DropboxURL)
	in.TrelloURL = strings.TrimSpace(in.TrelloURL)

	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
			}
			return in, fmt.Errorf("%w: invalid fields %s", apperr.ErrInvalidArgument, strings.Join(fields, ", "))
		}
		return in, fmt.Errorf("%w: %v", apperr.ErrInvalidArgument, err)
	}
	return in, nil
}

func (s *emergencyService) checkReferences(dbc dbctx.Context, in EmergencyInput) error {
	ok, err := s.referenceRepo.NationalSocietyExists(dbc.Ctx, dbc.Tx, in.EmergencyLocationID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: unknown national society %d", apperr.ErrInvalidArgument, in.EmergencyLocationID)
	}
	ok, err = s.referenceRepo.EmergencyTypeExists(dbc.Ctx, dbc.Tx, in.EmergencyTypeID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: unknown emergency type %d", apperr.ErrInvalidArgument, in.EmergencyTypeID)
	}
	return nil
}

func actorID(ctx context.Context) (uint, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == 0 {
		return 0, apperr.ErrUnauthorized
	}
	return rd.UserID, nil
}

func applyInput(e *domain.Emergency, in EmergencyInput) {
	e.EmergencyName = in.EmergencyName
	e.EmergencyLocationID = in.EmergencyLocationID
	e.EmergencyTypeID = in.EmergencyTypeID
	e.EmergencyGlide = in.EmergencyGlide
	e.EmergencyGoID = in.EmergencyGoID
	e.ActivationDetails = in.ActivationDetails
	e.SlackChannel = in.SlackChannel
	e.DropboxURL = in.DropboxURL
	e.TrelloURL = in.TrelloURL
}

func (s *emergencyService) Create(ctx context.Context, in EmergencyInput) (*domain.Emergency, error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	in, err = s.clean(in)
	if err != nil {
		return nil, err
	}

	var created *domain.Emergency
	err = s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		if err := s.checkReferences(dbc, in); err != nil {
			return err
		}
		e := &domain.Emergency{EmergencyStatus: domain.EmergencyActive}
		applyInput(e, in)
		out, err := s.emergencyRepo.Create(dbc.Ctx, dbc.Tx, e)
		if err != nil {
			return aggregates.MapError("emergency.create", err)
		}
		created = out
		return s.logRepo.Create(dbc.Ctx, dbc.Tx, &domain.Log{
			UserID:  userID,
			Level:   domain.LogInfo,
			Message: fmt.Sprintf("User %d created emergency record: %s.", userID, out.EmergencyName),
		})
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("emergency created", "emergency_id", created.ID, "user_id", userID)
	return created, nil
}

func (s *emergencyService) Update(ctx context.Context, id uint, in EmergencyInput) (*domain.Emergency, error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	in, err = s.clean(in)
	if err != nil {
		return nil, err
	}

	var updated *domain.Emergency
	err = s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		e, err := s.emergencyRepo.GetByID(dbc.Ctx, dbc.Tx, id)
		if err != nil {
			return err
		}
		if e.EmergencyStatus == domain.EmergencyRemoved {
			return fmt.Errorf("emergency %d: %w", id, apperr.ErrNotFound)
		}
		if err := s.checkReferences(dbc, in); err != nil {
			return err
		}
		applyInput(e, in)
		if err := s.emergencyRepo.Update(dbc.Ctx, dbc.Tx, e); err != nil {
			return aggregates.MapError("emergency.update", err)
		}
		updated = e
		return s.logRepo.Create(dbc.Ctx, dbc.Tx, &domain.Log{
			UserID:  userID,
			Level:   domain.LogInfo,
			Message: fmt.Sprintf("User %d edited emergency %s.", userID, e.EmergencyName),
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// requireAdmin returns a *ForbiddenError listing the admins when the caller
// is not one.
func (s *emergencyService) requireAdmin(ctx context.Context) (uint, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == 0 {
		return 0, apperr.ErrUnauthorized
	}
	if rd.IsAdmin {
		return rd.UserID, nil
	}
	admins, err := s.userRepo.ListAdmins(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("list admins: %w", err)
	}
	contacts := make([]domain.AdminContact, 0, len(admins))
	for _, a := range admins {
		contacts = append(contacts, domain.AdminContact{ID: a.ID, FullName: a.FullName()})
	}
	return 0, &ForbiddenError{Admins: contacts}
}

func (s *emergencyService) Closeout(ctx context.Context, id uint) error {
	userID, err := s.requireAdmin(ctx)
	if err != nil {
		return err
	}
	err = s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		e, err := s.emergencyRepo.GetByID(dbc.Ctx, dbc.Tx, id)
		if err != nil {
			return err
		}
		if e.EmergencyStatus == domain.EmergencyRemoved {
			return fmt.Errorf("emergency %d: %w", id, apperr.ErrNotFound)
		}
		if err := s.emergencyRepo.SetStatus(dbc.Ctx, dbc.Tx, id, domain.EmergencyClosed); err != nil {
			return err
		}
		return s.logRepo.Create(dbc.Ctx, dbc.Tx, &domain.Log{
			UserID:  userID,
			Level:   domain.LogInfo,
			Message: fmt.Sprintf("User %d closed out emergency %s.", userID, e.EmergencyName),
		})
	})
	if err != nil {
		return err
	}
	s.log.Info("emergency closed out", "emergency_id", id)

	if s.learningRequester != nil {
		if err := s.learningRequester.RequestLearnings(ctx, id); err != nil {
			s.log.Warn("requesting learnings failed", "emergency_id", id, "error", err)
		}
	}
	return nil
}

func (s *emergencyService) Delete(ctx context.Context, id uint) error {
	userID, err := s.requireAdmin(ctx)
	if err != nil {
		return err
	}
	return s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		e, err := s.emergencyRepo.GetByID(dbc.Ctx, dbc.Tx, id)
		if err != nil {
			return err
		}
		if err := s.emergencyRepo.SetStatus(dbc.Ctx, dbc.Tx, id, domain.EmergencyRemoved); err != nil {
			return err
		}
		return s.logRepo.Create(dbc.Ctx, dbc.Tx, &domain.Log{
			UserID:  userID,
			Level:   domain.LogWarning,
			Message: fmt.Sprintf("User %d deleted emergency %s.", userID, e.EmergencyName),
		})
	})
}

func (s *emergencyService) Timeline(ctx context.Context, id uint) (*GanttView, error) {
	e, err := s.emergencyRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if e.EmergencyStatus == domain.EmergencyRemoved {
		return nil, fmt.Errorf("emergency %d: %w", id, apperr.ErrNotFound)
	}
	entries, err := s.assignmentRepo.ListTimeline(ctx, nil, id, domain.RoleSIMSRemoteCoordinator)
	if err != nil {
		return nil, fmt.Errorf("timeline: %w", err)
	}
	view := &GanttView{Emergency: e, Entries: entries, MinDate: minTimelineDate}
	for i, entry := range entries {
		d := entry.StartDate.Format("2006-01-02")
		if i == 0 || d < view.MinDate {
			view.MinDate = d
		}
	}
	return view, nil
}
