package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/simsportal/sims-portal-backend/internal/data/aggregates"
	"github.com/simsportal/sims-portal-backend/internal/data/repos"
	"github.com/simsportal/sims-portal-backend/internal/platform/dbctx"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type BadgeRule struct {
	Name           string
	Description    string
	MinAssignments int64
}

// DefaultBadgeRules are the assignment-count badges.
var DefaultBadgeRules = []BadgeRule{
	{Name: "Maiden Voyage", Description: "Completed a first SIMS deployment.", MinAssignments: 1},
	{Name: "Old Salt", Description: "Supported ten or more SIMS deployments.", MinAssignments: 10},
}

type BadgeService interface {
	// AssignAll grants every earned badge not yet held and returns how many
	// were newly granted. Safe to run repeatedly.
	AssignAll(ctx context.Context) (int, error)
}

type badgeService struct {
	log            *logger.Logger
	tx             aggregates.TxRunner
	assignmentRepo repos.AssignmentRepo
	badgeRepo      repos.BadgeRepo
	rules          []BadgeRule
}

func NewBadgeService(log *logger.Logger, tx aggregates.TxRunner, assignmentRepo repos.AssignmentRepo, badgeRepo repos.BadgeRepo, rules []BadgeRule) BadgeService {
	if len(rules) == 0 {
		rules = DefaultBadgeRules
	}
	return &badgeService{
		log:            log.With("service", "BadgeService"),
		tx:             tx,
		assignmentRepo: assignmentRepo,
		badgeRepo:      badgeRepo,
		rules:          rules,
	}
}

func (s *badgeService) AssignAll(ctx context.Context) (int, error) {
	granted := 0
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		counts, err := s.assignmentRepo.CountByUser(dbc.Ctx, dbc.Tx)
		if err != nil {
			return fmt.Errorf("count assignments: %w", err)
		}
		userIDs := make([]uint, 0, len(counts))
		for id := range counts {
			userIDs = append(userIDs, id)
		}
		sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

		for _, rule := range s.rules {
			badge, err := s.badgeRepo.EnsureBadge(dbc.Ctx, dbc.Tx, rule.Name, rule.Description)
			if err != nil {
				return fmt.Errorf("ensure badge %q: %w", rule.Name, err)
			}
			for _, userID := range userIDs {
				if counts[userID] < rule.MinAssignments {
					continue
				}
				created, err := s.badgeRepo.AssignIfMissing(dbc.Ctx, dbc.Tx, userID, badge.ID)
				if err != nil {
					return aggregates.MapError("badge.assign", err)
				}
				if created {
					granted++
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("badges assigned", "granted", granted)
	return granted, nil
}
