package services

import (
	"context"
	"strings"

	"github.com/simsportal/sims-portal-backend/internal/clients/trello"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type TrackerStatus string

const (
	TrackerAvailable     TrackerStatus = "available"
	TrackerUnavailable   TrackerStatus = "unavailable"
	TrackerNotConfigured TrackerStatus = "not_configured"
)

type TrackerResult struct {
	Status TrackerStatus `json:"status"`
	Cards  []trello.Card `json:"cards"`
	Count  int           `json:"count"`
}

// CardSource is the subset of the Trello client the tracker needs.
type CardSource interface {
	OpenCards(ctx context.Context, boardURL string) ([]trello.Card, error)
}

type TrackerService interface {
	// Fetch never fails; every error degrades to an empty unavailable result.
	Fetch(ctx context.Context, boardURL string) TrackerResult
}

type trackerService struct {
	log    *logger.Logger
	client CardSource
}

func NewTrackerService(log *logger.Logger, client CardSource) TrackerService {
	return &trackerService{log: log.With("service", "TrackerService"), client: client}
}

func (s *trackerService) Fetch(ctx context.Context, boardURL string) TrackerResult {
	if strings.TrimSpace(boardURL) == "" || s.client == nil {
		return TrackerResult{Status: TrackerNotConfigured, Cards: []trello.Card{}}
	}
	cards, err := s.client.OpenCards(ctx, boardURL)
	if err != nil {
		s.log.Warn("trello cards unavailable", "error", err)
		return TrackerResult{Status: TrackerUnavailable, Cards: []trello.Card{}}
	}
	if cards == nil {
		cards = []trello.Card{}
	}
	return TrackerResult{Status: TrackerAvailable, Cards: cards, Count: len(cards)}
}
