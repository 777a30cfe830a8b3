package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/simsportal/sims-portal-backend/internal/clients/trello"
	"github.com/simsportal/sims-portal-backend/internal/data/aggregates"
	"github.com/simsportal/sims-portal-backend/internal/data/repos"
	"github.com/simsportal/sims-portal-backend/internal/data/repos/testutil"
	"github.com/simsportal/sims-portal-backend/internal/platform/ctxutil"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type testEnv struct {
	db  *gorm.DB
	log *logger.Logger
	tx  aggregates.TxRunner

	emergencies  repos.EmergencyRepo
	references   repos.ReferenceRepo
	reviews      repos.ReviewRepo
	stories      repos.StoryRepo
	logs         repos.LogRepo
	users        repos.UserRepo
	assignments  repos.AssignmentRepo
	badges       repos.BadgeRepo
	availability repos.AvailabilityRepo
	learnings    repos.LearningRepo
	portfolios   repos.PortfolioRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return &testEnv{
		db:           db,
		log:          log,
		tx:           aggregates.NewGormTxRunner(db),
		emergencies:  repos.NewEmergencyRepo(db, log),
		references:   repos.NewReferenceRepo(db, log),
		reviews:      repos.NewReviewRepo(db, log),
		stories:      repos.NewStoryRepo(db, log),
		logs:         repos.NewLogRepo(db, log),
		users:        repos.NewUserRepo(db, log),
		assignments:  repos.NewAssignmentRepo(db, log),
		badges:       repos.NewBadgeRepo(db, log),
		availability: repos.NewAvailabilityRepo(db, log),
		learnings:    repos.NewLearningRepo(db, log),
		portfolios:   repos.NewPortfolioRepo(db, log),
	}
}

func asUser(userID uint, admin bool) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: userID, IsAdmin: admin})
}

type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErr  error
	gets    int
	sets    int
	lastTTL time.Duration
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return false, c.getErr
	}
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *memCache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.sets++
	c.lastTTL = ttl
	c.data[key] = raw
	return nil
}

type fakeCards struct {
	cards []trello.Card
	err   error
	calls int
}

func (f *fakeCards) OpenCards(ctx context.Context, boardURL string) ([]trello.Card, error) {
	f.calls++
	return f.cards, f.err
}

var errBoom = errors.New("boom")

type recordingRequester struct {
	mu    sync.Mutex
	calls []uint
	err   error
}

func (r *recordingRequester) RequestLearnings(ctx context.Context, emergencyID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, emergencyID)
	return r.err
}
