package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simsportal/sims-portal-backend/internal/data/repos/testutil"
	"github.com/simsportal/sims-portal-backend/internal/domain"
)

func TestBadgeService_AssignAll(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	veteran := testutil.SeedUser(t, ctx, env.db, "Vera", "Veteran", 0)
	rookie := testutil.SeedUser(t, ctx, env.db, "Ron", "Rookie", 0)
	dropped := testutil.SeedUser(t, ctx, env.db, "Dee", "Dropped", 0)

	rules := []BadgeRule{
		{Name: "First", MinAssignments: 1},
		{Name: "Third", MinAssignments: 3},
	}
	for i := 0; i < 3; i++ {
		e := testutil.SeedEmergency(t, ctx, env.db, "E", domain.EmergencyActive, 1, 1)
		testutil.SeedAssignment(t, ctx, env.db, veteran.ID, e.ID, domain.RoleRemoteIMSupport, domain.AssignmentActive)
		if i == 0 {
			testutil.SeedAssignment(t, ctx, env.db, rookie.ID, e.ID, domain.RoleInformationAnalyst, domain.AssignmentActive)
			testutil.SeedAssignment(t, ctx, env.db, dropped.ID, e.ID, domain.RoleRemoteIMSupport, domain.AssignmentRemoved)
		}
	}

	svc := NewBadgeService(env.log, env.tx, env.assignments, env.badges, rules)
	granted, err := svc.AssignAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, granted)

	again, err := svc.AssignAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, again, "second run grants nothing new")

	vb, err := env.badges.ListForUser(ctx, nil, veteran.ID)
	require.NoError(t, err)
	assert.Len(t, vb, 2)
	rb, err := env.badges.ListForUser(ctx, nil, rookie.ID)
	require.NoError(t, err)
	require.Len(t, rb, 1)
	assert.Equal(t, "First", rb[0].Name)
	db, err := env.badges.ListForUser(ctx, nil, dropped.ID)
	require.NoError(t, err)
	assert.Empty(t, db)
}

func TestNewBadgeService_DefaultRules(t *testing.T) {
	env := newTestEnv(t)
	svc := NewBadgeService(env.log, env.tx, env.assignments, env.badges, nil).(*badgeService)
	assert.Equal(t, DefaultBadgeRules, svc.rules)
}
