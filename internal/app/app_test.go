package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simsportal/sims-portal-backend/internal/data/repos/testutil"
	"github.com/simsportal/sims-portal-backend/internal/domain"
	"github.com/simsportal/sims-portal-backend/internal/jobs/tasks"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := defaultConfig()
	cfg.Auth.JWTSecret = "0123456789abcdef0123"
	cfg.Log.Mode = "test"
	cfg.Scheduler.Enabled = false
	require.NoError(t, cfg.Validate())

	a, err := NewWithDB(testutil.Logger(t), cfg, testutil.DB(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func serve(a *App, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func TestNewWithDB_Health(t *testing.T) {
	a := newTestApp(t)

	w := serve(a, http.MethodGet, "/healthcheck", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	w = serve(a, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewWithDB_NilDB(t *testing.T) {
	_, err := NewWithDB(testutil.Logger(t), defaultConfig(), nil)
	require.Error(t, err)
}

func TestNewWithDB_Dashboard(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	testutil.SeedNationalSociety(t, ctx, a.DB, 123, "Kenya", "KEN")
	testutil.SeedEmergencyType(t, ctx, a.DB, 12, "Flood")
	em := testutil.SeedEmergency(t, ctx, a.DB, "Kenya Floods", domain.EmergencyActive, 123, 12)
	user := testutil.SeedUser(t, ctx, a.DB, "Amina", "Otieno", 123)

	w := serve(a, http.MethodGet, fmt.Sprintf("/emergency/%d", em.ID), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := a.Services.Auth.IssueToken(user.ID, time.Hour)
	require.NoError(t, err)

	w = serve(a, http.MethodGet, fmt.Sprintf("/emergency/%d", em.ID), token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Emergency struct {
			EmergencyName string `json:"emergency_name"`
		} `json:"emergency"`
		Tracker struct {
			Status string `json:"status"`
		} `json:"tracker"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Kenya Floods", body.Emergency.EmergencyName)
	assert.Equal(t, "not_configured", body.Tracker.Status)

	w = serve(a, http.MethodGet, "/emergency/999999", token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(a, http.MethodGet, "/api/emergencies", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRunJob(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	testutil.SeedNationalSociety(t, ctx, a.DB, 123, "Kenya", "KEN")
	testutil.SeedEmergencyType(t, ctx, a.DB, 12, "Flood")
	em := testutil.SeedEmergency(t, ctx, a.DB, "Kenya Floods", domain.EmergencyActive, 123, 12)
	user := testutil.SeedUser(t, ctx, a.DB, "Amina", "Otieno", 123)
	testutil.SeedAssignment(t, ctx, a.DB, user.ID, em.ID, domain.RoleInformationAnalyst, domain.AssignmentActive)

	assert.ElementsMatch(t, []string{tasks.AssignBadges, tasks.RefreshLearningStats, tasks.SurgeAlertRefresh}, a.Scheduler.Jobs())

	require.NoError(t, a.RunJob(ctx, tasks.AssignBadges))
	require.NoError(t, a.RunJob(ctx, tasks.RefreshLearningStats))
	require.NoError(t, a.RunJob(ctx, tasks.SurgeAlertRefresh))
	require.Error(t, a.RunJob(ctx, "send_newsletter"))
}
