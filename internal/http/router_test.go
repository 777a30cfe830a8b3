package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	httpH "github.com/simsportal/sims-portal-backend/internal/http/handlers"
	httpMW "github.com/simsportal/sims-portal-backend/internal/http/middleware"
	"github.com/simsportal/sims-portal-backend/internal/observability"
	"github.com/simsportal/sims-portal-backend/internal/platform/apperr"
	"github.com/simsportal/sims-portal-backend/internal/platform/ctxutil"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type stubAuth struct{}

func (stubAuth) SetContextFromToken(ctx context.Context, token string) (context.Context, error) {
	if token != "letmein" {
		return ctx, apperr.ErrUnauthorized
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: 1}), nil
}

func (stubAuth) IssueToken(userID uint, ttl time.Duration) (string, error) { return "letmein", nil }

func TestRouter_AuthBoundary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := observability.NewMetrics()
	r := NewRouter(RouterConfig{
		Log:              logger.Nop(),
		Metrics:          metrics,
		AuthMiddleware:   httpMW.NewAuthMiddleware(logger.Nop(), stubAuth{}),
		HealthHandler:    httpH.NewHealthHandler(nil),
		EmergencyHandler: httpH.NewEmergencyHandler(nil, nil),
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/emergencies/all"},
		{http.MethodGet, "/emergency/1"},
		{http.MethodPost, "/emergency/new"},
		{http.MethodPost, "/emergency/edit/1"},
		{http.MethodPost, "/emergency/closeout/1"},
		{http.MethodPost, "/emergency/delete/1"},
		{http.MethodGet, "/emergency/gantt/1"},
	} {
		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(route.method, route.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.path)
	}

	// bad id is rejected before the (absent) services are reached
	req := httptest.NewRequest(http.MethodGet, "/emergency/zero", nil)
	req.Header.Set("Authorization", "Bearer letmein")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var buf strings.Builder
	assert.NoError(t, metrics.WritePrometheus(&buf))
	assert.Contains(t, buf.String(), `route="/emergency/:id",status="400"`)
}
