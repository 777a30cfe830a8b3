package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simsportal/sims-portal-backend/internal/domain"
	"github.com/simsportal/sims-portal-backend/internal/platform/apperr"
	"github.com/simsportal/sims-portal-backend/internal/platform/ctxutil"
	"github.com/simsportal/sims-portal-backend/internal/services"
)

type fakeEmergencies struct {
	err        error
	created    services.EmergencyInput
	updatedID  uint
	closedID   uint
	deletedID  uint
	lastFilter domain.EmergencySummaryFilter
	summaries  []domain.EmergencySummary
}

func (f *fakeEmergencies) ListAll(ctx context.Context) ([]*domain.EmergencyDetail, error) {
	return []*domain.EmergencyDetail{{Emergency: domain.Emergency{ID: 1, EmergencyName: "Floods"}}}, f.err
}

func (f *fakeEmergencies) Summaries(ctx context.Context, filter domain.EmergencySummaryFilter) ([]domain.EmergencySummary, error) {
	f.lastFilter = filter
	return f.summaries, f.err
}

func (f *fakeEmergencies) Create(ctx context.Context, in services.EmergencyInput) (*domain.Emergency, error) {
	f.created = in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Emergency{ID: 7, EmergencyName: in.EmergencyName, EmergencyStatus: domain.EmergencyActive}, nil
}

func (f *fakeEmergencies) Update(ctx context.Context, id uint, in services.EmergencyInput) (*domain.Emergency, error) {
	f.updatedID = id
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Emergency{ID: id, EmergencyName: in.EmergencyName}, nil
}

func (f *fakeEmergencies) Closeout(ctx context.Context, id uint) error {
	f.closedID = id
	return f.err
}

func (f *fakeEmergencies) Delete(ctx context.Context, id uint) error {
	f.deletedID = id
	return f.err
}

func (f *fakeEmergencies) Timeline(ctx context.Context, id uint) (*services.GanttView, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.GanttView{Emergency: &domain.Emergency{ID: id}, Entries: []domain.TimelineEntry{}, MinDate: "2000-01-01"}, nil
}

type fakeDashboard struct {
	err      error
	viewerID uint
}

func (f *fakeDashboard) Build(ctx context.Context, emergencyID uint, viewerID uint) (*services.DashboardView, error) {
	f.viewerID = viewerID
	if f.err != nil {
		return nil, f.err
	}
	return &services.DashboardView{
		Emergency:        &domain.EmergencyDetail{Emergency: domain.Emergency{ID: emergencyID, EmergencyName: "Floods"}},
		CurrentTimeframe: "2024-02",
	}, nil
}

func newEngine(em *fakeEmergencies, dash *fakeDashboard, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{UserID: userID}))
		}
		c.Next()
	})
	h := NewEmergencyHandler(em, dash)
	api := NewAPIHandler(em)
	r.GET("/api/emergencies", api.Emergencies)
	r.GET("/emergencies/all", h.All)
	r.GET("/emergency/:id", h.View)
	r.POST("/emergency/new", h.Create)
	r.POST("/emergency/edit/:id", h.Edit)
	r.POST("/emergency/closeout/:id", h.Closeout)
	r.POST("/emergency/delete/:id", h.Delete)
	r.GET("/emergency/gantt/:id", h.Gantt)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
	Admins []domain.AdminContact `json:"admins"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestView(t *testing.T) {
	dash := &fakeDashboard{}
	r := newEngine(&fakeEmergencies{}, dash, 42)

	rec := do(r, http.MethodGet, "/emergency/5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(42), dash.viewerID)
	var view services.DashboardView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, uint(5), view.Emergency.ID)
	assert.Equal(t, "2024-02", view.CurrentTimeframe)

	rec = do(r, http.MethodGet, "/emergency/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_argument", decodeEnvelope(t, rec).Error.Code)

	dash.err = fmt.Errorf("emergency 5: %w", apperr.ErrNotFound)
	rec = do(r, http.MethodGet, "/emergency/5", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeEnvelope(t, rec).Error.Code)

	dash.err = errors.New("pq: connection refused")
	rec = do(r, http.MethodGet, "/emergency/5", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "internal server error", env.Error.Message, "internal errors are not echoed")
}

func TestCreateAndEdit(t *testing.T) {
	em := &fakeEmergencies{}
	r := newEngine(em, &fakeDashboard{}, 1)

	rec := do(r, http.MethodPost, "/emergency/new", `{"emergency_name":"Floods","emergency_location_id":10,"emergency_type_id":4}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Floods", em.created.EmergencyName)
	assert.Equal(t, 10, em.created.EmergencyLocationID)
	assert.Contains(t, rec.Body.String(), `"id":7`)

	rec = do(r, http.MethodPost, "/emergency/new", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodPost, "/emergency/edit/3", `{"emergency_name":"Renamed"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(3), em.updatedID)

	em.err = fmt.Errorf("%w: invalid fields EmergencyTypeID(required)", apperr.ErrInvalidArgument)
	rec = do(r, http.MethodPost, "/emergency/edit/3", `{"emergency_name":"Renamed"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Error.Message, "EmergencyTypeID")
}

func TestCloseoutAndDelete(t *testing.T) {
	em := &fakeEmergencies{}
	r := newEngine(em, &fakeDashboard{}, 1)

	rec := do(r, http.MethodPost, "/emergency/closeout/9", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(9), em.closedID)

	rec = do(r, http.MethodPost, "/emergency/delete/9", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(9), em.deletedID)

	em.err = &services.ForbiddenError{Admins: []domain.AdminContact{{ID: 2, FullName: "Grace Hopper"}}}
	for _, path := range []string{"/emergency/closeout/9", "/emergency/delete/9"} {
		rec = do(r, http.MethodPost, path, "")
		require.Equal(t, http.StatusForbidden, rec.Code, path)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "forbidden", env.Error.Code)
		require.Len(t, env.Admins, 1)
		assert.Equal(t, "Grace Hopper", env.Admins[0].FullName)
	}
}

func TestGanttAndAll(t *testing.T) {
	r := newEngine(&fakeEmergencies{}, &fakeDashboard{}, 1)

	rec := do(r, http.MethodGet, "/emergency/gantt/4", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"min_date":"2000-01-01"`)

	rec = do(r, http.MethodGet, "/emergencies/all", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"emergency_name":"Floods"`)
}

func TestAPIEmergencies(t *testing.T) {
	em := &fakeEmergencies{summaries: []domain.EmergencySummary{}}
	r := newEngine(em, &fakeDashboard{}, 0)

	rec := do(r, http.MethodGet, "/api/emergencies?status=Active&emergency_id=6123&iso3=KEN", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
	assert.Equal(t, "Active", em.lastFilter.Status)
	assert.Equal(t, "KEN", em.lastFilter.ISO3)
	require.NotNil(t, em.lastFilter.GoEmergencyID)
	assert.Equal(t, 6123, *em.lastFilter.GoEmergencyID)

	rec = do(r, http.MethodGet, "/api/emergencies", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, em.lastFilter.GoEmergencyID)

	rec = do(r, http.MethodGet, "/api/emergencies?emergency_id=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
