package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simsportal/sims-portal-backend/internal/http/response"
	"github.com/simsportal/sims-portal-backend/internal/platform/apperr"
	"github.com/simsportal/sims-portal-backend/internal/platform/ctxutil"
	"github.com/simsportal/sims-portal-backend/internal/services"
)

type EmergencyHandler struct {
	emergencies services.EmergencyService
	dashboard   services.DashboardService
}

func NewEmergencyHandler(emergencies services.EmergencyService, dashboard services.DashboardService) *EmergencyHandler {
	return &EmergencyHandler{emergencies: emergencies, dashboard: dashboard}
}

// GET /emergency/:id
func (h *EmergencyHandler) View(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	var viewerID uint
	if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
		viewerID = rd.UserID
	}
	view, err := h.dashboard.Build(c.Request.Context(), id, viewerID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, view)
}

// GET /emergencies/all
func (h *EmergencyHandler) All(c *gin.Context) {
	rows, err := h.emergencies.ListAll(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"emergencies": rows})
}

// POST /emergency/new
func (h *EmergencyHandler) Create(c *gin.Context) {
	var in services.EmergencyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondServiceError(c, fmt.Errorf("%w: %v", apperr.ErrInvalidArgument, err))
		return
	}
	e, err := h.emergencies.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"emergency": e})
}

// POST /emergency/edit/:id
func (h *EmergencyHandler) Edit(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	var in services.EmergencyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondServiceError(c, fmt.Errorf("%w: %v", apperr.ErrInvalidArgument, err))
		return
	}
	e, err := h.emergencies.Update(c.Request.Context(), id, in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"emergency": e})
}

// POST /emergency/closeout/:id
func (h *EmergencyHandler) Closeout(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if err := h.emergencies.Closeout(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "Closed"})
}

// POST /emergency/delete/:id
func (h *EmergencyHandler) Delete(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if err := h.emergencies.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "Removed"})
}

// GET /emergency/gantt/:id
func (h *EmergencyHandler) Gantt(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	view, err := h.emergencies.Timeline(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, view)
}
