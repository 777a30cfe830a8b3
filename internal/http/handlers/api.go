package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simsportal/sims-portal-backend/internal/domain"
	"github.com/simsportal/sims-portal-backend/internal/http/response"
	"github.com/simsportal/sims-portal-backend/internal/services"
)

// APIHandler serves the unauthenticated JSON feed consumed by partner tools.
type APIHandler struct {
	emergencies services.EmergencyService
}

func NewAPIHandler(emergencies services.EmergencyService) *APIHandler {
	return &APIHandler{emergencies: emergencies}
}

// GET /api/emergencies?status=&emergency_id=&iso3=
func (h *APIHandler) Emergencies(c *gin.Context) {
	goID, err := optionalIntQuery(c, "emergency_id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	rows, err := h.emergencies.Summaries(c.Request.Context(), domain.EmergencySummaryFilter{
		Status:        strings.TrimSpace(c.Query("status")),
		GoEmergencyID: goID,
		ISO3:          strings.TrimSpace(c.Query("iso3")),
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, rows)
}
