package app

import (
	httpH "github.com/simsportal/sims-portal-backend/internal/http/handlers"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type Handlers struct {
	Health    *httpH.HealthHandler
	Emergency *httpH.EmergencyHandler
	API       *httpH.APIHandler
}

func wireHandlers(log *logger.Logger, db httpH.Pinger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(db),
		Emergency: httpH.NewEmergencyHandler(services.Emergency, services.Dashboard),
		API:       httpH.NewAPIHandler(services.Emergency),
	}
}
