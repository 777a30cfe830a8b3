package app

import (
	"github.com/gin-gonic/gin"

	apphttp "github.com/simsportal/sims-portal-backend/internal/http"
	"github.com/simsportal/sims-portal-backend/internal/observability"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *gin.Engine {
	log.Info("Wiring router...")
	return apphttp.NewRouter(apphttp.RouterConfig{
		Log:              log,
		Metrics:          metrics,
		CORSOrigins:      cfg.HTTP.CORSOrigins,
		TracingEnabled:   cfg.Otel.Enabled,
		ServiceName:      cfg.Otel.ServiceName,
		AuthMiddleware:   middleware.Auth,
		HealthHandler:    handlers.Health,
		EmergencyHandler: handlers.Emergency,
		APIHandler:       handlers.API,
	})
}
