package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/simsportal/sims-portal-backend/internal/http/handlers"
	httpMW "github.com/simsportal/sims-portal-backend/internal/http/middleware"
	"github.com/simsportal/sims-portal-backend/internal/observability"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	CORSOrigins    []string
	TracingEnabled bool
	ServiceName    string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler    *httpH.HealthHandler
	EmergencyHandler *httpH.EmergencyHandler
	APIHandler       *httpH.APIHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}

	// Public feed
	if cfg.APIHandler != nil {
		r.GET("/api/emergencies", cfg.APIHandler.Emergencies)
	}

	protected := r.Group("/")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}

	if cfg.EmergencyHandler != nil {
		protected.GET("/emergencies/all", cfg.EmergencyHandler.All)
		protected.POST("/emergency/new", cfg.EmergencyHandler.Create)
		protected.GET("/emergency/:id", cfg.EmergencyHandler.View)
		protected.POST("/emergency/edit/:id", cfg.EmergencyHandler.Edit)
		protected.POST("/emergency/closeout/:id", cfg.EmergencyHandler.Closeout)
		protected.POST("/emergency/delete/:id", cfg.EmergencyHandler.Delete)
		protected.GET("/emergency/gantt/:id", cfg.EmergencyHandler.Gantt)
	}

	return r
}
