package app

import (
	httpMW "github.com/simsportal/sims-portal-backend/internal/http/middleware"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}
