package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simsportal/sims-portal-backend/internal/http/response"
	"github.com/simsportal/sims-portal-backend/internal/platform/apperr"
	"github.com/simsportal/sims-portal-backend/internal/platform/ctxutil"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
	"github.com/simsportal/sims-portal-backend/internal/services"
)

const sessionCookie = "sims_session"

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("Middleware", "AuthMiddleware"), authService: authService}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
			c.Abort()
			return
		}
		ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, apperr.ErrUnauthorized) {
				am.log.Debug("token rejected", "error", err)
				response.RespondError(c, http.StatusUnauthorized, "unauthorized", errInvalidToken)
			} else {
				am.log.Error("token verification failed", "error", err)
				response.RespondServiceError(c, err)
			}
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(ctx)
		if rd := ctxutil.GetRequestData(ctx); rd == nil || rd.UserID == 0 {
			response.RespondError(c, http.StatusForbidden, "forbidden", errInvalidToken)
			c.Abort()
			return
		}
		c.Next()
	}
}

// extractToken prefers the Authorization header and falls back to the
// session cookie set by the portal frontend.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

type authError string

func (e authError) Error() string { return string(e) }

const (
	errMissingToken = authError("missing or invalid token")
	errInvalidToken = authError("invalid or expired token")
)
