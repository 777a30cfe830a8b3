package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simsportal/sims-portal-backend/internal/domain"
	"github.com/simsportal/sims-portal-backend/internal/platform/apierr"
	"github.com/simsportal/sims-portal-backend/internal/services"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// ForbiddenEnvelope lists the admins a caller can ask to perform the action.
type ForbiddenEnvelope struct {
	Error  APIError              `json:"error"`
	Admins []domain.AdminContact `json:"admins"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondServiceError maps a service error onto the envelope. Internal
// errors are recorded on the gin context for the request log and never
// echoed to the client.
func RespondServiceError(c *gin.Context, err error) {
	_ = c.Error(err)
	var forbidden *services.ForbiddenError
	if errors.As(err, &forbidden) {
		c.JSON(http.StatusForbidden, ForbiddenEnvelope{
			Error:  APIError{Message: forbidden.Error(), Code: "forbidden"},
			Admins: forbidden.Admins,
		})
		return
	}
	ae := apierr.From(err)
	if ae.Status >= http.StatusInternalServerError {
		RespondError(c, ae.Status, ae.Code, errors.New("internal server error"))
		return
	}
	RespondError(c, ae.Status, ae.Code, ae)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
