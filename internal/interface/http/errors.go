package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/shop-admin-dashboard/internal/application"
	"github.com/oksasatya/shop-admin-dashboard/internal/interface/middleware"
	"github.com/oksasatya/shop-admin-dashboard/pkg/helpers"
	"github.com/oksasatya/shop-admin-dashboard/pkg/response"
	"github.com/oksasatya/shop-admin-dashboard/pkg/validation"
)

type failure struct {
	status  int
	message string
	code    string
}

// classify maps service errors to what clients see. NoSuchAccount and
// BadCredentials share one answer.
func classify(err error) failure {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		return failure{http.StatusBadRequest, "invalid payload", "validation"}
	case errors.Is(err, application.ErrNoSuchAccount), errors.Is(err, application.ErrBadCredentials):
		return failure{http.StatusUnauthorized, "invalid email or password", "invalid_credentials"}
	case errors.Is(err, application.ErrEmailNotConfirmed):
		return failure{http.StatusForbidden, "email not confirmed", "email_not_confirmed"}
	case errors.Is(err, application.ErrUnauthenticated), errors.Is(err, application.ErrActorNotFound):
		return failure{http.StatusUnauthorized, "unauthenticated", "unauthenticated"}
	case errors.Is(err, application.ErrSelfDeletionForbidden):
		return failure{http.StatusForbidden, "admins cannot delete themselves", "self_deletion_forbidden"}
	case errors.Is(err, application.ErrPeerAdminDeletionForbidden):
		return failure{http.StatusForbidden, "admins cannot delete other admins", "peer_admin_deletion_forbidden"}
	case errors.Is(err, application.ErrForbidden):
		return failure{http.StatusForbidden, "forbidden", "forbidden"}
	case errors.Is(err, application.ErrTargetNotFound), errors.Is(err, application.ErrNotFound):
		return failure{http.StatusNotFound, "not found", "not_found"}
	case errors.Is(err, application.ErrConflict):
		return failure{http.StatusConflict, "already exists", "conflict"}
	case errors.Is(err, application.ErrInvalidToken):
		return failure{http.StatusBadRequest, "invalid or expired token", "invalid_token"}
	case errors.Is(err, application.ErrUnavailable):
		return failure{http.StatusServiceUnavailable, "service temporarily unavailable", "unavailable"}
	default:
		return failure{http.StatusInternalServerError, "internal error", "internal"}
	}
}

// reason is the internal kind recorded in the audit log. Unlike classify it
// tells an unknown email from a wrong password.
func reason(err error) string {
	switch {
	case errors.Is(err, application.ErrNoSuchAccount):
		return "no_such_account"
	case errors.Is(err, application.ErrBadCredentials):
		return "bad_credentials"
	default:
		return classify(err).code
	}
}

func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	f := classify(err)
	if f.status >= http.StatusInternalServerError {
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString(middleware.CtxRequestIDKey),
		})
	}
	body := response.ErrorBody{Code: f.code}
	var verr *application.ValidationError
	if errors.As(err, &verr) {
		body.Details = verr.Fields
	}
	response.Error[any](c, f.status, f.message, body)
}

// bindError answers a request whose body could not be decoded.
func bindError(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", response.ErrorBody{
		Code:    "validation",
		Details: validation.ToDetails(err),
	})
}

func clientIP(c *gin.Context) string {
	if ip := c.GetString(middleware.CtxRealIPKey); ip != "" {
		return ip
	}
	return c.ClientIP()
}
