package handlers

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
	repo "github.com/oksasatya/shop-admin-dashboard/internal/domain/repository"
	"github.com/oksasatya/shop-admin-dashboard/pkg/helpers"
)

// Audit actions.
const (
	ActionLoginSuccess        = "login_success"
	ActionLoginFailure        = "login_failure"
	ActionRegister            = "register"
	ActionConfirmEmail        = "confirm_email"
	ActionLogout              = "logout"
	ActionAccountCreate       = "account_create"
	ActionAccountUpdate       = "account_update"
	ActionAccountDelete       = "account_delete"
	ActionAccountDeleteDenied = "account_delete_denied"
)

// authEvents counts audit actions; served on /api/debug/vars.
var authEvents = expvar.NewMap("auth_events")

// Auditor records security events. Writes are best effort: a failing audit
// store never fails the request. Repo may be nil when auditing is disabled.
type Auditor struct {
	Repo   repo.AuditRepository
	Logger *logrus.Logger
}

func NewAuditor(r repo.AuditRepository, logger *logrus.Logger) *Auditor {
	if logger == nil {
		logger = helpers.DiscardLogger()
	}
	return &Auditor{Repo: r, Logger: logger}
}

func (a *Auditor) Record(c *gin.Context, action, userID, email string, metadata map[string]any) {
	authEvents.Add(action, 1)
	if a == nil || a.Repo == nil {
		return
	}
	ev := entity.AuditEvent{
		UserID:    userID,
		Email:     email,
		Action:    action,
		IP:        clientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.Repo.Record(c.Request.Context(), ev); err != nil {
		a.Logger.WithError(err).WithFields(logrus.Fields{"action": action, "user_id": userID}).Warn("audit write failed")
	}
}
