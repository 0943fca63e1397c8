package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/shop-admin-dashboard/internal/application"
	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
	"github.com/oksasatya/shop-admin-dashboard/internal/interface/middleware"
	"github.com/oksasatya/shop-admin-dashboard/pkg/helpers"
	"github.com/oksasatya/shop-admin-dashboard/pkg/response"
)

type AuthHandler struct {
	Svc     *application.Service
	Cookies *helpers.Manager
	Audit   *Auditor
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.Service, cookies *helpers.Manager, audit *Auditor, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Audit: audit, Logger: logger}
}

type sessionPayload struct {
	Account   entity.AccountView `json:"account"`
	Token     string             `json:"token,omitempty"`
	ExpiresAt *time.Time         `json:"expiresAt,omitempty"`
	Warnings  []string           `json:"warnings,omitempty"`
}

func newSessionPayload(res *application.AuthResult) sessionPayload {
	p := sessionPayload{Account: res.Account, Warnings: res.Warnings}
	if res.Token != "" {
		exp := res.ExpiresAt
		p.Token, p.ExpiresAt = res.Token, &exp
	}
	return p
}

// Login POST /api/login {email, password}
func (h *AuthHandler) Login(c *gin.Context) {
	var in application.LoginInput
	if err := c.ShouldBind(&in); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), in)
	if err != nil {
		h.Audit.Record(c, ActionLoginFailure, "", application.NormalizeEmail(in.Email), map[string]any{"reason": reason(err)})
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetSession(c, res.Token, res.ExpiresAt)
	h.Audit.Record(c, ActionLoginSuccess, res.Account.ID, res.Account.Email, nil)
	response.Success(c, http.StatusOK, newSessionPayload(res), "login successful", nil)
}

// Register POST /api/register {name, email, password}
// The account starts unconfirmed; a session cookie is only set when the
// service issued a token.
func (h *AuthHandler) Register(c *gin.Context) {
	var in application.RegisterInput
	if err := c.ShouldBind(&in); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if res.Token != "" {
		h.Cookies.SetSession(c, res.Token, res.ExpiresAt)
	}
	h.Audit.Record(c, ActionRegister, res.Account.ID, res.Account.Email, map[string]any{"warnings": res.Warnings})
	response.Success(c, http.StatusCreated, newSessionPayload(res), "registered, check your email to confirm the account", nil)
}

// Logout POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	if s, ok := middleware.Session(c); ok {
		h.Audit.Record(c, ActionLogout, s.UserID, s.Email, nil)
	}
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// ConfirmEmail GET /api/confirm-email/:token
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	res, err := h.Svc.ConfirmEmail(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Audit.Record(c, ActionConfirmEmail, res.Account.ID, res.Account.Email, nil)
	response.Success(c, http.StatusOK, gin.H{
		"confirmed": true,
		"account":   res.Account,
	}, "email confirmed", nil)
}
