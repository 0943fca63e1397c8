package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/shop-admin-dashboard/internal/application"
	"github.com/oksasatya/shop-admin-dashboard/internal/interface/middleware"
	"github.com/oksasatya/shop-admin-dashboard/pkg/response"
)

// AccountHandler serves /api/users. Every route runs behind middleware.Auth;
// the service re-checks the caller against the store.
type AccountHandler struct {
	Svc       *application.Service
	Audit     *Auditor
	Logger    *logrus.Logger
	MaxUpload int64
}

func NewAccountHandler(svc *application.Service, audit *Auditor, logger *logrus.Logger, maxUpload int64) *AccountHandler {
	return &AccountHandler{Svc: svc, Audit: audit, Logger: logger, MaxUpload: maxUpload}
}

func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.Svc.ListAccounts(c.Request.Context(), middleware.Token(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, accounts, "accounts", map[string]any{"count": len(accounts)})
}

// Search GET /api/users/search?q=&size=
func (h *AccountHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.SearchAccounts(c.Request.Context(), middleware.Token(c), c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

func (h *AccountHandler) Get(c *gin.Context) {
	a, err := h.Svc.GetAccount(c.Request.Context(), middleware.Token(c), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, a, "account", nil)
}

// Create POST /api/users, JSON or multipart with an optional "image" file.
func (h *AccountHandler) Create(c *gin.Context) {
	var in application.CreateAccountInput
	if err := c.ShouldBind(&in); err != nil {
		bindError(c, err)
		return
	}
	img, err := readImage(c, "image", h.MaxUpload)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	res, err := h.Svc.CreateAccount(c.Request.Context(), middleware.Token(c), in, img)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Audit.Record(c, ActionAccountCreate, c.GetString(middleware.CtxUserIDKey), res.Account.Email, map[string]any{
		"target_id": res.Account.ID,
		"is_admin":  res.Account.IsAdmin,
	})
	response.Success(c, http.StatusCreated, res.Account, "account created", warningsMeta(res.Warnings))
}

// Update PUT /api/users/:id; absent fields are left unchanged.
func (h *AccountHandler) Update(c *gin.Context) {
	var in application.UpdateAccountInput
	if err := c.ShouldBind(&in); err != nil {
		bindError(c, err)
		return
	}
	img, err := readImage(c, "image", h.MaxUpload)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	res, err := h.Svc.UpdateAccount(c.Request.Context(), middleware.Token(c), c.Param("id"), in, img)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Audit.Record(c, ActionAccountUpdate, c.GetString(middleware.CtxUserIDKey), res.Account.Email, map[string]any{
		"target_id": res.Account.ID,
	})
	response.Success(c, http.StatusOK, res.Account, "account updated", nil)
}

// Delete DELETE /api/users/:id. Denied attempts are audited too.
func (h *AccountHandler) Delete(c *gin.Context) {
	actorID := c.GetString(middleware.CtxUserIDKey)
	target := c.Param("id")
	if err := h.Svc.DeleteAccount(c.Request.Context(), middleware.Token(c), target); err != nil {
		if classify(err).status == http.StatusForbidden {
			h.Audit.Record(c, ActionAccountDeleteDenied, actorID, "", map[string]any{"target_id": target, "reason": reason(err)})
		}
		writeError(c, h.Logger, err)
		return
	}
	h.Audit.Record(c, ActionAccountDelete, actorID, "", map[string]any{"target_id": target})
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true, "id": target}, "account deleted", nil)
}

func warningsMeta(w []string) any {
	if len(w) == 0 {
		return nil
	}
	return map[string]any{"warnings": w}
}
