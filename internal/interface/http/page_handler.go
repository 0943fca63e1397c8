package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/shop-admin-dashboard/internal/interface/middleware"
	"github.com/oksasatya/shop-admin-dashboard/pkg/response"
)

// PageHandler answers the dashboard pages with the request's session
// context. Rendering is left to the front end.
type PageHandler struct{}

func NewPageHandler() *PageHandler { return &PageHandler{} }

type pagePayload struct {
	Page          string                     `json:"page"`
	Authenticated bool                       `json:"authenticated"`
	Session       *middleware.SessionContext `json:"session,omitempty"`
}

func (h *PageHandler) Page(c *gin.Context) {
	s, ok := middleware.Session(c)
	response.Success(c, http.StatusOK, pagePayload{
		Page:          c.Request.URL.Path,
		Authenticated: ok,
		Session:       s,
	}, "page", nil)
}

// Health GET /api/health
func (h *PageHandler) Health(c *gin.Context) {
	response.Success[any](c, http.StatusOK, gin.H{"status": "ok"}, "healthy", nil)
}
