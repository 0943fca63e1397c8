package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/shop-admin-dashboard/internal/interface/http"
)

// PageModule mounts the dashboard pages. The session gate runs on the
// engine, so it covers these and any unknown nested path too.
type PageModule struct {
	Handler *handlers.PageHandler
}

func NewPageModule(h *handlers.PageHandler) *PageModule {
	return &PageModule{Handler: h}
}

func (m *PageModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Page)
	rg.GET("/dashboard", m.Handler.Page)
	rg.GET("/dashboard/*page", m.Handler.Page)
	rg.GET("/control-products", m.Handler.Page)
	rg.GET("/profile", m.Handler.Page)
}
