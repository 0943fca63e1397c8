package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/shop-admin-dashboard/internal/interface/http"
	"github.com/oksasatya/shop-admin-dashboard/internal/interface/middleware"
	"github.com/oksasatya/shop-admin-dashboard/pkg/helpers"
)

// ProductModule mounts /api/products: public reads, session-only writes.
type ProductModule struct {
	Handler *handlers.ProductHandler
	JWT     *helpers.JWTManager
	Cookies *helpers.Manager
}

func NewProductModule(h *handlers.ProductHandler, jwt *helpers.JWTManager, cookies *helpers.Manager) *ProductModule {
	return &ProductModule{Handler: h, JWT: jwt, Cookies: cookies}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	rg.GET("/products", m.Handler.List)
	rg.GET("/products/:id", m.Handler.Get)

	auth := rg.Group("/products")
	auth.Use(middleware.Auth(m.JWT, m.Cookies))
	auth.Use(protectedLimits()...)
	{
		auth.POST("", m.Handler.Create)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
