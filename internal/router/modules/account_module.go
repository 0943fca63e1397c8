package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/shop-admin-dashboard/internal/container"
	handlers "github.com/oksasatya/shop-admin-dashboard/internal/interface/http"
	"github.com/oksasatya/shop-admin-dashboard/internal/interface/middleware"
	"github.com/oksasatya/shop-admin-dashboard/pkg/helpers"
)

// AccountModule mounts /api/users. Every route needs a session; admin
// checks happen in the service.
type AccountModule struct {
	Handler *handlers.AccountHandler
	JWT     *helpers.JWTManager
	Cookies *helpers.Manager
}

func NewAccountModule(h *handlers.AccountHandler, jwt *helpers.JWTManager, cookies *helpers.Manager) *AccountModule {
	return &AccountModule{Handler: h, JWT: jwt, Cookies: cookies}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.Auth(m.JWT, m.Cookies))
	users.Use(protectedLimits()...)
	{
		users.GET("", m.Handler.List)
		users.GET("/search", m.Handler.Search)
		users.GET("/:id", m.Handler.Get)
		users.POST("", m.Handler.Create)
		users.PUT("/:id", m.Handler.Update)
		users.DELETE("/:id", m.Handler.Delete)
	}
}

// protectedLimits is the softer per-IP plus per-user budget shared by
// authenticated API routes.
func protectedLimits() []gin.HandlerFunc {
	rdb := container.GetRedis()
	return []gin.HandlerFunc{
		middleware.RateLimit(rdb, middleware.Limit{Name: "api", Max: 300, Window: time.Minute, Key: middleware.KeyByIP()}),
		middleware.RateLimit(rdb, middleware.Limit{Name: "api", Max: 120, Window: time.Minute, Key: middleware.KeyByUserID()}),
	}
}
