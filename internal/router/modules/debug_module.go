package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/shop-admin-dashboard/internal/container"
	handlers "github.com/oksasatya/shop-admin-dashboard/internal/interface/http"
	"github.com/oksasatya/shop-admin-dashboard/internal/interface/middleware"
)

type DebugModule struct {
	Handler *handlers.PageHandler
	Metrics bool
}

func NewDebugModule(h *handlers.PageHandler, metrics bool) *DebugModule {
	return &DebugModule{Handler: h, Metrics: metrics}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.Handler.Health)
	if !m.Metrics {
		return
	}
	// expvar, rate-limited per IP except for private networks
	rl := middleware.RateLimit(container.GetRedis(), middleware.Limit{
		Name:   "debug",
		Max:    120,
		Window: time.Minute,
		Key:    middleware.KeyByIP(),
		Allow:  middleware.AllowPrivateIP(),
	})
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
