package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/shop-admin-dashboard/internal/container"
	handlers "github.com/oksasatya/shop-admin-dashboard/internal/interface/http"
	"github.com/oksasatya/shop-admin-dashboard/internal/interface/middleware"
)

// AuthModule mounts login, registration, logout and email confirmation.
// All of them are public and limited per IP.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	loginLimiter := middleware.RateLimit(rdb, middleware.Limit{Name: "login", Max: 10, Window: time.Minute, Key: middleware.KeyByIP()})
	registerLimiter := middleware.RateLimit(rdb, middleware.Limit{Name: "register", Max: 5, Window: time.Minute, Key: middleware.KeyByIP()})
	confirmLimiter := middleware.RateLimit(rdb, middleware.Limit{Name: "confirm", Max: 30, Window: time.Minute, Key: middleware.KeyByIPAndPath()})

	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/logout", m.Handler.Logout)
	rg.GET("/confirm-email/:token", confirmLimiter, m.Handler.ConfirmEmail)
}
