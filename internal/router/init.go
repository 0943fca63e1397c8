package router

import (
	"github.com/oksasatya/shop-admin-dashboard/internal/application"
	"github.com/oksasatya/shop-admin-dashboard/internal/container"
	handlers "github.com/oksasatya/shop-admin-dashboard/internal/interface/http"
	"github.com/oksasatya/shop-admin-dashboard/internal/interface/middleware"
	"github.com/oksasatya/shop-admin-dashboard/internal/router/modules"
	"github.com/oksasatya/shop-admin-dashboard/pkg/helpers"
)

type Deps struct {
	Accounts *application.Service
	Products *application.ProductService
	Cookies  *helpers.Manager
	Audit    *handlers.Auditor
}

// BuildDeps assembles the services from the container singletons.
func BuildDeps() Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	svc := application.NewService(
		container.GetAccounts(),
		container.GetJWT(),
		helpers.NewBcryptHasher(cfg.BcryptCost),
		container.GetMailer(),
		container.GetImages(),
		container.GetAccountIndex(),
		logger,
		application.Options{
			ConfirmURL:             cfg.ConfirmEmailURL,
			AppName:                cfg.AppName,
			CompanyName:            cfg.CompanyName,
			CallTimeout:            cfg.CallTimeout,
			IssueSessionOnRegister: cfg.RegisterIssuesSession,
		},
	)
	products := application.NewProductService(container.GetProducts(), svc, container.GetImages(), logger, cfg.CallTimeout)

	return Deps{
		Accounts: svc,
		Products: products,
		Cookies:  helpers.NewCookie(cfg.CookieName, cfg.CookieDomain, cfg.CookieSecure),
		Audit:    handlers.NewAuditor(container.GetAudit(), logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()
	d := BuildDeps()

	// engine-wide so unknown nested paths under a protected prefix are gated too
	r.Engine.Use(middleware.SessionGate(jwt, d.Cookies, cfg.ProtectedPrefixes, cfg.EntryPath))

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(d.Accounts, d.Cookies, d.Audit, logger)))
	r.Add(modules.NewAccountModule(handlers.NewAccountHandler(d.Accounts, d.Audit, logger, cfg.UploadMaxBytes), jwt, d.Cookies))
	r.Add(modules.NewProductModule(handlers.NewProductHandler(d.Products, logger, cfg.UploadMaxBytes), jwt, d.Cookies))
	r.Add(modules.NewDebugModule(handlers.NewPageHandler(), cfg.DebugMetricsEnabled))
	r.AddPage(modules.NewPageModule(handlers.NewPageHandler()))
	return d
}
