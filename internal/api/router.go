package api

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/servicehub/portal/internal/api/handler"
	"github.com/servicehub/portal/internal/api/middleware"
	"github.com/servicehub/portal/internal/api/view"
	"github.com/servicehub/portal/internal/core/domain"
	"github.com/servicehub/portal/internal/core/policy"
	"github.com/servicehub/portal/internal/core/ports"
	probes "github.com/servicehub/portal/internal/infrastructure/http"
	"github.com/servicehub/portal/internal/infrastructure/http/handlers"
)

// Deps are the services the router wires into handlers.
type Deps struct {
	Logger   zerolog.Logger
	Cookie   middleware.SessionCookie
	Resolver *policy.Resolver

	Sessions  ports.SessionService
	Companies ports.CompanyService
	Reviews   ports.ReviewService
	Profiles  ports.ProfileService
	Catalog   ports.CatalogService
	Admin     ports.AdminService

	// Checks are run by the readiness probe.
	Checks map[string]handlers.Check

	// Registerer and Gatherer back the HTTP metrics and /metrics.
	// They default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Resolver, d.Logger)

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	e.Renderer = renderer

	httpMetrics, err := echoprometheus.MiddlewareConfig{
		Namespace:  "portal",
		Subsystem:  "http",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || strings.HasPrefix(p, "/health")
		},
	}.ToMiddleware()
	if err != nil {
		return nil, fmt.Errorf("http metrics: %w", err)
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(httpMetrics)
	e.Use(middleware.Session(d.Sessions, d.Cookie, d.Logger))

	// --- Dependencies ---
	pages := handler.NewPages(d.Resolver, d.Cookie, d.Logger)
	authHandler := handler.NewAuthHandler(pages, d.Sessions)
	staticHandler := handler.NewStaticHandler(pages)
	catalogHandler := handler.NewCatalogHandler(pages, d.Catalog)
	companyHandler := handler.NewCompanyHandler(pages, d.Companies, d.Reviews, d.Profiles, d.Resolver)
	accountHandler := handler.NewAccountHandler(pages, d.Profiles)
	adminHandler := handler.NewAdminHandler(pages, d.Admin)
	accessHandler := handler.NewAccessHandler(d.Resolver)

	page := func(p domain.Page) echo.MiddlewareFunc {
		return middleware.RequirePage(d.Resolver, p)
	}

	// --- Pages ---
	e.GET("/", staticHandler.Index, page(domain.PageIndex))
	e.GET(domain.PageIndex.URL(), staticHandler.Index, page(domain.PageIndex))
	e.GET(domain.PageAbout.URL(), staticHandler.About, page(domain.PageAbout))
	e.GET(domain.PageCatalog.URL(), catalogHandler.Show, page(domain.PageCatalog))

	company := e.Group(domain.PageCompany.URL(), page(domain.PageCompany))
	company.GET("", companyHandler.Show)
	company.POST("/edit", companyHandler.Edit)
	company.POST("/save", companyHandler.Save)
	company.POST("/cancel", companyHandler.Cancel)
	company.POST("/delete", companyHandler.Delete)
	company.POST("/items/add", companyHandler.AddItem)
	company.POST("/items/remove", companyHandler.RemoveItem)
	company.POST("/items/confirm", companyHandler.ConfirmRemoval)
	company.POST("/items/dismiss", companyHandler.DismissRemoval)
	company.POST("/reviews", companyHandler.AddReview)
	company.POST("/reviews/delete", companyHandler.DeleteReview)

	account := e.Group(domain.PageAccount.URL(), page(domain.PageAccount))
	account.GET("", accountHandler.Show)
	account.POST("/edit", accountHandler.Edit)
	account.POST("/save", accountHandler.Save)
	account.POST("/cancel", accountHandler.Cancel)
	account.POST("/password", accountHandler.ChangePassword)

	admin := e.Group(domain.PageAdmin.URL(), page(domain.PageAdmin))
	admin.GET("", adminHandler.Show)
	admin.POST("/companies", adminHandler.CreateCompany)

	// --- Session routes ---
	e.POST("/login", authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.GET("/logout", authHandler.Logout)
	e.POST("/logout", authHandler.Logout)

	// --- Access API ---
	e.GET("/api/access", accessHandler.Current)
	e.GET("/api/access/navigate", accessHandler.Navigate)

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	probes.RegisterProbes(e, d.Checks)

	return e, nil
}
