package service

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lobocrea/supaportal/internal/handlers"
	"github.com/lobocrea/supaportal/internal/metrics"
	"github.com/lobocrea/supaportal/internal/middleware"
	"github.com/lobocrea/supaportal/internal/session"
	"github.com/lobocrea/supaportal/internal/supabase"
	"github.com/prometheus/client_golang/prometheus"
)

// Service wires the hosted-service client, session manager and handlers
// together and owns route registration.
type Service struct {
	client           *supabase.Client
	sessions         *session.Manager
	collector        *metrics.Collector
	config           *Config
	authHandler      *handlers.AuthHandler
	dashboardHandler *handlers.DashboardHandler
}

func New(client *supabase.Client, sessions *session.Manager, collector *metrics.Collector, config *Config) *Service {
	return &Service{
		client:           client,
		sessions:         sessions,
		collector:        collector,
		config:           config,
		authHandler:      handlers.NewAuthHandler(client, sessions, collector),
		dashboardHandler: handlers.NewDashboardHandler(client),
	}
}

// RegisterRoutes sets up all routes. Health and metrics stay outside the
// session middleware; everything else goes through the observer and guard.
func (s *Service) RegisterRoutes(e *echo.Echo, gatherer prometheus.Gatherer) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(gatherer)))

	// The session observer mirrors hosted auth state into request context;
	// the guard then applies the routing rule before any handler runs.
	observed := e.Group("")
	observed.Use(middleware.LoadSession(s.sessions, s.client, s.collector))
	observed.Use(middleware.Guard())

	observed.GET("/", s.handleHome)

	observed.GET("/login", s.authHandler.HandleLoginPage)
	observed.POST("/login", s.authHandler.HandleLogin)
	observed.GET("/register", s.authHandler.HandleRegisterPage)
	observed.POST("/register", s.authHandler.HandleRegister)

	observed.GET("/dashboard", s.dashboardHandler.HandleDashboard)

	// Logout works with or without a live session.
	observed.POST("/logout", s.authHandler.HandleLogout)
	observed.GET("/logout", s.authHandler.HandleLogout)
}

// handleHome only exists so "/" is a registered route; the guard always
// redirects it before this runs.
func (s *Service) handleHome(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/login")
}
