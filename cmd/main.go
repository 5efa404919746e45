package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/lobocrea/supaportal/internal/metrics"
	"github.com/lobocrea/supaportal/internal/session"
	"github.com/lobocrea/supaportal/internal/supabase"
	"github.com/lobocrea/supaportal/service"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

func main() {
	// slog is configured in slog.go via init()

	config, err := service.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	client := supabase.New(supabase.Config{
		URL:     config.Supabase.URL,
		AnonKey: config.Supabase.AnonKey,
	})

	sessions := session.NewManager(config.SessionSecret, config.Environment == "production")

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())

	// Request logging with a ULID request id so log lines from one request
	// can be correlated.
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			requestID := ulid.Make().String()
			c.Set("request_id", requestID)

			err := next(c)

			slog.Info("request handled",
				"request_id", requestID,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration", time.Since(start),
				"ip", c.RealIP(),
			)

			return err
		}
	})

	// Security headers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			c.Response().Header().Set("X-Content-Type-Options", "nosniff")
			c.Response().Header().Set("X-Frame-Options", "DENY")
			return next(c)
		}
	})

	e.Static("/public", "public")

	svc := service.New(client, sessions, collector, config)
	svc.RegisterRoutes(e, registry)

	addr := fmt.Sprintf(":%s", config.Port)

	slog.Info("member portal starting",
		"url", fmt.Sprintf("http://localhost:%s", config.Port),
		"environment", config.Environment,
		"supabase_url", config.Supabase.URL,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
