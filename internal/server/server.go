package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taskpilot/config"
	"taskpilot/internal/agent"
	"taskpilot/internal/telemetry"
	"taskpilot/internal/tools"
)

// New builds the echo instance with all routes registered.
func New(orch *agent.Orchestrator, registry *tools.Registry) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	registerUI(e)

	api := e.Group("/api")
	rh := &RunsHandler{Orch: orch, Logger: log.New(log.Writer(), "[RUNS] ", log.LstdFlags)}
	rh.Register(api)
	th := &ToolsHandler{Registry: registry}
	th.Register(api)

	return e
}

// Run wires the whole application from configuration and serves it.
func Run(cfg *config.Config) error {
	registry := tools.NewRegistry(
		tools.NewSearchTool(cfg.Search.Endpoint, cfg.Search.UserAgent, cfg.Search.Timeout),
		tools.NewCalculatorTool(),
		tools.NewKnowledgeBaseTool(),
	)
	tele := telemetry.NewTelemetry()
	orch := agent.NewOrchestrator(cfg, registry, tele)

	e := New(orch, registry)
	log.Printf("listening on %s", cfg.Server.Listen)
	return e.Start(cfg.Server.Listen)
}
