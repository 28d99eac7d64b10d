package server

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"taskpilot/internal/agent"
)

// RunRequest is the only inbound payload: the free-text task to process.
type RunRequest struct {
	Task string `json:"task"`
}

// RunsHandler exposes the task pipeline over HTTP.
type RunsHandler struct {
	Orch   *agent.Orchestrator
	Logger *log.Logger
}

func (h *RunsHandler) Register(g *echo.Group) {
	g.POST("/runs", h.create)
}

// create runs one task. A successful run (including the heuristic fallback
// path) returns 200; a run aborted by an upstream planning or summarizing
// failure returns 502 with the same outcome shape.
func (h *RunsHandler) create(c echo.Context) error {
	var req RunRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, agent.NewFailedOutcome(time.Now(), "invalid request body"))
	}
	task := strings.TrimSpace(req.Task)
	if task == "" {
		h.Logger.Printf("rejected run with empty task from %s", c.RealIP())
		return c.JSON(http.StatusBadRequest, agent.NewFailedOutcome(time.Now(), "task is required"))
	}

	outcome := h.Orch.Run(c.Request().Context(), task)
	status := http.StatusOK
	if !outcome.Success {
		status = http.StatusBadGateway
	}
	return c.JSON(status, outcome)
}
