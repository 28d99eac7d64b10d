package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskpilot/internal/tools"
)

// ToolCard is the catalog entry returned for each registered tool.
type ToolCard struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToolsHandler lists the fixed tool registry.
type ToolsHandler struct {
	Registry *tools.Registry
}

func (h *ToolsHandler) Register(g *echo.Group) {
	g.GET("/tools", h.list)
}

func (h *ToolsHandler) list(c echo.Context) error {
	catalog := make([]ToolCard, 0)
	for _, t := range h.Registry.List() {
		catalog = append(catalog, ToolCard{Name: t.Name(), Description: t.Description()})
	}
	return c.JSON(http.StatusOK, catalog)
}
