package server

import (
	"embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed web/index.html
var webFS embed.FS

// registerUI serves the single-page UI. Run history lives only in the
// browser tab; the backend stays stateless.
func registerUI(e *echo.Echo) {
	e.GET("/", func(c echo.Context) error {
		page, err := webFS.ReadFile("web/index.html")
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "ui not bundled")
		}
		return c.HTMLBlob(http.StatusOK, page)
	})
}
