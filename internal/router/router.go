// Package router registers the HTTP routes.
package router

import (
	"database/sql"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/view"
)

// RegisterRoutes registers the home page, the health check and the
// embedded static assets.
func RegisterRoutes(e *echo.Echo, db *sql.DB) {
	e.GET("/", handler.Home)
	// Used by load balancers and monitoring to check the database is reachable.
	e.GET("/healthz", handler.Health(db))
	e.StaticFS("/static", view.Static())
}
