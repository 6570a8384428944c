package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/handler"
)

// RegisterVenues registers the venue pages.  limit guards every request
// that writes (form posts and deletion).
func RegisterVenues(e *echo.Echo, h *handler.VenueHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/venues")
	g.GET("", h.ListVenues)
	g.POST("/search", h.SearchVenues)
	g.GET("/create", h.CreateVenueForm)
	g.POST("/create", h.CreateVenue, limit)
	g.GET("/:id", h.ShowVenue)
	g.DELETE("/:id", h.DeleteVenue, limit)
	g.GET("/:id/edit", h.EditVenueForm)
	g.POST("/:id/edit", h.EditVenue, limit)
}
