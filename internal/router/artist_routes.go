package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/handler"
)

// RegisterArtists registers the artist pages.  Artists cannot be deleted.
func RegisterArtists(e *echo.Echo, h *handler.ArtistHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/artists")
	g.GET("", h.ListArtists)
	g.POST("/search", h.SearchArtists)
	g.GET("/create", h.CreateArtistForm)
	g.POST("/create", h.CreateArtist, limit)
	g.GET("/:id", h.ShowArtist)
	g.GET("/:id/edit", h.EditArtistForm)
	g.POST("/:id/edit", h.EditArtist, limit)
}
