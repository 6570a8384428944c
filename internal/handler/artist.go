package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/flash"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/service"
	"github.com/iliyamo/fyyur/internal/view"
)

// ArtistHandler serves the artist pages.
type ArtistHandler struct {
	Artists *repository.ArtistRepo
	Flash   *flash.Store
	Events  service.Publisher
	Now     func() time.Time
}

func NewArtistHandler(a *repository.ArtistRepo, f *flash.Store, p service.Publisher) *ArtistHandler {
	if a == nil || f == nil {
		panic("handler: NewArtistHandler needs an artist repo and a flash store")
	}
	return &ArtistHandler{Artists: a, Flash: f, Events: p, Now: time.Now}
}

func (h *ArtistHandler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// ListArtists renders every artist.
func (h *ArtistHandler) ListArtists(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	artists, err := h.Artists.ListAll(ctx)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/artists", echo.Map{"artists": artists})
}

// SearchArtists renders the artists whose name contains search_term, each
// with its count of upcoming shows.
func (h *ArtistHandler) SearchArtists(c echo.Context) error {
	term := c.FormValue("search_term")

	ctx, cancel := dbContext(c)
	defer cancel()

	found, err := h.Artists.Search(ctx, term, h.now())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/search_artists", echo.Map{
		"results":     echo.Map{"count": len(found), "data": found},
		"search_term": term,
	})
}

// ShowArtist renders one artist with past and upcoming shows.
func (h *ArtistHandler) ShowArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.ErrNotFound
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	a, err := h.Artists.GetByID(ctx, id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		h.Flash.Add(c, flash.Error, "Artist not found")
		return c.Redirect(http.StatusSeeOther, "/")
	}
	if err != nil {
		return err
	}
	past, upcoming, err := h.Artists.ShowsForArtist(ctx, id, h.now())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/show_artist", echo.Map{"artist": artistDetail(a, past, upcoming)})
}

func artistDetail(a *model.Artist, past, upcoming []repository.ArtistShow) echo.Map {
	return echo.Map{
		"id":                   a.ID,
		"name":                 a.Name,
		"genres":               a.Genres,
		"city":                 a.City,
		"state":                a.State,
		"phone":                a.Phone,
		"website":              a.Website,
		"facebook_link":        a.FacebookLink,
		"seeking_venue":        a.SeekingVenue,
		"seeking_description":  a.SeekingDescription,
		"image_link":           a.ImageLink,
		"past_shows":           past,
		"upcoming_shows":       upcoming,
		"past_shows_count":     len(past),
		"upcoming_shows_count": len(upcoming),
	}
}

// artistFromForm reads the artist form.  The website field is called
// website_link on the edit form and website on older clients.
func artistFromForm(form url.Values) model.Artist {
	return model.Artist{
		Name:               strings.TrimSpace(form.Get("name")),
		City:               form.Get("city"),
		State:              form.Get("state"),
		Phone:              form.Get("phone"),
		Genres:             form["genres"],
		FacebookLink:       form.Get("facebook_link"),
		ImageLink:          form.Get("image_link"),
		Website:            firstValue(form, "website_link", "website"),
		SeekingVenue:       checked(form, "seeking_venue"),
		SeekingDescription: optional(form, "seeking_description"),
	}
}

// CreateArtistForm renders an empty artist form.
func (h *ArtistHandler) CreateArtistForm(c echo.Context) error {
	return c.Render(http.StatusOK, "forms/new_artist", echo.Map{"form": view.ArtistForm{}})
}

// CreateArtist inserts the submitted artist and redirects home.
func (h *ArtistHandler) CreateArtist(c echo.Context) error {
	form := formParams(c)
	a := artistFromForm(form)
	if err := missingField(form, requiredFields...); err != nil {
		h.Flash.Add(c, flash.Error, fmt.Sprintf("An error occurred. Artist %s could not be listed. Error message: %s", a.Name, err))
		return c.Redirect(http.StatusSeeOther, "/")
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	if err := h.Artists.Create(ctx, &a); err != nil {
		c.Logger().Errorf("create artist %q: %v", a.Name, err)
		h.Flash.Add(c, flash.Error, fmt.Sprintf("An error occurred. Artist %s could not be listed. Error message: %s", a.Name, describeDBError(err)))
		return c.Redirect(http.StatusSeeOther, "/")
	}
	publish(c, h.Events, queue.ActivityEvent{Kind: queue.ArtistCreated, EntityID: a.ID, Name: a.Name})
	h.Flash.Add(c, flash.Info, fmt.Sprintf("Artist %s was successfully listed!", a.Name))
	return c.Redirect(http.StatusSeeOther, "/")
}

// EditArtistForm renders the edit form populated from the stored artist.
func (h *ArtistHandler) EditArtistForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.ErrNotFound
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	a, err := h.Artists.GetByID(ctx, id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "forms/edit_artist", echo.Map{
		"form":   view.ArtistFormFrom(a),
		"artist": echo.Map{"id": a.ID, "name": a.Name},
	})
}

// EditArtist overwrites every mutable field of the artist and redirects to
// its page.
func (h *ArtistHandler) EditArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.ErrNotFound
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	if _, err := h.Artists.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return echo.ErrNotFound
		}
		return err
	}

	form := formParams(c)
	a := artistFromForm(form)
	a.ID = id
	dest := fmt.Sprintf("/artists/%d", id)
	if err := missingField(form, requiredFields...); err != nil {
		h.Flash.Add(c, flash.Error, fmt.Sprintf("An error occurred. Artist %s could not be updated. Error message: %s", a.Name, err))
		return c.Redirect(http.StatusSeeOther, dest)
	}
	if err := h.Artists.Update(ctx, &a); err != nil {
		c.Logger().Errorf("update artist %d: %v", id, err)
		h.Flash.Add(c, flash.Error, fmt.Sprintf("An error occurred. Artist %s could not be updated. Error message: %s", a.Name, describeDBError(err)))
		return c.Redirect(http.StatusSeeOther, dest)
	}
	publish(c, h.Events, queue.ActivityEvent{Kind: queue.ArtistUpdated, EntityID: id, Name: a.Name})
	h.Flash.Add(c, flash.Info, fmt.Sprintf("Artist %s was successfully updated!", a.Name))
	return c.Redirect(http.StatusSeeOther, dest)
}
