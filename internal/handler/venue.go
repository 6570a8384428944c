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

// VenueHandler serves the venue pages and the venue delete endpoint.
type VenueHandler struct {
	Venues *repository.VenueRepo
	Flash  *flash.Store
	Events service.Publisher
	Now    func() time.Time // wall clock separating past and upcoming shows
}

func NewVenueHandler(v *repository.VenueRepo, f *flash.Store, p service.Publisher) *VenueHandler {
	if v == nil || f == nil {
		panic("handler: NewVenueHandler needs a venue repo and a flash store")
	}
	return &VenueHandler{Venues: v, Flash: f, Events: p, Now: time.Now}
}

func (h *VenueHandler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// ListVenues renders every venue grouped by city and state.
func (h *VenueHandler) ListVenues(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	areas, err := h.Venues.ListByArea(ctx, h.now())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/venues", echo.Map{"areas": areas})
}

// SearchVenues renders the venues whose name contains search_term.
func (h *VenueHandler) SearchVenues(c echo.Context) error {
	term := c.FormValue("search_term")

	ctx, cancel := dbContext(c)
	defer cancel()

	found, err := h.Venues.Search(ctx, term, h.now())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/search_venues", echo.Map{
		"results":     echo.Map{"count": len(found), "data": found},
		"search_term": term,
	})
}

// ShowVenue renders one venue with its past and upcoming shows.  An
// unknown id flashes an error and sends the user home.
func (h *VenueHandler) ShowVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.ErrNotFound
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	v, err := h.Venues.GetByID(ctx, id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		h.Flash.Add(c, flash.Error, "Venue not found")
		return c.Redirect(http.StatusSeeOther, "/")
	}
	if err != nil {
		return err
	}
	past, upcoming, err := h.Venues.ShowsForVenue(ctx, id, h.now())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/show_venue", echo.Map{"venue": venueDetail(v, past, upcoming)})
}

func venueDetail(v *model.Venue, past, upcoming []repository.VenueShow) echo.Map {
	return echo.Map{
		"id":                   v.ID,
		"name":                 v.Name,
		"genres":               v.Genres,
		"address":              v.Address,
		"city":                 v.City,
		"state":                v.State,
		"phone":                v.Phone,
		"website":              v.Website,
		"facebook_link":        v.FacebookLink,
		"seeking_talent":       v.SeekingTalent,
		"seeking_description":  v.SeekingDescription,
		"image_link":           v.ImageLink,
		"past_shows":           past,
		"upcoming_shows":       upcoming,
		"past_shows_count":     len(past),
		"upcoming_shows_count": len(upcoming),
	}
}

// venueFromForm reads the venue form.  genres is multi-valued;
// seeking_talent is true only for the checkbox value "y"; an empty
// seeking_description is stored as NULL.
func venueFromForm(form url.Values) model.Venue {
	return model.Venue{
		Name:               strings.TrimSpace(form.Get("name")),
		City:               form.Get("city"),
		State:              form.Get("state"),
		Address:            form.Get("address"),
		Phone:              form.Get("phone"),
		Genres:             form["genres"],
		FacebookLink:       form.Get("facebook_link"),
		ImageLink:          form.Get("image_link"),
		Website:            firstValue(form, "website_link", "website"),
		SeekingTalent:      checked(form, "seeking_talent"),
		SeekingDescription: optional(form, "seeking_description"),
	}
}

// CreateVenueForm renders an empty venue form.
func (h *VenueHandler) CreateVenueForm(c echo.Context) error {
	return c.Render(http.StatusOK, "forms/new_venue", echo.Map{"form": view.VenueForm{}})
}

// CreateVenue inserts the submitted venue and redirects home with a flash
// describing the outcome.
func (h *VenueHandler) CreateVenue(c echo.Context) error {
	form := formParams(c)
	v := venueFromForm(form)
	if err := missingField(form, requiredFields...); err != nil {
		h.Flash.Add(c, flash.Error, fmt.Sprintf("An error occurred. Venue %s could not be listed. %s", v.Name, err))
		return c.Redirect(http.StatusSeeOther, "/")
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	if err := h.Venues.Create(ctx, &v); err != nil {
		c.Logger().Errorf("create venue %q: %v", v.Name, err)
		h.Flash.Add(c, flash.Error, fmt.Sprintf("An error occurred. Venue %s could not be listed. %s", v.Name, describeDBError(err)))
		return c.Redirect(http.StatusSeeOther, "/")
	}
	publish(c, h.Events, queue.ActivityEvent{Kind: queue.VenueCreated, EntityID: v.ID, Name: v.Name})
	h.Flash.Add(c, flash.Info, fmt.Sprintf("Venue %s was successfully listed!", v.Name))
	return c.Redirect(http.StatusSeeOther, "/")
}

// EditVenueForm renders the edit form populated from the stored venue.
func (h *VenueHandler) EditVenueForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.ErrNotFound
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	v, err := h.Venues.GetByID(ctx, id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "forms/edit_venue", echo.Map{
		"form":  view.VenueFormFrom(v),
		"venue": echo.Map{"id": v.ID, "name": v.Name},
	})
}

// EditVenue overwrites the venue with the submitted form and redirects to
// its page.
func (h *VenueHandler) EditVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.ErrNotFound
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	if _, err := h.Venues.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return echo.ErrNotFound
		}
		return err
	}

	form := formParams(c)
	v := venueFromForm(form)
	v.ID = id
	dest := fmt.Sprintf("/venues/%d", id)
	if err := missingField(form, requiredFields...); err != nil {
		h.Flash.Add(c, flash.Error, fmt.Sprintf("An error occurred. Venue %s could not be updated. %s", v.Name, err))
		return c.Redirect(http.StatusSeeOther, dest)
	}
	if err := h.Venues.Update(ctx, &v); err != nil {
		c.Logger().Errorf("update venue %d: %v", id, err)
		h.Flash.Add(c, flash.Error, fmt.Sprintf("An error occurred. Venue %s could not be updated. %s", v.Name, describeDBError(err)))
		return c.Redirect(http.StatusSeeOther, dest)
	}
	publish(c, h.Events, queue.ActivityEvent{Kind: queue.VenueUpdated, EntityID: id, Name: v.Name})
	h.Flash.Add(c, flash.Info, fmt.Sprintf("Venue %s was successfully updated!", v.Name))
	return c.Redirect(http.StatusSeeOther, dest)
}

// DeleteVenue removes a venue and its shows.  It answers JSON because the
// request comes from a script on the venue page.
func (h *VenueHandler) DeleteVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Venue not found"})
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	err = h.Venues.Delete(ctx, id)
	switch {
	case errors.Is(err, repository.ErrVenueNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Venue not found"})
	case err != nil:
		c.Logger().Errorf("delete venue %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "An error occurred while deleting the venue",
			"error":   err.Error(),
		})
	}
	publish(c, h.Events, queue.ActivityEvent{Kind: queue.VenueDeleted, EntityID: id})
	return c.JSON(http.StatusOK, echo.Map{"message": "Venue deleted successfully"})
}
