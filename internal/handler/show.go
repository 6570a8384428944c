package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
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

// startTimeLayouts are the accepted spellings of a show's start time.
// Values without an offset are taken as UTC.
var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

// startTimeInput is how the new show form spells its default start time.
const startTimeInput = "2006-01-02 15:04:05"

// ShowHandler serves the show list and the new show form.
type ShowHandler struct {
	Shows  *repository.ShowRepo
	Flash  *flash.Store
	Events service.Publisher
	Now    func() time.Time // default start time of the new show form
}

func NewShowHandler(s *repository.ShowRepo, f *flash.Store, p service.Publisher) *ShowHandler {
	if s == nil || f == nil {
		panic("handler: NewShowHandler needs a show repo and a flash store")
	}
	return &ShowHandler{Shows: s, Flash: f, Events: p, Now: time.Now}
}

func (h *ShowHandler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// formatStartTime renders a start time as the list page expects it,
// e.g. 2019-05-21T21:30:00.000Z.
func formatStartTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05") + ".000Z"
}

// ListShows renders every show with its venue and artist.
func (h *ShowHandler) ListShows(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	shows, err := h.Shows.ListAll(ctx)
	if err != nil {
		return err
	}
	rows := make([]echo.Map, 0, len(shows))
	for _, s := range shows {
		rows = append(rows, echo.Map{
			"venue_id":          s.VenueID,
			"venue_name":        s.VenueName,
			"artist_id":         s.ArtistID,
			"artist_name":       s.ArtistName,
			"artist_image_link": s.ArtistImageLink,
			"start_time":        formatStartTime(s.StartTime),
		})
	}
	return c.Render(http.StatusOK, "pages/shows", echo.Map{"shows": rows})
}

// CreateShowForm renders the show form with the start time set to now.
func (h *ShowHandler) CreateShowForm(c echo.Context) error {
	form := view.ShowForm{StartTime: h.now().UTC().Format(startTimeInput)}
	return c.Render(http.StatusOK, "forms/new_show", echo.Map{"form": form})
}

// CreateShow inserts the submitted show.  The referenced artist and venue
// are checked by the database's foreign keys.
func (h *ShowHandler) CreateShow(c echo.Context) error {
	form := formParams(c)

	s, err := showFromForm(form.Get("artist_id"), form.Get("venue_id"), form.Get("start_time"))
	if err == nil {
		ctx, cancel := dbContext(c)
		defer cancel()
		err = h.Shows.Create(ctx, &s)
		if err != nil {
			c.Logger().Errorf("create show: %v", err)
			err = errors.New(describeDBError(err))
		}
	}
	if err != nil {
		h.Flash.Add(c, flash.Error, "An error occurred. Show could not be listed. Error message: "+err.Error())
		return c.Redirect(http.StatusSeeOther, "/")
	}
	publish(c, h.Events, queue.ActivityEvent{
		Kind: queue.ShowCreated, EntityID: s.ID,
		VenueID: s.VenueID, ArtistID: s.ArtistID, StartTime: formatStartTime(s.StartTime),
	})
	h.Flash.Add(c, flash.Info, "Show was successfully listed!")
	return c.Redirect(http.StatusSeeOther, "/")
}

func showFromForm(artistID, venueID, start string) (model.Show, error) {
	var s model.Show
	aid, err := strconv.ParseUint(strings.TrimSpace(artistID), 10, 64)
	if err != nil {
		return s, fmt.Errorf("invalid artist id %q", artistID)
	}
	vid, err := strconv.ParseUint(strings.TrimSpace(venueID), 10, 64)
	if err != nil {
		return s, fmt.Errorf("invalid venue id %q", venueID)
	}
	t, err := parseStartTime(start)
	if err != nil {
		return s, err
	}
	return model.Show{ArtistID: aid, VenueID: vid, StartTime: t}, nil
}

func parseStartTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid start time %q", v)
}
