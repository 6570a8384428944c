package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/flash"
)

// RejectSubmission answers a throttled request.  Form posts get an error
// flash and a redirect home; DELETE requests keep a JSON body so the page
// script can show the message.
func RejectSubmission(store *flash.Store) func(c echo.Context, retryAfter int) error {
	return func(c echo.Context, retryAfter int) error {
		msg := fmt.Sprintf("Too many submissions. Please try again in %d seconds.", retryAfter)
		if wantsJSON(c) {
			return c.JSON(http.StatusTooManyRequests, echo.Map{"message": msg})
		}
		store.Add(c, flash.Error, msg)
		return c.Redirect(http.StatusSeeOther, "/")
	}
}
