// Package handler holds the echo handlers behind the Fyyur pages.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/service"
)

// dbTimeout bounds every repository call made while serving a request.
const dbTimeout = 5 * time.Second

// MySQL error numbers worth translating for users.
const (
	errNoReferencedRow = 1452 // FK violation on insert/update
	errDataTooLong     = 1406
)

// dbContext derives the context used for repository calls.
func dbContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// parseID reads the :id path parameter.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// formParams returns the submitted form, or an empty one when the body
// cannot be parsed.
func formParams(c echo.Context) url.Values {
	form, err := c.FormParams()
	if err != nil {
		c.Logger().Warnf("parse form %s: %v", c.Path(), err)
		return url.Values{}
	}
	return form
}

// requiredFields must be present and non-blank on the venue and artist
// forms.
var requiredFields = []string{"name", "city", "state"}

// missingField reports the first of names that is absent or blank.
func missingField(form url.Values, names ...string) error {
	for _, n := range names {
		if strings.TrimSpace(form.Get(n)) == "" {
			return fmt.Errorf("%s is required", n)
		}
	}
	return nil
}

// checked maps a checkbox posted with value "y" to true; anything else,
// including absence, is false.
func checked(form url.Values, name string) bool {
	return form.Get(name) == "y"
}

// optional maps an empty form value to nil so it is stored as NULL.
func optional(form url.Values, name string) *string {
	v := strings.TrimSpace(form.Get(name))
	if v == "" {
		return nil
	}
	return &v
}

// firstValue returns the first non-empty value among the given field names.
func firstValue(form url.Values, names ...string) string {
	for _, n := range names {
		if v := form.Get(n); v != "" {
			return v
		}
	}
	return ""
}

// describeDBError renders a persistence failure for a flash banner.  The
// raw driver text is kept; foreign key and length violations get a short
// explanation in front of it.
func describeDBError(err error) string {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case errNoReferencedRow:
			return "The referenced artist or venue does not exist. " + err.Error()
		case errDataTooLong:
			return "A value is too long. " + err.Error()
		}
	}
	return err.Error()
}

// publish sends an activity event after a committed write.  Publishing is
// best effort: failures are logged and never reach the user.
func publish(c echo.Context, p service.Publisher, ev queue.ActivityEvent) {
	if p == nil {
		return
	}
	ev.ID = uuid.NewString()
	ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	if err := p.Publish(c.Request().Context(), ev); err != nil {
		c.Logger().Warnf("activity event %s: %v", ev.Kind, err)
	}
}
