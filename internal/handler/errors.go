package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders the 404 and 500 pages for browser requests.  Other
// status codes, DELETE requests and clients asking for JSON fall back to
// echo's default JSON error body.
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		}
		if code >= http.StatusInternalServerError {
			c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		}

		var page string
		switch code {
		case http.StatusNotFound:
			page = "errors/404"
		case http.StatusInternalServerError:
			page = "errors/500"
		}
		if page == "" || wantsJSON(c) {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}
		if rerr := c.Render(code, page, nil); rerr != nil {
			c.Logger().Errorf("render %s: %v", page, rerr)
			_ = c.NoContent(code)
		}
	}
}

func wantsJSON(c echo.Context) bool {
	r := c.Request()
	return r.Method == http.MethodDelete ||
		strings.Contains(r.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
