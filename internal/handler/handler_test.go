package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/flash"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/view"
)

var testNow = time.Date(2026, 10, 19, 18, 0, 0, 0, time.UTC)

// recordingPublisher keeps every published event for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.ActivityEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.ActivityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := []string{}
	for _, ev := range p.events {
		out = append(out, ev.Kind)
	}
	return out
}

type fixture struct {
	e      *echo.Echo
	db     *sql.DB
	mock   sqlmock.Sqlmock
	store  *flash.Store
	events *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := flash.NewStore("test-secret", time.Minute)
	r, err := view.NewRenderer(store)
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = r
	e.HTTPErrorHandler = ErrorHandler(e)
	return &fixture{e: e, db: db, mock: mock, store: store, events: &recordingPublisher{}}
}

// call runs h against a request.  A non-nil form is sent url-encoded; id,
// when set, becomes the :id path parameter.
func (f *fixture) call(h echo.HandlerFunc, method, target string, form url.Values, id string) (*httptest.ResponseRecorder, error) {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return rec, h(c)
}

// flashes decodes the flash cookie set on the response.
func (f *fixture) flashes(t *testing.T, rec *httptest.ResponseRecorder) []flash.Message {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == flash.CookieName && ck.Value != "" {
			msgs, err := f.store.Verify(ck.Value)
			require.NoError(t, err)
			return msgs
		}
	}
	return nil
}

func fixedNow() time.Time { return testNow }
