package view

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/flash"
	"github.com/iliyamo/fyyur/internal/model"
)

func newTestRenderer(t *testing.T) (*Renderer, *flash.Store) {
	t.Helper()
	store := flash.NewStore("test-secret", time.Minute)
	r, err := NewRenderer(store)
	require.NoError(t, err)
	return r, store
}

func render(t *testing.T, r *Renderer, name string, data interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, data, nil))
	return buf.String()
}

func TestNewRendererParsesEveryPage(t *testing.T) {
	r, _ := newTestRenderer(t)
	for _, name := range []string{
		"pages/home", "pages/venues", "pages/search_venues", "pages/show_venue",
		"pages/artists", "pages/search_artists", "pages/show_artist", "pages/shows",
		"forms/new_venue", "forms/edit_venue", "forms/new_artist", "forms/edit_artist", "forms/new_show",
		"errors/404", "errors/500",
	} {
		assert.Contains(t, r.pages, name)
	}
	assert.NotContains(t, r.pages, "layouts/main")
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, _ := newTestRenderer(t)
	assert.Error(t, r.Render(&bytes.Buffer{}, "pages/nope", nil, nil))
}

func TestRenderVenueForm(t *testing.T) {
	r, _ := newTestRenderer(t)
	desc := "We are on the lookout for a local artist to play every two weeks."
	form := VenueFormFrom(&model.Venue{
		Name: "The Musical Hop", State: "CA", Genres: []string{"Jazz", "Folk"},
		Website: "https://www.themusicalhop.com", SeekingTalent: true, SeekingDescription: &desc,
	})
	out := render(t, r, "forms/edit_venue", map[string]interface{}{
		"form":  form,
		"venue": map[string]interface{}{"id": 1, "name": "The Musical Hop"},
	})
	assert.Contains(t, out, `action="/venues/1/edit"`)
	assert.Contains(t, out, `<option value="CA" selected>`)
	assert.Contains(t, out, `<option value="Folk" selected>`)
	assert.Contains(t, out, `<option value="Blues">`)
	assert.Contains(t, out, `value="https://www.themusicalhop.com"`)
	assert.Contains(t, out, `value="y" checked`)
	assert.Contains(t, out, desc)
}

func TestRenderEscapesUserInput(t *testing.T) {
	r, _ := newTestRenderer(t)
	out := render(t, r, "pages/search_venues", map[string]interface{}{
		"search_term": "<script>",
		"results":     map[string]interface{}{"count": 0, "data": []interface{}{}},
	})
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderPopsFlashes(t *testing.T) {
	r, store := newTestRenderer(t)
	e := echo.New()

	// Request one adds a message.
	rec := httptest.NewRecorder()
	store.Add(e.NewContext(httptest.NewRequest(http.MethodPost, "/venues/create", nil), rec), flash.Info,
		"Venue The Musical Hop was successfully listed!")
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	// Request two renders it once.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec2 := httptest.NewRecorder()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "pages/home", nil, e.NewContext(req, rec2)))
	assert.Contains(t, buf.String(), `<div class="alert alert-info" role="alert">Venue The Musical Hop was successfully listed!</div>`)
}

func TestRenderHighlightsNavbar(t *testing.T) {
	r, _ := newTestRenderer(t)
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/artists", nil), httptest.NewRecorder())
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "pages/artists", map[string]interface{}{"artists": []interface{}{}}, c))
	assert.Contains(t, buf.String(), `<a href="/artists" class="active">Artists</a>`)
	assert.Contains(t, buf.String(), "No artists yet.")
}

func TestFormatDatetime(t *testing.T) {
	ts := time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)
	assert.Equal(t, "Tue 05, 21, 2019 9:30PM", FormatDatetime(ts))
	assert.Equal(t, "Tuesday May, 21, 2019 at 9:30PM", FormatDatetime(ts, "full"))
	assert.Equal(t, "Tuesday May, 21, 2019 at 9:30PM", FormatDatetime("2019-05-21T21:30:00.000Z", "full"))
	assert.Equal(t, "Tue 05, 21, 2019 9:30PM", FormatDatetime("2019-05-21 21:30:00", "medium"))
	assert.Equal(t, "soon", FormatDatetime("soon"))
	assert.Equal(t, "", FormatDatetime((*time.Time)(nil)))
	assert.Equal(t, "", FormatDatetime(42))
}

func TestStaticFS(t *testing.T) {
	f, err := Static().Open("css/main.css")
	require.NoError(t, err)
	f.Close()
}
