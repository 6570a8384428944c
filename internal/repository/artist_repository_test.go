package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/model"
)

func newMockArtistRepo(t *testing.T) (*ArtistRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewArtistRepo(db), mock
}

func TestArtistListAll(t *testing.T) {
	repo, mock := newMockArtistRepo(t)
	mock.ExpectQuery(`SELECT id, name FROM artists ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(4, "Guns N Petals").
			AddRow(5, "Matt Quevedo"))

	out, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []ArtistSummary{{ID: 4, Name: "Guns N Petals"}, {ID: 5, Name: "Matt Quevedo"}}, out)
}

func TestArtistSearchCarriesUpcomingCount(t *testing.T) {
	repo, mock := newMockArtistRepo(t)
	mock.ExpectQuery(`WHERE LOWER\(a.name\) LIKE \?`).
		WithArgs(testNow, "%a%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "num_upcoming_shows"}).
			AddRow(4, "Guns N Petals", 0).
			AddRow(5, "Matt Quevedo", 0).
			AddRow(6, "The Wild Sax Band", 3))

	out, err := repo.Search(context.Background(), "A", testNow)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, 3, out[2].NumUpcomingShows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtistGetByIDNullDescription(t *testing.T) {
	repo, mock := newMockArtistRepo(t)
	cols := []string{"id", "name", "city", "state", "phone", "genres", "image_link", "facebook_link",
		"website", "seeking_venue", "seeking_description"}
	mock.ExpectQuery(`FROM artists WHERE id = \?`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(5, "Matt Quevedo", "New York", "NY", "300-400-5000",
			"Jazz", "https://img", "https://fb", "", false, nil))

	a, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jazz"}, a.Genres)
	assert.False(t, a.SeekingVenue)
	assert.Nil(t, a.SeekingDescription)
}

func TestArtistGetByIDNotFound(t *testing.T) {
	repo, mock := newMockArtistRepo(t)
	mock.ExpectQuery(`FROM artists WHERE id = \?`).WithArgs(99).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrArtistNotFound)
}

func TestShowsForArtistPartitionsAroundNow(t *testing.T) {
	repo, mock := newMockArtistRepo(t)
	mock.ExpectQuery(`JOIN venues v ON v.id = s.venue_id\s+WHERE s.artist_id = \?`).
		WithArgs(6).
		WillReturnRows(sqlmock.NewRows([]string{"venue_id", "name", "image_link", "start_time"}).
			AddRow(3, "Park Square Live Music & Coffee", "https://img/3", testNow.Add(-time.Hour)).
			AddRow(3, "Park Square Live Music & Coffee", "https://img/3", testNow.Add(time.Hour)))

	past, upcoming, err := repo.ShowsForArtist(context.Background(), 6, testNow)
	require.NoError(t, err)
	assert.Len(t, past, 1)
	assert.Len(t, upcoming, 1)
	assert.Equal(t, "Park Square Live Music & Coffee", upcoming[0].VenueName)
}

func TestArtistCreateStoresNullDescription(t *testing.T) {
	repo, mock := newMockArtistRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO artists`).
		WithArgs("The Wild Sax Band", "San Francisco", "CA", "432-325-5432", "Jazz, Classical",
			"", "", "", false, nil).
		WillReturnResult(sqlmock.NewResult(6, 1))
	mock.ExpectCommit()

	a := &model.Artist{Name: "The Wild Sax Band", City: "San Francisco", State: "CA",
		Phone: "432-325-5432", Genres: []string{"Jazz", "Classical"}}
	require.NoError(t, repo.Create(context.Background(), a))
	assert.Equal(t, uint64(6), a.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtistUpdate(t *testing.T) {
	repo, mock := newMockArtistRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE artists`).
		WithArgs("Guns N Roses", "Seattle", "WA", "1", "Rock n Roll", "i", "f", "w", true, nil, 4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), &model.Artist{
		ID: 4, Name: "Guns N Roses", City: "Seattle", State: "WA", Phone: "1",
		Genres: []string{"Rock n Roll"}, ImageLink: "i", FacebookLink: "f", Website: "w", SeekingVenue: true,
	}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
