package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/model"
)

var testNow = time.Date(2026, 10, 19, 18, 0, 0, 0, time.UTC)

func newMockVenueRepo(t *testing.T) (*VenueRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewVenueRepo(db), mock
}

func TestVenueListByAreaGroupsByCityAndState(t *testing.T) {
	repo, mock := newMockVenueRepo(t)

	rows := sqlmock.NewRows([]string{"id", "name", "city", "state", "num_upcoming_shows"}).
		AddRow(2, "The Dueling Pianos Bar", "New York", "NY", 0).
		AddRow(1, "The Musical Hop", "San Francisco", "CA", 0).
		AddRow(3, "Park Square Live Music & Coffee", "San Francisco", "CA", 1)
	mock.ExpectQuery(`FROM venues v\s+ORDER BY v.state, v.city, v.id`).
		WithArgs(testNow).
		WillReturnRows(rows)

	areas, err := repo.ListByArea(context.Background(), testNow)
	require.NoError(t, err)
	require.Len(t, areas, 2)

	assert.Equal(t, "New York", areas[0].City)
	assert.Equal(t, "NY", areas[0].State)
	assert.Len(t, areas[0].Venues, 1)

	assert.Equal(t, "San Francisco", areas[1].City)
	require.Len(t, areas[1].Venues, 2)
	assert.Equal(t, VenueSummary{ID: 1, Name: "The Musical Hop"}, areas[1].Venues[0])
	assert.Equal(t, 1, areas[1].Venues[1].NumUpcomingShows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueListByAreaEmpty(t *testing.T) {
	repo, mock := newMockVenueRepo(t)
	mock.ExpectQuery(`FROM venues v`).WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "state", "num_upcoming_shows"}))

	areas, err := repo.ListByArea(context.Background(), testNow)
	require.NoError(t, err)
	assert.NotNil(t, areas)
	assert.Empty(t, areas)
}

func TestVenueSearchUsesLowercasedPattern(t *testing.T) {
	repo, mock := newMockVenueRepo(t)
	mock.ExpectQuery(`WHERE LOWER\(v.name\) LIKE \?`).
		WithArgs(testNow, "%hop%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "num_upcoming_shows"}).
			AddRow(1, "The Musical Hop", 0))

	out, err := repo.Search(context.Background(), "Hop", testNow)
	require.NoError(t, err)
	assert.Equal(t, []VenueSummary{{ID: 1, Name: "The Musical Hop"}}, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueGetByID(t *testing.T) {
	repo, mock := newMockVenueRepo(t)
	cols := []string{"id", "name", "city", "state", "address", "phone", "image_link", "facebook_link",
		"genres", "website", "seeking_talent", "seeking_description"}
	mock.ExpectQuery(`FROM venues WHERE id = \?`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, "The Musical Hop", "San Francisco", "CA",
			"1015 Folsom Street", "123-123-1234", "https://img", "https://fb", "Jazz, Reggae, Swing",
			"https://www.themusicalhop.com", true, "Looking for locals"))

	v, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jazz", "Reggae", "Swing"}, v.Genres)
	assert.True(t, v.SeekingTalent)
	require.NotNil(t, v.SeekingDescription)
	assert.Equal(t, "Looking for locals", *v.SeekingDescription)
}

func TestVenueGetByIDNotFound(t *testing.T) {
	repo, mock := newMockVenueRepo(t)
	mock.ExpectQuery(`FROM venues WHERE id = \?`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestShowsForVenuePartitionsAroundNow(t *testing.T) {
	repo, mock := newMockVenueRepo(t)
	rows := sqlmock.NewRows([]string{"artist_id", "name", "image_link", "start_time"}).
		AddRow(4, "Guns N Petals", "https://img/4", testNow.Add(-48*time.Hour)).
		AddRow(5, "Matt Quevedo", "https://img/5", testNow).
		AddRow(6, "The Wild Sax Band", "https://img/6", testNow.Add(72*time.Hour))
	mock.ExpectQuery(`JOIN artists a ON a.id = s.artist_id\s+WHERE s.venue_id = \?`).
		WithArgs(1).
		WillReturnRows(rows)

	past, upcoming, err := repo.ShowsForVenue(context.Background(), 1, testNow)
	require.NoError(t, err)
	require.Len(t, past, 1)
	assert.Equal(t, uint64(4), past[0].ArtistID)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Matt Quevedo", upcoming[0].ArtistName)
	assert.Equal(t, uint64(6), upcoming[1].ArtistID)
}

func TestVenueCreateCommits(t *testing.T) {
	repo, mock := newMockVenueRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO venues`).
		WithArgs("The Musical Hop", "San Francisco", "CA", "1015 Folsom Street", "123-123-1234",
			"", "", "Jazz, Swing", "", false, nil).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	v := &model.Venue{
		Name: "The Musical Hop", City: "San Francisco", State: "CA",
		Address: "1015 Folsom Street", Phone: "123-123-1234", Genres: []string{"Jazz", "Swing"},
	}
	require.NoError(t, repo.Create(context.Background(), v))
	assert.Equal(t, uint64(9), v.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueCreateRollsBackOnError(t *testing.T) {
	repo, mock := newMockVenueRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO venues`).WillReturnError(errors.New("Data too long for column 'phone'"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &model.Venue{Name: "x"})
	assert.EqualError(t, err, "Data too long for column 'phone'")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueUpdate(t *testing.T) {
	repo, mock := newMockVenueRepo(t)
	desc := "Weekly residency"
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE venues`).
		WithArgs("Hop", "SF", "CA", "addr", "555", "img", "fb", "Folk", "web", true, desc, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), &model.Venue{
		ID: 3, Name: "Hop", City: "SF", State: "CA", Address: "addr", Phone: "555", ImageLink: "img",
		FacebookLink: "fb", Genres: []string{"Folk"}, Website: "web", SeekingTalent: true, SeekingDescription: &desc,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueDelete(t *testing.T) {
	repo, mock := newMockVenueRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM venues WHERE id = \?`).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueDeleteMissing(t *testing.T) {
	repo, mock := newMockVenueRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM venues WHERE id = \?`).WithArgs(77).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Delete(context.Background(), 77), ErrVenueNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueDeleteRowsAffectedError(t *testing.T) {
	repo, mock := newMockVenueRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM venues WHERE id = \?`).WithArgs(4).
		WillReturnResult(sqlmock.NewErrorResult(errors.New("rows affected unsupported")))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 4)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrVenueNotFound)
	assert.Contains(t, err.Error(), "rows affected unsupported")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, "%music%", likePattern("Music"))
	assert.Equal(t, `%100\%%`, likePattern("100%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
}
