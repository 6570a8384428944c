package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// ArtistSummary is an artist as it appears in listings and search results.
// NumUpcomingShows is only filled in by Search.
type ArtistSummary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// ArtistShow is a show on an artist page, joined with its venue.
type ArtistShow struct {
	VenueID        uint64    `json:"venue_id"`
	VenueName      string    `json:"venue_name"`
	VenueImageLink string    `json:"venue_image_link"`
	StartTime      time.Time `json:"start_time"`
}

// ArtistRepo manages persistence for artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the given DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// ListAll returns every artist ordered by id.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]ArtistSummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM artists ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ArtistSummary{}
	for rows.Next() {
		var a ArtistSummary
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Search returns artists whose name contains term, ignoring case, each
// with the number of its shows starting after now.
func (r *ArtistRepo) Search(ctx context.Context, term string, now time.Time) ([]ArtistSummary, error) {
	const q = `SELECT a.id, a.name,
	           (SELECT COUNT(*) FROM shows s WHERE s.artist_id = a.id AND s.start_time > ?) AS num_upcoming_shows
	           FROM artists a
	           WHERE LOWER(a.name) LIKE ?
	           ORDER BY a.id`
	rows, err := r.db.QueryContext(ctx, q, now, likePattern(term))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ArtistSummary{}
	for rows.Next() {
		var a ArtistSummary
		if err := rows.Scan(&a.ID, &a.Name, &a.NumUpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID retrieves an artist by its ID.  It returns ErrArtistNotFound if
// there is no matching row.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	const q = `SELECT id, name, city, state, phone, genres, image_link, facebook_link,
	           website, seeking_venue, seeking_description
	           FROM artists WHERE id = ?`
	var (
		a      model.Artist
		genres string
		desc   sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &genres, &a.ImageLink, &a.FacebookLink,
		&a.Website, &a.SeekingVenue, &desc,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	a.Genres = model.SplitGenres(genres)
	a.SeekingDescription = stringPtr(desc)
	return &a, nil
}

// ShowsForArtist returns the artist's shows joined with their venues,
// split into past (before now) and upcoming (at or after now).
func (r *ArtistRepo) ShowsForArtist(ctx context.Context, artistID uint64, now time.Time) (past, upcoming []ArtistShow, err error) {
	const q = `SELECT s.venue_id, v.name, v.image_link, s.start_time
	           FROM shows s
	           JOIN venues v ON v.id = s.venue_id
	           WHERE s.artist_id = ?
	           ORDER BY s.start_time ASC, s.id ASC`
	rows, err := r.db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	past, upcoming = []ArtistShow{}, []ArtistShow{}
	for rows.Next() {
		var s ArtistShow
		if err := rows.Scan(&s.VenueID, &s.VenueName, &s.VenueImageLink, &s.StartTime); err != nil {
			return nil, nil, err
		}
		if model.IsUpcoming(s.StartTime, now) {
			upcoming = append(upcoming, s)
		} else {
			past = append(past, s)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return past, upcoming, nil
}

// Create inserts a new artist and assigns the generated ID back to a.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	const q = `INSERT INTO artists (name, city, state, phone, genres, image_link, facebook_link,
	           website, seeking_venue, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q,
			a.Name, a.City, a.State, a.Phone, model.JoinGenres(a.Genres), a.ImageLink, a.FacebookLink,
			a.Website, a.SeekingVenue, nullString(a.SeekingDescription),
		)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		a.ID = uint64(id)
		return nil
	})
}

// Update overwrites every mutable column of the artist identified by a.ID.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	const q = `UPDATE artists
	           SET name = ?, city = ?, state = ?, phone = ?, genres = ?, image_link = ?,
	               facebook_link = ?, website = ?, seeking_venue = ?, seeking_description = ?
	           WHERE id = ?`
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, q,
			a.Name, a.City, a.State, a.Phone, model.JoinGenres(a.Genres), a.ImageLink,
			a.FacebookLink, a.Website, a.SeekingVenue, nullString(a.SeekingDescription),
			a.ID,
		)
		return err
	})
}
