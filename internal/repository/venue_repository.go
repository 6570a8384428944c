// Package repository contains data access logic separated from HTTP handlers.
// This file holds the venue queries and commands: the grouped listing,
// name search, detail lookup with shows, and create/update/delete.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// VenueSummary is a venue as it appears in listings and search results.
type VenueSummary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// VenueArea groups the venues of one (city, state) pair.
type VenueArea struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

// VenueShow is a show on a venue page, joined with its artist.
type VenueShow struct {
	ArtistID        uint64    `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

const venueColumns = `id, name, city, state, address, phone, image_link, facebook_link,
	genres, website, seeking_talent, seeking_description`

// ListByArea returns every venue grouped by (city, state).  Each venue
// carries the number of its shows starting strictly after now.  Areas are
// ordered by state then city, venues inside an area by id.
func (r *VenueRepo) ListByArea(ctx context.Context, now time.Time) ([]VenueArea, error) {
	const q = `SELECT v.id, v.name, v.city, v.state,
	           (SELECT COUNT(*) FROM shows s WHERE s.venue_id = v.id AND s.start_time > ?) AS num_upcoming_shows
	           FROM venues v
	           ORDER BY v.state, v.city, v.id`
	rows, err := r.db.QueryContext(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	areas := []VenueArea{}
	index := map[[2]string]int{}
	for rows.Next() {
		var (
			v           VenueSummary
			city, state string
		)
		if err := rows.Scan(&v.ID, &v.Name, &city, &state, &v.NumUpcomingShows); err != nil {
			return nil, err
		}
		key := [2]string{city, state}
		i, ok := index[key]
		if !ok {
			i = len(areas)
			index[key] = i
			areas = append(areas, VenueArea{City: city, State: state})
		}
		areas[i].Venues = append(areas[i].Venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return areas, nil
}

// Search returns venues whose name contains term, ignoring case.  Each
// result carries its live count of shows starting after now.
func (r *VenueRepo) Search(ctx context.Context, term string, now time.Time) ([]VenueSummary, error) {
	const q = `SELECT v.id, v.name,
	           (SELECT COUNT(*) FROM shows s WHERE s.venue_id = v.id AND s.start_time > ?) AS num_upcoming_shows
	           FROM venues v
	           WHERE LOWER(v.name) LIKE ?
	           ORDER BY v.id`
	rows, err := r.db.QueryContext(ctx, q, now, likePattern(term))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []VenueSummary{}
	for rows.Next() {
		var v VenueSummary
		if err := rows.Scan(&v.ID, &v.Name, &v.NumUpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a venue by its ID.  It returns ErrVenueNotFound if no
// row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	const q = `SELECT ` + venueColumns + ` FROM venues WHERE id = ?`
	var (
		v      model.Venue
		genres string
		desc   sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.ImageLink, &v.FacebookLink,
		&genres, &v.Website, &v.SeekingTalent, &desc,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	v.Genres = model.SplitGenres(genres)
	v.SeekingDescription = stringPtr(desc)
	return &v, nil
}

// ShowsForVenue returns the venue's shows joined with their artists,
// partitioned around now: past shows started before now, upcoming shows
// start at or after it.  Both slices are ordered by start time.
func (r *VenueRepo) ShowsForVenue(ctx context.Context, venueID uint64, now time.Time) (past, upcoming []VenueShow, err error) {
	const q = `SELECT s.artist_id, a.name, a.image_link, s.start_time
	           FROM shows s
	           JOIN artists a ON a.id = s.artist_id
	           WHERE s.venue_id = ?
	           ORDER BY s.start_time ASC, s.id ASC`
	rows, err := r.db.QueryContext(ctx, q, venueID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	past, upcoming = []VenueShow{}, []VenueShow{}
	for rows.Next() {
		var s VenueShow
		if err := rows.Scan(&s.ArtistID, &s.ArtistName, &s.ArtistImageLink, &s.StartTime); err != nil {
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

// Create inserts a new venue.  On success the venue's ID field is
// populated with the auto-generated value.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const q = `INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link,
	           genres, website, seeking_talent, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q,
			v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink, v.FacebookLink,
			model.JoinGenres(v.Genres), v.Website, v.SeekingTalent, nullString(v.SeekingDescription),
		)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		v.ID = uint64(id)
		return nil
	})
}

// Update overwrites every mutable column of the venue identified by v.ID.
// Callers look the venue up first; MySQL reports zero affected rows for an
// update that changes nothing, so the row count is not checked here.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const q = `UPDATE venues
	           SET name = ?, city = ?, state = ?, address = ?, phone = ?, image_link = ?,
	               facebook_link = ?, genres = ?, website = ?, seeking_talent = ?, seeking_description = ?
	           WHERE id = ?`
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, q,
			v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
			v.FacebookLink, model.JoinGenres(v.Genres), v.Website, v.SeekingTalent, nullString(v.SeekingDescription),
			v.ID,
		)
		return err
	})
}

// Delete removes a venue; its shows go with it through the foreign key's
// ON DELETE CASCADE.  It returns ErrVenueNotFound when no row matched.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrVenueNotFound
		}
		return nil
	})
}
