package model

import "time"

// Show is a booking of exactly one artist at one venue at a point in
// time.  Shows are created once and never updated.  Whether a show is
// past or upcoming is not stored; see IsUpcoming.
//
// Fields:
//  ID        – primary key identifier.
//  VenueID   – venue hosting the show.
//  ArtistID  – artist performing.
//  StartTime – when the show begins (UTC).
type Show struct {
	ID        uint64    // shows.id
	VenueID   uint64    // shows.venue_id
	ArtistID  uint64    // shows.artist_id
	StartTime time.Time // shows.start_time
}

// IsUpcoming reports whether a show starting at start has not begun yet
// at now.  A show starting exactly at now counts as upcoming.
func IsUpcoming(start, now time.Time) bool {
	return !start.Before(now)
}
