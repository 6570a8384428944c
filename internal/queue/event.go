// Package queue defines message payloads exchanged over the message broker.
package queue

// Kinds of activity events.
const (
	VenueCreated  = "venue.created"
	VenueUpdated  = "venue.updated"
	VenueDeleted  = "venue.deleted"
	ArtistCreated = "artist.created"
	ArtistUpdated = "artist.updated"
	ShowCreated   = "show.created"
)

// ActivityEvent is published after a venue, artist or show write commits.
// It carries enough for downstream consumers to log or notify without
// querying the primary database.
type ActivityEvent struct {
	ID         string `json:"id"` // random UUID, also the AMQP message id
	Kind       string `json:"kind"`
	EntityID   uint64 `json:"entity_id"`
	Name       string `json:"name,omitempty"`
	VenueID    uint64 `json:"venue_id,omitempty"`
	ArtistID   uint64 `json:"artist_id,omitempty"`
	StartTime  string `json:"start_time,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
