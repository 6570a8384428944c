package model

// Artist represents a performer who plays shows.  Artists own zero or
// more shows through shows.artist_id and cannot be deleted.
type Artist struct {
	ID                 uint64   // artists.id
	Name               string   // artists.name
	City               string   // artists.city
	State              string   // artists.state
	Phone              string   // artists.phone
	Genres             []string // artists.genres (", " joined)
	ImageLink          string   // artists.image_link
	FacebookLink       string   // artists.facebook_link
	Website            string   // artists.website
	SeekingVenue       bool     // artists.seeking_venue
	SeekingDescription *string  // artists.seeking_description (nullable)
}
