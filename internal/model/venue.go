package model

// Venue represents a physical location that hosts shows.  A venue owns
// zero or more shows through shows.venue_id.  This struct corresponds to
// a row in the `venues` table; Genres is kept as a list here and only
// joined into its delimited column form by the repository.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – display name of the venue.
//  City, State        – location used to group venues in listings.
//  Address, Phone     – contact details.
//  ImageLink          – URL of the venue picture.
//  FacebookLink       – URL of the venue's Facebook page.
//  Genres             – musical genres the venue books.
//  Website            – venue website URL.
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – free text shown when seeking talent (nil when absent).
type Venue struct {
	ID                 uint64   // venues.id
	Name               string   // venues.name
	City               string   // venues.city
	State              string   // venues.state
	Address            string   // venues.address
	Phone              string   // venues.phone
	ImageLink          string   // venues.image_link
	FacebookLink       string   // venues.facebook_link
	Genres             []string // venues.genres (", " joined)
	Website            string   // venues.website
	SeekingTalent      bool     // venues.seeking_talent
	SeekingDescription *string  // venues.seeking_description (nullable)
}
