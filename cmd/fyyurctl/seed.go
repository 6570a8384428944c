package main

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

type venueCreator interface {
	Create(ctx context.Context, v *model.Venue) error
}

type artistCreator interface {
	Create(ctx context.Context, a *model.Artist) error
}

type showCreator interface {
	Create(ctx context.Context, s *model.Show) error
}

// seed inserts the sample venues, artists and shows and returns how many
// rows were written.
func seed(ctx context.Context, venues venueCreator, artists artistCreator, shows showCreator) (int, error) {
	n := 0
	vs := sampleVenues()
	for i := range vs {
		if err := venues.Create(ctx, &vs[i]); err != nil {
			return n, fmt.Errorf("venue %q: %w", vs[i].Name, err)
		}
		n++
	}
	as := sampleArtists()
	for i := range as {
		if err := artists.Create(ctx, &as[i]); err != nil {
			return n, fmt.Errorf("artist %q: %w", as[i].Name, err)
		}
		n++
	}
	for _, s := range sampleShows(vs, as) {
		s := s
		if err := shows.Create(ctx, &s); err != nil {
			return n, fmt.Errorf("show at %s: %w", s.StartTime.Format(time.RFC3339), err)
		}
		n++
	}
	return n, nil
}

func ptr(s string) *string { return &s }

func sampleVenues() []model.Venue {
	return []model.Venue{
		{
			Name: "The Musical Hop", City: "San Francisco", State: "CA",
			Address: "1015 Folsom Street", Phone: "123-123-1234",
			Genres:        []string{"Jazz", "Reggae", "Swing", "Classical", "Folk"},
			Website:       "https://www.themusicalhop.com",
			FacebookLink:  "https://www.facebook.com/TheMusicalHop",
			SeekingTalent: true, SeekingDescription: ptr("We are on the lookout for a local artist to play every two weeks. Please call us."),
			ImageLink: "https://images.unsplash.com/photo-1543900694-133f37abaaa5?w=400&q=60",
		},
		{
			Name: "The Dueling Pianos Bar", City: "New York", State: "NY",
			Address: "335 Delancey Street", Phone: "914-003-1132",
			Genres:       []string{"Classical", "R&B", "Hip-Hop"},
			Website:      "https://www.theduelingpianos.com",
			FacebookLink: "https://www.facebook.com/theduelingpianos",
			ImageLink:    "https://images.unsplash.com/photo-1497032205916-ac775f0649ae?w=750&q=80",
		},
		{
			Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA",
			Address: "34 Whiskey Moore Ave", Phone: "415-000-1234",
			Genres:       []string{"Rock n Roll", "Jazz", "Classical", "Folk"},
			Website:      "https://www.parksquarelivemusicandcoffee.com",
			FacebookLink: "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
			ImageLink:    "https://images.unsplash.com/photo-1485686531765-ba63b07845a7?w=747&q=80",
		},
	}
}

func sampleArtists() []model.Artist {
	return []model.Artist{
		{
			Name: "Guns N Petals", City: "San Francisco", State: "CA", Phone: "326-123-5000",
			Genres:       []string{"Rock n Roll"},
			Website:      "https://www.gunsnpetalsband.com",
			FacebookLink: "https://www.facebook.com/GunsNPetals",
			SeekingVenue: true, SeekingDescription: ptr("Looking for shows to perform at in the San Francisco Bay Area!"),
			ImageLink: "https://images.unsplash.com/photo-1549213783-8284d0336c4f?w=300&q=80",
		},
		{
			Name: "Matt Quevedo", City: "New York", State: "NY", Phone: "300-400-5000",
			Genres:       []string{"Jazz"},
			FacebookLink: "https://www.facebook.com/mattquevedo923251523",
			ImageLink:    "https://images.unsplash.com/photo-1495223153807-b916f75de8c5?w=334&q=80",
		},
		{
			Name: "The Wild Sax Band", City: "San Francisco", State: "CA", Phone: "432-325-5432",
			Genres:    []string{"Jazz", "Classical"},
			ImageLink: "https://images.unsplash.com/photo-1558369981-f9ca78462e61?w=794&q=80",
		},
	}
}

// sampleShows books the artists at the venues.  It expects the rows
// created by sampleVenues and sampleArtists, IDs already assigned.
func sampleShows(vs []model.Venue, as []model.Artist) []model.Show {
	at := func(s string) time.Time {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			panic(err)
		}
		return t
	}
	return []model.Show{
		{VenueID: vs[0].ID, ArtistID: as[0].ID, StartTime: at("2019-05-21T21:30:00Z")},
		{VenueID: vs[2].ID, ArtistID: as[1].ID, StartTime: at("2019-06-15T23:00:00Z")},
		{VenueID: vs[2].ID, ArtistID: as[2].ID, StartTime: at("2035-04-01T20:00:00Z")},
		{VenueID: vs[2].ID, ArtistID: as[2].ID, StartTime: at("2035-04-08T20:00:00Z")},
		{VenueID: vs[2].ID, ArtistID: as[2].ID, StartTime: at("2035-04-15T20:00:00Z")},
	}
}
