package fixture

import (
	"fmt"
	"time"
)

// Fixture is a scheduled, not yet played match with a confirmed kickoff.
type Fixture struct {
	Home         string    `json:"home"`
	Away         string    `json:"away"`
	League       string    `json:"league"`
	Kickoff      time.Time `json:"kickoff"` // always UTC
	DetailURL    string    `json:"detail_url"`
	ClubSourceID int       `json:"club_source_id"`
	ClubName     string    `json:"club_name"`
}

// Title returns the calendar title of the fixture, "Home - Away".
func (f Fixture) Title() string {
	return fmt.Sprintf("%s - %s", f.Home, f.Away)
}

// Venue is the H/A flag of a fixture row relative to the tracked club.
type Venue string

const (
	VenueHome Venue = "H"
	VenueAway Venue = "A"
)

// RawRow is a fixture row as scraped, before kickoff normalization.
type RawRow struct {
	DateText   string
	TimeText   string
	Venue      Venue
	Opponent   string
	Status     string
	DetailHref string
	League     string
}

// Teams resolves home and away names for the tracked club's display name.
// Any flag other than H puts the tracked club away.
func (r RawRow) Teams(clubDisplayName string) (home, away string) {
	if r.Venue == VenueHome {
		return clubDisplayName, r.Opponent
	}
	return r.Opponent, clubDisplayName
}
