// Package fixture holds the canonical fixture model and the pure operations on it.
//
// Kickoff times scraped from the source are wall-clock text in the source's reference
// timezone. NormalizeKickoff turns them into UTC instants so fixtures from different
// clubs and timezones can be merged and sorted. Upcoming selects the fixtures inside a
// day window and orders them chronologically.
package fixture
