// Package cli implements the command-line interface for club-fixtures.
//
// The cli package provides the Cobra-based commands for searching clubs,
// managing the followed list, printing upcoming fixtures (text/JSON/iCalendar)
// and publishing them to Google Calendar or a local .ics file. It wires the
// config, storage, scraper, tracker and calendar packages together.
package cli
