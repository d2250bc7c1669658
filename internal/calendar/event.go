package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/pfrederiksen/club-fixtures/internal/fixture"
)

// DefaultDuration is the length given to a match event.
const DefaultDuration = 2 * time.Hour

// Event is a calendar entry as the stores see it.
type Event struct {
	ID          string
	Title       string
	Description string
	URL         string
	Start       time.Time
	End         time.Time
}

// EventStore is a calendar that Publish can search and write.
type EventStore interface {
	// Search returns events whose start lies in [from, to]. Stores may match
	// title loosely; Publish re-checks exact equality.
	Search(ctx context.Context, title string, from, to time.Time) ([]Event, error)
	Insert(ctx context.Context, e Event) (Event, error)
	Update(ctx context.Context, e Event) (Event, error)
}

// Description renders the event body for a fixture.
func Description(f fixture.Fixture) string {
	return fmt.Sprintf("%s\nMatch page: %s", f.League, f.DetailURL)
}

// FromFixture builds the event for f. A non-positive duration means DefaultDuration.
func FromFixture(f fixture.Fixture, duration time.Duration) Event {
	if duration <= 0 {
		duration = DefaultDuration
	}
	start := f.Kickoff.UTC()
	return Event{
		Title:       f.Title(),
		Description: Description(f),
		URL:         f.DetailURL,
		Start:       start,
		End:         start.Add(duration),
	}
}
