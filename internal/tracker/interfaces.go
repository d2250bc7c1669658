package tracker

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/pfrederiksen/club-fixtures/internal/calendar"
	"github.com/pfrederiksen/club-fixtures/internal/club"
	"github.com/pfrederiksen/club-fixtures/internal/fixture"
)

// ClubLister yields the followed clubs.
type ClubLister interface {
	List(ctx context.Context) ([]club.Club, error)
}

// FixtureSource fetches one club's upcoming fixtures.
type FixtureSource interface {
	UpcomingFixtures(ctx context.Context, c club.Club, now time.Time, daysAhead int) ([]fixture.Fixture, error)
}

// Authorizer reports whether calendar access has been granted.
type Authorizer interface {
	Credentials(ctx context.Context) (calendar.Authorization, error)
}

// StoreOpener opens the calendar to publish into.
type StoreOpener interface {
	Open(ctx context.Context, auth calendar.Authorization) (calendar.EventStore, error)
}

// StoreOpenerFunc adapts a function to StoreOpener.
type StoreOpenerFunc func(ctx context.Context, auth calendar.Authorization) (calendar.EventStore, error)

func (f StoreOpenerFunc) Open(ctx context.Context, auth calendar.Authorization) (calendar.EventStore, error) {
	return f(ctx, auth)
}
