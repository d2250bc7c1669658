package tracker

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/pfrederiksen/club-fixtures/internal/calendar"
	"github.com/pfrederiksen/club-fixtures/internal/fixture"
	"github.com/pfrederiksen/club-fixtures/internal/logger"
	"github.com/pfrederiksen/club-fixtures/internal/metrics"
)

// Config wires a Service. Authorizer may be nil for calendars that need no
// consent, such as a local .ics file.
type Config struct {
	Clubs         ClubLister
	Source        FixtureSource
	Authorizer    Authorizer
	Stores        StoreOpener
	Metrics       *metrics.Recorder
	EventDuration time.Duration
	Now           func() time.Time
}

type Service struct {
	clubs    ClubLister
	source   FixtureSource
	auth     Authorizer
	stores   StoreOpener
	metrics  *metrics.Recorder
	duration time.Duration
	now      func() time.Time
}

func New(cfg Config) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		clubs:    cfg.Clubs,
		source:   cfg.Source,
		auth:     cfg.Authorizer,
		stores:   cfg.Stores,
		metrics:  cfg.Metrics,
		duration: cfg.EventDuration,
		now:      now,
	}
}

// ClubFailure is a club whose fixtures could not be fetched.
type ClubFailure struct {
	Club string `json:"club"`
	Err  error  `json:"-"`
}

// Upcoming is the merged fixture list of all followed clubs.
type Upcoming struct {
	Fixtures    []fixture.Fixture `json:"fixtures"`
	FailedClubs []ClubFailure     `json:"failed_clubs,omitempty"`
}

// Report is the result of a calendar publication.
type Report struct {
	Upcoming
	Outcomes []calendar.Outcome `json:"outcomes"`
}

// Upcoming fetches every followed club within daysAhead days. Only a failure
// to list clubs, or ctx ending, is returned as an error.
func (s *Service) Upcoming(ctx context.Context, daysAhead int) (Upcoming, error) {
	clubs, err := s.clubs.List(ctx)
	if err != nil {
		return Upcoming{}, errors.Wrap(err, "listing clubs")
	}

	now := s.now()
	result := Upcoming{Fixtures: []fixture.Fixture{}}
	for _, c := range clubs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		fixtures, err := s.source.UpcomingFixtures(ctx, c, now, daysAhead)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			logger.Error("fetching club fixtures failed", logger.Fields{
				"club": c.Name,
				"url":  c.URL,
			}, err)
			s.metrics.RecordClubFailure()
			result.FailedClubs = append(result.FailedClubs, ClubFailure{Club: c.Name, Err: err})
			continue
		}

		logger.Debug("fetched club fixtures", logger.Fields{
			"club":     c.Name,
			"fixtures": len(fixtures),
		})
		result.Fixtures = append(result.Fixtures, fixtures...)
	}

	fixture.SortByKickoff(result.Fixtures)
	return result, nil
}

// Publish checks calendar access, then writes the upcoming fixtures of every
// followed club to the calendar. Without consent it returns a
// *calendar.ConsentRequiredError before anything is fetched.
func (s *Service) Publish(ctx context.Context, daysAhead int) (*Report, error) {
	var auth calendar.Authorization
	if s.auth != nil {
		var err error
		auth, err = s.auth.Credentials(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "checking calendar authorization")
		}
		if auth.NeedsConsent() {
			return nil, &calendar.ConsentRequiredError{RedirectURL: auth.RedirectURL}
		}
	}

	store, err := s.stores.Open(ctx, auth)
	if err != nil {
		return nil, errors.Wrap(err, "opening calendar")
	}

	upcoming, err := s.Upcoming(ctx, daysAhead)
	if err != nil {
		return nil, err
	}

	outcomes, err := calendar.Publish(ctx, store, upcoming.Fixtures, calendar.Options{
		Duration: s.duration,
		Metrics:  s.metrics,
	})
	report := &Report{Upcoming: upcoming, Outcomes: outcomes}
	if err != nil {
		return report, err
	}

	counts := calendar.Summary(outcomes)
	logger.Info("calendar publish finished", logger.Fields{
		"created":      counts[calendar.ActionCreated],
		"updated":      counts[calendar.ActionUpdated],
		"skipped":      counts[calendar.ActionSkipped],
		"failed":       counts[calendar.ActionFailed],
		"failed_clubs": len(upcoming.FailedClubs),
	})
	return report, nil
}

