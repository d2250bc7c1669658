package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/pfrederiksen/club-fixtures/internal/club"
	"github.com/pfrederiksen/club-fixtures/internal/fixture"
	"github.com/pfrederiksen/club-fixtures/internal/logger"
	"github.com/pfrederiksen/club-fixtures/internal/metrics"
)

// FixturesURL returns the by-date fixture list of a club.
func (s *Scraper) FixturesURL(slug string, id int) string {
	return fmt.Sprintf("%s/%s/spielplandatum/verein/%d", s.baseURL, slug, id)
}

// UpcomingFixtures returns c's fixtures kicking off within daysAhead whole days
// of now, sorted by kickoff. A club whose id or slug cannot be resolved yields
// no fixtures and no error.
func (s *Scraper) UpcomingFixtures(ctx context.Context, c club.Club, now time.Time, daysAhead int) ([]fixture.Fixture, error) {
	id, slug, err := s.resolveClub(ctx, c)
	if err != nil {
		if errors.Is(err, ErrUnresolvableClub) {
			logger.Warn("cannot resolve club", logger.Fields{
				"club":  c.Name,
				"url":   c.URL,
				"error": err.Error(),
			})
			return []fixture.Fixture{}, nil
		}
		return nil, err
	}

	pageURL := s.FixturesURL(slug, id)
	doc, _, err := s.fetchDocument(ctx, metrics.PageFixtures, pageURL)
	if err != nil {
		return nil, err
	}

	ex, err := extract(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "club %q", c.Name)
	}
	for _, sk := range ex.skipped {
		s.metrics.RecordDroppedRow(sk.reason)
		if sk.reason == reasonMalformed {
			logger.Warn("skipping malformed fixture row", logger.Fields{
				"club": c.Name,
				"url":  pageURL,
				"row":  sk.index,
			})
		}
	}

	all, rowErrs := ToFixtures(ex.rows, ex.display, c, id, s.baseURL, s.loc)
	for _, rowErr := range rowErrs {
		s.metrics.RecordDroppedRow(reasonBadKickoff)
		logger.Warn("dropping fixture with unreadable kickoff", logger.Fields{
			"club":  c.Name,
			"error": rowErr.Error(),
		})
	}
	s.metrics.RecordFixtures(len(all))

	upcoming := fixture.Upcoming(all, now, daysAhead)
	logger.Info("fetched club fixtures", logger.Fields{
		"club":     c.Name,
		"url":      pageURL,
		"rows":     len(ex.rows),
		"upcoming": len(upcoming),
	})
	return upcoming, nil
}
