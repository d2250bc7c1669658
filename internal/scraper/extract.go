package scraper

import (
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"

	"github.com/pfrederiksen/club-fixtures/internal/club"
	"github.com/pfrederiksen/club-fixtures/internal/fixture"
	"github.com/pfrederiksen/club-fixtures/internal/logger"
)

const (
	statusPreview     = "Match preview"
	timeUnknown       = "Unknown"
	timeUnconfirmed   = "12:00 AM"
	reasonPlayed      = "not_preview"
	reasonUnconfirmed = "time_unconfirmed"
	reasonMalformed   = "malformed_row"
	reasonBadKickoff  = "bad_kickoff"
)

// skippedRow is a table row left out of the extraction.
type skippedRow struct {
	index  int
	reason string
}

type extraction struct {
	display string
	rows    []fixture.RawRow
	skipped []skippedRow
}

// ExtractRows reads the club display name and the upcoming fixture rows with a
// confirmed kickoff time from a fixture-list page. A missing headline or table
// is ErrPageStructure; rows of an unexpected shape are logged and skipped.
func ExtractRows(doc *goquery.Document) (string, []fixture.RawRow, error) {
	ex, err := extract(doc)
	if err != nil {
		return "", nil, err
	}
	for _, sk := range ex.skipped {
		if sk.reason == reasonMalformed {
			logger.Warn("skipping malformed fixture row", logger.Fields{"row": sk.index})
		}
	}
	return ex.display, ex.rows, nil
}

func extract(doc *goquery.Document) (extraction, error) {
	display, ok := findHeadline(doc)
	if !ok {
		return extraction{}, errors.Wrap(ErrPageStructure, "headline not found")
	}
	trs, ok := findFixtureRows(doc)
	if !ok {
		return extraction{}, errors.Wrap(ErrPageStructure, "fixture table not found")
	}

	ex := extraction{display: display, rows: []fixture.RawRow{}}
	league := ""

	trs.Each(func(i int, tr *goquery.Selection) {
		cells, ok := readFixtureCells(tr)
		if !ok {
			if label, ok := competitionHeader(tr); ok {
				league = label
				return
			}
			ex.skipped = append(ex.skipped, skippedRow{index: i, reason: reasonMalformed})
			return
		}

		if cells.statusTitle != statusPreview {
			ex.skipped = append(ex.skipped, skippedRow{index: i, reason: reasonPlayed})
			return
		}
		if cells.time == timeUnknown || cells.time == timeUnconfirmed {
			ex.skipped = append(ex.skipped, skippedRow{index: i, reason: reasonUnconfirmed})
			return
		}
		if cells.statusHref == "" || cells.opponent == "" {
			ex.skipped = append(ex.skipped, skippedRow{index: i, reason: reasonMalformed})
			return
		}

		ex.rows = append(ex.rows, fixture.RawRow{
			DateText:   cells.date,
			TimeText:   cells.time,
			Venue:      fixture.Venue(cells.venue),
			Opponent:   cells.opponent,
			Status:     cells.statusTitle,
			DetailHref: cells.statusHref,
			League:     league,
		})
	})

	return ex, nil
}

// ToFixtures normalizes extracted rows for club c. clubID is the club's source
// id. Rows whose kickoff cannot be normalized are dropped and reported in errs.
func ToFixtures(rows []fixture.RawRow, clubDisplayName string, c club.Club, clubID int, baseURL string, loc *time.Location) ([]fixture.Fixture, []error) {
	fixtures := make([]fixture.Fixture, 0, len(rows))
	var errs []error

	for i, row := range rows {
		kickoff, err := fixture.NormalizeKickoff(row.DateText, row.TimeText, loc)
		if err != nil {
			errs = append(errs, fmt.Errorf("row %d (%s vs %s): %w", i, clubDisplayName, row.Opponent, err))
			continue
		}

		home, away := row.Teams(clubDisplayName)
		fixtures = append(fixtures, fixture.Fixture{
			Home:         home,
			Away:         away,
			League:       row.League,
			Kickoff:      kickoff,
			DetailURL:    absolute(baseURL, row.DetailHref),
			ClubSourceID: clubID,
			ClubName:     c.Name,
		})
	}

	return fixtures, errs
}
