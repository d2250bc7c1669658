package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/club-fixtures/internal/club"
	"github.com/pfrederiksen/club-fixtures/internal/tracker"
)

var (
	flagDays     int
	flagFormat   string
	flagSort     string
	flagOnlyClub string
)

func newFixturesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Show upcoming fixtures of followed clubs",
		Args:  cobra.NoArgs,
		RunE:  run(runFixtures),
	}
	cmd.Flags().IntVar(&flagDays, "days", -1, "Days ahead to include (default: fixtures.days_ahead)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text, json or ics")
	cmd.Flags().StringVar(&flagSort, "sort", string(SortByKickoff), "Sort order: kickoff, club or league")
	cmd.Flags().StringVar(&flagOnlyClub, "club", "", "Only this followed club (name or URL)")
	return cmd
}

func daysAhead(a *app) int {
	if flagDays >= 0 {
		return flagDays
	}
	return a.cfg.Fixtures.DaysAhead
}

func runFixtures(cmd *cobra.Command, a *app, _ []string) error {
	format, err := parseFormat(flagFormat, FormatText, FormatJSON, FormatICS)
	if err != nil {
		return err
	}
	order, err := parseSortOrder(flagSort)
	if err != nil {
		return err
	}

	var lister tracker.ClubLister = a.clubs
	if flagOnlyClub != "" {
		c, err := a.clubs.Get(cmd.Context(), flagOnlyClub)
		if err != nil {
			return fmt.Errorf("finding club %q: %w", flagOnlyClub, err)
		}
		lister = singleClub{c}
	}

	svc := tracker.New(tracker.Config{
		Clubs:   lister,
		Source:  a.scraper,
		Metrics: a.metrics,
	})

	days := daysAhead(a)
	upcoming, err := svc.Upcoming(cmd.Context(), days)
	if err != nil {
		return err
	}
	sortFixtures(upcoming.Fixtures, order)

	result := &FixturesResult{
		GeneratedAt: time.Now().UTC(),
		DaysAhead:   days,
		Fixtures:    upcoming.Fixtures,
		Count:       len(upcoming.Fixtures),
		FailedClubs: failedClubs(upcoming.FailedClubs),
	}
	return writeFixtures(cmd.OutOrStdout(), cmd.ErrOrStderr(), result, format, fixturesView{
		loc:      a.cfg.Location(),
		duration: a.cfg.Calendar.EventDuration,
		verbose:  flagVerbose,
	})
}

// singleClub lists one club.
type singleClub struct{ c club.Club }

func (s singleClub) List(_ context.Context) ([]club.Club, error) {
	return []club.Club{s.c}, nil
}
