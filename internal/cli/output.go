package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/pfrederiksen/club-fixtures/internal/calendar"
	"github.com/pfrederiksen/club-fixtures/internal/club"
	"github.com/pfrederiksen/club-fixtures/internal/fixture"
	"github.com/pfrederiksen/club-fixtures/internal/metrics"
	"github.com/pfrederiksen/club-fixtures/internal/tracker"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatICS  OutputFormat = "ics"
)

const kickoffLayout = "Mon 02 Jan 15:04"

func parseFormat(s string, allowed ...OutputFormat) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	names := make([]string, len(allowed))
	for i, f := range allowed {
		if f == format {
			return format, nil
		}
		names[i] = "'" + string(f) + "'"
	}
	return "", fmt.Errorf("invalid format: %s (must be %s)", s, strings.Join(names, ", "))
}

// FailedClub is a club whose fixtures could not be fetched.
type FailedClub struct {
	Club  string `json:"club"`
	Error string `json:"error"`
}

func failedClubs(failures []tracker.ClubFailure) []FailedClub {
	if len(failures) == 0 {
		return nil
	}
	out := make([]FailedClub, len(failures))
	for i, f := range failures {
		out[i] = FailedClub{Club: f.Club, Error: f.Err.Error()}
	}
	return out
}

// FixturesResult contains the fixtures to be output
type FixturesResult struct {
	GeneratedAt time.Time         `json:"generated_at"`
	DaysAhead   int               `json:"days_ahead"`
	Fixtures    []fixture.Fixture `json:"fixtures"`
	Count       int               `json:"count"`
	FailedClubs []FailedClub      `json:"failed_clubs,omitempty"`
}

// fixturesView controls how fixtures are rendered.
type fixturesView struct {
	loc      *time.Location
	duration time.Duration
	verbose  bool
}

// writeFixtures writes the result in the given format. Failed clubs are also
// reported on errW so that ics and text output stay clean.
func writeFixtures(w, errW io.Writer, result *FixturesResult, format OutputFormat, view fixturesView) error {
	for _, f := range result.FailedClubs {
		fmt.Fprintf(errW, "Warning: could not fetch fixtures for %s: %s\n", f.Club, f.Error)
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatICS:
		events := make([]calendar.Event, len(result.Fixtures))
		for i, f := range result.Fixtures {
			events[i] = calendar.FromFixture(f, view.duration)
		}
		_, err := io.WriteString(w, calendar.GenerateICS(events, icsCalendarName))
		return err
	case FormatText:
		return writeFixturesText(w, result, view)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeFixturesText(w io.Writer, result *FixturesResult, view fixturesView) error {
	if result.Count == 0 {
		fmt.Fprintf(w, "No fixtures in the next %d days.\n", result.DaysAhead)
		return nil
	}

	loc := view.loc
	if loc == nil {
		loc = time.Local
	}
	for _, f := range result.Fixtures {
		fmt.Fprintf(w, "%s  %s", f.Kickoff.In(loc).Format(kickoffLayout), f.Title())
		if f.League != "" {
			fmt.Fprintf(w, "  [%s]", f.League)
		}
		fmt.Fprintln(w)
		if view.verbose {
			fmt.Fprintf(w, "       Club: %s\n", f.ClubName)
			if f.DetailURL != "" {
				fmt.Fprintf(w, "       Match page: %s\n", f.DetailURL)
			}
		}
	}
	fmt.Fprintf(w, "\nTotal: %d fixtures in the next %d days\n", result.Count, result.DaysAhead)
	return nil
}

// writeClubs writes followed clubs or search results.
func writeClubs(w io.Writer, clubs []club.Club, format OutputFormat, emptyMessage string) error {
	if format == FormatJSON {
		if clubs == nil {
			clubs = []club.Club{}
		}
		return writeJSON(w, clubs)
	}

	if len(clubs) == 0 {
		fmt.Fprintln(w, emptyMessage)
		return nil
	}
	for i, c := range clubs {
		fmt.Fprintf(w, "%d. %s", i+1, c.Name)
		if c.League != "" {
			fmt.Fprintf(w, " (%s)", c.League)
		}
		fmt.Fprintln(w)
		if c.URL != "" {
			fmt.Fprintf(w, "   %s\n", c.URL)
		}
	}
	return nil
}

// PublishResult is the output shape of a calendar publication.
type PublishResult struct {
	DryRun      bool               `json:"dry_run"`
	Summary     map[string]int     `json:"summary"`
	Outcomes    []PublishedFixture `json:"outcomes"`
	FailedClubs []FailedClub       `json:"failed_clubs,omitempty"`
}

type PublishedFixture struct {
	Action  string    `json:"action"`
	Title   string    `json:"title"`
	Kickoff time.Time `json:"kickoff"`
	EventID string    `json:"event_id,omitempty"`
	Error   string    `json:"error,omitempty"`
}

func newPublishResult(report *tracker.Report, dryRun bool) *PublishResult {
	result := &PublishResult{
		DryRun:      dryRun,
		Summary:     make(map[string]int),
		Outcomes:    make([]PublishedFixture, len(report.Outcomes)),
		FailedClubs: failedClubs(report.FailedClubs),
	}
	for action, n := range calendar.Summary(report.Outcomes) {
		result.Summary[string(action)] = n
	}
	for i, o := range report.Outcomes {
		p := PublishedFixture{
			Action:  string(o.Action),
			Title:   o.Title,
			Kickoff: o.Kickoff,
			EventID: o.EventID,
		}
		if o.Err != nil {
			p.Error = o.Err.Error()
		}
		result.Outcomes[i] = p
	}
	return result
}

func writePublishReport(w io.Writer, report *tracker.Report, format OutputFormat, dryRun bool) error {
	result := newPublishResult(report, dryRun)
	if format == FormatJSON {
		return writeJSON(w, result)
	}

	for _, o := range result.Outcomes {
		fmt.Fprintf(w, "%-8s %s  %s\n", o.Action, o.Kickoff.UTC().Format(time.RFC3339), o.Title)
		if o.Error != "" {
			fmt.Fprintf(w, "         error: %s\n", o.Error)
		}
	}
	for _, f := range result.FailedClubs {
		fmt.Fprintf(w, "Could not fetch fixtures for %s: %s\n", f.Club, f.Error)
	}

	prefix := ""
	if dryRun {
		prefix = "(dry run) "
	}
	fmt.Fprintf(w, "\n%sCreated %d, updated %d, skipped %d, failed %d.\n", prefix,
		result.Summary[string(calendar.ActionCreated)],
		result.Summary[string(calendar.ActionUpdated)],
		result.Summary[string(calendar.ActionSkipped)],
		result.Summary[string(calendar.ActionFailed)],
	)
	return nil
}

// writeMetrics dumps the recorder's counters as name{labels} value lines.
func writeMetrics(w io.Writer, rec *metrics.Recorder) error {
	samples, err := rec.Snapshot()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Metrics:")
	for _, s := range samples {
		keys := make([]string, 0, len(s.Labels))
		for k := range s.Labels {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = fmt.Sprintf("%s=%q", k, s.Labels[k])
		}
		label := ""
		if len(pairs) > 0 {
			label = "{" + strings.Join(pairs, ",") + "}"
		}
		fmt.Fprintf(w, "  %s%s %g\n", s.Name, label, s.Value)
	}
	return nil
}

// writeJSON outputs v as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := sonic.ConfigStd.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
