package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/club-fixtures/internal/calendar"
	"github.com/pfrederiksen/club-fixtures/internal/club"
	"github.com/pfrederiksen/club-fixtures/internal/fixture"
	"github.com/pfrederiksen/club-fixtures/internal/metrics"
	"github.com/pfrederiksen/club-fixtures/internal/tracker"
)

func sampleFixtures() []fixture.Fixture {
	return []fixture.Fixture{
		{Home: "FC Barcelona", Away: "Real Madrid", League: "LaLiga", ClubName: "FC Barcelona",
			Kickoff: time.Date(2025, 10, 26, 15, 15, 0, 0, time.UTC), DetailURL: "https://example.com/1"},
		{Home: "Legia Warsaw", Away: "Lech Poznan", League: "Ekstraklasa", ClubName: "Legia Warsaw",
			Kickoff: time.Date(2025, 10, 27, 17, 30, 0, 0, time.UTC), DetailURL: "https://example.com/2"},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" ics ", FormatICS, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := parseFormat(tt.in, FormatText, FormatJSON, FormatICS)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}

	if _, err := parseFormat("ics", FormatText, FormatJSON); err == nil {
		t.Error("ics should be rejected when not allowed")
	}
}

func TestWriteFixtures_Text(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	result := &FixturesResult{
		DaysAhead:   7,
		Fixtures:    sampleFixtures(),
		Count:       2,
		FailedClubs: []FailedClub{{Club: "Lech Poznan", Error: "timeout"}},
	}
	if err := writeFixtures(&out, &errOut, result, FormatText, fixturesView{loc: warsaw, verbose: true}); err != nil {
		t.Fatal(err)
	}

	text := out.String()
	for _, want := range []string{
		"Sun 26 Oct 16:15  FC Barcelona - Real Madrid  [LaLiga]",
		"Mon 27 Oct 18:30  Legia Warsaw - Lech Poznan  [Ekstraklasa]",
		"Match page: https://example.com/1",
		"Total: 2 fixtures in the next 7 days",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if !strings.Contains(errOut.String(), "could not fetch fixtures for Lech Poznan: timeout") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestWriteFixtures_Empty(t *testing.T) {
	var out bytes.Buffer
	if err := writeFixtures(&out, &out, &FixturesResult{DaysAhead: 30}, FormatText, fixturesView{}); err != nil {
		t.Fatal(err)
	}
	if out.String() != "No fixtures in the next 30 days.\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestWriteFixtures_JSON(t *testing.T) {
	var out bytes.Buffer
	result := &FixturesResult{DaysAhead: 7, Fixtures: sampleFixtures(), Count: 2}
	if err := writeFixtures(&out, &out, result, FormatJSON, fixturesView{}); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{`"days_ahead": 7`, `"count": 2`, `"Real Madrid"`, `"2025-10-26T15:15:00Z"`} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("JSON missing %s:\n%s", want, out.String())
		}
	}
	if strings.Contains(out.String(), "failed_clubs") {
		t.Error("failed_clubs should be omitted when empty")
	}
}

func TestWriteFixtures_ICS(t *testing.T) {
	var out bytes.Buffer
	result := &FixturesResult{Fixtures: sampleFixtures(), Count: 2}
	if err := writeFixtures(&out, &out, result, FormatICS, fixturesView{duration: 90 * time.Minute}); err != nil {
		t.Fatal(err)
	}

	events, err := calendar.ParseICS(strings.NewReader(out.String()))
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if got := events[0].End.Sub(events[0].Start); got != 90*time.Minute {
		t.Errorf("duration = %v", got)
	}
	if events[1].Title != "Legia Warsaw - Lech Poznan" {
		t.Errorf("title = %q", events[1].Title)
	}
}

func TestWriteClubs(t *testing.T) {
	clubs := []club.Club{
		{Name: "FC Barcelona", League: "LaLiga", URL: "https://www.transfermarkt.com/fc-barcelona/startseite/verein/131"},
		{Name: "Legia Warsaw"},
	}

	var out bytes.Buffer
	if err := writeClubs(&out, clubs, FormatText, "none"); err != nil {
		t.Fatal(err)
	}
	want := "1. FC Barcelona (LaLiga)\n   https://www.transfermarkt.com/fc-barcelona/startseite/verein/131\n2. Legia Warsaw\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}

	out.Reset()
	_ = writeClubs(&out, nil, FormatText, "Nothing here.")
	if out.String() != "Nothing here.\n" {
		t.Errorf("empty output = %q", out.String())
	}

	out.Reset()
	_ = writeClubs(&out, nil, FormatJSON, "")
	if strings.TrimSpace(out.String()) != "[]" {
		t.Errorf("empty JSON = %q", out.String())
	}
}

func TestWritePublishReport(t *testing.T) {
	kickoff := time.Date(2025, 10, 26, 15, 15, 0, 0, time.UTC)
	report := &tracker.Report{
		Upcoming: tracker.Upcoming{
			FailedClubs: []tracker.ClubFailure{{Club: "Lech Poznan", Err: errors.New("timeout")}},
		},
		Outcomes: []calendar.Outcome{
			{Action: calendar.ActionCreated, Title: "FC Barcelona - Real Madrid", Kickoff: kickoff, EventID: "e1"},
			{Action: calendar.ActionFailed, Title: "Girona FC - FC Barcelona", Kickoff: kickoff.Add(72 * time.Hour), Err: errors.New("quota")},
		},
	}

	var out bytes.Buffer
	if err := writePublishReport(&out, report, FormatText, true); err != nil {
		t.Fatal(err)
	}
	text := out.String()
	for _, want := range []string{
		"created  2025-10-26T15:15:00Z  FC Barcelona - Real Madrid",
		"error: quota",
		"Could not fetch fixtures for Lech Poznan: timeout",
		"(dry run) Created 1, updated 0, skipped 0, failed 1.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}

	out.Reset()
	if err := writePublishReport(&out, report, FormatJSON, false); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"dry_run": false`, `"error": "quota"`, `"created": 1`, `"event_id": "e1"`} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("JSON missing %s:\n%s", want, out.String())
		}
	}
}

func TestWriteMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	rec.RecordPublish("created")
	rec.RecordClubFailure()

	var out bytes.Buffer
	if err := writeMetrics(&out, rec); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"club_fixtures_club_failures_total 1",
		`club_fixtures_publish_outcomes_total{action="created"} 1`,
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("metrics missing %q:\n%s", want, out.String())
		}
	}
}

func TestSortFixtures(t *testing.T) {
	base := time.Date(2025, 10, 26, 12, 0, 0, 0, time.UTC)
	fixtures := []fixture.Fixture{
		{Home: "C", ClubName: "Legia Warsaw", League: "Ekstraklasa", Kickoff: base.Add(3 * time.Hour)},
		{Home: "A", ClubName: "FC Barcelona", League: "LaLiga", Kickoff: base.Add(2 * time.Hour)},
		{Home: "B", ClubName: "legia warsaw", League: "Ekstraklasa", Kickoff: base.Add(1 * time.Hour)},
	}

	homes := func(fs []fixture.Fixture) string {
		var b strings.Builder
		for _, f := range fs {
			b.WriteString(f.Home)
		}
		return b.String()
	}

	tests := []struct {
		order SortOrder
		want  string
	}{
		{SortByKickoff, "BAC"},
		{SortByClub, "ABC"},
		{SortByLeague, "BCA"},
	}
	for _, tt := range tests {
		fs := append([]fixture.Fixture(nil), fixtures...)
		sortFixtures(fs, tt.order)
		if got := homes(fs); got != tt.want {
			t.Errorf("sortFixtures(%s) = %s, want %s", tt.order, got, tt.want)
		}
	}

	if _, err := parseSortOrder("venue"); err == nil {
		t.Error("parseSortOrder(venue) expected error")
	}
}

func TestExitCode(t *testing.T) {
	if got := exitCode(nil); got != ExitSuccess {
		t.Errorf("exitCode(nil) = %d", got)
	}
	if got := exitCode(errors.New("boom")); got != ExitError {
		t.Errorf("exitCode(error) = %d", got)
	}
	consent := &calendar.ConsentRequiredError{RedirectURL: "https://accounts.example.com"}
	if got := exitCode(consent); got != ExitNeedsConsent {
		t.Errorf("exitCode(consent) = %d", got)
	}
}
