package fixture

import (
	"testing"
	"time"
)

func TestUpcoming_Window(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		kickoff   time.Time
		daysAhead int
		want      bool
	}{
		{"one minute ahead", now.Add(time.Minute), 30, true},
		{"23 hours ahead", now.Add(23 * time.Hour), 30, true},
		{"exactly daysAhead days", now.Add(30 * day), 30, true},
		{"daysAhead+1 days minus a minute", now.Add(31*day - time.Minute), 30, true},
		{"daysAhead+1 days", now.Add(31 * day), 30, false},
		{"zero window keeps same day", now.Add(5 * time.Hour), 0, true},
		{"zero window drops tomorrow", now.Add(day), 0, false},
		{"started a minute ago truncates to zero", now.Add(-time.Minute), 30, true},
		{"yesterday", now.Add(-25 * time.Hour), 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Upcoming([]Fixture{{Home: "A", Away: "B", Kickoff: tt.kickoff}}, now, tt.daysAhead)
			if (len(got) == 1) != tt.want {
				t.Errorf("Upcoming() kept = %v, want %v", len(got) == 1, tt.want)
			}
		})
	}
}

func TestUpcoming_OrderingIsStable(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	k1 := now.Add(48 * time.Hour)
	k2 := now.Add(24 * time.Hour)

	input := []Fixture{
		{Home: "first-late", Kickoff: k1},
		{Home: "first-early", Kickoff: k2},
		{Home: "second-late", Kickoff: k1},
		{Home: "second-early", Kickoff: k2},
		{Home: "earliest", Kickoff: now.Add(time.Hour)},
	}

	got := Upcoming(input, now, 30)

	want := []string{"earliest", "first-early", "second-early", "first-late", "second-late"}
	if len(got) != len(want) {
		t.Fatalf("Upcoming() returned %d fixtures, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Home != name {
			t.Errorf("Upcoming()[%d] = %q, want %q", i, got[i].Home, name)
		}
	}

	if input[0].Home != "first-late" {
		t.Error("Upcoming() reordered its input")
	}
}

func TestWholeDaysUntil(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{"same instant", now, 0},
		{"next calendar day but under 24h", time.Date(2025, 10, 16, 1, 0, 0, 0, time.UTC), 0},
		{"47 hours", now.Add(47 * time.Hour), 1},
		{"minus 23 hours", now.Add(-23 * time.Hour), 0},
		{"minus 24 hours", now.Add(-24 * time.Hour), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WholeDaysUntil(tt.t, now); got != tt.want {
				t.Errorf("WholeDaysUntil() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRawRowTeams(t *testing.T) {
	tests := []struct {
		venue    Venue
		wantHome string
		wantAway string
	}{
		{VenueHome, "FC Barcelona", "Real Madrid"},
		{VenueAway, "Real Madrid", "FC Barcelona"},
		{Venue(""), "Real Madrid", "FC Barcelona"},
	}

	for _, tt := range tests {
		t.Run(string(tt.venue), func(t *testing.T) {
			row := RawRow{Venue: tt.venue, Opponent: "Real Madrid"}
			home, away := row.Teams("FC Barcelona")
			if home != tt.wantHome || away != tt.wantAway {
				t.Errorf("Teams() = (%q, %q), want (%q, %q)", home, away, tt.wantHome, tt.wantAway)
			}
		})
	}
}

func TestFixtureTitle(t *testing.T) {
	f := Fixture{Home: "FC Barcelona", Away: "Real Madrid"}
	if got := f.Title(); got != "FC Barcelona - Real Madrid" {
		t.Errorf("Title() = %q", got)
	}
}
