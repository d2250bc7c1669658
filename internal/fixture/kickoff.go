package fixture

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// DefaultTimezone is the zone the source publishes kickoff text in.
const DefaultTimezone = "Europe/Warsaw"

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp][Mm])$`)

// wallClock is a naive local date-time with no zone attached.
type wallClock struct {
	year   int
	month  time.Month
	day    int
	hour   int
	minute int
}

// in attaches loc to the wall clock. Go resolves the offset from the zone rules
// in effect at that wall-clock time, so both sides of a DST change get their own offset.
// A wall clock that occurs twice, in the hour repeated when clocks go back,
// resolves to the earlier occurrence.
func (w wallClock) in(loc *time.Location) time.Time {
	t := time.Date(w.year, w.month, w.day, w.hour, w.minute, 0, 0, loc)

	start, _ := t.ZoneBounds()
	if start.IsZero() {
		return t
	}
	_, offset := t.Zone()
	_, prevOffset := start.Add(-time.Second).Zone()
	if prevOffset <= offset {
		return t
	}
	earlier := t.Add(-time.Duration(prevOffset-offset) * time.Second)
	if w.matches(earlier.In(loc)) {
		return earlier
	}
	return t
}

func (w wallClock) matches(t time.Time) bool {
	return t.Year() == w.year && t.Month() == w.month && t.Day() == w.day &&
		t.Hour() == w.hour && t.Minute() == w.minute
}

// NormalizeKickoff converts the source's date text ("Sun 19/10/25") and 12-hour time
// text ("2:45 PM"), read as wall-clock time in loc, into a UTC instant.
// The weekday abbreviation is skipped and never checked against the date.
// A nil loc means the system local zone.
func NormalizeKickoff(dateText, timeText string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	year, month, day, err := parseDateText(dateText)
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, err := parseTimeText(timeText)
	if err != nil {
		return time.Time{}, err
	}

	naive := wallClock{year: year, month: month, day: day, hour: hour, minute: minute}
	return naive.in(loc).UTC(), nil
}

// parseDateText reads the DD/MM/YY component, which is the last whitespace-separated
// field of the text. Years are 2000+YY.
func parseDateText(dateText string) (int, time.Month, int, error) {
	fields := strings.Fields(dateText)
	if len(fields) == 0 {
		return 0, 0, 0, errors.Wrapf(ErrMalformedDate, "empty date %q", dateText)
	}

	parts := strings.Split(fields[len(fields)-1], "/")
	if len(parts) != 3 {
		return 0, 0, 0, errors.Wrapf(ErrMalformedDate, "date %q", dateText)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		if p == "" || len(p) > 2 || !isDigits(p) {
			return 0, 0, 0, errors.Wrapf(ErrMalformedDate, "date %q: part %q", dateText, p)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, errors.Wrapf(ErrMalformedDate, "date %q: part %q", dateText, p)
		}
		nums[i] = n
	}

	day, month, year := nums[0], time.Month(nums[1]), 2000+nums[2]

	// time.Date normalizes out-of-range values; a round trip rejects 31/02 and friends.
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != month || date.Year() != year {
		return 0, 0, 0, errors.Wrapf(ErrMalformedDate, "date %q is not a calendar date", dateText)
	}

	return year, month, day, nil
}

// parseTimeText reads "H:MM AM" / "HH:MM pm" into 24-hour fields.
func parseTimeText(timeText string) (int, int, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(timeText))
	if m == nil {
		return 0, 0, errors.Wrapf(ErrMalformedTime, "time %q", timeText)
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, 0, errors.Wrapf(ErrMalformedTime, "time %q out of range", timeText)
	}

	pm := strings.EqualFold(m[3], "PM")
	switch {
	case hour == 12 && !pm:
		hour = 0
	case hour != 12 && pm:
		hour += 12
	}

	return hour, minute, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
