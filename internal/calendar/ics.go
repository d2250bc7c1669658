package calendar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
)

const (
	icsTimeLayout = "20060102T150405Z"
	prodID        = "-//Club Fixtures//club-fixtures//EN"
	uidDomain     = "club-fixtures"
)

// GenerateICS renders events as one VCALENDAR. calName may be empty.
func GenerateICS(events []Event, calName string) string {
	cal := ics.NewCalendar()
	cal.SetProductId(prodID)
	cal.SetMethod(ics.MethodPublish)
	if calName != "" {
		cal.SetXWRCalName(calName)
	}

	now := time.Now().UTC()
	for _, e := range events {
		uid := e.ID
		if uid == "" {
			uid = EventUID(e.Title, e.Start)
		}

		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(now)
		ev.SetStartAt(e.Start.UTC())
		ev.SetEndAt(e.End.UTC())
		ev.SetSummary(e.Title)
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
		if e.URL != "" {
			ev.SetURL(e.URL)
		}
		ev.SetStatus(ics.ObjectStatusConfirmed)
		ev.SetTimeTransparency(ics.TransparencyOpaque)
	}

	return cal.Serialize()
}

// EventUID derives a stable UID from the title and first start of an event.
func EventUID(title string, start time.Time) string {
	sum := sha256.Sum256([]byte(title + "|" + formatICSTime(start)))
	return hex.EncodeToString(sum[:8]) + "@" + uidDomain
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format(icsTimeLayout)
}

// ParseICS reads the VEVENTs of a calendar. Properties other than UID,
// SUMMARY, DESCRIPTION, URL, DTSTART and DTEND are ignored.
func ParseICS(r io.Reader) ([]Event, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("reading calendar: %w", err)
	}

	var events []Event
	for _, ev := range cal.Events() {
		e := Event{
			ID:          ev.Id(),
			Title:       propertyValue(ev, ics.ComponentPropertySummary),
			Description: propertyValue(ev, ics.ComponentPropertyDescription),
			URL:         propertyValue(ev, ics.ComponentPropertyUrl),
		}
		if e.Start, err = ev.GetStartAt(); err != nil {
			return nil, fmt.Errorf("event %q: DTSTART: %w", e.ID, err)
		}
		if ev.GetProperty(ics.ComponentPropertyDtEnd) != nil {
			if e.End, err = ev.GetEndAt(); err != nil {
				return nil, fmt.Errorf("event %q: DTEND: %w", e.ID, err)
			}
		}
		e.Start, e.End = e.Start.UTC(), e.End.UTC()
		events = append(events, e)
	}
	return events, nil
}

func propertyValue(ev *ics.VEvent, name ics.ComponentProperty) string {
	p := ev.GetProperty(name)
	if p == nil {
		return ""
	}
	return p.Value
}
